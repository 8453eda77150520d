package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WaveEntry defines one timed spawn wave.
type WaveEntry struct {
	At       float64 `yaml:"at"` // seconds after run start (or cycle start)
	Template string  `yaml:"template"`
	Count    int     `yaml:"count"`
	Radius   float64 `yaml:"radius"` // spawn ring radius around the head
	Jitter   float64 `yaml:"jitter"` // random offset applied per spawn
}

type waveListFile struct {
	Waves []WaveEntry `yaml:"waves"`
}

// WaveSchedule is the ordered wave list for one cycle. When the schedule is
// exhausted it restarts with scaled counts (see WaveSpawnSystem).
type WaveSchedule struct {
	entries []WaveEntry
}

// LoadWaveSchedule loads and time-sorts the wave list, validating template
// names against the enemy table.
func LoadWaveSchedule(path string, enemies *EnemyTable) (*WaveSchedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wave schedule: %w", err)
	}
	var f waveListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse wave schedule: %w", err)
	}
	if len(f.Waves) == 0 {
		return nil, fmt.Errorf("wave schedule %s is empty", path)
	}
	for i, w := range f.Waves {
		if enemies.Get(w.Template) == nil {
			return nil, fmt.Errorf("wave %d references unknown enemy %q", i, w.Template)
		}
		if w.Count <= 0 {
			return nil, fmt.Errorf("wave %d has non-positive count", i)
		}
	}
	entries := make([]WaveEntry, len(f.Waves))
	copy(entries, f.Waves)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].At < entries[j].At })
	return &WaveSchedule{entries: entries}, nil
}

func (s *WaveSchedule) Len() int             { return len(s.entries) }
func (s *WaveSchedule) Entry(i int) WaveEntry { return s.entries[i] }

// CycleDuration is the time of the last wave plus a fixed tail before the
// schedule loops.
func (s *WaveSchedule) CycleDuration() float64 {
	return s.entries[len(s.entries)-1].At + 10.0
}
