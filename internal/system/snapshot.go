package system

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	coresys "github.com/wormden/server/internal/core/system"
	gonet "github.com/wormden/server/internal/net"
	"github.com/wormden/server/internal/world"
)

// SnapshotSystem serialises the arena and broadcasts it to spectators
// every few ticks. Phase 4 (Output).
type SnapshotSystem struct {
	world *world.State
	hub   *gonet.Hub
	every int
	ticks int
	log   *zap.Logger
}

func NewSnapshotSystem(ws *world.State, hub *gonet.Hub, every int, log *zap.Logger) *SnapshotSystem {
	if every < 1 {
		every = 1
	}
	return &SnapshotSystem{world: ws, hub: hub, every: every, log: log}
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

type snapshotEnemy struct {
	ID    uint64  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	HP    int     `json:"hp"`
	State string  `json:"state"`
}

type snapshotDrop struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	XP int     `json:"xp"`
}

type snapshot struct {
	Tick     uint64          `json:"tick"`
	Clock    float64         `json:"clock"`
	Paused   bool            `json:"paused"`
	Wave     int             `json:"wave"`
	Cycle    int             `json:"cycle"`
	Kills    int             `json:"kills"`
	Health   float64         `json:"health"`
	Segments [][2]float64    `json:"segments"`
	Enemies  []snapshotEnemy `json:"enemies"`
	Drops    []snapshotDrop  `json:"drops"`
}

func (s *SnapshotSystem) Update(_ time.Duration) {
	s.ticks++
	if s.ticks < s.every {
		return
	}
	s.ticks = 0
	if s.hub.SubscriberCount() == 0 {
		return
	}

	snap := snapshot{
		Tick:   s.world.Tick,
		Clock:  s.world.Clock,
		Paused: s.world.Paused,
		Wave:   s.world.Wave,
		Cycle:  s.world.Cycle,
		Kills:  s.world.Kills,
	}
	if sp := s.world.Serpent; sp != nil {
		snap.Health = sp.Health
		snap.Segments = make([][2]float64, len(sp.Segments))
		for i, p := range sp.Segments {
			snap.Segments[i] = [2]float64{p.X, p.Y}
		}
	}
	snap.Enemies = make([]snapshotEnemy, 0, len(s.world.Enemies))
	for _, e := range s.world.Enemies {
		if e.Dead {
			continue
		}
		snap.Enemies = append(snap.Enemies, snapshotEnemy{
			ID:    uint64(e.ID),
			X:     e.Pos.X,
			Y:     e.Pos.Y,
			HP:    e.HP,
			State: e.State.String(),
		})
	}
	snap.Drops = make([]snapshotDrop, 0, len(s.world.Drops))
	for _, d := range s.world.Drops {
		snap.Drops = append(snap.Drops, snapshotDrop{X: d.Pos.X, Y: d.Pos.Y, XP: d.XP})
	}

	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Error("snapshot marshal failed", zap.Error(err))
		return
	}
	s.hub.Broadcast(data)
}
