package data

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validEnemies = `
enemies:
  - name: grub
    hp: 6
    speed: 3.5
    min_damage: 2
    max_damage: 6
    contact_distance: 0.8
    contact_time: 0.6
    bite_interval: 1.0
    reengage_grace: 0.4
    xp_drop_count: 2
    xp_per_drop: 5
    drop_scatter_radius: 1.0
  - name: hornet
    hp: 4
    speed: 6.0
    min_damage: 1
    max_damage: 4
    contact_distance: 0.6
`

func TestLoadEnemyTable(t *testing.T) {
	path := writeFile(t, "enemies.yaml", validEnemies)
	table, err := LoadEnemyTable(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("loaded %d templates, want 2", table.Len())
	}

	grub := table.Get("grub")
	if grub == nil {
		t.Fatalf("grub template missing")
	}
	if grub.HP != 6 || grub.Speed != 3.5 || grub.BiteInterval != 1.0 {
		t.Fatalf("grub fields wrong: hp=%d speed=%v bite=%v", grub.HP, grub.Speed, grub.BiteInterval)
	}
	if table.Get("unknown") != nil {
		t.Fatalf("unknown template lookup returned non-nil")
	}
}

func TestLoadEnemyTableRejectsUnnamedEntry(t *testing.T) {
	path := writeFile(t, "enemies.yaml", "enemies:\n  - hp: 5\n")
	if _, err := LoadEnemyTable(path); err == nil {
		t.Fatalf("expected error for entry without a name")
	}
}

func TestLoadEnemyTableRejectsInvertedDamageRange(t *testing.T) {
	path := writeFile(t, "enemies.yaml", `
enemies:
  - name: broken
    min_damage: 9
    max_damage: 3
`)
	if _, err := LoadEnemyTable(path); err == nil {
		t.Fatalf("expected error for max_damage < min_damage")
	}
}

func TestLoadEnemyTableMissingFile(t *testing.T) {
	if _, err := LoadEnemyTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadWaveScheduleSortsByTime(t *testing.T) {
	enemies, err := LoadEnemyTable(writeFile(t, "enemies.yaml", validEnemies))
	if err != nil {
		t.Fatalf("load enemies: %v", err)
	}
	path := writeFile(t, "waves.yaml", `
waves:
  - at: 30.0
    template: hornet
    count: 4
  - at: 5.0
    template: grub
    count: 6
  - at: 15.0
    template: grub
    count: 8
`)
	sched, err := LoadWaveSchedule(path, enemies)
	if err != nil {
		t.Fatalf("load waves: %v", err)
	}
	if sched.Len() != 3 {
		t.Fatalf("loaded %d waves, want 3", sched.Len())
	}
	times := []float64{5.0, 15.0, 30.0}
	for i, want := range times {
		if got := sched.Entry(i).At; got != want {
			t.Fatalf("wave %d at %v, want sorted %v", i, got, want)
		}
	}
	if got := sched.CycleDuration(); got != 40.0 {
		t.Fatalf("cycle duration %v, want last wave + 10s = 40.0", got)
	}
}

func TestLoadWaveScheduleRejectsUnknownTemplate(t *testing.T) {
	enemies, err := LoadEnemyTable(writeFile(t, "enemies.yaml", validEnemies))
	if err != nil {
		t.Fatalf("load enemies: %v", err)
	}
	path := writeFile(t, "waves.yaml", "waves:\n  - at: 5.0\n    template: dragon\n    count: 1\n")
	if _, err := LoadWaveSchedule(path, enemies); err == nil {
		t.Fatalf("expected error for wave referencing an unknown enemy")
	}
}

func TestLoadWaveScheduleRejectsEmptySchedule(t *testing.T) {
	enemies, err := LoadEnemyTable(writeFile(t, "enemies.yaml", validEnemies))
	if err != nil {
		t.Fatalf("load enemies: %v", err)
	}
	path := writeFile(t, "waves.yaml", "waves: []\n")
	if _, err := LoadWaveSchedule(path, enemies); err == nil {
		t.Fatalf("expected error for empty wave schedule")
	}
}
