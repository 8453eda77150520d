package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyTemplate holds static tuning for an enemy type, loaded from YAML.
type EnemyTemplate struct {
	Name              string  `yaml:"name"`
	HP                int     `yaml:"hp"`
	Speed             float64 `yaml:"speed"`
	MinDamage         int     `yaml:"min_damage"`
	MaxDamage         int     `yaml:"max_damage"`
	ContactDistance   float64 `yaml:"contact_distance"`
	ContactTime       float64 `yaml:"contact_time"`        // seconds in contact before biting
	BiteInterval      float64 `yaml:"bite_interval"`       // seconds between bites
	ReengageGrace     float64 `yaml:"reengage_grace"`      // seconds before nav re-enables
	XPDropCount       int     `yaml:"xp_drop_count"`
	XPPerDrop         int     `yaml:"xp_per_drop"`
	DropScatterRadius float64 `yaml:"drop_scatter_radius"`
}

type enemyListFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
}

// EnemyTable holds all enemy templates indexed by name.
type EnemyTable struct {
	templates map[string]*EnemyTemplate
}

// LoadEnemyTable loads enemy templates from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy table: %w", err)
	}
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemy table: %w", err)
	}
	t := &EnemyTable{templates: make(map[string]*EnemyTemplate, len(f.Enemies))}
	for i := range f.Enemies {
		tpl := &f.Enemies[i]
		if tpl.Name == "" {
			return nil, fmt.Errorf("enemy table: entry %d has no name", i)
		}
		if tpl.MaxDamage < tpl.MinDamage {
			return nil, fmt.Errorf("enemy table: %s has max_damage < min_damage", tpl.Name)
		}
		t.templates[tpl.Name] = tpl
	}
	return t, nil
}

// Get returns the template for name, or nil if unknown.
func (t *EnemyTable) Get(name string) *EnemyTemplate {
	return t.templates[name]
}

func (t *EnemyTable) Len() int { return len(t.templates) }
