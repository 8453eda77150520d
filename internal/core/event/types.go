package event

import (
	"github.com/wormden/server/internal/core/actor"
	"github.com/wormden/server/internal/geom"
)

// EnemySpawned fires when a wave puts a new enemy into the arena.
type EnemySpawned struct {
	ID       actor.ID
	Template string
	Pos      geom.Vec2
}

// EnemyDied fires once per enemy death, after drops are placed.
type EnemyDied struct {
	ID       actor.ID
	Template string
	Pos      geom.Vec2
	XP       int
	Wave     int
}

// SerpentBitten fires for every bite tick that lands on the health pool.
type SerpentBitten struct {
	Attacker actor.ID
	Damage   int
	Health   float64 // pool after the bite
}

// WaveStarted fires when a wave begins spawning.
type WaveStarted struct {
	Wave  int
	Cycle int
	Count int
}

// RunEnded fires when the serpent's health pool is exhausted.
type RunEnded struct {
	Duration float64 // simulation seconds
	Waves    int
	Kills    int
	XP       int
}
