package system

import "time"

// Phase fixes execution order within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain client intents
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: scheduler, AI, movement, waves
	PhasePostUpdate              // 3: drops, pickup, growth
	PhaseOutput                  // 4: snapshot broadcast
	PhasePersist                 // 5: database flush
	PhaseCleanup                 // 6: deferred entity removal
)

// System is implemented by every tick-driven subsystem.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
