package world

import (
	"github.com/wormden/server/internal/core/actor"
	"github.com/wormden/server/internal/data"
	"github.com/wormden/server/internal/geom"
	"github.com/wormden/server/internal/sched"
)

// AIState is the enemy contact state machine position.
type AIState int

const (
	StateApproaching AIState = iota // seeking the nearest body segment
	StateInContact                  // touching, accumulating contact time
	StateBiting                     // dealing periodic bite damage
	StateDisengaging                // contact lost, grace delay running
)

func (s AIState) String() string {
	switch s {
	case StateApproaching:
		return "approaching"
	case StateInContact:
		return "contact"
	case StateBiting:
		return "biting"
	case StateDisengaging:
		return "disengaging"
	}
	return "unknown"
}

// EnemyController implements the per-update behaviour; the Enemy struct is
// plain state. Set once at spawn by the AI system.
type EnemyController interface {
	Tick(e *Enemy, now, dt float64, targets sched.TargetQuery)
}

// Enemy holds runtime data for one enemy in the arena.
// Accessed only from the game loop goroutine — no locks.
type Enemy struct {
	ID       actor.ID
	Template *data.EnemyTemplate
	Wave     int // wave index that spawned it

	Pos geom.Vec2
	Vel geom.Vec2
	HP  int

	Dead bool

	// Contact state machine
	State        AIState
	NavActive    bool
	TargetSeg    int // last known target segment, -1 = none
	HasTarget    bool
	ContactTimer float64
	BiteTimer    float64
	GraceTimer   float64

	// Freeze (global pause). Entering freeze snapshots velocity and the
	// navigation flag so unfreeze restores them exactly.
	Frozen    bool
	frozenVel geom.Vec2
	frozenNav bool

	Controller EnemyController
}

func (e *Enemy) ActorID() actor.ID   { return e.ID }
func (e *Enemy) Position() geom.Vec2 { return e.Pos }
func (e *Enemy) Alive() bool         { return !e.Dead }
func (e *Enemy) Active() bool        { return !e.Dead && !e.Frozen }

// ScheduledUpdate is the scheduler's entry point into this enemy. Frozen or
// dead enemies no-op.
func (e *Enemy) ScheduledUpdate(now, dt float64, targets sched.TargetQuery) {
	if e.Dead || e.Frozen || e.Controller == nil {
		return
	}
	e.Controller.Tick(e, now, dt, targets)
}

// SetFrozen toggles the pause flag, snapshotting velocity and nav state on
// entry and restoring both on exit. Redundant toggles are no-ops.
func (e *Enemy) SetFrozen(on bool) {
	if on == e.Frozen {
		return
	}
	if on {
		e.frozenVel = e.Vel
		e.frozenNav = e.NavActive
		e.Vel = geom.Vec2{}
		e.Frozen = true
		return
	}
	e.Vel = e.frozenVel
	e.NavActive = e.frozenNav
	e.Frozen = false
}
