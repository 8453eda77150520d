package system

import (
	"math/rand"
	"time"

	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/core/event"
	"github.com/wormden/server/internal/geom"
	"github.com/wormden/server/internal/sched"
	"github.com/wormden/server/internal/world"
)

// DamageCalc rolls bite damage. The Lua engine implements this in
// production; UniformDamage is the script-free fallback.
type DamageCalc interface {
	BiteDamage(min, max int) int
}

// UniformDamage rolls uniformly in [min, max].
type UniformDamage struct {
	Rng *rand.Rand
}

func (u UniformDamage) BiteDamage(min, max int) int {
	if max <= min {
		return min
	}
	return min + u.Rng.Intn(max-min+1)
}

// EnemyAISystem owns the enemy scheduler and implements the per-enemy
// contact state machine: Approaching → InContact → Biting, with a
// Disengaging grace path back to Approaching. Phase 2 (Update).
//
// The scheduler decides which enemies tick this frame; this system decides
// what a ticked enemy does. Timers accumulate the scheduled-update dt, so
// an enemy on a stretched LOD interval still measures real elapsed time.
type EnemyAISystem struct {
	world  *world.State
	sched  *sched.Scheduler
	bus    *event.Bus
	damage DamageCalc

	runOver bool
}

func NewEnemyAISystem(ws *world.State, scheduler *sched.Scheduler, bus *event.Bus, damage DamageCalc) *EnemyAISystem {
	s := &EnemyAISystem{world: ws, sched: scheduler, bus: bus, damage: damage}
	event.Subscribe(bus, func(event.RunEnded) { s.runOver = false })
	return s
}

func (s *EnemyAISystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EnemyAISystem) Update(_ time.Duration) {
	if s.world.Paused {
		return
	}
	s.sched.Tick(s.world.Clock)
}

// Tick implements world.EnemyController. Invoked only via the scheduler's
// ScheduledUpdate path; dt is the time since this enemy's last update.
func (s *EnemyAISystem) Tick(e *world.Enemy, now, dt float64, targets sched.TargetQuery) {
	tpl := e.Template

	switch e.State {
	case world.StateApproaching:
		t, ok := targets.Nearest(e.Pos)
		if !ok {
			// No serpent (or cache not yet warm): hold position.
			e.HasTarget = false
			e.Vel = geom.Vec2{}
			return
		}
		e.HasTarget = true
		e.TargetSeg = t.Segment
		if e.Pos.DistSq(t.Pos) <= tpl.ContactDistance*tpl.ContactDistance {
			s.enterContact(e)
			return
		}
		if e.NavActive {
			e.Vel = t.Pos.Sub(e.Pos).Normalized().Scale(tpl.Speed)
			e.Pos = e.Pos.Toward(t.Pos, tpl.Speed*dt)
		}

	case world.StateInContact:
		if !s.stillTouching(e, targets) {
			s.beginDisengage(e)
			return
		}
		e.ContactTimer += dt
		if e.ContactTimer >= tpl.ContactTime {
			e.State = world.StateBiting
			e.BiteTimer = 0
		}

	case world.StateBiting:
		if !s.stillTouching(e, targets) {
			s.beginDisengage(e)
			return
		}
		e.BiteTimer += dt
		for e.BiteTimer >= tpl.BiteInterval {
			e.BiteTimer -= tpl.BiteInterval
			if !s.bite(e, now) {
				break
			}
		}

	case world.StateDisengaging:
		if s.stillTouching(e, targets) {
			// Contact resumed inside the grace window: drop straight back
			// into contact without re-enabling navigation. Timers were not
			// reset, so a biting enemy resumes biting next update.
			e.State = world.StateInContact
			return
		}
		e.GraceTimer -= dt
		if e.GraceTimer <= 0 {
			e.NavActive = true
			e.ContactTimer = 0
			e.BiteTimer = 0
			e.HasTarget = false
			e.State = world.StateApproaching
		}
	}
}

// enterContact disables navigation and zeroes velocity so the enemy does
// not jitter against the segment it is touching.
func (s *EnemyAISystem) enterContact(e *world.Enemy) {
	e.State = world.StateInContact
	e.NavActive = false
	e.Vel = geom.Vec2{}
	e.ContactTimer = 0
}

func (s *EnemyAISystem) beginDisengage(e *world.Enemy) {
	e.State = world.StateDisengaging
	e.GraceTimer = e.Template.ReengageGrace
}

// stillTouching re-checks contact against the cached segment positions and
// refreshes the tracked segment index.
func (s *EnemyAISystem) stillTouching(e *world.Enemy, targets sched.TargetQuery) bool {
	t, ok := targets.WithinRadius(e.Pos, e.Template.ContactDistance)
	if !ok {
		return false
	}
	e.TargetSeg = t.Segment
	return true
}

// bite applies one damage roll to the shared health pool. Returns false
// when there is nothing left to bite.
func (s *EnemyAISystem) bite(e *world.Enemy, now float64) bool {
	sp := s.world.Serpent
	if sp == nil || !sp.Alive() {
		return false
	}
	tpl := e.Template
	dmg := s.damage.BiteDamage(tpl.MinDamage, tpl.MaxDamage)
	left := sp.Damage(float64(dmg))
	event.Emit(s.bus, event.SerpentBitten{Attacker: e.ID, Damage: dmg, Health: left})
	if left <= 0 && !s.runOver {
		s.runOver = true
		event.Emit(s.bus, event.RunEnded{
			Duration: now - s.world.RunStart,
			Waves:    s.world.Wave,
			Kills:    s.world.Kills,
			XP:       s.world.RunXP,
		})
		return false
	}
	return left > 0
}
