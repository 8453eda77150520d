package system

import (
	"time"

	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/world"
)

// MovementSystem advances the serpent along its steering intent and applies
// head-contact damage to overlapping enemies. Phase 2 (Update).
type MovementSystem struct {
	world      *world.State
	death      *DeathSystem
	headDamage int
}

func NewMovementSystem(ws *world.State, death *DeathSystem, headDamage int) *MovementSystem {
	if headDamage < 1 {
		headDamage = 1
	}
	return &MovementSystem{world: ws, death: death, headDamage: headDamage}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	if s.world.Paused {
		return
	}
	sp := s.world.Serpent
	if sp == nil || !sp.Alive() {
		return
	}
	sp.Advance(dt.Seconds())

	// Head overlap chews through enemies. Plain O(n) distance scan: the
	// population is tens to low hundreds and this is one sqrt-free check
	// per enemy per tick.
	head := sp.Head()
	for _, e := range s.world.Enemies {
		if e.Dead || e.Frozen {
			continue
		}
		r := e.Template.ContactDistance
		if head.DistSq(e.Pos) <= r*r {
			e.HP -= s.headDamage
			if e.HP <= 0 {
				s.death.KillEnemy(e)
			}
		}
	}
}
