package system

import (
	"time"

	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/world"
)

// DropSystem expires XP drops and lets the serpent head collect them.
// Collected XP grows the serpent one segment per threshold. Phase 3
// (PostUpdate).
type DropSystem struct {
	world        *world.State
	pickupRadius float64
	xpPerSegment int
}

func NewDropSystem(ws *world.State, pickupRadius float64, xpPerSegment int) *DropSystem {
	if xpPerSegment < 1 {
		xpPerSegment = 1
	}
	return &DropSystem{world: ws, pickupRadius: pickupRadius, xpPerSegment: xpPerSegment}
}

func (s *DropSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DropSystem) Update(dt time.Duration) {
	if s.world.Paused {
		return
	}
	step := dt.Seconds()
	sp := s.world.Serpent
	rSq := s.pickupRadius * s.pickupRadius

	for _, d := range s.world.Drops {
		d.TTL -= step
		if d.TTL <= 0 {
			s.world.MarkForRemoval(d.ID)
			continue
		}
		if sp == nil || !sp.Alive() {
			continue
		}
		if d.Pos.DistSq(sp.Head()) <= rSq {
			sp.XP += d.XP
			s.world.RunXP += d.XP
			for sp.XP >= s.xpPerSegment {
				sp.XP -= s.xpPerSegment
				sp.Grow()
			}
			s.world.MarkForRemoval(d.ID)
		}
	}
}
