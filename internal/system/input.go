package system

import (
	"time"

	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/geom"
	gonet "github.com/wormden/server/internal/net"
	"github.com/wormden/server/internal/world"
)

// InputSystem drains queued client intents into the world. Phase 0
// (Input). Bounded per tick so a chatty client cannot starve the frame.
type InputSystem struct {
	world      *world.State
	hub        *gonet.Hub
	maxPerTick int
}

func NewInputSystem(ws *world.State, hub *gonet.Hub, maxPerTick int) *InputSystem {
	if maxPerTick < 1 {
		maxPerTick = 32
	}
	return &InputSystem{world: ws, hub: hub, maxPerTick: maxPerTick}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; i < s.maxPerTick; i++ {
		in, ok := s.hub.PollIntent()
		if !ok {
			return
		}
		switch in.Type {
		case "steer":
			if s.world.Serpent != nil && !s.world.Paused {
				s.world.Serpent.Steer(geom.Vec2{X: in.DX, Y: in.DY})
			}
		case "pause":
			s.world.SetPaused(!s.world.Paused)
		}
	}
}
