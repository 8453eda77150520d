package system

import (
	"time"

	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/world"
)

// CleanupSystem flushes the deferred removal queue at tick end.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushRemovals()
}
