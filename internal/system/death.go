package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/wormden/server/internal/core/event"
	"github.com/wormden/server/internal/geom"
	"github.com/wormden/server/internal/sched"
	"github.com/wormden/server/internal/world"
)

// DeathSystem is the shared kill path for enemies. Not ticked — other
// systems call KillEnemy when HP is exhausted.
type DeathSystem struct {
	world   *world.State
	sched   *sched.Scheduler
	bus     *event.Bus
	rng     *rand.Rand
	dropTTL float64
	log     *zap.Logger
}

func NewDeathSystem(ws *world.State, scheduler *sched.Scheduler, bus *event.Bus, rng *rand.Rand, dropTTL float64, log *zap.Logger) *DeathSystem {
	return &DeathSystem{world: ws, sched: scheduler, bus: bus, rng: rng, dropTTL: dropTTL, log: log}
}

// KillEnemy performs the one-shot terminal transition: scatter XP drops,
// emit the death event, unregister from the scheduler, queue removal.
// Calling it twice for the same enemy is a no-op.
func (s *DeathSystem) KillEnemy(e *world.Enemy) {
	if e.Dead {
		return
	}
	e.Dead = true
	e.Vel = geom.Vec2{}

	tpl := e.Template
	for i := 0; i < tpl.XPDropCount; i++ {
		off := geom.RandOffset(s.rng, tpl.DropScatterRadius)
		s.world.SpawnDrop(e.Pos.Add(off), tpl.XPPerDrop, s.dropTTL)
	}

	s.world.Kills++
	event.Emit(s.bus, event.EnemyDied{
		ID:       e.ID,
		Template: tpl.Name,
		Pos:      e.Pos,
		XP:       tpl.XPDropCount * tpl.XPPerDrop,
		Wave:     e.Wave,
	})

	s.sched.Unregister(e.ID)
	s.world.MarkForRemoval(e.ID)
}
