package system

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/core/event"
	"github.com/wormden/server/internal/data"
	"github.com/wormden/server/internal/geom"
	"github.com/wormden/server/internal/sched"
	"github.com/wormden/server/internal/world"
)

// WaveScaler supplies the spawn-count multiplier for repeat cycles. The Lua
// engine implements this; tests use a fixed function.
type WaveScaler interface {
	ScaleWave(cycle int) float64
}

// WaveSpawnSystem spawns timed enemy waves around the serpent. When the
// schedule is exhausted it loops, scaling counts per cycle. Phase 2
// (Update).
type WaveSpawnSystem struct {
	world      *world.State
	sched      *sched.Scheduler
	enemies    *data.EnemyTable
	schedule   *data.WaveSchedule
	scaler     WaveScaler
	controller world.EnemyController
	bus        *event.Bus
	rng        *rand.Rand
	log        *zap.Logger

	nextWave    int
	cycleOffset float64
}

func NewWaveSpawnSystem(ws *world.State, scheduler *sched.Scheduler, enemies *data.EnemyTable,
	schedule *data.WaveSchedule, scaler WaveScaler, controller world.EnemyController,
	bus *event.Bus, rng *rand.Rand, log *zap.Logger) *WaveSpawnSystem {

	s := &WaveSpawnSystem{
		world:      ws,
		sched:      scheduler,
		enemies:    enemies,
		schedule:   schedule,
		scaler:     scaler,
		controller: controller,
		bus:        bus,
		rng:        rng,
		log:        log,
	}
	event.Subscribe(bus, func(event.RunEnded) {
		s.nextWave = 0
		s.cycleOffset = 0
	})
	return s
}

func (s *WaveSpawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *WaveSpawnSystem) Update(_ time.Duration) {
	if s.world.Paused {
		return
	}
	sp := s.world.Serpent
	if sp == nil || !sp.Alive() {
		return
	}

	elapsed := s.world.Clock - s.world.RunStart - s.cycleOffset

	if s.nextWave >= s.schedule.Len() {
		if elapsed >= s.schedule.CycleDuration() {
			s.cycleOffset += s.schedule.CycleDuration()
			s.nextWave = 0
			s.world.Cycle++
		}
		return
	}

	entry := s.schedule.Entry(s.nextWave)
	if elapsed < entry.At {
		return
	}
	s.nextWave++
	s.world.Wave++
	s.spawnWave(entry)
}

func (s *WaveSpawnSystem) spawnWave(entry data.WaveEntry) {
	count := int(math.Round(float64(entry.Count) * s.scaler.ScaleWave(s.world.Cycle)))
	if count < 1 {
		count = 1
	}
	tpl := s.enemies.Get(entry.Template) // validated at schedule load
	head := s.world.Serpent.Head()

	for i := 0; i < count; i++ {
		ang := 2 * math.Pi * float64(i) / float64(count)
		pos := geom.OnCircle(head, ang, entry.Radius)
		if entry.Jitter > 0 {
			pos = pos.Add(geom.RandOffset(s.rng, entry.Jitter))
		}
		e := s.world.SpawnEnemy(tpl, pos, s.world.Wave)
		e.Controller = s.controller
		s.sched.Register(e, s.world.Clock)
		event.Emit(s.bus, event.EnemySpawned{ID: e.ID, Template: tpl.Name, Pos: pos})
	}

	event.Emit(s.bus, event.WaveStarted{Wave: s.world.Wave, Cycle: s.world.Cycle, Count: count})
	s.log.Info("wave spawned",
		zap.Int("wave", s.world.Wave),
		zap.Int("cycle", s.world.Cycle),
		zap.String("template", entry.Template),
		zap.Int("count", count))
}
