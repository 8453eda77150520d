package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wormden/server/internal/core/event"
	coresys "github.com/wormden/server/internal/core/system"
	"github.com/wormden/server/internal/persist"
	"github.com/wormden/server/internal/world"
)

// PersistenceSystem batches kill rows and writes run records. Phase 5
// (Persist). With no repo configured it registers nothing and never runs a
// query.
type PersistenceSystem struct {
	world *world.State
	repo  *persist.RunRepo // nil = persistence disabled
	log   *zap.Logger

	flushEvery   int
	ticks        int
	pendingKills []persist.KillRecord
	pendingRuns  []persist.RunRecord
	runStarted   time.Time
}

func NewPersistenceSystem(ws *world.State, repo *persist.RunRepo, bus *event.Bus, flushEvery int, log *zap.Logger) *PersistenceSystem {
	if flushEvery < 1 {
		flushEvery = 20
	}
	s := &PersistenceSystem{
		world:      ws,
		repo:       repo,
		log:        log,
		flushEvery: flushEvery,
		runStarted: time.Now(),
	}
	if repo == nil {
		return s
	}
	event.Subscribe(bus, func(ev event.EnemyDied) {
		s.pendingKills = append(s.pendingKills, persist.KillRecord{
			KilledAt: time.Now(),
			Template: ev.Template,
			Wave:     ev.Wave,
			X:        ev.Pos.X,
			Y:        ev.Pos.Y,
		})
	})
	event.Subscribe(bus, func(ev event.RunEnded) {
		s.pendingRuns = append(s.pendingRuns, persist.RunRecord{
			StartedAt: s.runStarted,
			Duration:  ev.Duration,
			Waves:     ev.Waves,
			Kills:     ev.Kills,
			XP:        ev.XP,
		})
		s.runStarted = time.Now()
	})
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	if s.repo == nil {
		return
	}
	s.ticks++
	if s.ticks < s.flushEvery && len(s.pendingRuns) == 0 {
		return
	}
	s.ticks = 0
	s.Flush()
}

// Flush writes everything pending. Also called once at shutdown.
func (s *PersistenceSystem) Flush() {
	if s.repo == nil || (len(s.pendingKills) == 0 && len(s.pendingRuns) == 0) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if len(s.pendingKills) > 0 {
		if err := s.repo.InsertKills(ctx, s.pendingKills); err != nil {
			s.log.Error("kill log flush failed", zap.Error(err), zap.Int("rows", len(s.pendingKills)))
		} else {
			s.pendingKills = s.pendingKills[:0]
		}
	}
	for len(s.pendingRuns) > 0 {
		rec := s.pendingRuns[0]
		if err := s.repo.InsertRun(ctx, rec); err != nil {
			s.log.Error("run save failed", zap.Error(err))
			break
		}
		s.pendingRuns = s.pendingRuns[1:]
		s.log.Info("run saved",
			zap.Float64("duration_s", rec.Duration),
			zap.Int("waves", rec.Waves),
			zap.Int("kills", rec.Kills))
	}
}
