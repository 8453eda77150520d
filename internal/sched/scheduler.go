package sched

import (
	"math"

	"go.uber.org/zap"

	"github.com/wormden/server/internal/core/actor"
	"github.com/wormden/server/internal/geom"
)

// Actor is the scheduler's view of an enemy. The scheduler owns only the
// bookkeeping (last update time, current interval); the actor owns its
// behaviour.
type Actor interface {
	ActorID() actor.ID
	Position() geom.Vec2
	// Alive reports whether the actor still exists in the world. Dead
	// actors found during a scan are pruned, not updated.
	Alive() bool
	// Active reports whether the actor should receive updates right now.
	// Frozen (paused) actors stay registered but are skipped.
	Active() bool
	ScheduledUpdate(now, dt float64, targets TargetQuery)
}

// Population enumerates the live actor set for validation sweeps. The
// registry is not authoritative: anything live but untracked gets
// re-registered during validation.
type Population interface {
	EachActor(fn func(Actor))
}

// RefPointFunc supplies the LOD reference point (the serpent head). ok is
// false when no serpent exists; LOD scaling is then disabled.
type RefPointFunc func() (geom.Vec2, bool)

// Config tunes the scheduler. All durations are simulation seconds;
// ValidateEvery/CleanupEvery are tick counts.
type Config struct {
	BaseInterval  float64
	MinUpdatePct  float64
	BasePerTick   int
	LODDistance   float64
	LODMultiplier float64
	CacheRefresh  float64
	ValidateEvery int
	CleanupEvery  int
}

func DefaultConfig() Config {
	return Config{
		BaseInterval:  0.1,
		MinUpdatePct:  0.10,
		BasePerTick:   10,
		LODDistance:   30.0,
		LODMultiplier: 2.0,
		CacheRefresh:  0.5,
		ValidateEvery: 300,
		CleanupEvery:  30,
	}
}

type entry struct {
	a          Actor
	id         actor.ID
	lastUpdate float64
	interval   float64
	removed    bool
}

// Scheduler amortises enemy updates across ticks. Each tick it services a
// bounded quota of actors in round-robin order, stretching the update
// interval for actors far from the reference point, and periodically
// reconciles its registry against the live population.
//
// Single-goroutine use from the game loop; one Tick per frame.
type Scheduler struct {
	cfg      Config
	cache    *SegmentCache
	pop      Population
	refPoint RefPointFunc
	log      *zap.Logger

	entries map[actor.ID]*entry
	order   []*entry
	cursor  int
	tick    uint64
	removedPending int
}

// New builds a scheduler. pop and refPoint may be nil: validation then only
// prunes, and LOD scaling is disabled.
func New(cfg Config, source TargetSource, pop Population, refPoint RefPointFunc, log *zap.Logger) *Scheduler {
	if cfg.BaseInterval <= 0 {
		cfg.BaseInterval = DefaultConfig().BaseInterval
	}
	if cfg.LODMultiplier < 1 {
		cfg.LODMultiplier = 1
	}
	if cfg.ValidateEvery <= 0 {
		cfg.ValidateEvery = DefaultConfig().ValidateEvery
	}
	if cfg.CleanupEvery <= 0 {
		cfg.CleanupEvery = DefaultConfig().CleanupEvery
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cfg:      cfg,
		cache:    NewSegmentCache(source, cfg.CacheRefresh),
		pop:      pop,
		refPoint: refPoint,
		log:      log,
		entries:  make(map[actor.ID]*entry, 128),
		order:    make([]*entry, 0, 128),
	}
}

// Cache exposes the segment snapshot for callers outside the update path.
func (s *Scheduler) Cache() *SegmentCache { return s.cache }

// Len returns the number of registered live entries.
func (s *Scheduler) Len() int { return len(s.entries) }

// Register adds an actor, or resets its update timer if already tracked.
// Never creates duplicate entries.
func (s *Scheduler) Register(a Actor, now float64) {
	id := a.ActorID()
	if e, ok := s.entries[id]; ok {
		e.lastUpdate = now
		return
	}
	e := &entry{a: a, id: id, lastUpdate: now, interval: s.cfg.BaseInterval}
	s.entries[id] = e
	s.order = append(s.order, e)
}

// Unregister removes an actor. Unknown IDs are ignored. The order slot is
// tombstoned and reclaimed by the next cleanup or validation pass.
func (s *Scheduler) Unregister(id actor.ID) {
	e, ok := s.entries[id]
	if !ok {
		return
	}
	e.removed = true
	e.a = nil
	delete(s.entries, id)
	s.removedPending++
}

// Tick runs one scheduling pass at simulation time now.
func (s *Scheduler) Tick(now float64) {
	s.tick++
	s.cache.maybeRefresh(now)

	if s.tick%uint64(s.cfg.ValidateEvery) == 0 {
		s.Validate(now)
	} else if s.removedPending > 0 && s.tick%uint64(s.cfg.CleanupEvery) == 0 {
		s.compact()
	}

	n := len(s.entries)
	if n == 0 {
		return
	}
	quota := s.updateQuota(n)

	span := len(s.order)
	scanned := 0
	updated := 0
	for scanned < span && updated < quota {
		i := (s.cursor + scanned) % span
		scanned++
		e := s.order[i]
		if e.removed {
			continue
		}
		if !e.a.Alive() {
			// Destroyed since the last sweep — prune in place.
			s.Unregister(e.id)
			continue
		}
		if !e.a.Active() {
			continue
		}
		e.interval = s.effectiveInterval(e.a)
		if dt := now - e.lastUpdate; dt >= e.interval {
			e.lastUpdate = now
			e.a.ScheduledUpdate(now, dt, s.cache)
			// Re-check: the update may have killed the actor itself.
			if !e.removed && !e.a.Alive() {
				s.Unregister(e.id)
			}
			updated++
		}
	}
	// Advance by entries scanned, not updated, so the cursor sweeps the
	// whole population across ticks even when most entries are skipped.
	if span > 0 {
		s.cursor = (s.cursor + scanned) % span
	} else {
		s.cursor = 0
	}
}

// updateQuota computes how many actors to service this tick: at least
// MinUpdatePct of the population and at least min(BasePerTick, n), with
// the floor raised to n/4 for large populations.
func (s *Scheduler) updateQuota(n int) int {
	q := int(math.Ceil(float64(n) * s.cfg.MinUpdatePct))
	if base := s.cfg.BasePerTick; base > 0 {
		if base > n {
			base = n
		}
		if base > q {
			q = base
		}
	}
	if n > 100 {
		if floor := n / 4; floor > q {
			q = floor
		}
	}
	if q < 1 {
		q = 1
	}
	return q
}

// effectiveInterval stretches the base interval for actors beyond the LOD
// distance from the reference point. With no reference point every actor
// updates at the base rate.
func (s *Scheduler) effectiveInterval(a Actor) float64 {
	if s.refPoint == nil {
		return s.cfg.BaseInterval
	}
	ref, ok := s.refPoint()
	if !ok {
		return s.cfg.BaseInterval
	}
	if a.Position().DistSq(ref) > s.cfg.LODDistance*s.cfg.LODDistance {
		return s.cfg.BaseInterval * s.cfg.LODMultiplier
	}
	return s.cfg.BaseInterval
}

// Validate reconciles the registry with the live population: dead entries
// are pruned, live-but-untracked actors are registered. Returns the counts
// for observability.
func (s *Scheduler) Validate(now float64) (added, removed int) {
	for id, e := range s.entries {
		if e.a == nil || !e.a.Alive() {
			e.removed = true
			e.a = nil
			delete(s.entries, id)
			s.removedPending++
			removed++
		}
	}
	if s.pop != nil {
		s.pop.EachActor(func(a Actor) {
			if _, ok := s.entries[a.ActorID()]; !ok {
				s.Register(a, now)
				added++
			}
		})
	}
	s.compact()
	if added > 0 || removed > 0 {
		s.log.Debug("scheduler registry validated",
			zap.Int("registered", added),
			zap.Int("removed", removed),
			zap.Int("tracked", len(s.entries)))
	}
	return added, removed
}

// compact drops tombstoned slots from the order slice.
func (s *Scheduler) compact() {
	if s.removedPending == 0 {
		return
	}
	kept := s.order[:0]
	for _, e := range s.order {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	s.order = kept
	s.removedPending = 0
	if len(s.order) == 0 {
		s.cursor = 0
	} else {
		s.cursor %= len(s.order)
	}
}
