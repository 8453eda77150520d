package sched

import "github.com/wormden/server/internal/geom"

// Target is one cached segment position of the serpent body.
type Target struct {
	Pos     geom.Vec2
	Segment int // index within the body chain, 0 = head
}

// TargetSource supplies current segment positions. AppendTargets writes into
// buf (reusing its capacity) and returns the filled slice.
type TargetSource interface {
	AppendTargets(buf []Target) []Target
}

// TargetQuery is the read side handed to actors during a scheduled update.
type TargetQuery interface {
	Nearest(p geom.Vec2) (Target, bool)
	WithinRadius(p geom.Vec2, radius float64) (Target, bool)
}

// SegmentCache snapshots target positions at a fixed simulation-clock
// cadence so per-actor queries never touch the serpent's internals. The
// snapshot is only mutated inside Refresh; between refreshes queries see a
// consistent view that is at most refreshInterval seconds stale.
type SegmentCache struct {
	source          TargetSource // nil tolerated: cache stays empty
	refreshInterval float64
	lastRefresh     float64
	refreshed       bool
	targets         []Target
}

func NewSegmentCache(source TargetSource, refreshInterval float64) *SegmentCache {
	if refreshInterval <= 0 {
		refreshInterval = 0.5
	}
	return &SegmentCache{
		source:          source,
		refreshInterval: refreshInterval,
		targets:         make([]Target, 0, 64),
	}
}

// Refresh rebuilds the snapshot unconditionally.
func (c *SegmentCache) Refresh(now float64) {
	c.lastRefresh = now
	c.refreshed = true
	if c.source == nil {
		c.targets = c.targets[:0]
		return
	}
	c.targets = c.source.AppendTargets(c.targets[:0])
}

// maybeRefresh rebuilds the snapshot when the cadence has elapsed.
func (c *SegmentCache) maybeRefresh(now float64) {
	if !c.refreshed || now-c.lastRefresh >= c.refreshInterval {
		c.Refresh(now)
	}
}

// Nearest returns the closest cached target to p. ok is false when the
// cache is empty (no serpent, or not yet refreshed).
func (c *SegmentCache) Nearest(p geom.Vec2) (Target, bool) {
	if len(c.targets) == 0 {
		return Target{}, false
	}
	best := 0
	bestSq := p.DistSq(c.targets[0].Pos)
	for i := 1; i < len(c.targets); i++ {
		if d := p.DistSq(c.targets[i].Pos); d < bestSq {
			bestSq = d
			best = i
		}
	}
	return c.targets[best], true
}

// WithinRadius returns the closest cached target within radius of p.
func (c *SegmentCache) WithinRadius(p geom.Vec2, radius float64) (Target, bool) {
	limitSq := radius * radius
	found := false
	var best Target
	bestSq := limitSq
	for i := range c.targets {
		if d := p.DistSq(c.targets[i].Pos); d <= bestSq {
			bestSq = d
			best = c.targets[i]
			found = true
		}
	}
	return best, found
}

func (c *SegmentCache) Size() int { return len(c.targets) }
