package world

import (
	"github.com/wormden/server/internal/core/actor"
	"github.com/wormden/server/internal/geom"
)

// Drop is an XP orb left behind by a dead enemy. Exists only in memory;
// despawns when TTL runs out or the serpent head collects it.
type Drop struct {
	ID  actor.ID
	Pos geom.Vec2
	XP  int
	TTL float64 // seconds remaining, <=0 means expired
}
