package world

import (
	"time"

	"github.com/wormden/server/internal/core/actor"
	"github.com/wormden/server/internal/data"
	"github.com/wormden/server/internal/geom"
	"github.com/wormden/server/internal/sched"
)

// State is the authoritative arena state. Owned by the game loop goroutine;
// never touched from anywhere else, so no locks.
type State struct {
	Pool    *actor.Pool
	Enemies map[actor.ID]*Enemy
	Drops   map[actor.ID]*Drop
	Serpent *Serpent

	// Simulation clock in seconds, accumulated from tick dt. Kept off wall
	// time so tests can drive it deterministically.
	Clock  float64
	Tick   uint64
	Paused bool

	// Run counters
	Wave     int
	Cycle    int
	Kills    int
	RunXP    int
	RunStart float64

	removeQueue []actor.ID
}

func NewState() *State {
	return &State{
		Pool:        actor.NewPool(),
		Enemies:     make(map[actor.ID]*Enemy, 256),
		Drops:       make(map[actor.ID]*Drop, 64),
		removeQueue: make([]actor.ID, 0, 32),
	}
}

func (ws *State) AdvanceClock(dt time.Duration) {
	ws.Tick++
	if !ws.Paused {
		ws.Clock += dt.Seconds()
	}
}

// SpawnEnemy creates an enemy from a template. The caller registers it with
// the scheduler.
func (ws *State) SpawnEnemy(tpl *data.EnemyTemplate, pos geom.Vec2, wave int) *Enemy {
	e := &Enemy{
		ID:        ws.Pool.Acquire(),
		Template:  tpl,
		Wave:      wave,
		Pos:       pos,
		HP:        tpl.HP,
		State:     StateApproaching,
		NavActive: true,
		TargetSeg: -1,
	}
	ws.Enemies[e.ID] = e
	return e
}

func (ws *State) Enemy(id actor.ID) *Enemy { return ws.Enemies[id] }

func (ws *State) AllEnemies(fn func(*Enemy)) {
	for _, e := range ws.Enemies {
		fn(e)
	}
}

// EachActor implements sched.Population over the live enemy set.
func (ws *State) EachActor(fn func(sched.Actor)) {
	for _, e := range ws.Enemies {
		if !e.Dead {
			fn(e)
		}
	}
}

// AppendTargets implements sched.TargetSource against whichever serpent is
// currently installed. No serpent ⇒ empty snapshot, queries degrade to
// "no target".
func (ws *State) AppendTargets(buf []sched.Target) []sched.Target {
	if ws.Serpent == nil {
		return buf
	}
	return ws.Serpent.AppendTargets(buf)
}

// HeadRef implements the scheduler's LOD reference point.
func (ws *State) HeadRef() (geom.Vec2, bool) {
	if ws.Serpent == nil {
		return geom.Vec2{}, false
	}
	return ws.Serpent.Head(), true
}

func (ws *State) SpawnDrop(pos geom.Vec2, xp int, ttl float64) *Drop {
	d := &Drop{ID: ws.Pool.Acquire(), Pos: pos, XP: xp, TTL: ttl}
	ws.Drops[d.ID] = d
	return d
}

// MarkForRemoval queues an entity for end-of-tick removal. Safe to call
// mid-iteration; the map is only mutated in FlushRemovals.
func (ws *State) MarkForRemoval(id actor.ID) {
	ws.removeQueue = append(ws.removeQueue, id)
}

// FlushRemovals drops queued entities from the world and releases their
// IDs. Called by CleanupSystem at tick end.
func (ws *State) FlushRemovals() {
	for _, id := range ws.removeQueue {
		delete(ws.Enemies, id)
		delete(ws.Drops, id)
		ws.Pool.Release(id)
	}
	ws.removeQueue = ws.removeQueue[:0]
}

// SetPaused freezes or unfreezes every enemy. Freeze snapshots are taken
// per enemy so velocities survive the pause exactly.
func (ws *State) SetPaused(on bool) {
	if on == ws.Paused {
		return
	}
	ws.Paused = on
	for _, e := range ws.Enemies {
		e.SetFrozen(on)
	}
}

// ResetRun clears all enemies and drops and installs a fresh serpent.
func (ws *State) ResetRun(serpent *Serpent) {
	for id := range ws.Enemies {
		ws.Pool.Release(id)
		delete(ws.Enemies, id)
	}
	for id := range ws.Drops {
		ws.Pool.Release(id)
		delete(ws.Drops, id)
	}
	ws.removeQueue = ws.removeQueue[:0]
	ws.Serpent = serpent
	ws.Wave = 0
	ws.Cycle = 0
	ws.Kills = 0
	ws.RunXP = 0
	ws.RunStart = ws.Clock
}
