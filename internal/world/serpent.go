package world

import (
	"github.com/wormden/server/internal/geom"
	"github.com/wormden/server/internal/sched"
)

// Serpent is the player-controlled body chain. Segment 0 is the head; each
// following segment trails the previous one at fixed spacing. All segments
// share a single health pool.
type Serpent struct {
	Segments []geom.Vec2
	Spacing  float64
	Speed    float64

	Health    float64
	MaxHealth float64

	Dir geom.Vec2 // unit steering direction, zero = coasting stop
	XP  int
}

func NewSerpent(origin geom.Vec2, segments int, spacing, speed, health float64) *Serpent {
	if segments < 1 {
		segments = 1
	}
	s := &Serpent{
		Segments:  make([]geom.Vec2, segments),
		Spacing:   spacing,
		Speed:     speed,
		Health:    health,
		MaxHealth: health,
		Dir:       geom.Vec2{X: 1},
	}
	for i := range s.Segments {
		s.Segments[i] = geom.Vec2{X: origin.X - float64(i)*spacing, Y: origin.Y}
	}
	return s
}

func (s *Serpent) Head() geom.Vec2 { return s.Segments[0] }
func (s *Serpent) Alive() bool     { return s.Health > 0 }

// Steer sets the desired movement direction. Input is normalized; a zero
// vector stops the serpent.
func (s *Serpent) Steer(dir geom.Vec2) {
	s.Dir = dir.Normalized()
}

// Advance moves the head along the steering direction and drags each
// segment toward its predecessor, preserving spacing.
func (s *Serpent) Advance(dt float64) {
	if s.Dir.LenSq() > 0 {
		s.Segments[0] = s.Segments[0].Add(s.Dir.Scale(s.Speed * dt))
	}
	for i := 1; i < len(s.Segments); i++ {
		prev := s.Segments[i-1]
		cur := s.Segments[i]
		d := cur.Dist(prev)
		if d > s.Spacing {
			s.Segments[i] = cur.Toward(prev, d-s.Spacing)
		}
	}
}

// Damage reduces the shared pool, clamping at zero. Returns the remaining
// health.
func (s *Serpent) Damage(d float64) float64 {
	s.Health -= d
	if s.Health < 0 {
		s.Health = 0
	}
	return s.Health
}

// Grow appends one segment behind the tail.
func (s *Serpent) Grow() {
	tail := s.Segments[len(s.Segments)-1]
	dir := geom.Vec2{X: -1}
	if len(s.Segments) > 1 {
		dir = tail.Sub(s.Segments[len(s.Segments)-2]).Normalized()
		if dir.LenSq() == 0 {
			dir = geom.Vec2{X: -1}
		}
	}
	s.Segments = append(s.Segments, tail.Add(dir.Scale(s.Spacing)))
}

// AppendTargets implements sched.TargetSource: every segment is a valid
// bite target.
func (s *Serpent) AppendTargets(buf []sched.Target) []sched.Target {
	for i, p := range s.Segments {
		buf = append(buf, sched.Target{Pos: p, Segment: i})
	}
	return buf
}
