package geom

import (
	"math"
	"math/rand"
)

// Vec2 is a point or direction on the arena plane.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Len() float64   { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// DistSq avoids the sqrt for comparison-only distance checks.
func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

func (v Vec2) Dist(o Vec2) float64 {
	return math.Sqrt(v.DistSq(o))
}

// Normalized returns the unit vector, or zero for a zero-length input.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Toward returns a step of at most maxStep from v in the direction of target.
// Never overshoots: a step longer than the remaining distance lands exactly
// on target.
func (v Vec2) Toward(target Vec2, maxStep float64) Vec2 {
	d := target.Sub(v)
	if d.LenSq() <= maxStep*maxStep {
		return target
	}
	return v.Add(d.Normalized().Scale(maxStep))
}

// RandOffset returns a vector in a random direction with uniform-random
// magnitude in [0, maxRadius].
func RandOffset(rng *rand.Rand, maxRadius float64) Vec2 {
	ang := rng.Float64() * 2 * math.Pi
	r := rng.Float64() * maxRadius
	return Vec2{math.Cos(ang) * r, math.Sin(ang) * r}
}

// OnCircle returns the point at the given angle and radius around center.
func OnCircle(center Vec2, angle, radius float64) Vec2 {
	return Vec2{center.X + math.Cos(angle)*radius, center.Y + math.Sin(angle)*radius}
}
