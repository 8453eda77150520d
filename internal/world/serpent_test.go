package world

import (
	"math"
	"testing"

	"github.com/wormden/server/internal/geom"
	"github.com/wormden/server/internal/sched"
)

func TestNewSerpentLaysSegmentsBehindOrigin(t *testing.T) {
	s := NewSerpent(geom.Vec2{X: 10, Y: 2}, 4, 1.2, 6.0, 100)
	if len(s.Segments) != 4 {
		t.Fatalf("%d segments, want 4", len(s.Segments))
	}
	for i, seg := range s.Segments {
		want := geom.Vec2{X: 10 - float64(i)*1.2, Y: 2}
		if seg != want {
			t.Fatalf("segment %d at %v, want %v", i, seg, want)
		}
	}
}

func TestAdvancePreservesSpacing(t *testing.T) {
	s := NewSerpent(geom.Vec2{}, 5, 1.2, 6.0, 100)
	s.Steer(geom.Vec2{X: 0.3, Y: 1})

	for step := 0; step < 100; step++ {
		s.Advance(0.05)
		for i := 1; i < len(s.Segments); i++ {
			d := s.Segments[i].Dist(s.Segments[i-1])
			if d > s.Spacing+1e-9 {
				t.Fatalf("step %d: segments %d-%d stretched to %v, spacing %v", step, i-1, i, d, s.Spacing)
			}
		}
	}
}

func TestSteerNormalizesInput(t *testing.T) {
	s := NewSerpent(geom.Vec2{}, 2, 1.2, 6.0, 100)
	s.Steer(geom.Vec2{X: 3, Y: 4})
	if math.Abs(s.Dir.Len()-1) > 1e-9 {
		t.Fatalf("steering direction length %v, want unit", s.Dir.Len())
	}
}

func TestZeroSteerStopsHead(t *testing.T) {
	s := NewSerpent(geom.Vec2{X: 1}, 2, 1.2, 6.0, 100)
	s.Steer(geom.Vec2{})
	s.Advance(1.0)
	if s.Head().X != 1 {
		t.Fatalf("head moved to %v while stopped", s.Head())
	}
}

func TestDamageClampsAtZero(t *testing.T) {
	s := NewSerpent(geom.Vec2{}, 2, 1.2, 6.0, 50)
	if left := s.Damage(30); left != 20 {
		t.Fatalf("remaining health %v after 30 damage, want 20", left)
	}
	if left := s.Damage(100); left != 0 {
		t.Fatalf("remaining health %v after overkill, want clamped 0", left)
	}
	if s.Alive() {
		t.Fatalf("serpent alive at zero health")
	}
}

func TestGrowExtendsTail(t *testing.T) {
	s := NewSerpent(geom.Vec2{}, 3, 1.2, 6.0, 100)
	tail := s.Segments[len(s.Segments)-1]

	s.Grow()

	if len(s.Segments) != 4 {
		t.Fatalf("%d segments after growth, want 4", len(s.Segments))
	}
	added := s.Segments[len(s.Segments)-1]
	if d := added.Dist(tail); math.Abs(d-s.Spacing) > 1e-9 {
		t.Fatalf("new segment %v from old tail, want spacing %v", d, s.Spacing)
	}
}

func TestAppendTargetsEnumeratesSegments(t *testing.T) {
	s := NewSerpent(geom.Vec2{}, 3, 1.2, 6.0, 100)
	targets := s.AppendTargets(nil)
	if len(targets) != 3 {
		t.Fatalf("%d targets, want one per segment", len(targets))
	}
	for i, tgt := range targets {
		if tgt.Segment != i {
			t.Fatalf("target %d labelled segment %d", i, tgt.Segment)
		}
		if tgt.Pos != s.Segments[i] {
			t.Fatalf("target %d at %v, segment at %v", i, tgt.Pos, s.Segments[i])
		}
	}
	// Capacity reuse: a second pass into the same buffer must not grow it.
	targets = s.AppendTargets(targets[:0])
	if len(targets) != 3 {
		t.Fatalf("%d targets on buffer reuse, want 3", len(targets))
	}
}

var _ sched.TargetSource = (*Serpent)(nil)
