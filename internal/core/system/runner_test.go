package system

import (
	"testing"
	"time"
)

type recordingSystem struct {
	phase Phase
	name  string
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }
func (s *recordingSystem) Update(time.Duration) {
	*s.log = append(*s.log, s.name)
}

func TestRunnerExecutesInPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	// Registered out of order on purpose.
	r.Register(&recordingSystem{phase: PhaseCleanup, name: "cleanup", log: &log})
	r.Register(&recordingSystem{phase: PhaseInput, name: "input", log: &log})
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "update", log: &log})
	r.Register(&recordingSystem{phase: PhaseOutput, name: "output", log: &log})

	r.Tick(50 * time.Millisecond)

	want := []string{"input", "update", "output", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("ran %d systems, want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("execution order %v, want %v", log, want)
		}
	}
}

func TestRunnerKeepsRegistrationOrderWithinPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "first", log: &log})
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "second", log: &log})
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "third", log: &log})

	r.Tick(50 * time.Millisecond)

	want := []string{"first", "second", "third"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("same-phase order %v, want stable %v", log, want)
		}
	}
}

func TestRunnerResortsAfterLateRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{phase: PhaseUpdate, name: "update", log: &log})
	r.Tick(50 * time.Millisecond)

	r.Register(&recordingSystem{phase: PhaseInput, name: "input", log: &log})
	log = log[:0]
	r.Tick(50 * time.Millisecond)

	if len(log) != 2 || log[0] != "input" || log[1] != "update" {
		t.Fatalf("order after late registration %v, want [input update]", log)
	}
}
