package event

import "testing"

type pingEvent struct{ n int }
type pongEvent struct{ s string }

func TestEventsDeliverAfterBufferSwap(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev pingEvent) { got = append(got, ev.n) })

	Emit(b, pingEvent{n: 1})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("event delivered in the tick it was emitted")
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v after swap, want [1]", got)
	}

	// A second rotation must not redeliver.
	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatalf("event redelivered on the next rotation: %v", got)
	}
}

func TestEventsRouteByType(t *testing.T) {
	b := NewBus()
	var pings, pongs int
	Subscribe(b, func(pingEvent) { pings++ })
	Subscribe(b, func(pongEvent) { pongs++ })

	Emit(b, pingEvent{n: 1})
	Emit(b, pingEvent{n: 2})
	Emit(b, pongEvent{s: "x"})
	b.SwapBuffers()
	b.DispatchAll()

	if pings != 2 || pongs != 1 {
		t.Fatalf("pings=%d pongs=%d, want 2 and 1", pings, pongs)
	}
}

func TestAllHandlersReceiveEachEvent(t *testing.T) {
	b := NewBus()
	var a, c int
	Subscribe(b, func(pingEvent) { a++ })
	Subscribe(b, func(pingEvent) { c++ })

	Emit(b, pingEvent{})
	b.SwapBuffers()
	b.DispatchAll()

	if a != 1 || c != 1 {
		t.Fatalf("handler counts a=%d c=%d, want both 1", a, c)
	}
}

func TestEmitDuringDispatchLandsNextTick(t *testing.T) {
	b := NewBus()
	var chained int
	Subscribe(b, func(pingEvent) { Emit(b, pongEvent{s: "chain"}) })
	Subscribe(b, func(pongEvent) { chained++ })

	Emit(b, pingEvent{})
	b.SwapBuffers()
	b.DispatchAll() // ping handled, pong queued for next tick
	if chained != 0 {
		t.Fatalf("chained event delivered in the same tick")
	}

	b.SwapBuffers()
	b.DispatchAll()
	if chained != 1 {
		t.Fatalf("chained event count %d after next rotation, want 1", chained)
	}
}
