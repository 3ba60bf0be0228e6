package core

import "testing"

func TestBusPublish(t *testing.T) {
	b := NewBus()

	var got []PointerEvent
	unsub := b.OnPointerMove(func(ev PointerEvent) {
		got = append(got, ev)
	})

	b.PublishPointer(PointerEvent{X: 10, Y: 20})
	b.PublishPointer(PointerEvent{X: 30, Y: 40})

	if len(got) != 2 || got[1].X != 30 {
		t.Fatalf("handler received %v", got)
	}

	unsub()
	b.PublishPointer(PointerEvent{X: 50})
	if len(got) != 2 {
		t.Errorf("handler should not run after unsubscribe, got %d events", len(got))
	}
	if b.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, expected 0", b.Subscribers())
	}
}

func TestBusOrder(t *testing.T) {
	b := NewBus()

	var order []int
	b.OnKey(func(KeyEvent) { order = append(order, 1) })
	b.OnKey(func(KeyEvent) { order = append(order, 2) })
	b.OnKey(func(KeyEvent) { order = append(order, 3) })

	b.PublishKey(KeyEvent{Key: "x"})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("handlers ran in order %v, expected [1 2 3]", order)
	}
}

func TestBusUnsubscribeDuringDispatch(t *testing.T) {
	b := NewBus()

	calls := 0
	var unsub func()
	unsub = b.OnKey(func(KeyEvent) {
		calls++
		unsub()
	})

	b.PublishKey(KeyEvent{Key: "a"})
	b.PublishKey(KeyEvent{Key: "b"})

	if calls != 1 {
		t.Errorf("handler ran %d times, expected 1", calls)
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || ActionQuit.String() != "Quit" {
		t.Error("unexpected action names")
	}
	if Action(99).String() != "Unknown" {
		t.Error("out-of-range action should be Unknown")
	}
}
