package core

import "testing"

func TestInputFrameHeld(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(KeyLeft) {
		t.Error("zero frame should hold nothing")
	}

	f.Hold(KeyLeft)
	if !f.Has(KeyLeft) {
		t.Error("Hold(KeyLeft) should be visible through Has")
	}
	if f.Has(KeyRight) {
		t.Error("KeyRight was never held")
	}
}

func TestInputFrameEvents(t *testing.T) {
	f := NewInputFrame()
	f.Push(RuneEvent('p'))
	f.Push(KeyEvent(KeyEnter))
	f.Push(ClickEvent(10, 20))

	if len(f.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(f.Events))
	}
	if !f.Events[0].IsRune('p') {
		t.Error("first event should be rune 'p'")
	}
	if !f.Events[1].IsKey(KeyEnter) {
		t.Error("second event should be Enter")
	}
	if f.Events[2].Kind != EventClick || f.Events[2].Pos.X != 10 || f.Events[2].Pos.Y != 20 {
		t.Errorf("third event should be a click at (10, 20), got %+v", f.Events[2])
	}
	if f.Quit() {
		t.Error("frame without quit event reported Quit()")
	}

	f.Push(QuitEvent())
	if !f.Quit() {
		t.Error("frame with quit event should report Quit()")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Hold(KeyRight)
	f.Push(KeyEvent(KeyUp))

	clone := f.Clone()
	f.Clear()

	if len(f.Events) != 0 || f.Has(KeyRight) {
		t.Error("Clear() should drop events and held keys")
	}
	if len(clone.Events) != 1 || !clone.Has(KeyRight) {
		t.Error("Clone() should be independent of the original")
	}
}

func TestKeyString(t *testing.T) {
	if KeyBackspace.String() != "Backspace" {
		t.Errorf("KeyBackspace.String() = %q", KeyBackspace.String())
	}
	if Key(99).String() != "Unknown" {
		t.Errorf("Key(99).String() = %q", Key(99).String())
	}
}
