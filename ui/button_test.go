package ui

import "testing"

func TestButtonClickOnPressRelease(t *testing.T) {
	b := NewButton("ok", "OK")
	b.SetBounds(0, 0, 80, 30)
	clicks := 0
	b.OnClick = func() { clicks++ }

	b.OnEvent(&Event{Type: EventMouseDown, Button: ButtonLeft, X: 10, Y: 10})
	b.OnEvent(&Event{Type: EventMouseUp, Button: ButtonLeft, X: 10, Y: 10})
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}

	// Releasing outside the button does not fire.
	b.OnEvent(&Event{Type: EventMouseDown, Button: ButtonLeft, X: 10, Y: 10})
	b.OnEvent(&Event{Type: EventMouseUp, Button: ButtonLeft, X: 200, Y: 10})
	if clicks != 1 {
		t.Errorf("clicks after outside release = %d, want 1", clicks)
	}
}

func TestButtonKeyboardActivation(t *testing.T) {
	b := NewButton("ok", "OK")
	clicks := 0
	b.OnClick = func() { clicks++ }

	// Unfocused buttons ignore keys.
	b.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeySpace})
	if clicks != 0 {
		t.Fatalf("unfocused clicks = %d, want 0", clicks)
	}

	b.SetFocused(true)
	b.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeySpace})
	b.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyEnter})
	if clicks != 2 {
		t.Errorf("focused clicks = %d, want 2", clicks)
	}
}

func TestButtonToggleMode(t *testing.T) {
	b := NewButton("pin", "Pin").SetToggle(true)
	b.SetBounds(0, 0, 80, 30)

	b.OnEvent(&Event{Type: EventMouseDown, Button: ButtonLeft, X: 5, Y: 5})
	b.OnEvent(&Event{Type: EventMouseUp, Button: ButtonLeft, X: 5, Y: 5})
	if !b.Checked() {
		t.Fatal("toggle button not checked after click")
	}

	b.OnEvent(&Event{Type: EventMouseDown, Button: ButtonLeft, X: 5, Y: 5})
	b.OnEvent(&Event{Type: EventMouseUp, Button: ButtonLeft, X: 5, Y: 5})
	if b.Checked() {
		t.Error("toggle button still checked after second click")
	}
}
