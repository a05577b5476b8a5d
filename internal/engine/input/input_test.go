package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{
			"resize",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600},
			true,
		},
		{"window focus ignored", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED}, Event{}, false},
		{
			"shifted key",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W, Mod: sdl.KMOD_LSHIFT}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_W, Shift: true},
			true,
		},
		{
			"key repeat",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_H}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_H, Repeat: true},
			true,
		},
		{
			"key up",
			&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}},
			Event{Type: EventKeyUp, Key: sdl.SCANCODE_ESCAPE},
			true,
		},
		{
			"mouse motion",
			&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: -3, YRel: 4},
			Event{Type: EventMouseMove, MouseX: 10, MouseY: 20, DeltaX: -3, DeltaY: 4},
			true,
		},
		{
			"mouse down",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 1, Y: 2},
			Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 1, MouseY: 2},
			true,
		},
		{
			"wheel",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: -1},
			Event{Type: EventMouseWheel, DeltaY: -1},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestButtonTracking(t *testing.T) {
	in := New()
	in.record(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT})
	if !in.ButtonHeld(sdl.BUTTON_LEFT) {
		t.Error("left button should be held")
	}
	in.record(Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT})
	if in.ButtonHeld(sdl.BUTTON_LEFT) {
		t.Error("left button should be released")
	}
	if len(in.Events()) != 2 {
		t.Errorf("expected 2 recorded events, got %d", len(in.Events()))
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.record(Event{Type: EventKeyDown, Key: sdl.SCANCODE_C})
	in.record(Event{Type: EventKeyUp, Key: sdl.SCANCODE_S})

	if !in.IsKeyPressed(sdl.SCANCODE_C) {
		t.Error("C should be pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_S) {
		t.Error("a key-up event is not a press")
	}
}
