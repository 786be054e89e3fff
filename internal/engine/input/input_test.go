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
		{
			name:  "quit",
			event: &sdl.QuitEvent{Type: sdl.QUIT},
			want:  Event{Type: EventQuit},
			ok:    true,
		},
		{
			name:  "resize",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			want:  Event{Type: EventWindowResize, Width: 800, Height: 600},
			ok:    true,
		},
		{
			name:  "focus is ignored",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED},
			ok:    false,
		},
		{
			name:  "key down",
			event: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
			want:  Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12},
			ok:    true,
		},
		{
			name:  "key repeat",
			event: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F2}},
			want:  Event{Type: EventKeyDown, Key: sdl.SCANCODE_F2, Repeat: true},
			ok:    true,
		},
		{
			name:  "mouse move",
			event: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: -3, YRel: 4},
			want:  Event{Type: EventMouseMove, MouseX: 10, MouseY: 20, DeltaX: -3, DeltaY: 4},
			ok:    true,
		},
		{
			name:  "mouse up",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT, X: 5, Y: 6},
			want:  Event{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT, MouseX: 5, MouseY: 6},
			ok:    true,
		},
		{
			name:  "wheel",
			event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2},
			want:  Event{Type: EventMouseWheel, Wheel: 2},
			ok:    true,
		},
		{
			name:  "flipped wheel",
			event: &sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED},
			want:  Event{Type: EventMouseWheel, Wheel: -2},
			ok:    true,
		},
		{
			name:  "drop file",
			event: &sdl.DropEvent{Type: sdl.DROPFILE, File: "/tmp/Fox.glb"},
			want:  Event{Type: EventDropFile, Path: "/tmp/Fox.glb"},
			ok:    true,
		},
		{
			name:  "drop text is ignored",
			event: &sdl.DropEvent{Type: sdl.DROPTEXT, File: "hello"},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPushCollectsFrameState(t *testing.T) {
	in := New()
	in.Push(&sdl.DropEvent{Type: sdl.DROPFILE, File: "a.glb"})
	in.Push(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F2}})
	in.Push(&sdl.DropEvent{Type: sdl.DROPFILE, File: "b.gltf"})

	drops := in.DroppedFiles()
	if len(drops) != 2 || drops[0] != "a.glb" || drops[1] != "b.gltf" {
		t.Errorf("expected [a.glb b.gltf], got %v", drops)
	}
	if in.IsKeyPressed(sdl.SCANCODE_F2) {
		t.Error("expected auto-repeat not to count as a press")
	}
	if in.quit {
		t.Error("expected no quit yet")
	}

	in.Push(&sdl.QuitEvent{Type: sdl.QUIT})
	if !in.quit {
		t.Error("expected quit after quit event")
	}
}
