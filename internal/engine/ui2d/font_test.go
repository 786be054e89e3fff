package ui2d

import "testing"

func TestAtlasCoversLatin1(t *testing.T) {
	a := newAtlas()
	for _, r := range []rune{'A', 'z', '~', '×', 'é'} {
		if _, ok := a.index[r]; !ok {
			t.Errorf("expected %q in atlas", r)
		}
	}
	if a.cellW != 7 || a.cellH != 13 {
		t.Errorf("expected 7x13 cells, got %dx%d", a.cellW, a.cellH)
	}
}

func TestAtlasGlyphHasCoverage(t *testing.T) {
	a := newAtlas()
	u0, v0, u1, v1 := a.uv('M')
	w, h := a.img.Rect.Dx(), a.img.Rect.Dy()
	x0, y0 := int(u0*float32(w)+0.5), int(v0*float32(h)+0.5)
	x1, y1 := int(u1*float32(w)+0.5), int(v1*float32(h)+0.5)

	covered := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if a.img.AlphaAt(x, y).A > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("expected glyph pixels in the M cell")
	}
	if u0, _, _, _ := a.uv(' '); u0 != 0 {
		t.Errorf("expected space in the first cell, got u0=%v", u0)
	}
}

func TestAtlasUnknownRuneFallsBack(t *testing.T) {
	a := newAtlas()
	q0, q1, q2, q3 := a.uv('?')
	u0, u1, u2, u3 := a.uv('漢')
	if q0 != u0 || q1 != u1 || q2 != u2 || q3 != u3 {
		t.Error("expected unknown rune to use the '?' cell")
	}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		text string
		w, h float32
	}{
		{"", 0, 13},
		{"abc", 21, 13},
		{"ab\nabcd", 28, 26},
		{"1024×600", 56, 13},
	}
	for _, tt := range tests {
		w, h := measure(tt.text, 7, 13, 1)
		if w != tt.w || h != tt.h {
			t.Errorf("%q: expected %vx%v, got %vx%v", tt.text, tt.w, tt.h, w, h)
		}
	}
}

func TestInputEdges(t *testing.T) {
	var in InputState
	in.MouseX, in.MouseLeftDown = 10, true
	in.Update()
	if !in.MouseLeftPressed || in.MouseDeltaX != 10 {
		t.Errorf("expected press edge and delta 10, got %v/%v", in.MouseLeftPressed, in.MouseDeltaX)
	}
	in.Update()
	if in.MouseLeftPressed {
		t.Error("expected press edge only on the first frame")
	}
	in.MouseLeftDown = false
	in.Update()
	if !in.MouseLeftReleased {
		t.Error("expected release edge")
	}
	in.MouseLeftClicked = true
	in.ScrollY = 3
	in.EndFrame()
	if in.MouseLeftClicked || in.ScrollY != 0 {
		t.Error("expected per-frame state cleared")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	if !r.Contains(10, 10) || r.Contains(15, 12) || r.Contains(9, 12) {
		t.Error("unexpected Contains result")
	}
}

func TestClampScroll(t *testing.T) {
	tests := []struct {
		scroll, content, view, expected float32
	}{
		{-5, 100, 50, 0},
		{10, 100, 50, 10},
		{500, 100, 50, 58},
		{30, 20, 50, 0},
	}
	for _, tt := range tests {
		if got := clampScroll(tt.scroll, tt.content, tt.view); got != tt.expected {
			t.Errorf("clampScroll(%v, %v, %v): expected %v, got %v", tt.scroll, tt.content, tt.view, tt.expected, got)
		}
	}
}
