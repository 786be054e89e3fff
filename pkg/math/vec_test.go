package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestVec3MaxComponent(t *testing.T) {
	if got := (Vec3{1, 7, -3}).MaxComponent(); got != 7 {
		t.Errorf("Vec3.MaxComponent() = %v, want 7", got)
	}
}

func TestBox3(t *testing.T) {
	b := EmptyBox3()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox3 should be empty")
	}
	if got := b.Size(); got != (Vec3{}) {
		t.Errorf("empty Size() = %v, want zero", got)
	}

	b = b.ExpandByPoint(Vec3{-1, 0, 2}).ExpandByPoint(Vec3{3, 4, 6})
	if got, want := b.Size(), (Vec3{4, 4, 4}); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
	if got, want := b.Center(), (Vec3{1, 2, 4}); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}

	moved := b.ApplyMat4(Translate(10, 0, 0))
	if got, want := moved.Center(), (Vec3{11, 2, 4}); got != want {
		t.Errorf("ApplyMat4 Center() = %v, want %v", got, want)
	}

	u := EmptyBox3().Union(b)
	if u != b {
		t.Errorf("Union with empty: got %v, want %v", u, b)
	}
}
