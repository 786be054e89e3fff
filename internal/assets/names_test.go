package assets

import "testing"

func TestSanitizeNodeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Arm_L", "Arm_L"},
		{"Left Arm", "Left_Arm"},
		{"mixamorig:Hips", "mixamorigHips"},
		{"bone[0].tip", "bone0tip"},
		{"a/b", "ab"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeNodeName(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUniqueNames(t *testing.T) {
	r := newNameRegistry()
	expected := []string{"Bone", "Bone_1", "Bone_2"}
	for i, want := range expected {
		if got := r.unique("Bone"); got != want {
			t.Errorf("call %d: expected %s, got %s", i, want, got)
		}
	}
	if got := r.unique("Bone.001"); got != "Bone001" {
		t.Errorf("expected Bone001, got %s", got)
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache()
	c.Set("a.png", "v1", []byte{1})

	if _, ok := c.Get("a.png", "v1"); !ok {
		t.Error("expected cache hit")
	}
	if _, ok := c.Get("b.png", "v1"); ok {
		t.Error("expected cache miss")
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}

	c.Clear()
	if _, ok := c.Get("a.png", "v1"); ok {
		t.Error("expected empty cache after Clear")
	}
}

func TestCacheVersionReplacesEntry(t *testing.T) {
	c := NewCache()
	c.Set("a.png", "v1", []byte("old"))

	if _, ok := c.Get("a.png", "v2"); ok {
		t.Error("expected a miss for a newer version")
	}

	c.Set("a.png", "v2", []byte("new"))
	data, ok := c.Get("a.png", "v2")
	if !ok || string(data) != "new" {
		t.Errorf("expected new data, got %q (hit %v)", data, ok)
	}
	if _, ok := c.Get("a.png", "v1"); ok {
		t.Error("expected the old version to be gone")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cached key, got %d", c.Len())
	}
}
