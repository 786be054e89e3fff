package animation

import "strings"

// Clip is an immutable named set of tracks.
type Clip struct {
	Name     string
	Duration float32
	Tracks   []*Track
}

// NewClip builds a clip whose duration is its longest track.
func NewClip(name string, tracks []*Track) *Clip {
	c := &Clip{Name: name, Tracks: tracks}
	for _, tr := range tracks {
		if d := tr.Duration(); d > c.Duration {
			c.Duration = d
		}
	}
	return c
}

// TargetsNode reports whether any track name starts with "<name>.".
func (c *Clip) TargetsNode(name string) bool {
	prefix := name + "."
	for _, tr := range c.Tracks {
		if strings.HasPrefix(tr.Name, prefix) {
			return true
		}
	}
	return false
}
