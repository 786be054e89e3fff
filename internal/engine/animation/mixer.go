package animation

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/scene"
	"github.com/Faultbox/gltf-viewer/internal/logger"
	"github.com/Faultbox/gltf-viewer/pkg/math"
)

type bindingKey struct {
	node scene.NodeID
	prop Property
}

// binding is one node property shared by every action that drives it. The
// value it had before the first action took it is restored when the last
// action lets go.
type binding struct {
	node     *scene.Node
	prop     Property
	useCount int
	original []float32
}

func (b *binding) read() []float32 {
	n := b.node
	switch b.prop {
	case PropertyPosition:
		return []float32{n.Position.X, n.Position.Y, n.Position.Z}
	case PropertyQuaternion:
		return []float32{n.Rotation.X, n.Rotation.Y, n.Rotation.Z, n.Rotation.W}
	case PropertyScale:
		return []float32{n.Scale.X, n.Scale.Y, n.Scale.Z}
	case PropertyMorphWeights:
		return append([]float32(nil), n.MorphWeights...)
	}
	return nil
}

func (b *binding) write(v []float32) {
	n := b.node
	switch b.prop {
	case PropertyPosition:
		n.SetPosition(math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	case PropertyQuaternion:
		n.SetRotation(math.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]})
	case PropertyScale:
		n.SetScale(math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	case PropertyMorphWeights:
		if len(n.MorphWeights) < len(v) {
			n.MorphWeights = make([]float32, len(v))
		}
		copy(n.MorphWeights, v)
	}
}

// Mixer plays clips against one scene graph.
type Mixer struct {
	graph    *scene.Graph
	actions  map[*Clip]*Action
	active   []*Action
	bindings map[bindingKey]*binding
	log      *zap.Logger
}

// NewMixer returns a mixer bound to g.
func NewMixer(g *scene.Graph) *Mixer {
	return &Mixer{
		graph:    g,
		actions:  make(map[*Clip]*Action),
		bindings: make(map[bindingKey]*binding),
		log:      logger.Named("animation"),
	}
}

// ClipAction returns the action for clip, creating it on first use.
func (m *Mixer) ClipAction(clip *Clip) *Action {
	if a, ok := m.actions[clip]; ok {
		return a
	}
	a := &Action{mixer: m, clip: clip}
	for _, tr := range clip.Tracks {
		id := m.graph.Find(tr.Node)
		if id == scene.NoNode {
			m.log.Debug("track target not found", zap.String("track", tr.Name), zap.String("clip", clip.Name))
			a.targets = append(a.targets, nil)
			continue
		}
		key := bindingKey{node: id, prop: tr.Property}
		b, ok := m.bindings[key]
		if !ok {
			b = &binding{node: m.graph.Node(id), prop: tr.Property}
			m.bindings[key] = b
		}
		a.targets = append(a.targets, b)
	}
	m.actions[clip] = a
	return a
}

// StopAllAction stops every running action.
func (m *Mixer) StopAllAction() {
	for len(m.active) > 0 {
		m.active[len(m.active)-1].Stop()
	}
}

// ActiveActions returns the actions currently playing.
func (m *Mixer) ActiveActions() []*Action {
	return m.active
}

// Update advances every running action by dt seconds and writes the sampled
// values into the bound nodes.
func (m *Mixer) Update(dt float32) {
	for _, a := range m.active {
		a.advance(dt)
		a.apply()
	}
}

func (m *Mixer) activate(a *Action) {
	for _, b := range a.targets {
		if b == nil {
			continue
		}
		if b.useCount == 0 {
			b.original = b.read()
		}
		b.useCount++
	}
	m.active = append(m.active, a)
}

func (m *Mixer) deactivate(a *Action) {
	for i, act := range m.active {
		if act == a {
			m.active = append(m.active[:i], m.active[i+1:]...)
			break
		}
	}
	for _, b := range a.targets {
		if b == nil {
			continue
		}
		b.useCount--
		if b.useCount == 0 {
			b.write(b.original)
		}
	}
}

// Action is the playback state of one clip on one mixer.
type Action struct {
	mixer   *Mixer
	clip    *Clip
	targets []*binding // parallel to clip.Tracks; nil when unbound
	scratch []float32

	Time      float32
	TimeScale float32
	running   bool
}

// Clip returns the clip this action plays.
func (a *Action) Clip() *Clip {
	return a.clip
}

// Reset rewinds the action to the start.
func (a *Action) Reset() *Action {
	a.Time = 0
	a.TimeScale = 1
	return a
}

// Play starts the action if it is not already running.
func (a *Action) Play() *Action {
	if !a.running {
		a.running = true
		if a.TimeScale == 0 {
			a.TimeScale = 1
		}
		a.mixer.activate(a)
	}
	return a
}

// Stop halts the action, rewinds it and releases its bindings.
func (a *Action) Stop() *Action {
	if a.running {
		a.running = false
		a.mixer.deactivate(a)
	}
	a.Time = 0
	return a
}

// IsRunning reports whether the action is playing.
func (a *Action) IsRunning() bool {
	return a.running
}

// advance moves time forward, looping over the clip duration.
func (a *Action) advance(dt float32) {
	a.Time += dt * a.TimeScale
	d := a.clip.Duration
	if d <= 0 {
		a.Time = 0
		return
	}
	if a.Time >= d || a.Time < 0 {
		a.Time = float32(gomath.Mod(float64(a.Time), float64(d)))
		if a.Time < 0 {
			a.Time += d
		}
	}
}

func (a *Action) apply() {
	for i, tr := range a.clip.Tracks {
		b := a.targets[i]
		if b == nil {
			continue
		}
		a.scratch = tr.Sample(a.Time, a.scratch)
		b.write(a.scratch)
	}
}
