// Package animation samples keyframe clips and applies them to scene nodes.
package animation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/gltf-viewer/pkg/math"
)

// ErrInvalidTrack is returned when keyframe data is inconsistent.
var ErrInvalidTrack = errors.New("invalid animation track")

// Interpolation selects how values between keyframes are computed.
type Interpolation uint8

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	InterpolationCubicSpline
)

// Property is the node attribute a track drives.
type Property uint8

const (
	PropertyPosition Property = iota
	PropertyQuaternion
	PropertyScale
	PropertyMorphWeights
)

func (p Property) String() string {
	switch p {
	case PropertyPosition:
		return "position"
	case PropertyQuaternion:
		return "quaternion"
	case PropertyScale:
		return "scale"
	case PropertyMorphWeights:
		return "morphTargetInfluences"
	}
	return "unknown"
}

// Track is a keyframe sequence for one property of one named node.
type Track struct {
	Name          string // "<node>.<property>"
	Node          string
	Property      Property
	Times         []float32
	Values        []float32
	Interpolation Interpolation

	size int // components per keyframe value
}

// NewTrack validates keyframe data and returns a track named "<node>.<property>".
func NewTrack(node string, prop Property, times, values []float32, interp Interpolation) (*Track, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: %s.%s has no keyframes", ErrInvalidTrack, node, prop)
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, fmt.Errorf("%w: %s.%s keyframe times not ascending at %d", ErrInvalidTrack, node, prop, i)
		}
	}

	perKey := len(values) / len(times)
	if interp == InterpolationCubicSpline {
		perKey /= 3
	}
	var size int
	switch prop {
	case PropertyPosition, PropertyScale:
		size = 3
	case PropertyQuaternion:
		size = 4
	case PropertyMorphWeights:
		size = perKey
	}
	stride := size
	if interp == InterpolationCubicSpline {
		stride *= 3
	}
	if size == 0 || len(values) != len(times)*stride {
		return nil, fmt.Errorf("%w: %s.%s has %d values for %d keyframes", ErrInvalidTrack, node, prop, len(values), len(times))
	}

	return &Track{
		Name:          node + "." + prop.String(),
		Node:          node,
		Property:      prop,
		Times:         times,
		Values:        values,
		Interpolation: interp,
		size:          size,
	}, nil
}

// ValueSize returns the number of components per sampled value.
func (t *Track) ValueSize() int {
	return t.size
}

// Duration returns the time of the last keyframe.
func (t *Track) Duration() float32 {
	if len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}

// value returns keyframe i's value (the middle element for cubic splines).
func (t *Track) value(i int) []float32 {
	if t.Interpolation == InterpolationCubicSpline {
		base := i*t.size*3 + t.size
		return t.Values[base : base+t.size]
	}
	return t.Values[i*t.size : (i+1)*t.size]
}

// Sample evaluates the track at time and writes the result into out, which is
// grown as needed and returned.
func (t *Track) Sample(time float32, out []float32) []float32 {
	if cap(out) < t.size {
		out = make([]float32, t.size)
	}
	out = out[:t.size]

	last := len(t.Times) - 1
	if time <= t.Times[0] || last == 0 {
		copy(out, t.value(0))
		return out
	}
	if time >= t.Times[last] {
		copy(out, t.value(last))
		return out
	}

	// First keyframe strictly after time.
	next := sort.Search(len(t.Times), func(i int) bool { return t.Times[i] > time })
	prev := next - 1
	t0, t1 := t.Times[prev], t.Times[next]
	span := t1 - t0
	alpha := float32(0)
	if span > 0 {
		alpha = (time - t0) / span
	}

	switch t.Interpolation {
	case InterpolationStep:
		copy(out, t.value(prev))
	case InterpolationCubicSpline:
		t.hermite(prev, next, alpha, span, out)
		if t.Property == PropertyQuaternion {
			q := math.Quat{X: out[0], Y: out[1], Z: out[2], W: out[3]}.Normalize()
			out[0], out[1], out[2], out[3] = q.X, q.Y, q.Z, q.W
		}
	default:
		a, b := t.value(prev), t.value(next)
		if t.Property == PropertyQuaternion {
			q := math.Quat{X: a[0], Y: a[1], Z: a[2], W: a[3]}.Slerp(math.Quat{X: b[0], Y: b[1], Z: b[2], W: b[3]}, alpha)
			out[0], out[1], out[2], out[3] = q.X, q.Y, q.Z, q.W
		} else {
			for i := range out {
				out[i] = a[i] + (b[i]-a[i])*alpha
			}
		}
	}
	return out
}

// hermite evaluates a glTF cubic spline segment. Each keyframe stores
// in-tangent, value and out-tangent in that order.
func (t *Track) hermite(prev, next int, s, span float32, out []float32) {
	n := t.size
	p0 := t.Values[prev*n*3+n : prev*n*3+2*n]
	m0 := t.Values[prev*n*3+2*n : prev*n*3+3*n]
	m1 := t.Values[next*n*3 : next*n*3+n]
	p1 := t.Values[next*n*3+n : next*n*3+2*n]

	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	for i := 0; i < n; i++ {
		out[i] = h00*p0[i] + h10*span*m0[i] + h01*p1[i] + h11*span*m1[i]
	}
}
