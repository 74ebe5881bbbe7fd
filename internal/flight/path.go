package flight

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MinPoints is the fewest control points a closed path can be built from
const MinPoints = 3

var ErrTooFewPoints = errors.New("flight path needs at least 3 points")

// Segment is one cubic Bézier piece of a path
type Segment struct {
	P1, P2, P3, P4 rl.Vector3
}

// Point evaluates the curve at t in [0, 1] (de Casteljau)
func (s Segment) Point(t float32) rl.Vector3 {
	a := rl.Vector3Lerp(s.P1, s.P2, t)
	b := rl.Vector3Lerp(s.P2, s.P3, t)
	c := rl.Vector3Lerp(s.P3, s.P4, t)
	ab := rl.Vector3Lerp(a, b, t)
	bc := rl.Vector3Lerp(b, c, t)
	return rl.Vector3Lerp(ab, bc, t)
}

// Derivative returns the (unnormalized) tangent at t
func (s Segment) Derivative(t float32) rl.Vector3 {
	u := 1 - t
	d := rl.Vector3Scale(rl.Vector3Subtract(s.P2, s.P1), 3*u*u)
	d = rl.Vector3Add(d, rl.Vector3Scale(rl.Vector3Subtract(s.P3, s.P2), 6*u*t))
	return rl.Vector3Add(d, rl.Vector3Scale(rl.Vector3Subtract(s.P4, s.P3), 3*t*t))
}

// Path is a closed loop of Bézier segments. One unit of time covers one segment.
type Path []Segment

// NewClosedPath runs a uniform Catmull-Rom spline through the points and
// returns it as Bézier segments, closing the loop back to the first point.
func NewClosedPath(points []rl.Vector3) (Path, error) {
	n := len(points)
	if n < MinPoints {
		return nil, ErrTooFewPoints
	}

	at := func(i int) rl.Vector3 {
		return points[((i%n)+n)%n]
	}

	path := make(Path, n)
	for i := 0; i < n; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		path[i] = Segment{
			P1: p1,
			P2: rl.Vector3Add(p1, rl.Vector3Scale(rl.Vector3Subtract(p2, p0), 1.0/6.0)),
			P3: rl.Vector3Subtract(p2, rl.Vector3Scale(rl.Vector3Subtract(p3, p1), 1.0/6.0)),
			P4: p2,
		}
	}
	return path, nil
}

// locate maps a time to a segment index and the parameter inside it, wrapping around the loop
func (p Path) locate(time float32) (int, float32) {
	n := float32(len(p))
	time = math32.Mod(time, n)
	if time < 0 {
		time += n
	}
	i := int(math32.Floor(time))
	if i >= len(p) {
		i = len(p) - 1
	}
	return i, time - float32(i)
}

// Sample returns the position and unit tangent at the given time
func (p Path) Sample(time float32) (rl.Vector3, rl.Vector3) {
	if len(p) == 0 {
		return rl.Vector3{}, rl.Vector3{Z: 1}
	}
	i, t := p.locate(time)
	return p[i].Point(t), rl.Vector3Normalize(p[i].Derivative(t))
}

// Transform returns the model matrix of a body flying along the path, nose along
// local +Z: pitch first, then yaw, then translation to the sampled position.
func (p Path) Transform(time float32) rl.Matrix {
	if len(p) == 0 {
		return rl.MatrixIdentity()
	}
	pos, tangent := p.Sample(time)

	yaw := math32.Atan2(tangent.X, tangent.Z)
	pitch := -math32.Asin(clamp(tangent.Y, -1, 1))

	rot := rl.MatrixMultiply(rl.MatrixRotateX(pitch), rl.MatrixRotateY(yaw))
	return rl.MatrixMultiply(rot, rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
}

// Length approximates the arc length by summing chords
func (p Path) Length(stepsPerSegment int) float32 {
	if stepsPerSegment < 1 {
		stepsPerSegment = 1
	}
	var total float32
	for _, s := range p {
		prev := s.P1
		for k := 1; k <= stepsPerSegment; k++ {
			next := s.Point(float32(k) / float32(stepsPerSegment))
			total += rl.Vector3Distance(prev, next)
			prev = next
		}
	}
	return total
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
