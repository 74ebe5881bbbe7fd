package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (columns of the orientation matrix)
}

var identityAxes = [3]rl.Vector3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

// NewOBB creates an OBB from center, size, and euler rotation (degrees)
func NewOBB(center, size, rotation rl.Vector3) OBB {
	// Same rotation order as the level files: X, then Y, then Z
	rotX := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	return OBB{
		Center:   center,
		HalfSize: rl.Vector3Scale(size, 0.5),
		Axes:     matrixAxes(rotMatrix),
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation) from a center and full size
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3Scale(size, 0.5),
		Axes:     identityAxes,
	}
}

// NewOBBFromAABB creates an identity-oriented OBB spanning min..max
func NewOBBFromAABB(min, max rl.Vector3) OBB {
	return OBB{
		Center:   rl.Vector3Scale(rl.Vector3Add(min, max), 0.5),
		HalfSize: rl.Vector3Scale(rl.Vector3Subtract(max, min), 0.5),
		Axes:     identityAxes,
	}
}

// NewOBBFromBox creates an OBB from center, size, rotation, and scale
func NewOBBFromBox(center, size, rotation, scale rl.Vector3) OBB {
	return NewOBB(center, rl.Vector3Multiply(size, scale), rotation)
}

// Update re-derives the box from a model transform.
// The axes are the normalized first three columns of transform, the center is localCenter
// carried through transform, and the half sizes are localHalfSize scaled by the column lengths.
// Nothing is accumulated from the previous state, so orientation and size cannot drift.
func (o *OBB) Update(transform rl.Matrix, localCenter, localHalfSize rl.Vector3) {
	columns := matrixColumns(transform)

	var scale [3]float32
	for i, col := range columns {
		scale[i] = rl.Vector3Length(col)
		o.Axes[i] = rl.Vector3Normalize(col)
	}

	o.Center = rl.Vector3Transform(localCenter, transform)
	o.HalfSize = rl.Vector3{
		X: localHalfSize.X * scale[0],
		Y: localHalfSize.Y * scale[1],
		Z: localHalfSize.Z * scale[2],
	}
}

// matrixColumns returns the unnormalized linear columns of a transform
func matrixColumns(m rl.Matrix) [3]rl.Vector3 {
	return [3]rl.Vector3{
		{X: m.M0, Y: m.M1, Z: m.M2},
		{X: m.M4, Y: m.M5, Z: m.M6},
		{X: m.M8, Y: m.M9, Z: m.M10},
	}
}

func matrixAxes(m rl.Matrix) [3]rl.Vector3 {
	cols := matrixColumns(m)
	for i := range cols {
		cols[i] = rl.Vector3Normalize(cols[i])
	}
	return cols
}

// toLocal expresses a world point in the box frame.
// The orientation is orthonormal, so its transpose is its inverse.
func (o OBB) toLocal(point rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(point, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// rotate maps a local direction to world space without translating it
func (o OBB) rotate(local rl.Vector3) rl.Vector3 {
	result := rl.Vector3Scale(o.Axes[0], local.X)
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], local.Y))
	return rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], local.Z))
}

// toWorld maps a local point back to world space
func (o OBB) toWorld(local rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(o.Center, o.rotate(local))
}

// clampLocal clamps a local point to the box extents
func (o OBB) clampLocal(local rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clampf(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	}
}

// Corners returns the 8 world-space corners, bottom face first
func (o OBB) Corners() [8]rl.Vector3 {
	var corners [8]rl.Vector3
	signs := [2]float32{-1, 1}
	i := 0
	for _, sy := range signs {
		for _, sz := range signs {
			for _, sx := range signs {
				corners[i] = o.toWorld(rl.Vector3{
					X: sx * o.HalfSize.X,
					Y: sy * o.HalfSize.Y,
					Z: sz * o.HalfSize.Z,
				})
				i++
			}
		}
	}
	return corners
}

// MinY returns the lowest world-space elevation reached by the box
func (o OBB) MinY() float32 {
	return o.Center.Y - ProjectRadius(o, rl.Vector3{Y: 1})
}

// Bounds returns the world-space AABB enclosing the box
func (o OBB) Bounds() AABB {
	extent := rl.Vector3{
		X: ProjectRadius(o, rl.Vector3{X: 1}),
		Y: ProjectRadius(o, rl.Vector3{Y: 1}),
		Z: ProjectRadius(o, rl.Vector3{Z: 1}),
	}
	return AABB{
		Min: rl.Vector3Subtract(o.Center, extent),
		Max: rl.Vector3Add(o.Center, extent),
	}
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem.
// It scans the same 15 axes as CollideOBB but stops at the first separating one
// and does not track penetration.
func (o OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, o.Center)
	for _, axis := range candidateAxes(o, b) {
		length := rl.Vector3Length(axis)
		if length < AxisEpsilon {
			continue
		}
		if testSeparatingAxis(t, rl.Vector3Scale(axis, 1/length), o, b).Separated {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	local := o.toLocal(center)
	d := rl.Vector3Subtract(local, o.clampLocal(local))
	return rl.Vector3DotProduct(d, d) < radius*radius
}

// ClosestPointOnOBB returns the point of the box (surface or interior) closest to the given point
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	return o.toWorld(o.clampLocal(o.toLocal(point)))
}

// faceNormal returns the world normal of the face nearest to a local point on the box
func (o OBB) faceNormal(local rl.Vector3) rl.Vector3 {
	best := 0
	bestRatio := float32(-1)
	for i := 0; i < 3; i++ {
		half := component(o.HalfSize, i)
		if half <= 0 {
			continue
		}
		ratio := math32.Abs(component(local, i)) / half
		if ratio > bestRatio {
			bestRatio = ratio
			best = i
		}
	}
	return rl.Vector3Scale(o.Axes[best], signOf(component(local, best)))
}
