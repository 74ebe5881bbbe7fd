package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3Scale(size, 0.5)
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) HalfSize() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Subtract(a.Max, a.Min), 0.5)
}

// OBB returns the box as an identity-oriented OBB
func (a AABB) OBB() OBB {
	return NewOBBFromAABB(a.Min, a.Max)
}

// BoundingBox converts to raylib's box type for drawing
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.NewBoundingBox(a.Min, a.Max)
}

// Intersects reports per-axis closed-interval overlap on all three axes.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// IntersectsPlane reports whether the box straddles or touches the plane n·p = d.
// The box half extent is projected onto the normal to get a radius r, and the box
// overlaps when the signed center distance s satisfies |s| <= r.
func (a AABB) IntersectsPlane(normal rl.Vector3, d float32) bool {
	return math32.Abs(a.PlaneDistance(normal, d)) <= a.planeRadius(normal)
}

// PlaneDistance returns the signed distance of the box center to the plane n·p = d
func (a AABB) PlaneDistance(normal rl.Vector3, d float32) float32 {
	return rl.Vector3DotProduct(normal, a.Center()) - d
}

func (a AABB) planeRadius(normal rl.Vector3) float32 {
	e := a.HalfSize()
	n := absVector(normal)
	return e.X*n.X + e.Y*n.Y + e.Z*n.Z
}

// Translate returns the box moved by offset
func (a AABB) Translate(offset rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Add(a.Min, offset), Max: rl.Vector3Add(a.Max, offset)}
}
