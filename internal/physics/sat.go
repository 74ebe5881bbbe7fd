package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// AxisEpsilon is the length below which a candidate SAT axis is skipped.
// Cross products of (nearly) parallel edges land here and carry no separating information.
// Tuned for float32; revisit if the vector type changes precision.
const AxisEpsilon = 1e-6

// SeparationInfo is the outcome of projecting two boxes onto one candidate axis
type SeparationInfo struct {
	Separated   bool    // a separating plane exists perpendicular to the axis
	Penetration float32 // overlap along the axis, zero when separated
	Positive    bool    // B's center lies on the positive side of A's center along the axis
}

// CollisionResult is the outcome of a pairwise test.
// Normal is the direction that pushes body A out of body B; it is the zero vector
// and Penetration is zero when Colliding is false.
type CollisionResult struct {
	Colliding    bool
	Normal       rl.Vector3
	Penetration  float32
	ContactPoint rl.Vector3 // only set by sphere tests
}

// ProjectRadius returns the radius of the box's projection onto a normalized axis
func ProjectRadius(o OBB, axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// testSeparatingAxis projects the center delta (B - A) and both boxes onto a normalized axis
func testSeparatingAxis(centerDelta, axis rl.Vector3, a, b OBB) SeparationInfo {
	signed := rl.Vector3DotProduct(centerDelta, axis)
	distance := math32.Abs(signed)
	totalRadius := ProjectRadius(a, axis) + ProjectRadius(b, axis)

	info := SeparationInfo{Positive: signed > 0}
	if distance > totalRadius {
		info.Separated = true
	} else {
		info.Penetration = totalRadius - distance
	}
	return info
}

// candidateAxes lists the 15 SAT axes: 3 face normals from A, 3 from B,
// and the 9 cross products of A's edges with B's edges (unnormalized)
func candidateAxes(a, b OBB) [15]rl.Vector3 {
	var axes [15]rl.Vector3
	copy(axes[0:3], a.Axes[:])
	copy(axes[3:6], b.Axes[:])
	n := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[n] = rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			n++
		}
	}
	return axes
}

// CollideOBB runs the SAT between two boxes and reports the axis of least penetration.
// The normal is oriented so that moving A by Normal*Penetration separates it from B.
// Ties keep the first tested axis (A's faces, then B's faces, then edge crosses).
func CollideOBB(a, b OBB) CollisionResult {
	t := rl.Vector3Subtract(b.Center, a.Center)

	best := CollisionResult{Penetration: math32.MaxFloat32}
	tested := false

	for _, axis := range candidateAxes(a, b) {
		length := rl.Vector3Length(axis)
		if length < AxisEpsilon {
			continue
		}
		axis = rl.Vector3Scale(axis, 1/length)

		info := testSeparatingAxis(t, axis, a, b)
		if info.Separated {
			return CollisionResult{}
		}
		tested = true

		if info.Penetration < best.Penetration {
			best.Penetration = info.Penetration
			// Push in the direction away from B
			if info.Positive {
				best.Normal = rl.Vector3Negate(axis)
			} else {
				best.Normal = axis
			}
		}
	}

	// Degenerate boxes (all axes collapsed) never report contact
	if !tested {
		return CollisionResult{}
	}

	best.Colliding = true
	return best
}

// CollideOBBAABB treats the AABB as an identity-oriented OBB and runs CollideOBB
func CollideOBBAABB(o OBB, min, max rl.Vector3) CollisionResult {
	return CollideOBB(o, NewOBBFromAABB(min, max))
}
