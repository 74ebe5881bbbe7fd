package physics

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ContactEpsilon is the sphere-to-box distance below which the sphere center is treated
// as engulfed by the box and the closest-point normal is undefined.
const ContactEpsilon = 1e-6

type Sphere struct {
	Center   rl.Vector3
	Radius   float32
	Velocity rl.Vector3 // carried for resolution, not used by the intersection test
}

// VerticalPriority forces how an engulfed sphere leaves a box when the vertical
// axis is the way out: on top, underneath, or whichever side is geometrically closer.
type VerticalPriority int8

const (
	VerticalDown VerticalPriority = -1
	VerticalFree VerticalPriority = 0
	VerticalUp   VerticalPriority = 1
)

func (p VerticalPriority) String() string {
	switch p {
	case VerticalUp:
		return "up"
	case VerticalDown:
		return "down"
	default:
		return "free"
	}
}

// ParseVerticalPriority accepts "up", "down" or "free" (empty means free)
func ParseVerticalPriority(s string) (VerticalPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "+1", "1":
		return VerticalUp, nil
	case "down", "-1":
		return VerticalDown, nil
	case "free", "", "0":
		return VerticalFree, nil
	}
	return VerticalFree, fmt.Errorf("unknown vertical priority %q", s)
}

// CollideSphereOBB tests a sphere against a box with the closest-point method.
// When the sphere center sits on or inside the box there is no unique outward
// direction, so the face with the least clearance is used instead, with priority
// deciding the vertical case.
func CollideSphereOBB(s Sphere, o OBB, priority VerticalPriority) CollisionResult {
	local := o.toLocal(s.Center)
	closest := o.clampLocal(local)
	closestWorld := o.toWorld(closest)

	diff := rl.Vector3Subtract(s.Center, closestWorld)
	distSq := rl.Vector3DotProduct(diff, diff)
	if distSq >= s.Radius*s.Radius {
		return CollisionResult{}
	}

	dist := math32.Sqrt(distSq)
	result := CollisionResult{
		Colliding:   true,
		Penetration: s.Radius - dist,
	}

	if dist > ContactEpsilon {
		result.Normal = rl.Vector3Scale(diff, 1/dist)
		result.ContactPoint = closestWorld
		return result
	}

	axis, sign := engulfedAxis(local, o.HalfSize, priority)
	result.Normal = rl.Vector3Scale(o.Axes[axis], sign)
	result.ContactPoint = o.toWorld(withComponent(local, axis, sign*component(o.HalfSize, axis)))
	return result
}

// engulfedAxis picks the local axis with the smallest clearance (half - |local|)
// and the side of the box to leave through.
func engulfedAxis(local, half rl.Vector3, priority VerticalPriority) (int, float32) {
	dx := half.X - math32.Abs(local.X)
	dy := half.Y - math32.Abs(local.Y)
	dz := half.Z - math32.Abs(local.Z)

	if priority != VerticalFree && dy <= dx+ContactEpsilon && dy <= dz+ContactEpsilon {
		return 1, float32(priority)
	}

	switch {
	case dx < dy && dx < dz:
		return 0, signOf(local.X)
	case dy < dz:
		return 1, signOf(local.Y)
	default:
		return 2, signOf(local.Z)
	}
}
