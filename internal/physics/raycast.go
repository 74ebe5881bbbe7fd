package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayEpsilon is the slab denominator below which the ray is treated as parallel to the slab.
const RayEpsilon = 1e-6

// NoHit is the ray parameter reported alongside ok=false.
const NoHit float32 = -1

// HitKind says what sort of volume a ray hit
type HitKind int

const (
	HitPlatform HitKind = iota
	HitObstacle
	HitTarget
	HitProjectile
)

func (k HitKind) String() string {
	switch k {
	case HitPlatform:
		return "platform"
	case HitObstacle:
		return "obstacle"
	case HitTarget:
		return "target"
	case HitProjectile:
		return "projectile"
	}
	return "unknown"
}

type RaycastHit struct {
	Kind     HitKind
	Index    int
	Name     string
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// IntersectRayOBB returns the ray parameter of the first intersection between a ray and a box,
// using the slab test over the box's three local axes.
// The interval starts at [0, +Inf), so an origin inside the box hits at 0. A box entirely
// behind the origin, or a ray that misses, yields (NoHit, false).
func IntersectRayOBB(origin, direction, center rl.Vector3, axes [3]rl.Vector3, halfSize rl.Vector3) (float32, bool) {
	tMin := float32(0)
	tMax := math32.Inf(1)

	p := rl.Vector3Subtract(center, origin)

	for i, axis := range axes {
		e := rl.Vector3DotProduct(axis, p)
		f := rl.Vector3DotProduct(axis, direction)
		h := component(halfSize, i)

		if math32.Abs(f) > RayEpsilon {
			t1 := (e + h) / f
			t2 := (e - h) / f
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tMin {
				tMin = t1
			}
			if t2 < tMax {
				tMax = t2
			}
			if tMin > tMax {
				return NoHit, false
			}
		} else if -e-h > 0 || -e+h < 0 {
			// Parallel to this slab and outside it
			return NoHit, false
		}
	}

	if tMax < 0 {
		return NoHit, false
	}
	if tMin < 0 {
		return tMax, true
	}
	return tMin, true
}

// Raycast intersects a raylib ray with the box
func (o OBB) Raycast(ray rl.Ray) (float32, bool) {
	return IntersectRayOBB(ray.Position, ray.Direction, o.Center, o.Axes, o.HalfSize)
}

// raycastOBB builds a hit record for a ray against a box
func raycastOBB(origin, direction rl.Vector3, o OBB, maxDistance float32) (RaycastHit, bool) {
	t, ok := IntersectRayOBB(origin, direction, o.Center, o.Axes, o.HalfSize)
	if !ok || t > maxDistance {
		return RaycastHit{}, false
	}
	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return RaycastHit{Point: point, Normal: o.faceNormal(o.toLocal(point)), Distance: t}, true
}

func raycastSphere(origin, direction rl.Vector3, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return RaycastHit{}, false
	}

	t := (-b - math32.Sqrt(discriminant)) / (2 * a)
	if t < 0 {
		t = (-b + math32.Sqrt(discriminant)) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
