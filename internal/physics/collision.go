package physics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	// GroundNormalThreshold is the minimum normal Y for a contact to count as floor (about 45.6 degrees).
	GroundNormalThreshold = 0.7

	// SkinWidth is the gap left between a resolved sphere and the surface it was pushed out of.
	SkinWidth = 0.1

	// VoidThreshold is the world elevation at or below which a body has fallen out of the level.
	VoidThreshold = -30.0
)

// BodyState is the part of a moving body the resolvers read and produce.
// Resolvers never mutate their input; the caller commits the returned state.
type BodyState struct {
	Position rl.Vector3
	Velocity rl.Vector3
	Grounded bool
}

// ResolveOBBAABB resolves a character box against a static platform.
// On contact the body is pushed fully out along the collision normal, the velocity
// component driving into the surface is removed, and a floor contact zeroes the
// vertical velocity and marks the body grounded. Without contact the body is not grounded.
func ResolveOBBAABB(state BodyState, o OBB, platformMin, platformMax rl.Vector3) (BodyState, CollisionResult) {
	col := CollideOBBAABB(o, platformMin, platformMax)
	return applyBoxContact(state, col), col
}

// ResolveOBB is ResolveOBBAABB for a rotated static box
func ResolveOBB(state BodyState, o, static OBB) (BodyState, CollisionResult) {
	col := CollideOBB(o, static)
	return applyBoxContact(state, col), col
}

func applyBoxContact(state BodyState, col CollisionResult) BodyState {
	state.Grounded = false
	if !col.Colliding {
		return state
	}

	if col.Penetration > 0 {
		state.Position = rl.Vector3Add(state.Position, rl.Vector3Scale(col.Normal, col.Penetration))
	}

	state.Velocity = removeInward(state.Velocity, col.Normal)

	// Resting on a roughly horizontal surface: kill vertical motion so the integrator doesn't jitter
	if col.Normal.Y > GroundNormalThreshold {
		state.Velocity.Y = 0
		state.Grounded = true
	}
	return state
}

// ResolveSphereOBB resolves a sphere (projectile, camera) against a static box.
// The sphere is moved to the contact point plus radius and SkinWidth along the normal
// and loses its inward velocity (restitution 0). Grounded is passed through unchanged.
func ResolveSphereOBB(state BodyState, radius float32, o OBB, priority VerticalPriority) (BodyState, CollisionResult) {
	col := CollideSphereOBB(Sphere{Center: state.Position, Radius: radius, Velocity: state.Velocity}, o, priority)
	if !col.Colliding {
		return state, col
	}

	if col.Penetration > 0 {
		state.Position = rl.Vector3Add(col.ContactPoint, rl.Vector3Scale(col.Normal, radius+SkinWidth))
	}
	state.Velocity = removeInward(state.Velocity, col.Normal)
	return state, col
}

// IsBelowVoidThreshold reports whether a body whose lowest point is minY has fallen out of the level.
func IsBelowVoidThreshold(minY float32) bool {
	return minY <= VoidThreshold
}
