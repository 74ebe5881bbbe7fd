package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	floorMin = rl.Vector3{X: -5, Y: -1, Z: -5}
	floorMax = rl.Vector3{X: 5, Y: 0, Z: 5}
)

func TestResolveOBBAABBLandsOnFloor(t *testing.T) {
	// Character box sunk 0.05 into the floor
	box := NewOBBFromAABB(rl.Vector3{X: -0.5, Y: -0.05, Z: -0.5}, rl.Vector3{X: 0.5, Y: 1.95, Z: 0.5})
	state := BodyState{
		Position: rl.Vector3{Y: -0.05},
		Velocity: rl.Vector3{X: 1, Y: -5},
	}

	next, col := ResolveOBBAABB(state, box, floorMin, floorMax)
	require.True(t, col.Colliding)
	assertVector(t, rl.Vector3{Y: 1}, col.Normal)
	assert.InDelta(t, 0.05, col.Penetration, tolerance)

	assert.True(t, next.Grounded)
	assert.Equal(t, float32(0), next.Velocity.Y)
	assert.InDelta(t, 1, next.Velocity.X, tolerance)
	assert.InDelta(t, 0, next.Position.Y, tolerance)

	// The input snapshot is untouched
	assert.False(t, state.Grounded)
	assert.Equal(t, float32(-5), state.Velocity.Y)
}

func TestResolveOBBAABBWallKeepsTangentialVelocity(t *testing.T) {
	box := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	wallMin := rl.Vector3{X: 0.4, Y: -5, Z: -5}
	wallMax := rl.Vector3{X: 1.4, Y: 5, Z: 5}
	state := BodyState{Velocity: rl.Vector3{X: 3, Y: -2, Z: 1}, Grounded: true}

	next, col := ResolveOBBAABB(state, box, wallMin, wallMax)
	require.True(t, col.Colliding)
	assertVector(t, rl.Vector3{X: -1}, col.Normal)
	assert.InDelta(t, 0.1, col.Penetration, tolerance)

	assert.InDelta(t, -0.1, next.Position.X, tolerance)
	assertVector(t, rl.Vector3{X: 0, Y: -2, Z: 1}, next.Velocity)
	assert.False(t, next.Grounded, "a wall contact is not a floor")
}

func TestResolveOBBAABBFloorContactZeroesVerticalVelocity(t *testing.T) {
	box := NewOBBFromAABB(rl.Vector3{X: -0.5, Y: -0.05, Z: -0.5}, rl.Vector3{X: 0.5, Y: 1.95, Z: 0.5})
	state := BodyState{Velocity: rl.Vector3{X: -2, Y: 4, Z: 1}}

	next, col := ResolveOBBAABB(state, box, floorMin, floorMax)
	require.True(t, col.Colliding)
	// Outward motion is not inward, but a floor contact still clears Y
	assert.True(t, next.Grounded)
	assertVector(t, rl.Vector3{X: -2, Z: 1}, next.Velocity)
}

func TestResolveOBBAABBNoContactClearsGrounded(t *testing.T) {
	box := NewAABBasOBB(rl.Vector3{Y: 10}, rl.Vector3{X: 1, Y: 1, Z: 1})
	state := BodyState{Position: rl.Vector3{Y: 10}, Velocity: rl.Vector3{Y: -1}, Grounded: true}

	next, col := ResolveOBBAABB(state, box, floorMin, floorMax)
	assert.False(t, col.Colliding)
	assert.False(t, next.Grounded)
	assert.Equal(t, state.Position, next.Position)
	assert.Equal(t, state.Velocity, next.Velocity)
}

func TestResolveOBBAgainstRotatedRamp(t *testing.T) {
	// 30 degree ramp: its top face normal has Y = cos(30) > GroundNormalThreshold
	ramp := NewOBB(rl.Vector3{}, rl.Vector3{X: 10, Y: 1, Z: 10}, rl.Vector3{Z: 30})
	box := NewAABBasOBB(rl.Vector3{Y: 0.9}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	state := BodyState{Position: rl.Vector3{Y: 0.9}, Velocity: rl.Vector3{Y: -3}}

	next, col := ResolveOBB(state, box, ramp)
	require.True(t, col.Colliding)
	assert.Greater(t, col.Normal.Y, float32(GroundNormalThreshold))
	assert.True(t, next.Grounded)
	assert.Equal(t, float32(0), next.Velocity.Y)
}

func TestResolveSphereOBB(t *testing.T) {
	state := BodyState{Position: rl.Vector3{Y: 1.5}, Velocity: rl.Vector3{X: 2, Y: -3}, Grounded: true}

	next, col := ResolveSphereOBB(state, 1, unitCube(), VerticalFree)
	require.True(t, col.Colliding)
	// Contact at the top face plus radius and skin
	assertVector(t, rl.Vector3{Y: 1 + 1 + SkinWidth}, next.Position)
	assertVector(t, rl.Vector3{X: 2}, next.Velocity)
	assert.True(t, next.Grounded, "sphere resolution passes Grounded through")
}

func TestResolveSphereOBBEngulfed(t *testing.T) {
	state := BodyState{Velocity: rl.Vector3{Y: 5}}

	next, col := ResolveSphereOBB(state, 0.5, unitCube(), VerticalUp)
	require.True(t, col.Colliding)
	assertVector(t, rl.Vector3{Y: 1 + 0.5 + SkinWidth}, next.Position)
	assertVector(t, rl.Vector3{Y: 5}, next.Velocity, "moving out of the box keeps its velocity")
}

func TestResolveSphereOBBNoContact(t *testing.T) {
	state := BodyState{Position: rl.Vector3{Y: 5}, Velocity: rl.Vector3{Y: -1}}

	next, col := ResolveSphereOBB(state, 1, unitCube(), VerticalFree)
	assert.False(t, col.Colliding)
	assert.Equal(t, state, next)
}

func TestIsBelowVoidThreshold(t *testing.T) {
	assert.True(t, IsBelowVoidThreshold(-30))
	assert.True(t, IsBelowVoidThreshold(-31))
	assert.False(t, IsBelowVoidThreshold(-29.999))
	assert.False(t, IsBelowVoidThreshold(0))
}
