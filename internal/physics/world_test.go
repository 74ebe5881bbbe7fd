package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStep = float32(1.0 / 60.0)

func newTestWorld() *World {
	w := NewWorld()
	w.AddPlatform("floor", rl.Vector3{X: -10, Y: -1, Z: -10}, rl.Vector3{X: 10, Y: 0, Z: 10})
	w.Character = NewCharacter(rl.Vector3{Y: 2}, rl.Vector3{X: 1, Y: 2, Z: 1})
	return w
}

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(testStep)
	}
}

func TestNewCharacterBoxSitsOnOrigin(t *testing.T) {
	c := NewCharacter(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.Vector3{X: 1, Y: 2, Z: 1})

	assertVector(t, rl.Vector3{X: 1, Y: 3, Z: 3}, c.OBB.Center)
	assertVector(t, rl.Vector3{X: 0.5, Y: 1, Z: 0.5}, c.OBB.HalfSize)
	assert.InDelta(t, 2, c.OBB.MinY(), tolerance)
}

func TestWorldCharacterLandsOnPlatform(t *testing.T) {
	w := newTestWorld()

	stepN(w, 120)

	c := w.Character
	assert.True(t, c.State.Grounded)
	assert.Equal(t, float32(0), c.State.Velocity.Y)
	assert.InDelta(t, 0, c.State.Position.Y, 0.01)
	assertVector(t, rl.Vector3{Y: 1}, w.LastContact.Normal)
}

func TestWorldCharacterJumpsOnlyWhenGrounded(t *testing.T) {
	w := newTestWorld()

	// Airborne at spawn: the request is ignored
	w.Character.SetIntent(rl.Vector3{}, true)
	w.Step(testStep)
	assert.Less(t, w.Character.State.Velocity.Y, float32(0))

	stepN(w, 120)
	require.True(t, w.Character.State.Grounded)

	w.Character.SetIntent(rl.Vector3{}, true)
	w.Step(testStep)
	assert.False(t, w.Character.State.Grounded)
	assert.InDelta(t, w.Character.JumpStrength+w.Gravity.Y*testStep, w.Character.State.Velocity.Y, tolerance)
}

func TestWorldCharacterMovesAndFacesDirection(t *testing.T) {
	w := newTestWorld()
	stepN(w, 120)

	start := w.Character.State.Position
	w.Character.SetIntent(rl.Vector3{X: 2}, false)
	w.Step(testStep)

	c := w.Character
	assert.InDelta(t, 90, c.Yaw, tolerance)
	assert.InDelta(t, start.X+c.MoveSpeed*testStep, c.State.Position.X, tolerance)
	assert.True(t, c.State.Grounded)
	// Turned a quarter, the box's local Z now points along world X
	assertVector(t, rl.Vector3{X: 1}, c.OBB.Axes[2])
}

func TestWorldCharacterBlockedByObstacle(t *testing.T) {
	w := newTestWorld()
	w.AddObstacle("wall", NewOBB(rl.Vector3{X: 2, Y: 1}, rl.Vector3{X: 1, Y: 4, Z: 4}, rl.Vector3{}))
	stepN(w, 120)

	for i := 0; i < 120; i++ {
		w.Character.SetIntent(rl.Vector3{X: 1}, false)
		w.Step(testStep)
	}

	// Wall face at X = 1.5, character half width 0.5
	assert.InDelta(t, 1, w.Character.State.Position.X, 0.01)
	assert.True(t, w.Character.State.Grounded, "a wall contact must not clear the floor contact")
}

func TestWorldRespawnBelowVoid(t *testing.T) {
	w := NewWorld()
	w.Character = NewCharacter(rl.Vector3{Y: 2}, rl.Vector3{X: 1, Y: 2, Z: 1})

	respawns := 0
	w.OnRespawn.AddListener(func() { respawns++ })

	stepN(w, 150)

	assert.Equal(t, 1, respawns)
	assert.Greater(t, w.Character.State.Position.Y, float32(VoidThreshold))
}

func TestWorldContactEnterExit(t *testing.T) {
	w := newTestWorld()

	var entered, exited []ContactKey
	w.OnContactEnter.AddListener(func(c Contact) { entered = append(entered, c.ContactKey) })
	w.OnContactExit.AddListener(func(c Contact) { exited = append(exited, c.ContactKey) })

	stepN(w, 120)
	require.Len(t, entered, 1)
	assert.Equal(t, ContactKey{Body: "character", Other: "floor"}, entered[0])
	assert.Empty(t, exited)
	assert.Equal(t, 1, w.ActiveContacts())

	w.Platforms = nil
	w.Step(testStep)
	require.Len(t, exited, 1)
	assert.Equal(t, entered[0], exited[0])
	assert.Equal(t, 0, w.ActiveContacts())
}

func TestWorldProjectileStopsOnPlatform(t *testing.T) {
	w := NewWorld()
	w.AddPlatform("floor", rl.Vector3{X: -5, Y: -1, Z: -5}, rl.Vector3{X: 5, Y: 0, Z: 5})

	var entered []ContactKey
	w.OnContactEnter.AddListener(func(c Contact) { entered = append(entered, c.ContactKey) })

	p := w.Fire(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 10, 0.5)
	stepN(w, 60)

	require.Len(t, w.Projectiles, 1)
	assert.True(t, p.Stuck)
	assert.Equal(t, rl.Vector3{}, p.Sphere.Velocity)
	assert.InDelta(t, 0.5+SkinWidth, p.Sphere.Center.Y, tolerance)
	assert.Equal(t, []ContactKey{{Body: "projectile-1", Other: "floor"}}, entered)
}

func TestWorldProjectileHitsTarget(t *testing.T) {
	w := NewWorld()
	target := &Target{
		Name:      "bird",
		LocalHalf: rl.Vector3{X: 1, Y: 1, Z: 1},
		Speed:     1,
		Pose:      func(float32) rl.Matrix { return rl.MatrixTranslate(0, 5, 10) },
	}
	w.AddTarget(target)
	assertVector(t, rl.Vector3{Y: 5, Z: 10}, target.OBB.Center)

	var hits []TargetHit
	w.OnTargetHit.AddListener(func(h TargetHit) { hits = append(hits, h) })

	w.Fire(rl.Vector3{Y: 5}, rl.Vector3{Z: 1}, 20, 0.25)
	stepN(w, 60)

	require.Len(t, hits, 1)
	assert.Equal(t, "bird", hits[0].Target)
	assert.Equal(t, 1, hits[0].Projectile)
	assert.InDelta(t, 9, hits[0].Point.Z, tolerance)
	assert.Equal(t, 1, target.Hits)
	assert.Empty(t, w.Projectiles, "a projectile is consumed by the target it hits")
}

func TestWorldFireFromTargetHitListener(t *testing.T) {
	w := NewWorld()
	w.AddTarget(&Target{
		Name:      "bird",
		LocalHalf: rl.Vector3{X: 1, Y: 1, Z: 1},
		Pose:      func(float32) rl.Matrix { return rl.MatrixTranslate(0, 0, 3) },
	})

	var replies []*Projectile
	w.OnTargetHit.AddListener(func(h TargetHit) {
		replies = append(replies, w.Fire(rl.Vector3{Z: -5}, rl.Vector3{Z: -1}, 1, 0.1))
	})

	w.Fire(rl.Vector3{}, rl.Vector3{Z: 1}, 60, 0.25)
	for i := 0; i < 10 && len(replies) == 0; i++ {
		w.Step(testStep)
	}

	require.Len(t, replies, 1)
	require.Len(t, w.Projectiles, 1, "the hit projectile is consumed, the reply survives")
	assert.Same(t, replies[0], w.Projectiles[0])
	assert.Equal(t, 2, w.Projectiles[0].ID)
	assertVector(t, rl.Vector3{Z: -5}, w.Projectiles[0].Sphere.Center)

	w.Step(testStep)
	require.Len(t, w.Projectiles, 1)
	assert.InDelta(t, -5-testStep, w.Projectiles[0].Sphere.Center.Z, tolerance)
}

func TestWorldProjectileExpires(t *testing.T) {
	w := NewWorld()
	w.ProjectileLifetime = 0.1

	w.Fire(rl.Vector3{}, rl.Vector3{X: 1}, 1, 0.1)
	w.Fire(rl.Vector3{}, rl.Vector3{X: -1}, 1, 0.1)
	require.Len(t, w.Projectiles, 2)

	stepN(w, 10)
	assert.Empty(t, w.Projectiles)
}

func TestWorldProjectileGravity(t *testing.T) {
	w := NewWorld()
	w.ProjectileGravity = true

	p := w.Fire(rl.Vector3{}, rl.Vector3{X: 1}, 10, 0.1)
	w.Step(testStep)

	assert.InDelta(t, w.Gravity.Y*testStep, p.Sphere.Velocity.Y, tolerance)
}

func TestWorldRaycastPicksClosest(t *testing.T) {
	w := NewWorld()
	w.AddPlatform("far", rl.Vector3{X: 9, Y: -1, Z: -1}, rl.Vector3{X: 10, Y: 1, Z: 1})
	w.AddPlatform("near", rl.Vector3{X: 4, Y: -1, Z: -1}, rl.Vector3{X: 5, Y: 1, Z: 1})

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 3}, 100)
	require.True(t, ok)
	assert.Equal(t, HitPlatform, hit.Kind)
	assert.Equal(t, 1, hit.Index)
	assert.Equal(t, "near", hit.Name)
	assert.InDelta(t, 4, hit.Distance, tolerance)
	assertVector(t, rl.Vector3{X: -1}, hit.Normal)

	_, ok = w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 3)
	assert.False(t, ok)

	_, ok = w.Raycast(rl.Vector3{}, rl.Vector3{X: -1}, 100)
	assert.False(t, ok)
}

func TestWorldRaycastProjectile(t *testing.T) {
	w := NewWorld()
	w.AddObstacle("crate", NewOBB(rl.Vector3{Z: 20}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{Y: 30}))
	w.Fire(rl.Vector3{Z: 5}, rl.Vector3{Y: 1}, 0, 0.5)

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	assert.Equal(t, HitProjectile, hit.Kind)
	assert.Equal(t, "projectile-1", hit.Name)
	assert.InDelta(t, 4.5, hit.Distance, tolerance)
}

func TestStaticBoxes(t *testing.T) {
	w := NewWorld()
	w.AddPlatform("floor", rl.Vector3{X: -1, Y: -1, Z: -1}, rl.Vector3{X: 1, Y: 0, Z: 1})
	w.AddObstacle("crate", NewOBB(rl.Vector3{Y: 3}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{Y: 45}))

	boxes := w.StaticBoxes()
	require.Len(t, boxes, 2)
	assertVector(t, rl.Vector3{Y: -0.5}, boxes[0].Center)
	assertVector(t, rl.Vector3{Y: 3}, boxes[1].Center)
}
