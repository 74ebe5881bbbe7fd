package camera

import (
	"collide3d/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// FollowCamera orbits behind a focus point. The eye is a small sphere that is pushed
// out of level geometry, always over the top when it ends up inside a box.
type FollowCamera struct {
	Position  rl.Vector3 // eye
	Target    rl.Vector3 // look-at point
	Yaw       float32    // degrees, 0 looks down +X
	Pitch     float32    // degrees
	Distance  float32
	Height    float32 // look-at point above the focus
	Radius    float32 // eye sphere
	LookSpeed float32
	Fovy      float32
}

func New(distance float32) *FollowCamera {
	return &FollowCamera{
		Yaw:       0,
		Pitch:     -20.0,
		Distance:  distance,
		Height:    1.5,
		Radius:    0.3,
		LookSpeed: 0.1,
		Fovy:      60,
	}
}

// Rotate applies a mouse delta in pixels
func (c *FollowCamera) Rotate(dx, dy float32) {
	c.Yaw += dx * c.LookSpeed
	c.Pitch -= dy * c.LookSpeed

	// Clamp pitch
	if c.Pitch > 80 {
		c.Pitch = 80
	}
	if c.Pitch < -80 {
		c.Pitch = -80
	}
}

// LookDirection is the unit vector from the eye toward the target
func (c *FollowCamera) LookDirection() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad
	return rl.Vector3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}
}

// Forward is the look direction flattened onto the ground plane
func (c *FollowCamera) Forward() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	return rl.Vector3{X: math32.Cos(yaw), Z: math32.Sin(yaw)}
}

func (c *FollowCamera) Right() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	return rl.Vector3{X: -math32.Sin(yaw), Z: math32.Cos(yaw)}
}

// MoveIntent turns WASD state into a horizontal direction relative to the camera.
// Diagonals are normalized so you don't go faster diagonally.
func (c *FollowCamera) MoveIntent(forward, back, left, right bool) rl.Vector3 {
	f, r := c.Forward(), c.Right()

	var move rl.Vector3
	if forward {
		move = rl.Vector3Add(move, f)
	}
	if back {
		move = rl.Vector3Subtract(move, f)
	}
	if right {
		move = rl.Vector3Add(move, r)
	}
	if left {
		move = rl.Vector3Subtract(move, r)
	}

	if l := rl.Vector3Length(move); l > 0 {
		move = rl.Vector3Scale(move, 1/l)
	}
	return move
}

// Update places the eye behind focus and resolves it against the given boxes
func (c *FollowCamera) Update(focus rl.Vector3, boxes []physics.OBB) {
	c.Target = rl.Vector3Add(focus, rl.Vector3{Y: c.Height})
	eye := physics.BodyState{
		Position: rl.Vector3Subtract(c.Target, rl.Vector3Scale(c.LookDirection(), c.Distance)),
	}

	for _, box := range boxes {
		eye, _ = physics.ResolveSphereOBB(eye, c.Radius, box, physics.VerticalUp)
	}
	c.Position = eye.Position
}

// Ray returns a ray from the eye through the screen center
func (c *FollowCamera) Ray() rl.Ray {
	return rl.NewRay(c.Position, rl.Vector3Normalize(rl.Vector3Subtract(c.Target, c.Position)))
}

func (c *FollowCamera) Raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
