package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// component returns the i-th coordinate of v (0=X, 1=Y, 2=Z)
func component(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// withComponent returns v with its i-th coordinate replaced
func withComponent(v rl.Vector3, i int, value float32) rl.Vector3 {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// clampf restricts a value to a range
func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// signOf maps positive values to 1 and everything else to -1
func signOf(v float32) float32 {
	if v > 0 {
		return 1
	}
	return -1
}

func isZero(v rl.Vector3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// removeInward strips the component of velocity that drives into a surface with the given normal.
// Tangential motion is left untouched (inelastic, frictionless response).
func removeInward(velocity, normal rl.Vector3) rl.Vector3 {
	vn := rl.Vector3DotProduct(velocity, normal)
	if vn < 0 {
		velocity = rl.Vector3Subtract(velocity, rl.Vector3Scale(normal, vn))
	}
	return velocity
}

// absVector returns the component-wise absolute value
func absVector(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: math32.Abs(v.X), Y: math32.Abs(v.Y), Z: math32.Abs(v.Z)}
}
