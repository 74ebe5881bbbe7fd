package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOBBFromAABB(t *testing.T) {
	o := NewOBBFromAABB(rl.Vector3{X: -1, Y: 0, Z: 2}, rl.Vector3{X: 3, Y: 4, Z: 4})

	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, o.Center)
	assert.Equal(t, rl.Vector3{X: 2, Y: 2, Z: 1}, o.HalfSize)
	assert.Equal(t, identityAxes, o.Axes)
}

func TestNewOBBAxesAreOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		o := randomOBB(rng)
		for a := 0; a < 3; a++ {
			assert.InDelta(t, 1, rl.Vector3Length(o.Axes[a]), tolerance)
			for b := a + 1; b < 3; b++ {
				assert.InDelta(t, 0, rl.Vector3DotProduct(o.Axes[a], o.Axes[b]), tolerance)
			}
		}
	}
}

func TestOBBUpdateFromTransform(t *testing.T) {
	scale := rl.MatrixScale(2, 1, 3)
	rot := rl.MatrixRotateY(90 * rl.Deg2rad)
	trans := rl.MatrixTranslate(1, 2, 3)
	transform := rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)

	var o OBB
	o.Update(transform, rl.Vector3{Y: 0.5}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})

	assertVector(t, rl.Vector3{X: 1, Y: 2.5, Z: 3}, o.Center)
	assertVector(t, rl.Vector3{X: 1, Y: 0.5, Z: 1.5}, o.HalfSize)
	// Local X turned a quarter about Y
	assertVector(t, rl.Vector3{Z: -1}, o.Axes[0])
	assertVector(t, rl.Vector3{Y: 1}, o.Axes[1])
	assertVector(t, rl.Vector3{X: 1}, o.Axes[2])
}

func TestOBBUpdateDoesNotAccumulate(t *testing.T) {
	transform := rl.MatrixMultiply(rl.MatrixScale(2, 2, 2), rl.MatrixTranslate(0, 5, 0))
	half := rl.Vector3{X: 1, Y: 1, Z: 1}

	var o OBB
	o.Update(transform, rl.Vector3{}, half)
	first := o
	for i := 0; i < 10; i++ {
		o.Update(transform, rl.Vector3{}, half)
	}

	assert.Equal(t, first, o)
	assertVector(t, rl.Vector3{X: 2, Y: 2, Z: 2}, o.HalfSize)
}

func TestOBBCornersAndMinY(t *testing.T) {
	t.Run("axis aligned", func(t *testing.T) {
		o := NewAABBasOBB(rl.Vector3{Y: 3}, rl.Vector3{X: 2, Y: 4, Z: 6})
		corners := o.Corners()

		for i := 0; i < 4; i++ {
			assert.InDelta(t, 1, corners[i].Y, tolerance, "corner %d should be on the bottom face", i)
		}
		for i := 4; i < 8; i++ {
			assert.InDelta(t, 5, corners[i].Y, tolerance, "corner %d should be on the top face", i)
		}
		assert.InDelta(t, 1, o.MinY(), tolerance)
	})

	t.Run("rotated", func(t *testing.T) {
		o := NewOBB(rl.Vector3{Y: 3}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{Z: 45})
		assert.InDelta(t, 3-1.41421356, o.MinY(), tolerance)

		lowest := float32(100)
		for _, c := range o.Corners() {
			if c.Y < lowest {
				lowest = c.Y
			}
		}
		assert.InDelta(t, o.MinY(), lowest, tolerance)
	})
}

func TestOBBBounds(t *testing.T) {
	o := NewOBB(rl.Vector3{X: 1}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{Y: 45})
	bounds := o.Bounds()

	assertVector(t, rl.Vector3{X: 1 - 1.41421356, Y: -1, Z: -1.41421356}, bounds.Min)
	assertVector(t, rl.Vector3{X: 1 + 1.41421356, Y: 1, Z: 1.41421356}, bounds.Max)
	for _, c := range o.Corners() {
		assert.True(t, c.X >= bounds.Min.X-tolerance && c.X <= bounds.Max.X+tolerance)
		assert.True(t, c.Z >= bounds.Min.Z-tolerance && c.Z <= bounds.Max.Z+tolerance)
	}
}

func TestOBBIntersectsSphere(t *testing.T) {
	o := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	assert.True(t, o.IntersectsSphere(rl.Vector3{X: 1.5}, 1))
	assert.True(t, o.IntersectsSphere(rl.Vector3{}, 0.1), "center inside the box")
	assert.False(t, o.IntersectsSphere(rl.Vector3{X: 2}, 1), "touching is not intersecting")
	assert.False(t, o.IntersectsSphere(rl.Vector3{X: 2, Y: 2}, 1.2))
}

func TestClosestPointOnOBB(t *testing.T) {
	o := NewOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{Y: 90})

	assertVector(t, rl.Vector3{X: 1}, ClosestPointOnOBB(o, rl.Vector3{X: 5}))
	assertVector(t, rl.Vector3{X: 0.2, Y: -0.3}, ClosestPointOnOBB(o, rl.Vector3{X: 0.2, Y: -0.3}))
	assertVector(t, rl.Vector3{X: 1, Y: 1, Z: 1}, ClosestPointOnOBB(o, rl.Vector3{X: 4, Y: 4, Z: 4}))
}

func TestClampLocalIsIdempotentInside(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		o := randomOBB(rng)
		local := rl.Vector3{
			X: (rng.Float32()*2 - 1) * o.HalfSize.X,
			Y: (rng.Float32()*2 - 1) * o.HalfSize.Y,
			Z: (rng.Float32()*2 - 1) * o.HalfSize.Z,
		}
		require.Equal(t, local, o.clampLocal(local), "iteration %d", i)
	}
}

func TestFaceNormal(t *testing.T) {
	o := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 4, Z: 2})

	assert.Equal(t, rl.Vector3{Y: 1}, o.faceNormal(rl.Vector3{X: 0.5, Y: 2}))
	assert.Equal(t, rl.Vector3{X: -1}, o.faceNormal(rl.Vector3{X: -1, Y: 1.5}))
	assert.Equal(t, rl.Vector3{Z: -1}, o.faceNormal(rl.Vector3{Z: -1}))
}
