// Stress test timing the narrow-phase collision routines on random boxes, spheres and rays
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type scene struct {
	boxes   []physics.OBB
	aabbs   []physics.AABB
	spheres []physics.Sphere
	rays    []rl.Ray
}

func main() {
	iterations := flag.Int("iterations", 10, "timed passes per count")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	// Test various object counts
	testCounts := []int{100, 500, 1000, 2000, 5000}

	fmt.Printf("%7s | %-22s | %-22s | %-22s | %-22s | %-22s\n",
		"objects", "OBB SAT + normal", "OBB SAT bool", "AABB overlap", "sphere vs OBB", "ray vs OBB")
	for _, count := range testCounts {
		rng := rand.New(rand.NewSource(*seed)) // Consistent results
		run(generate(rng, count), *iterations)
	}
}

func generate(rng *rand.Rand, count int) scene {
	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0
	random := func() rl.Vector3 {
		return rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
	}

	s := scene{
		boxes:   make([]physics.OBB, count),
		aabbs:   make([]physics.AABB, count),
		spheres: make([]physics.Sphere, count),
		rays:    make([]rl.Ray, count),
	}
	for i := 0; i < count; i++ {
		size := rl.Vector3{X: 0.5 + rng.Float32()*2, Y: 0.5 + rng.Float32()*2, Z: 0.5 + rng.Float32()*2}
		rot := rl.Vector3{X: rng.Float32() * 360, Y: rng.Float32() * 360, Z: rng.Float32() * 360}
		center := random()

		s.boxes[i] = physics.NewOBB(center, size, rot)
		s.aabbs[i] = physics.NewAABBFromCenter(center, size)
		s.spheres[i] = physics.Sphere{Center: random(), Radius: 0.5 + rng.Float32()*0.5}
		s.rays[i] = rl.NewRay(random(), rl.Vector3Normalize(random()))
	}
	return s
}

// timePairs runs fn over every unordered pair and returns the mean pass time and hit count
func timePairs(n, iterations int, fn func(i, j int) bool) (time.Duration, int) {
	hits := 0
	start := time.Now()
	for iter := 0; iter < iterations; iter++ {
		hits = 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if fn(i, j) {
					hits++
				}
			}
		}
	}
	return time.Since(start) / time.Duration(iterations), hits
}

func run(s scene, iterations int) {
	n := len(s.boxes)

	satTime, satHits := timePairs(n, iterations, func(i, j int) bool {
		return physics.CollideOBB(s.boxes[i], s.boxes[j]).Colliding
	})
	boolTime, boolHits := timePairs(n, iterations, func(i, j int) bool {
		return s.boxes[i].IntersectsOBB(s.boxes[j])
	})
	aabbTime, aabbHits := timePairs(n, iterations, func(i, j int) bool {
		return s.aabbs[i].Intersects(s.aabbs[j])
	})
	sphereTime, sphereHits := timePairs(n, iterations, func(i, j int) bool {
		return physics.CollideSphereOBB(s.spheres[i], s.boxes[j], physics.VerticalUp).Colliding
	})
	rayTime, rayHits := timePairs(n, iterations, func(i, j int) bool {
		_, ok := s.boxes[j].Raycast(s.rays[i])
		return ok
	})

	if satHits != boolHits {
		fmt.Printf("WARNING: SAT variants disagree (%d vs %d)\n", satHits, boolHits)
	}

	cell := func(d time.Duration, hits int) string {
		return fmt.Sprintf("%10v (%6d)", d.Round(time.Microsecond), hits)
	}
	fmt.Printf("%7d | %-22s | %-22s | %-22s | %-22s | %-22s\n", n,
		cell(satTime, satHits), cell(boolTime, boolHits), cell(aabbTime, aabbHits),
		cell(sphereTime, sphereHits), cell(rayTime, rayHits))
}
