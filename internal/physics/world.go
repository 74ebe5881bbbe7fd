package physics

import (
	"fmt"
	"log"

	"collide3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultProjectileLifetime is how long a fired sphere lives, in seconds
const DefaultProjectileLifetime = 5.0

// Platform is static, axis-aligned level geometry
type Platform struct {
	Name string
	Box  AABB
}

// Obstacle is static, rotated level geometry
type Obstacle struct {
	Name string
	Box  OBB
}

// Character is the player body: a box whose OBB is rebuilt from its transform every step.
type Character struct {
	Spawn       rl.Vector3
	LocalCenter rl.Vector3 // box center relative to the body origin, in model space
	LocalHalf   rl.Vector3 // unscaled half extents
	Scale       rl.Vector3
	Yaw         float32 // degrees, faces the last movement direction

	MoveSpeed    float32
	JumpStrength float32

	State BodyState
	OBB   OBB

	move rl.Vector3
	jump bool
}

// NewCharacter creates a character whose box of the given size sits on its origin
func NewCharacter(spawn, size rl.Vector3) *Character {
	c := &Character{
		Spawn:        spawn,
		LocalCenter:  rl.Vector3{Y: size.Y / 2},
		LocalHalf:    rl.Vector3Scale(size, 0.5),
		Scale:        rl.Vector3{X: 1, Y: 1, Z: 1},
		MoveSpeed:    8.0,
		JumpStrength: 8.0,
	}
	c.Respawn()
	return c
}

// Transform returns the model matrix: scale, then yaw, then translation
func (c *Character) Transform() rl.Matrix {
	scale := rl.MatrixScale(c.Scale.X, c.Scale.Y, c.Scale.Z)
	rot := rl.MatrixRotateY(c.Yaw * rl.Deg2rad)
	trans := rl.MatrixTranslate(c.State.Position.X, c.State.Position.Y, c.State.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// SetIntent records the desired horizontal direction and a jump request for the next step
func (c *Character) SetIntent(move rl.Vector3, jump bool) {
	move.Y = 0
	if l := rl.Vector3Length(move); l > 1 {
		move = rl.Vector3Scale(move, 1/l)
	}
	c.move = move
	c.jump = c.jump || jump
}

// Respawn puts the character back at its spawn point at rest
func (c *Character) Respawn() {
	c.State = BodyState{Position: c.Spawn}
	c.move = rl.Vector3{}
	c.jump = false
	c.refreshOBB()
}

func (c *Character) refreshOBB() {
	c.OBB.Update(c.Transform(), c.LocalCenter, c.LocalHalf)
}

// Target is a moving box driven by a pose function, e.g. a bird on a flight path
type Target struct {
	Name        string
	LocalCenter rl.Vector3
	LocalHalf   rl.Vector3
	Speed       float32 // pose time advanced per second
	Pose        func(t float32) rl.Matrix
	OBB         OBB
	Hits        int

	time float32
}

func (t *Target) advance(dt float32) {
	t.time += dt * t.Speed
	if t.Pose == nil {
		return
	}
	t.OBB.Update(t.Pose(t.time), t.LocalCenter, t.LocalHalf)
}

// Projectile is a fired sphere; it stops where it first touches level geometry
type Projectile struct {
	ID         int
	Sphere     Sphere
	Life       float32
	UseGravity bool
	Stuck      bool
}

func (p *Projectile) name() string {
	return fmt.Sprintf("projectile-%d", p.ID)
}

// ContactKey identifies a touching pair across frames
type ContactKey struct {
	Body  string
	Other string
}

// Contact is delivered to contact enter/exit listeners
type Contact struct {
	ContactKey
	Result CollisionResult
}

// TargetHit is delivered when a projectile reaches a target
type TargetHit struct {
	Target     string
	Projectile int
	Point      rl.Vector3
}

// World steps one character, its projectiles and moving targets against static geometry.
// Candidate lists are scanned linearly. Not safe for concurrent use.
type World struct {
	Gravity          rl.Vector3
	VerticalPriority VerticalPriority

	Character   *Character
	Platforms   []Platform
	Obstacles   []Obstacle
	Targets     []*Target
	Projectiles []*Projectile

	ProjectileLifetime float32
	ProjectileGravity  bool

	// Last contact the character resolved, for debug overlays
	LastContact CollisionResult

	OnContactEnter engine.EventWithArg[Contact]
	OnContactExit  engine.EventWithArg[Contact]
	OnTargetHit    engine.EventWithArg[TargetHit]
	OnRespawn      engine.Event

	activeContacts  map[ContactKey]Contact // contacts from last step
	currentContacts map[ContactKey]Contact // contacts this step
	nextProjectile  int

	// Projectiles fired by listeners while the list is being filtered
	steppingProjectiles bool
	firedDuringStep     []*Projectile
}

func NewWorld() *World {
	return &World{
		Gravity:            rl.Vector3{X: 0, Y: -20.0, Z: 0},
		ProjectileLifetime: DefaultProjectileLifetime,
		activeContacts:     make(map[ContactKey]Contact),
		currentContacts:    make(map[ContactKey]Contact),
	}
}

func (w *World) AddPlatform(name string, min, max rl.Vector3) {
	w.Platforms = append(w.Platforms, Platform{Name: name, Box: AABB{Min: min, Max: max}})
}

func (w *World) AddObstacle(name string, box OBB) {
	w.Obstacles = append(w.Obstacles, Obstacle{Name: name, Box: box})
}

// AddTarget registers a moving target and places it at its initial pose
func (w *World) AddTarget(t *Target) {
	t.advance(0)
	w.Targets = append(w.Targets, t)
}

// StaticBoxes returns every static volume as an OBB, platforms first
func (w *World) StaticBoxes() []OBB {
	boxes := make([]OBB, 0, len(w.Platforms)+len(w.Obstacles))
	for _, p := range w.Platforms {
		boxes = append(boxes, p.Box.OBB())
	}
	for _, o := range w.Obstacles {
		boxes = append(boxes, o.Box)
	}
	return boxes
}

// Fire launches a sphere from origin along direction
func (w *World) Fire(origin, direction rl.Vector3, speed, radius float32) *Projectile {
	w.nextProjectile++
	p := &Projectile{
		ID: w.nextProjectile,
		Sphere: Sphere{
			Center:   origin,
			Radius:   radius,
			Velocity: rl.Vector3Scale(rl.Vector3Normalize(direction), speed),
		},
		Life:       w.ProjectileLifetime,
		UseGravity: w.ProjectileGravity,
	}
	if w.steppingProjectiles {
		w.firedDuringStep = append(w.firedDuringStep, p)
		return p
	}
	w.Projectiles = append(w.Projectiles, p)
	return p
}

// Step advances the simulation by dt seconds
func (w *World) Step(dt float32) {
	w.currentContacts = make(map[ContactKey]Contact)

	if w.Character != nil {
		w.stepCharacter(dt)
	}

	for _, t := range w.Targets {
		t.advance(dt)
	}

	w.stepProjectiles(dt)

	w.dispatchContactCallbacks()
}

func (w *World) stepCharacter(dt float32) {
	c := w.Character
	s := c.State

	s.Velocity.X = c.move.X * c.MoveSpeed
	s.Velocity.Z = c.move.Z * c.MoveSpeed
	if c.jump && s.Grounded {
		s.Velocity.Y = c.JumpStrength
		s.Grounded = false
	}
	c.jump = false

	s.Velocity = rl.Vector3Add(s.Velocity, rl.Vector3Scale(w.Gravity, dt))
	s.Position = rl.Vector3Add(s.Position, rl.Vector3Scale(s.Velocity, dt))

	if !isZero(c.move) {
		c.Yaw = math32.Atan2(c.move.X, c.move.Z) * rl.Rad2deg
	}

	c.State = s
	c.refreshOBB()

	grounded := false
	for _, p := range w.Platforms {
		next, col := ResolveOBBAABB(c.State, c.OBB, p.Box.Min, p.Box.Max)
		if !col.Colliding {
			continue
		}
		grounded = grounded || next.Grounded
		c.State = next
		c.refreshOBB() // later platforms see the corrected box
		w.LastContact = col
		w.recordContact("character", p.Name, col)
	}
	for _, o := range w.Obstacles {
		next, col := ResolveOBB(c.State, c.OBB, o.Box)
		if !col.Colliding {
			continue
		}
		grounded = grounded || next.Grounded
		c.State = next
		c.refreshOBB()
		w.LastContact = col
		w.recordContact("character", o.Name, col)
	}
	c.State.Grounded = grounded

	if IsBelowVoidThreshold(c.OBB.MinY()) {
		log.Printf("Physics: character fell below %.1f, respawning at (%.1f, %.1f, %.1f)",
			float32(VoidThreshold), c.Spawn.X, c.Spawn.Y, c.Spawn.Z)
		c.Respawn()
		w.OnRespawn.Invoke()
	}
}

func (w *World) stepProjectiles(dt float32) {
	w.steppingProjectiles = true
	alive := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}

		if !p.Stuck {
			if p.UseGravity {
				p.Sphere.Velocity = rl.Vector3Add(p.Sphere.Velocity, rl.Vector3Scale(w.Gravity, dt))
			}
			p.Sphere.Center = rl.Vector3Add(p.Sphere.Center, rl.Vector3Scale(p.Sphere.Velocity, dt))
		}

		if w.hitTarget(p) {
			continue
		}
		if !p.Stuck {
			w.collideProjectile(p)
		}
		if IsBelowVoidThreshold(p.Sphere.Center.Y - p.Sphere.Radius) {
			continue
		}
		alive = append(alive, p)
	}

	// Drop references held by the tail of the old slice
	for i := len(alive); i < len(w.Projectiles); i++ {
		w.Projectiles[i] = nil
	}
	w.Projectiles = alive
	w.steppingProjectiles = false

	// New projectiles start moving on the next step
	w.Projectiles = append(w.Projectiles, w.firedDuringStep...)
	clear(w.firedDuringStep)
	w.firedDuringStep = w.firedDuringStep[:0]
}

// collideProjectile resolves a projectile against static geometry; any contact stops it
func (w *World) collideProjectile(p *Projectile) {
	state := BodyState{Position: p.Sphere.Center, Velocity: p.Sphere.Velocity}
	hit := false

	resolve := func(name string, box OBB) {
		next, col := ResolveSphereOBB(state, p.Sphere.Radius, box, w.VerticalPriority)
		if !col.Colliding {
			return
		}
		state = next
		hit = true
		w.recordContact(p.name(), name, col)
	}

	for _, pl := range w.Platforms {
		resolve(pl.Name, pl.Box.OBB())
	}
	for _, o := range w.Obstacles {
		resolve(o.Name, o.Box)
	}

	p.Sphere.Center = state.Position
	p.Sphere.Velocity = state.Velocity
	if hit {
		p.Stuck = true
		p.Sphere.Velocity = rl.Vector3{}
	}
}

func (w *World) hitTarget(p *Projectile) bool {
	for _, t := range w.Targets {
		col := CollideSphereOBB(p.Sphere, t.OBB, VerticalFree)
		if !col.Colliding {
			continue
		}
		t.Hits++
		w.OnTargetHit.Invoke(TargetHit{Target: t.Name, Projectile: p.ID, Point: col.ContactPoint})
		return true
	}
	return false
}

// Raycast returns the closest volume hit by the ray within maxDistance
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	var closest RaycastHit
	closest.Distance = maxDistance
	found := false

	consider := func(hit RaycastHit, ok bool, kind HitKind, index int, name string) {
		if !ok || hit.Distance > closest.Distance {
			return
		}
		hit.Kind, hit.Index, hit.Name = kind, index, name
		closest = hit
		found = true
	}

	for i, p := range w.Platforms {
		hit, ok := raycastOBB(origin, direction, p.Box.OBB(), maxDistance)
		consider(hit, ok, HitPlatform, i, p.Name)
	}
	for i, o := range w.Obstacles {
		hit, ok := raycastOBB(origin, direction, o.Box, maxDistance)
		consider(hit, ok, HitObstacle, i, o.Name)
	}
	for i, t := range w.Targets {
		hit, ok := raycastOBB(origin, direction, t.OBB, maxDistance)
		consider(hit, ok, HitTarget, i, t.Name)
	}
	for i, p := range w.Projectiles {
		hit, ok := raycastSphere(origin, direction, p.Sphere.Center, p.Sphere.Radius, maxDistance)
		consider(hit, ok, HitProjectile, i, p.name())
	}

	return closest, found
}

// recordContact marks a pair as touching this step
func (w *World) recordContact(body, other string, col CollisionResult) {
	key := ContactKey{Body: body, Other: other}
	w.currentContacts[key] = Contact{ContactKey: key, Result: col}
}

// ActiveContacts returns the number of pairs touching after the last step
func (w *World) ActiveContacts() int {
	return len(w.activeContacts)
}

// dispatchContactCallbacks sends enter/exit events by diffing this step against the last
func (w *World) dispatchContactCallbacks() {
	for key, contact := range w.currentContacts {
		if _, ok := w.activeContacts[key]; !ok {
			w.OnContactEnter.Invoke(contact)
		}
	}
	for key, contact := range w.activeContacts {
		if _, ok := w.currentContacts[key]; !ok {
			w.OnContactExit.Invoke(contact)
		}
	}

	// Swap buffers
	w.activeContacts = w.currentContacts
}
