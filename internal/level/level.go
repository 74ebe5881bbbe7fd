package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"collide3d/internal/flight"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultLevel []byte

// ErrInvalidLevel wraps every validation failure
var ErrInvalidLevel = errors.New("invalid level")

const (
	defaultGravity          = 20.0
	defaultProjectileRadius = 0.25
	defaultProjectileSpeed  = 30.0
)

// --- YAML types ---

// Vec3 is written as a three element sequence: [x, y, z]
type Vec3 [3]float32

func (v Vec3) V() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

type Level struct {
	Name       string        `yaml:"name"`
	Gravity    *float32      `yaml:"gravity,omitempty"` // unset means defaultGravity; 0 is weightless
	Priority   string        `yaml:"verticalPriority,omitempty"`
	Spawn      Vec3          `yaml:"spawn"`
	Character  CharacterDef  `yaml:"character"`
	Platforms  []PlatformDef `yaml:"platforms"`
	Obstacles  []ObstacleDef `yaml:"obstacles,omitempty"`
	Targets    []TargetDef   `yaml:"targets,omitempty"`
	Projectile ProjectileDef `yaml:"projectile"`
}

type CharacterDef struct {
	Size         Vec3    `yaml:"size"`
	Center       *Vec3   `yaml:"center,omitempty"` // box center relative to the body origin; unset sits the box on it
	MoveSpeed    float32 `yaml:"moveSpeed,omitempty"`
	JumpStrength float32 `yaml:"jumpStrength,omitempty"`
	Color        string  `yaml:"color,omitempty"`
}

type PlatformDef struct {
	Name  string `yaml:"name"`
	Min   Vec3   `yaml:"min"`
	Max   Vec3   `yaml:"max"`
	Color string `yaml:"color,omitempty"`
}

type ObstacleDef struct {
	Name     string `yaml:"name"`
	Center   Vec3   `yaml:"center"`
	Size     Vec3   `yaml:"size"`
	Rotation Vec3   `yaml:"rotation,omitempty"` // degrees, applied X then Y then Z
	Color    string `yaml:"color,omitempty"`
}

type TargetDef struct {
	Name  string  `yaml:"name"`
	Size  Vec3    `yaml:"size"`
	Speed float32 `yaml:"speed"` // path segments per second
	Path  []Vec3  `yaml:"path"`
	Color string  `yaml:"color,omitempty"`
}

type ProjectileDef struct {
	Radius   float32 `yaml:"radius"`
	Speed    float32 `yaml:"speed"`
	Lifetime float32 `yaml:"lifetime,omitempty"`
	Gravity  bool    `yaml:"gravity,omitempty"`
}

// --- Loading ---

// Parse decodes and validates a level document
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	lvl.applyDefaults()
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// Default returns the built-in level
func Default() *Level {
	lvl, err := Parse(defaultLevel)
	if err != nil {
		panic(fmt.Sprintf("embedded level is broken: %v", err))
	}
	return lvl
}

func (l *Level) applyDefaults() {
	if l.Gravity == nil {
		g := float32(defaultGravity)
		l.Gravity = &g
	}
	if l.Character.Size == (Vec3{}) {
		l.Character.Size = Vec3{1, 2, 1}
	}
	if l.Projectile.Radius == 0 {
		l.Projectile.Radius = defaultProjectileRadius
	}
	if l.Projectile.Speed == 0 {
		l.Projectile.Speed = defaultProjectileSpeed
	}
	if l.Projectile.Lifetime == 0 {
		l.Projectile.Lifetime = physics.DefaultProjectileLifetime
	}
}

// GravityStrength is the downward acceleration, defaultGravity when the level leaves it out
func (l *Level) GravityStrength() float32 {
	if l.Gravity == nil {
		return defaultGravity
	}
	return *l.Gravity
}

// Validate reports the first structural problem in the level
func (l *Level) Validate() error {
	if err := checkSize("character", l.Character.Size); err != nil {
		return err
	}
	if _, err := physics.ParseVerticalPriority(l.Priority); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	seen := make(map[string]bool)
	unique := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%w: %s without a name", ErrInvalidLevel, kind)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidLevel, name)
		}
		seen[name] = true
		return nil
	}

	for _, p := range l.Platforms {
		if err := unique("platform", p.Name); err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			if p.Min[i] > p.Max[i] {
				return fmt.Errorf("%w: platform %q has min above max", ErrInvalidLevel, p.Name)
			}
		}
	}
	for _, o := range l.Obstacles {
		if err := unique("obstacle", o.Name); err != nil {
			return err
		}
		if err := checkSize("obstacle "+o.Name, o.Size); err != nil {
			return err
		}
	}
	for _, t := range l.Targets {
		if err := unique("target", t.Name); err != nil {
			return err
		}
		if err := checkSize("target "+t.Name, t.Size); err != nil {
			return err
		}
		if len(t.Path) < flight.MinPoints {
			return fmt.Errorf("%w: target %q needs at least %d path points", ErrInvalidLevel, t.Name, flight.MinPoints)
		}
	}

	if l.Projectile.Radius <= 0 {
		return fmt.Errorf("%w: projectile radius must be positive", ErrInvalidLevel)
	}
	return nil
}

func checkSize(what string, size Vec3) error {
	for _, s := range size {
		if s < 0 {
			return fmt.Errorf("%w: %s has a negative size", ErrInvalidLevel, what)
		}
	}
	return nil
}

// Build creates a physics world populated with the level's bodies
func (l *Level) Build() (*physics.World, error) {
	w := physics.NewWorld()
	w.Gravity = rl.Vector3{Y: -l.GravityStrength()}
	w.ProjectileLifetime = l.Projectile.Lifetime
	w.ProjectileGravity = l.Projectile.Gravity

	priority, err := physics.ParseVerticalPriority(l.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	w.VerticalPriority = priority

	c := physics.NewCharacter(l.Spawn.V(), l.Character.Size.V())
	if l.Character.MoveSpeed > 0 {
		c.MoveSpeed = l.Character.MoveSpeed
	}
	if l.Character.JumpStrength > 0 {
		c.JumpStrength = l.Character.JumpStrength
	}
	if l.Character.Center != nil {
		c.LocalCenter = l.Character.Center.V()
		c.Respawn()
	}
	w.Character = c

	for _, p := range l.Platforms {
		w.AddPlatform(p.Name, p.Min.V(), p.Max.V())
	}
	for _, o := range l.Obstacles {
		w.AddObstacle(o.Name, physics.NewOBB(o.Center.V(), o.Size.V(), o.Rotation.V()))
	}
	for _, t := range l.Targets {
		points := make([]rl.Vector3, len(t.Path))
		for i, p := range t.Path {
			points[i] = p.V()
		}
		path, err := flight.NewClosedPath(points)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", t.Name, err)
		}
		w.AddTarget(&physics.Target{
			Name:      t.Name,
			LocalHalf: rl.Vector3Scale(t.Size.V(), 0.5),
			Speed:     t.Speed,
			Pose:      path.Transform,
		})
	}

	return w, nil
}

// --- Saving ---

func (l *Level) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal level: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write level: %w", err)
	}

	return nil
}
