package game

import (
	"fmt"
	"log"
	"time"

	"collide3d/internal/camera"
	"collide3d/internal/config"
	"collide3d/internal/level"
	"collide3d/internal/physics"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	shootCooldown = 0.15
	pickDistance  = 200.0
	// Longest step the simulation takes; slower frames are slowed down instead of tunneling
	maxStep = 1.0 / 30.0
)

var priorityOrder = []physics.VerticalPriority{physics.VerticalDown, physics.VerticalFree, physics.VerticalUp}

type Game struct {
	Config  config.Config
	Level   *level.Level
	World   *physics.World
	Camera  *camera.FollowCamera
	palette map[string]rl.Color

	DebugMode bool
	Paused    bool

	hovered    physics.RaycastHit
	hasHovered bool

	targetHits int
	respawns   int
	lastShot   float64
	message    string
	messageAt  float64

	// Debug timing (ms)
	updateMs  float64
	physicsMs float64
	drawMs    float64
}

func New(cfg config.Config, lvl *level.Level) (*Game, error) {
	w, err := lvl.Build()
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", lvl.Name, err)
	}
	if p, ok := cfg.Priority(); ok {
		w.VerticalPriority = p
	}

	g := &Game{
		Config:    cfg,
		Level:     lvl,
		World:     w,
		Camera:    camera.New(cfg.CameraDistance),
		palette:   lvl.Palette(),
		DebugMode: cfg.Debug,
	}
	g.Camera.LookSpeed = cfg.MouseSensitivity
	g.Camera.Update(w.Character.State.Position, w.StaticBoxes())

	w.OnTargetHit.AddListener(func(hit physics.TargetHit) {
		g.targetHits++
		g.notify(fmt.Sprintf("Hit %s!", hit.Target))
		log.Printf("Game: projectile %d hit %s at (%.2f, %.2f, %.2f)",
			hit.Projectile, hit.Target, hit.Point.X, hit.Point.Y, hit.Point.Z)
	})
	w.OnRespawn.AddListener(func() {
		g.respawns++
		g.notify("Fell into the void")
	})
	w.OnContactEnter.AddListener(func(c physics.Contact) {
		if g.DebugMode {
			log.Printf("Game: contact %s -> %s, depth %.3f", c.Body, c.Other, c.Result.Penetration)
		}
	})

	return g, nil
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.Config.Window.Width), int32(g.Config.Window.Height), g.Config.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.Config.TargetFPS)
	rl.DisableCursor()
	applyStyle()

	log.Printf("Game: level %q, %d platforms, %d obstacles, %d targets, vertical priority %s",
		g.Level.Name, len(g.World.Platforms), len(g.World.Obstacles), len(g.World.Targets), g.World.VerticalPriority)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func applyStyle() {
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(40, 40, 52, 230)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.LightGray))
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()
	if deltaTime > maxStep {
		deltaTime = maxStep
	}

	// Tab releases the mouse for the control panel
	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsCursorHidden() {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.Paused = !g.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.respawn()
	}

	aiming := rl.IsCursorHidden()
	if aiming {
		delta := rl.GetMouseDelta()
		g.Camera.Rotate(delta.X, delta.Y)
	}

	move := g.Camera.MoveIntent(
		rl.IsKeyDown(rl.KeyW), rl.IsKeyDown(rl.KeyS),
		rl.IsKeyDown(rl.KeyA), rl.IsKeyDown(rl.KeyD),
	)
	g.World.Character.SetIntent(move, rl.IsKeyPressed(rl.KeySpace))

	// Shoot with left mouse button (with cooldown)
	if aiming && rl.IsMouseButtonDown(rl.MouseLeftButton) && rl.GetTime()-g.lastShot >= shootCooldown {
		g.shoot()
		g.lastShot = rl.GetTime()
	}

	if !g.Paused {
		physicsStart := time.Now()
		g.World.Step(deltaTime)
		g.physicsMs = float64(time.Since(physicsStart).Microseconds()) / 1000.0
	}

	g.Camera.Update(g.World.Character.State.Position, g.World.StaticBoxes())

	ray := g.Camera.Ray()
	g.hovered, g.hasHovered = g.World.Raycast(ray.Position, ray.Direction, pickDistance)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// shoot fires from just above the character toward whatever the crosshair is on
func (g *Game) shoot() {
	p := g.Level.Projectile
	ray := g.Camera.Ray()
	origin := rl.Vector3Add(g.Camera.Target, rl.Vector3Scale(ray.Direction, 1.0))

	aim := rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, pickDistance))
	if g.hasHovered {
		aim = g.hovered.Point
	}
	dir := rl.Vector3Subtract(aim, origin)
	if rl.Vector3Length(dir) < physics.RayEpsilon {
		dir = ray.Direction
	}

	g.World.Fire(origin, dir, p.Speed, p.Radius)
}

func (g *Game) respawn() {
	g.World.Character.Respawn()
	g.notify("Respawned")
}

func (g *Game) cyclePriority() {
	current := 0
	for i, p := range priorityOrder {
		if p == g.World.VerticalPriority {
			current = i
		}
	}
	g.World.VerticalPriority = priorityOrder[(current+1)%len(priorityOrder)]
	g.notify(fmt.Sprintf("Vertical priority: %s", g.World.VerticalPriority))
}

func (g *Game) notify(msg string) {
	g.message = msg
	g.messageAt = rl.GetTime()
}

func (g *Game) Draw() {
	camera := g.Camera.Raylib()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	frustum := ExtractFrustum(camera, aspect)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(120, 170, 220, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.drawWorld(&frustum)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}
