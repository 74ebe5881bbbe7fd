package game

import (
	"fmt"

	"collide3d/internal/level"
	"collide3d/internal/physics"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Corner indices of OBB.Corners for each face, counter-clockwise seen from outside
var obbFaces = [6][4]int{
	{0, 1, 3, 2}, // bottom
	{4, 6, 7, 5}, // top
	{0, 4, 5, 1}, // -Z
	{2, 3, 7, 6}, // +Z
	{0, 2, 6, 4}, // -X
	{1, 5, 7, 3}, // +X
}

// Corner index pairs of the 12 edges
var obbEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func drawSolidOBB(o physics.OBB, color rl.Color) {
	c := o.Corners()
	for _, f := range obbFaces {
		rl.DrawTriangle3D(c[f[0]], c[f[1]], c[f[2]], color)
		rl.DrawTriangle3D(c[f[0]], c[f[2]], c[f[3]], color)
	}
}

func drawWireOBB(o physics.OBB, color rl.Color) {
	c := o.Corners()
	for _, e := range obbEdges {
		rl.DrawLine3D(c[e[0]], c[e[1]], color)
	}
}

func (g *Game) colorOf(name string, fallback rl.Color) rl.Color {
	if c, ok := g.palette[name]; ok {
		return c
	}
	return fallback
}

func (g *Game) drawWorld(frustum *Frustum) {
	rl.DrawGrid(40, 1.0)

	for _, p := range g.World.Platforms {
		if !frustum.ContainsAABB(p.Box) {
			continue
		}
		center := p.Box.Center()
		size := rl.Vector3Scale(p.Box.HalfSize(), 2)
		rl.DrawCubeV(center, size, g.colorOf(p.Name, rl.Gray))
		rl.DrawCubeWiresV(center, size, rl.DarkGray)
	}

	for _, o := range g.World.Obstacles {
		if !frustum.ContainsAABB(o.Box.Bounds()) {
			continue
		}
		drawSolidOBB(o.Box, g.colorOf(o.Name, rl.Brown))
		drawWireOBB(o.Box, rl.Black)
	}

	for _, t := range g.World.Targets {
		drawSolidOBB(t.OBB, g.colorOf(t.Name, rl.Red))
		drawWireOBB(t.OBB, rl.DarkGray)
	}

	c := g.World.Character
	drawSolidOBB(c.OBB, g.colorOf(level.CharacterKey, rl.Blue))
	drawWireOBB(c.OBB, rl.DarkBlue)

	for _, p := range g.World.Projectiles {
		if !frustum.ContainsSphere(p.Sphere.Center, p.Sphere.Radius) {
			continue
		}
		color := rl.Orange
		if p.Stuck {
			color = rl.Gray
		}
		rl.DrawSphere(p.Sphere.Center, p.Sphere.Radius, color)
	}

	if g.hasHovered {
		g.drawHover()
	}

	if g.DebugMode {
		g.drawDebug()
	}
}

func (g *Game) drawHover() {
	hit := g.hovered
	switch hit.Kind {
	case physics.HitPlatform:
		drawWireOBB(g.World.Platforms[hit.Index].Box.OBB(), rl.Yellow)
	case physics.HitObstacle:
		drawWireOBB(g.World.Obstacles[hit.Index].Box, rl.Yellow)
	case physics.HitTarget:
		drawWireOBB(g.World.Targets[hit.Index].OBB, rl.Yellow)
	}
	rl.DrawSphere(hit.Point, 0.05, rl.Yellow)
	rl.DrawLine3D(hit.Point, rl.Vector3Add(hit.Point, hit.Normal), rl.Yellow)
}

func (g *Game) drawDebug() {
	for _, box := range g.World.StaticBoxes() {
		drawWireOBB(box, rl.Green)
	}
	for _, t := range g.World.Targets {
		drawWireOBB(t.OBB.Bounds().OBB(), rl.Lime)
	}

	c := g.World.Character
	contact := g.World.LastContact
	if contact.Colliding {
		base := c.OBB.Center
		rl.DrawLine3D(base, rl.Vector3Add(base, rl.Vector3Scale(contact.Normal, 2)), rl.Magenta)
	}
}

func (g *Game) DrawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	rl.DrawText("WASD to move, Space to jump, Mouse to look, Click to shoot", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1 debug, P pause, R respawn, Tab release mouse", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	// Crosshair
	cx, cy := screenW/2, screenH/2
	rl.DrawLine(cx-8, cy, cx+8, cy, rl.White)
	rl.DrawLine(cx, cy-8, cx, cy+8, rl.White)

	rl.DrawText(fmt.Sprintf("Targets hit: %d   Falls: %d", g.targetHits, g.respawns), 10, 85, 20, rl.Black)

	if g.message != "" && rl.GetTime()-g.messageAt < 2 {
		w := rl.MeasureText(g.message, 30)
		rl.DrawText(g.message, cx-w/2, cy-80, 30, rl.Maroon)
	}

	if g.hasHovered {
		label := fmt.Sprintf("%s %s (%.1fm)", g.hovered.Kind, g.hovered.Name, g.hovered.Distance)
		rl.DrawText(label, cx+14, cy+14, 16, rl.White)
	}

	if g.DebugMode {
		g.drawDebugText()
	}

	g.drawPanel(screenW)
}

func (g *Game) drawDebugText() {
	c := g.World.Character
	s := c.State
	contact := g.World.LastContact

	y := int32(115)
	line := func(text string, color rl.Color) {
		rl.DrawText(text, 10, y, 16, color)
		y += 20
	}

	line(fmt.Sprintf("Position: (%.2f, %.2f, %.2f)", s.Position.X, s.Position.Y, s.Position.Z), rl.Yellow)
	line(fmt.Sprintf("Velocity: (%.2f, %.2f, %.2f)", s.Velocity.X, s.Velocity.Y, s.Velocity.Z), rl.Yellow)
	line(fmt.Sprintf("Grounded: %v   Min Y: %.2f", s.Grounded, c.OBB.MinY()), rl.Yellow)
	line(fmt.Sprintf("Last contact: n=(%.2f, %.2f, %.2f) depth %.4f",
		contact.Normal.X, contact.Normal.Y, contact.Normal.Z, contact.Penetration), rl.Yellow)
	line(fmt.Sprintf("Contacts: %d   Projectiles: %d", g.World.ActiveContacts(), len(g.World.Projectiles)), rl.Yellow)
	line(fmt.Sprintf("Update:  %.2f ms", g.updateMs), rl.Green)
	line(fmt.Sprintf("Physics: %.2f ms", g.physicsMs), rl.Green)
	line(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), rl.Green)
	line(fmt.Sprintf("Total:   %.2f ms", g.updateMs+g.drawMs), rl.Lime)
}

// drawPanel is the raygui control panel; it only takes input while the cursor is free
func (g *Game) drawPanel(screenW int32) {
	x := float32(screenW - 230)
	rl.DrawRectangle(int32(x)-10, 10, 230, 170, rl.Fade(rl.Black, 0.4))

	if gui.Button(rl.Rectangle{X: x, Y: 20, Width: 200, Height: 26},
		fmt.Sprintf("Vertical: %s", g.World.VerticalPriority)) {
		g.cyclePriority()
	}

	g.DebugMode = gui.CheckBox(rl.Rectangle{X: x, Y: 56, Width: 18, Height: 18}, "Debug view", g.DebugMode)
	g.World.ProjectileGravity = gui.CheckBox(rl.Rectangle{X: x, Y: 82, Width: 18, Height: 18}, "Projectile gravity", g.World.ProjectileGravity)

	g.Camera.Distance = gui.Slider(rl.Rectangle{X: x + 60, Y: 108, Width: 120, Height: 18},
		"Camera", fmt.Sprintf("%.1f", g.Camera.Distance), g.Camera.Distance, 2, 15)

	if gui.Button(rl.Rectangle{X: x, Y: 138, Width: 200, Height: 26}, "Respawn") {
		g.respawn()
	}
}
