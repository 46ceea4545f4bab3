package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/BrendanWorks/runnergame/physics"
	"github.com/BrendanWorks/runnergame/pool"
)

var categoryPaint = map[pool.Category]color.RGBA{
	pool.CategoryPlayer:  colornames.Crimson,
	pool.CategoryGround:  colornames.Burlywood,
	pool.CategoryRolling: colornames.Goldenrod,
	pool.CategoryFlying:  colornames.Skyblue,
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	floorY := float32(g.cfg.World.FloorY)
	vector.StrokeLine(screen, 0, floorY, float32(g.width), floorY, 2, colornames.Lightgrey, true)

	// blink the player while the hurt grace runs
	hidePlayer := g.grace > 0 && (g.frames/4)%2 == 0
	g.pool.ForEachActive(func(b *physics.Body, c pool.Category) {
		if hidePlayer && c == pool.CategoryPlayer {
			return
		}
		drawBody(screen, c, b)
	})

	if g.debug {
		g.drawDebug(screen)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Score: %.1f    Best: %.1f    Lives: %d    FPS: %.2f\nGround: %d/%d  Rolling: %d/%d  Flying: %d/%d",
		g.score, g.best, g.lives, ebiten.ActualFPS(),
		g.pool.ActiveCount(pool.CategoryGround), g.pool.Capacity(pool.CategoryGround),
		g.pool.ActiveCount(pool.CategoryRolling), g.pool.Capacity(pool.CategoryRolling),
		g.pool.ActiveCount(pool.CategoryFlying), g.pool.Capacity(pool.CategoryFlying),
	))

	switch g.mode {
	case ModeMenu:
		cx, cy := g.width/2, g.height/2
		ebitenutil.DebugPrintAt(screen, "R U N N E R", cx-40, cy-40)
		ebitenutil.DebugPrintAt(screen, "space / swipe up to start", cx-84, cy-16)
		ebitenutil.DebugPrintAt(screen, "jump over the low stuff, duck under the flyers", cx-150, cy+8)
	case ModePaused:
		g.pauseUI.Draw(screen)
	case ModeGameOver:
		g.overUI.Draw(screen)
	}
}

func drawBody(screen *ebiten.Image, c pool.Category, b *physics.Body) {
	paint, ok := categoryPaint[c]
	if !ok {
		paint = colornames.Magenta
	}
	pos := b.Position()

	if r, circle := b.CircleRadius(); circle {
		vector.FillCircle(screen, float32(pos.X), float32(pos.Y), float32(r), paint, true)
		// spoke so the spin reads on screen
		a := b.Angle()
		vector.StrokeLine(screen,
			float32(pos.X), float32(pos.Y),
			float32(pos.X+r*math.Cos(a)), float32(pos.Y+r*math.Sin(a)),
			2, colornames.Darkslategray, true)
		return
	}

	w, h := b.Size()
	vector.FillRect(screen, float32(pos.X-w/2), float32(pos.Y-h/2), float32(w), float32(h), paint, false)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	g.pool.ForEachActive(func(b *physics.Body, c pool.Category) {
		pos := b.Position()
		r := hitRadius(b)
		vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(r), 1.0,
			color.RGBA{R: 255, G: 0, B: 0, A: 200}, true)
	})
	free := 0
	for _, c := range pool.Categories() {
		free += g.pool.FreeCount(c)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"seed: %d    grounded: %d    active: %d    free: %d",
		g.seed, g.grounded, g.pool.ActiveTotal(), free), 0, g.height-16)
}

// hitRadius mirrors the broad-phase radius the pool tests against:
// the circle radius, or half the larger box dimension.
func hitRadius(b *physics.Body) float64 {
	if r, ok := b.CircleRadius(); ok {
		return r
	}
	w, h := b.Size()
	if w > h {
		return w / 2
	}
	return h / 2
}
