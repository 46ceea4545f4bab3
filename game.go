package main

import (
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"golang.design/x/clipboard"

	"github.com/BrendanWorks/runnergame/director"
	"github.com/BrendanWorks/runnergame/physics"
	"github.com/BrendanWorks/runnergame/pool"
	"github.com/BrendanWorks/runnergame/tuning"
)

// The simulation runs on ebiten's fixed tick.
const simStep = 1.0 / 60.0

// allow jump within this many frames after leaving ground
const coyoteTimeFrames = 6

// Mode tracks which screen the shell is on.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
	ModeGameOver
)

type Game struct {
	cfg    *tuning.Config
	width  int
	height int

	world    *physics.World
	pool     *pool.Pool
	director *director.Director
	input    *Input
	watcher  *tuning.Watcher

	player   *physics.Body
	grounded int
	coyote   int
	lives    int
	grace    float64

	mode   Mode
	seed   int64
	frames int
	score  float64
	best   float64
	debug  bool

	clipboardOK bool
	pauseUI     *ebitenui.UI
	overUI      *ebitenui.UI
}

func NewGame(seed int64, debug bool) *Game {
	cfg, err := tuning.LoadConfig()
	if err != nil {
		log.Printf("Game: %v, using built-in tuning", err)
		cfg = tuning.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := physics.NewWorld(cfg.World.Gravity)
	// Floor spans the spawn and cleanup bands on both sides.
	world.AddFloor(
		physics.Vec{X: -300, Y: cfg.World.FloorY},
		physics.Vec{X: float64(cfg.Window.Width) + 300, Y: cfg.World.FloorY},
		cfg.World.FloorFriction,
	)

	p, err := pool.New(world, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatalf("Game: build pool: %v", err)
	}

	g := &Game{
		cfg:      cfg,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		world:    world,
		pool:     p,
		director: director.New(cfg, p, rand.New(rand.NewSource(seed+1))),
		input:    NewInput(cfg.Gestures),
		seed:     seed,
		debug:    debug,
	}

	world.HandleContact(physics.KindPlayer, physics.KindFloor,
		func() bool {
			g.grounded++
			return true
		},
		func() {
			g.grounded--
		},
	)

	watcher, err := tuning.NewWatcher("tuning", filepath.Join("director", "scripts"))
	if err != nil {
		log.Printf("Game: live tuning watcher unavailable: %v", err)
	} else {
		g.watcher = watcher
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Game: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()
	g.drainWatcher()

	if g.input.DebugPressed {
		g.debug = !g.debug
	}

	switch g.mode {
	case ModeMenu:
		if g.input.JumpPressed || g.input.RestartPressed {
			g.startRun()
		}
	case ModePlaying:
		g.updatePlaying()
	case ModePaused:
		g.pauseUI.Update()
		if g.input.PausePressed {
			g.mode = ModePlaying
		}
		if g.input.RestartPressed {
			g.startRun()
		}
	case ModeGameOver:
		g.overUI.Update()
		if g.input.RestartPressed {
			g.startRun()
		}
	}
	return nil
}

// startRun resets the pool and pacing and checks the player back out.
func (g *Game) startRun() {
	g.pool.Clear()
	g.director.Reset()

	player, ok := g.pool.Acquire(pool.CategoryPlayer)
	if !ok {
		log.Printf("Game: player slot unavailable after reset")
		return
	}
	g.player = player
	g.grounded = 0
	g.coyote = 0
	g.lives = g.cfg.Player.Lives
	g.grace = 0
	g.score = 0
	g.mode = ModePlaying
}

func (g *Game) updatePlaying() {
	if g.input.PausePressed {
		g.mode = ModePaused
		return
	}

	if c, ok := g.director.Update(simStep); ok {
		// a full category just skips the wave
		g.pool.Acquire(c)
	}

	g.steerPlayer()
	g.world.Step(simStep)
	g.pool.ReclaimOffscreen(float64(g.width), float64(g.height))
	g.score += simStep

	if g.grace > 0 {
		g.grace -= simStep
		return
	}
	if g.hitObstacle() {
		g.lives--
		if g.lives <= 0 {
			g.enterGameOver()
			return
		}
		g.grace = g.cfg.Player.HurtGrace
	}
}

// steerPlayer applies jump and fast-fall input and keeps the runner
// pinned to its lane; the world scrolls, the player does not.
func (g *Game) steerPlayer() {
	if g.player == nil {
		return
	}

	// reset coyote window when grounded, count down when airborne
	if g.grounded > 0 {
		g.coyote = coyoteTimeFrames
	} else if g.coyote > 0 {
		g.coyote--
	}

	if g.input.JumpPressed && g.coyote > 0 {
		g.coyote = 0
		g.player.ApplyImpulse(0, -g.cfg.Player.JumpImpulse)
	}
	if g.input.FastFallPressed && g.grounded == 0 {
		g.player.ApplyImpulse(0, g.cfg.Player.FastFallImpulse)
	}
	if g.input.FastFallHeld && g.grounded == 0 {
		g.player.ApplyForce(0, g.cfg.Player.FastFallForce)
	}

	pos := g.player.Position()
	if pos.X != g.cfg.Player.StartX {
		g.player.SetPosition(physics.Vec{X: g.cfg.Player.StartX, Y: pos.Y})
	}
	if v := g.player.Velocity(); v.X != 0 {
		g.player.SetVelocity(0, v.Y)
	}
}

func (g *Game) hitObstacle() bool {
	return g.pool.CheckCollision(pool.CategoryPlayer, pool.CategoryGround) ||
		g.pool.CheckCollision(pool.CategoryPlayer, pool.CategoryRolling) ||
		g.pool.CheckCollision(pool.CategoryPlayer, pool.CategoryFlying)
}

func (g *Game) enterGameOver() {
	if g.score > g.best {
		g.best = g.score
	}
	g.overUI = NewGameOverUI(g)
	g.mode = ModeGameOver
	log.Printf("Game: run over after %.1fs (seed %d)", g.score, g.seed)
}

// drainWatcher applies pending edits to the tuning document or the
// wave script without blocking the frame.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyLiveEdit(ch)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: watcher error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) applyLiveEdit(ch tuning.Change) {
	switch ch.Kind {
	case tuning.ChangeScript:
		if err := g.director.Reload(); err != nil {
			log.Printf("Game: wave script reload failed: %v", err)
		}
	case tuning.ChangeTuning:
		cfg, err := tuning.LoadConfig()
		if err != nil {
			log.Printf("Game: tuning reload rejected: %v", err)
			return
		}
		if err := g.pool.Retune(cfg); err != nil {
			log.Printf("Game: pool retune rejected: %v", err)
			return
		}
		g.director.Retune(cfg)
		g.input.Retune(cfg.Gestures)
		g.world.SetGravity(cfg.World.Gravity)
		g.cfg = cfg
		log.Printf("Game: tuning reloaded from %s", ch.Path)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
