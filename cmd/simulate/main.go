package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/BrendanWorks/runnergame/director"
	"github.com/BrendanWorks/runnergame/physics"
	"github.com/BrendanWorks/runnergame/pool"
	"github.com/BrendanWorks/runnergame/tuning"
)

const simStep = 1.0 / 60.0

// sim drives the full gameplay stack without a window: director pacing,
// pool churn, physics stepping, and collision checks, with a dumb
// autopilot on the stick. Useful for soaking tuning changes.
type sim struct {
	cfg      *tuning.Config
	world    *physics.World
	pool     *pool.Pool
	director *director.Director

	player   *physics.Body
	grounded int

	spawned [4]int
	skipped int
	runLen  float64
	runs    []float64
}

func newSim(seed int64, cfg *tuning.Config) *sim {
	world := physics.NewWorld(cfg.World.Gravity)
	world.AddFloor(
		physics.Vec{X: -300, Y: cfg.World.FloorY},
		physics.Vec{X: float64(cfg.Window.Width) + 300, Y: cfg.World.FloorY},
		cfg.World.FloorFriction,
	)

	p, err := pool.New(world, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatalf("simulate: build pool: %v", err)
	}

	s := &sim{
		cfg:      cfg,
		world:    world,
		pool:     p,
		director: director.New(cfg, p, rand.New(rand.NewSource(seed+1))),
	}
	world.HandleContact(physics.KindPlayer, physics.KindFloor,
		func() bool {
			s.grounded++
			return true
		},
		func() {
			s.grounded--
		},
	)
	s.startRun()
	return s
}

func (s *sim) startRun() {
	s.pool.Clear()
	s.director.Reset()
	player, ok := s.pool.Acquire(pool.CategoryPlayer)
	if !ok {
		log.Fatal("simulate: player slot unavailable")
	}
	s.player = player
	s.grounded = 0
	s.runLen = 0
}

func (s *sim) step() {
	if c, ok := s.director.Update(simStep); ok {
		if _, acquired := s.pool.Acquire(c); acquired {
			s.spawned[c]++
		} else {
			s.skipped++
		}
	}

	s.autopilot()
	s.world.Step(simStep)
	s.pool.ReclaimOffscreen(float64(s.cfg.Window.Width), float64(s.cfg.Window.Height))
	s.runLen += simStep

	if s.hit() {
		s.runs = append(s.runs, s.runLen)
		s.startRun()
	}
}

// autopilot jumps at ground-level threats and fast-falls out from under
// flyers. It loses eventually, which is the point: death exercises the
// clear-and-restart path.
func (s *sim) autopilot() {
	px := s.cfg.Player.StartX
	lowThreat := false
	overhead := false
	s.pool.ForEachActive(func(b *physics.Body, c pool.Category) {
		if c == pool.CategoryPlayer {
			return
		}
		pos := b.Position()
		dx := pos.X - px
		if c == pool.CategoryFlying {
			if dx > -40 && dx < 80 {
				overhead = true
			}
			return
		}
		if dx > 0 && dx < 150 {
			lowThreat = true
		}
	})

	if lowThreat && s.grounded > 0 {
		s.player.ApplyImpulse(0, -s.cfg.Player.JumpImpulse)
	}
	if overhead && s.grounded == 0 {
		s.player.ApplyImpulse(0, s.cfg.Player.FastFallImpulse)
	}

	pos := s.player.Position()
	if pos.X != px {
		s.player.SetPosition(physics.Vec{X: px, Y: pos.Y})
	}
	if v := s.player.Velocity(); v.X != 0 {
		s.player.SetVelocity(0, v.Y)
	}
}

func (s *sim) hit() bool {
	return s.pool.CheckCollision(pool.CategoryPlayer, pool.CategoryGround) ||
		s.pool.CheckCollision(pool.CategoryPlayer, pool.CategoryRolling) ||
		s.pool.CheckCollision(pool.CategoryPlayer, pool.CategoryFlying)
}

func (s *sim) checkConservation() {
	for _, c := range pool.Categories() {
		got := s.pool.ActiveCount(c) + s.pool.FreeCount(c)
		if got != s.pool.Capacity(c) {
			log.Fatalf("simulate: %s slots leaked: active+free = %d, capacity = %d",
				c, got, s.pool.Capacity(c))
		}
	}
}

func main() {
	seed := flag.Int64("seed", 0, "fixed run seed (0 picks one from the clock)")
	seconds := flag.Float64("seconds", 120, "simulated seconds to run")
	flag.Parse()

	cfg, err := tuning.LoadConfig()
	if err != nil {
		log.Printf("simulate: %v, using built-in tuning", err)
		cfg = tuning.Default()
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("simulate: seed %d, %.0fs at %d Hz", *seed, *seconds, 60)

	s := newSim(*seed, cfg)
	steps := int(*seconds / simStep)
	for i := 0; i < steps; i++ {
		s.step()
		if i%600 == 0 {
			s.checkConservation()
		}
	}
	s.runs = append(s.runs, s.runLen)
	s.checkConservation()

	var longest, total float64
	for _, r := range s.runs {
		total += r
		if r > longest {
			longest = r
		}
	}
	log.Printf("simulate: %d runs, longest %.1fs, mean %.1fs", len(s.runs), longest, total/float64(len(s.runs)))
	log.Printf("simulate: spawns ground=%d rolling=%d flying=%d, skipped=%d",
		s.spawned[pool.CategoryGround], s.spawned[pool.CategoryRolling], s.spawned[pool.CategoryFlying], s.skipped)
	log.Printf("simulate: ok")
}
