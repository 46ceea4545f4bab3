package pool

import (
	"github.com/BrendanWorks/runnergame/common"
	"github.com/BrendanWorks/runnergame/physics"
	"github.com/BrendanWorks/runnergame/tuning"
)

// Rolling spawns this far above its resting contact so a fresh body
// never starts interpenetrating the floor segment.
const rollingLift = 6.0

// categoryDef builds the closed body config for one category. Ground
// obstacles are kinematic: they ride their set velocity and ignore
// forces, which is what a moving platform-style obstacle needs. Flying
// obstacles are dynamic with gravity pinned off so vertical drift from
// spawn jitter persists.
func categoryDef(c Category, cfg *tuning.Config) physics.BodyDef {
	switch c {
	case CategoryPlayer:
		return physics.BodyDef{
			Shape:         physics.ShapeBox,
			Width:         cfg.Player.Width,
			Height:        cfg.Player.Height,
			Mass:          cfg.Player.Mass,
			Motion:        physics.MotionDynamic,
			Gravity:       true,
			FixedRotation: true,
			Friction:      cfg.Player.Friction,
			Kind:          physics.KindPlayer,
			RenderKey:     "player",
		}
	case CategoryGround:
		return physics.BodyDef{
			Shape:     physics.ShapeBox,
			Width:     cfg.Ground.Width,
			Height:    cfg.Ground.Height,
			Motion:    physics.MotionKinematic,
			Friction:  cfg.Ground.Friction,
			Kind:      physics.KindObstacle,
			RenderKey: "ground",
		}
	case CategoryRolling:
		return physics.BodyDef{
			Shape:      physics.ShapeCircle,
			Radius:     cfg.Rolling.Radius,
			Mass:       cfg.Rolling.Mass,
			Motion:     physics.MotionDynamic,
			Gravity:    true,
			Friction:   cfg.Rolling.Friction,
			Elasticity: cfg.Rolling.Elasticity,
			Kind:       physics.KindObstacle,
			RenderKey:  "rolling",
		}
	case CategoryFlying:
		return physics.BodyDef{
			Shape:         physics.ShapeBox,
			Width:         cfg.Flying.Width,
			Height:        cfg.Flying.Height,
			Mass:          cfg.Flying.Mass,
			Motion:        physics.MotionDynamic,
			Gravity:       false,
			FixedRotation: true,
			Kind:          physics.KindObstacle,
			RenderKey:     "flying",
		}
	}
	return physics.BodyDef{}
}

func capacityFor(c Category, cfg *tuning.Config) int {
	switch c {
	case CategoryPlayer:
		return 1
	case CategoryGround:
		return cfg.Ground.Capacity
	case CategoryRolling:
		return cfg.Rolling.Capacity
	case CategoryFlying:
		return cfg.Flying.Capacity
	}
	return 0
}

// place applies the category spawn transform to a freshly acquired
// body. Obstacles enter just past the right edge, inside the cleanup
// margin, moving leftward. Flying draws its height and vertical drift
// from the pool's random source, height first.
func (p *Pool) place(e *entity) {
	cfg := p.cfg
	spawnX := float64(cfg.Window.Width) + cfg.Spawn.XOffset
	switch e.category {
	case CategoryPlayer:
		e.body.SetPosition(physics.Vec{X: cfg.Player.StartX, Y: cfg.Player.StartY})
		e.body.SetVelocity(0, 0)
	case CategoryGround:
		y := cfg.World.FloorY - cfg.Ground.Height/2
		e.body.SetPosition(physics.Vec{X: spawnX, Y: y})
		e.body.SetVelocity(-cfg.Ground.Speed, 0)
	case CategoryRolling:
		y := cfg.World.FloorY - cfg.Rolling.Radius - rollingLift
		e.body.SetPosition(physics.Vec{X: spawnX, Y: y})
		e.body.SetVelocity(-cfg.Rolling.Speed, 0)
		e.body.SetAngularVelocity(cfg.Rolling.Spin)
	case CategoryFlying:
		y := common.Lerp(cfg.Flying.MinY, cfg.Flying.MaxY, p.rng.Float64())
		vy := (p.rng.Float64()*2 - 1) * cfg.Flying.VyJitter
		e.body.SetPosition(physics.Vec{X: spawnX, Y: y})
		e.body.SetVelocity(-cfg.Flying.Speed, vy)
	}
}
