package director

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/d5/tengo/v2"

	"github.com/BrendanWorks/runnergame/common"
	"github.com/BrendanWorks/runnergame/pool"
	"github.com/BrendanWorks/runnergame/tuning"
)

// Sanity bounds on script-supplied wave intervals.
const (
	minWaveInterval = 0.05
	maxWaveInterval = 30
)

// Counts is the view of the pool the director and its script get to
// see when choosing what to spawn next.
type Counts interface {
	ActiveCount(pool.Category) int
	Capacity(pool.Category) int
}

// Director owns the spawn timing policy. When the wave script is
// available it decides both the category of each wave and the gap to
// the next one; otherwise a weighted ramp from the tuning document
// drives both. The director only picks, the game loop acquires.
type Director struct {
	cfg    *tuning.Config
	rng    *rand.Rand
	counts Counts
	script *waveScript

	elapsed float64
	since   float64
	nextIn  float64
}

// New builds a director. A nil cfg uses the shipped defaults; a nil
// rng falls back to a time seed, pass a seeded source for reproducible
// runs.
func New(cfg *tuning.Config, counts Counts, rng *rand.Rand) *Director {
	if cfg == nil {
		cfg = tuning.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d := &Director{cfg: cfg, rng: rng, counts: counts}
	script, err := newWaveScript()
	if err != nil {
		log.Printf("Director: wave script unavailable, using fallback pacing: %v", err)
	} else {
		d.script = script
	}
	d.nextIn = d.interval()
	return d
}

// Update advances the spawn clock by dt seconds. When a wave is due it
// returns the category to spawn; the caller acquires it and silently
// skips on pool exhaustion.
func (d *Director) Update(dt float64) (pool.Category, bool) {
	if d == nil {
		return 0, false
	}
	d.elapsed += dt
	d.since += dt
	if d.since < d.nextIn {
		return 0, false
	}
	d.since = 0
	c, ok := d.pick()
	d.nextIn = d.interval()
	return c, ok
}

// Reset restarts the pacing for a fresh run.
func (d *Director) Reset() {
	if d == nil {
		return
	}
	d.elapsed = 0
	d.since = 0
	d.script.resetState()
	d.nextIn = d.interval()
}

// Reload recompiles the wave script from disk. The previous script
// stays live when the new one fails to load.
func (d *Director) Reload() error {
	if d == nil {
		return nil
	}
	script, err := newWaveScript()
	if err != nil {
		return err
	}
	d.script = script
	log.Printf("Director: wave script reloaded")
	return nil
}

// Retune swaps the tuning document feeding pacing and script values.
func (d *Director) Retune(cfg *tuning.Config) {
	if d == nil || cfg == nil {
		return
	}
	d.cfg = cfg
}

func (d *Director) pick() (pool.Category, bool) {
	if d.script != nil {
		name, err := d.script.runPick(d.engine(), d.elapsed)
		if err != nil {
			log.Printf("Director: wave script pick failed, using fallback pacing: %v", err)
			d.script = nil
			return d.fallbackPick(), true
		}
		if name == "" {
			return 0, false
		}
		c, ok := pool.ParseCategory(name)
		if !ok || c == pool.CategoryPlayer {
			log.Printf("Director: wave script picked %q, skipping wave", name)
			return 0, false
		}
		return c, true
	}
	return d.fallbackPick(), true
}

func (d *Director) interval() float64 {
	if d == nil {
		return 0
	}
	if d.script != nil {
		v, err := d.script.runInterval(d.engine(), d.elapsed)
		if err != nil {
			log.Printf("Director: wave script interval failed, using fallback pacing: %v", err)
			d.script = nil
			return d.fallbackInterval()
		}
		return common.Clamp(v, minWaveInterval, maxWaveInterval)
	}
	return d.fallbackInterval()
}

// fallbackPick rolls the tuning weights. The player is never spawned
// by the director.
func (d *Director) fallbackPick() pool.Category {
	s := d.cfg.Spawn
	roll := d.rng.Float64() * (s.GroundWeight + s.RollingWeight + s.FlyingWeight)
	switch {
	case roll < s.GroundWeight:
		return pool.CategoryGround
	case roll < s.GroundWeight+s.RollingWeight:
		return pool.CategoryRolling
	default:
		return pool.CategoryFlying
	}
}

// fallbackInterval ramps the gap down linearly with run time, floored
// at the tuned minimum.
func (d *Director) fallbackInterval() float64 {
	s := d.cfg.Spawn
	return common.Clamp(s.BaseInterval-s.Ramp*d.elapsed, s.MinInterval, s.BaseInterval)
}

// engine builds the callable surface handed to the script. Rebuilt per
// call so retuned values are always current.
func (d *Director) engine() *tengo.ImmutableMap {
	s := d.cfg.Spawn
	values := map[string]tengo.Object{}

	values["rand"] = &tengo.UserFunction{Name: "rand", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: d.rng.Float64()}, nil
	}}

	values["active"] = &tengo.UserFunction{Name: "active", Value: func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := categoryArg(args)
		if !ok || d.counts == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(d.counts.ActiveCount(c))}, nil
	}}

	values["capacity"] = &tengo.UserFunction{Name: "capacity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := categoryArg(args)
		if !ok || d.counts == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(d.counts.Capacity(c))}, nil
	}}

	values["tuning"] = &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"base_interval":  &tengo.Float{Value: s.BaseInterval},
		"min_interval":   &tengo.Float{Value: s.MinInterval},
		"ramp":           &tengo.Float{Value: s.Ramp},
		"ground_weight":  &tengo.Float{Value: s.GroundWeight},
		"rolling_weight": &tengo.Float{Value: s.RollingWeight},
		"flying_weight":  &tengo.Float{Value: s.FlyingWeight},
	}}

	return &tengo.ImmutableMap{Value: values}
}

func categoryArg(args []tengo.Object) (pool.Category, bool) {
	if len(args) < 1 {
		return 0, false
	}
	return pool.ParseCategory(objectAsString(args[0]))
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
