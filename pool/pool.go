package pool

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/BrendanWorks/runnergame/physics"
	"github.com/BrendanWorks/runnergame/tuning"
)

// Parked bodies sit at this off-world point until acquired.
const (
	parkX = -100
	parkY = -100
)

type entity struct {
	body      *physics.Body
	category  Category
	slot      int
	inUse     bool
	activeIdx int // position in the active slice, -1 when free
}

// Pool owns a fixed set of pre-built physics bodies per category and
// recycles them across spawn and despawn cycles. Construction is the
// only allocation; acquire and release just move bodies in and out of
// the physics world. A Pool is not safe for concurrent use; one
// simulation goroutine owns it.
type Pool struct {
	world   *physics.World
	cfg     *tuning.Config
	rng     *rand.Rand
	slots   [categoryCount][]*entity
	active  []*entity
	byBody  map[*physics.Body]*entity
	counts  [categoryCount]int
	scratch []*physics.Body
}

// New pre-builds every body parked off-world. Bodies enter the physics
// world only while acquired, so the simulation's working set tracks
// what is on screen rather than pool capacity. A nil cfg uses the
// shipped defaults; a nil rng falls back to a time seed, pass a seeded
// source for reproducible runs.
func New(world *physics.World, cfg *tuning.Config, rng *rand.Rand) (*Pool, error) {
	if world == nil {
		return nil, fmt.Errorf("pool: nil world")
	}
	if cfg == nil {
		cfg = tuning.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p := &Pool{
		world:  world,
		cfg:    cfg,
		rng:    rng,
		byBody: make(map[*physics.Body]*entity),
	}
	total := 0
	for _, c := range Categories() {
		capacity := capacityFor(c, cfg)
		def := categoryDef(c, cfg)
		slots := make([]*entity, 0, capacity)
		for i := 0; i < capacity; i++ {
			body, err := physics.NewBody(def)
			if err != nil {
				return nil, fmt.Errorf("pool: build %s body %d: %w", c, i, err)
			}
			body.SetPosition(physics.Vec{X: parkX, Y: parkY})
			e := &entity{body: body, category: c, slot: i, activeIdx: -1}
			slots = append(slots, e)
			p.byBody[body] = e
		}
		p.slots[c] = slots
		total += capacity
	}
	p.active = make([]*entity, 0, total)
	p.scratch = make([]*physics.Body, 0, total)
	return p, nil
}

// Acquire checks out the first free slot of the category, applies the
// category spawn transform, and inserts the body into the physics
// world. The second result is false when the category is fully in use;
// callers skip the spawn that tick rather than treat it as an error.
func (p *Pool) Acquire(c Category) (*physics.Body, bool) {
	if p == nil || p.world == nil || !c.Valid() {
		return nil, false
	}
	for _, e := range p.slots[c] {
		if e.inUse {
			continue
		}
		e.inUse = true
		e.activeIdx = len(p.active)
		p.active = append(p.active, e)
		p.counts[c]++
		p.place(e)
		p.world.Insert(e.body)
		return e.body, true
	}
	return nil, false
}

// Release returns the body's slot to the free pool: the transform is
// zeroed, the body parked off-world and removed from the physics world.
// Releasing a body that is not active is a no-op, so double releases
// from overlapping cleanup paths are harmless.
func (p *Pool) Release(body *physics.Body) {
	if p == nil || p.world == nil || body == nil {
		return
	}
	e, ok := p.byBody[body]
	if !ok || !e.inUse {
		return
	}
	e.inUse = false
	body.SetPosition(physics.Vec{X: parkX, Y: parkY})
	body.SetVelocity(0, 0)
	body.SetAngularVelocity(0)
	body.SetAngle(0)
	p.world.Remove(body)

	last := len(p.active) - 1
	idx := e.activeIdx
	p.active[idx] = p.active[last]
	p.active[idx].activeIdx = idx
	p.active[last] = nil
	p.active = p.active[:last]
	e.activeIdx = -1
	p.counts[e.category]--
}

// ReclaimOffscreen releases every active body outside the viewport plus
// the cleanup margin on the left, right, and bottom. Bodies above the
// top edge stay live so jump arcs are never culled. Candidates are
// collected first and released after, keeping the sweep stable while
// the active set shrinks.
func (p *Pool) ReclaimOffscreen(width, height float64) {
	if p == nil || p.world == nil {
		return
	}
	margin := p.cfg.Cleanup.Margin
	p.scratch = p.scratch[:0]
	for _, e := range p.active {
		pos := e.body.Position()
		if pos.X < -margin || pos.X > width+margin || pos.Y > height+margin {
			p.scratch = append(p.scratch, e.body)
		}
	}
	for _, b := range p.scratch {
		p.Release(b)
	}
}

// Clear releases every active body. After a clear the active set is
// empty and every slot in every category is free.
func (p *Pool) Clear() {
	if p == nil || p.world == nil {
		return
	}
	p.scratch = p.scratch[:0]
	for _, e := range p.active {
		p.scratch = append(p.scratch, e.body)
	}
	for _, b := range p.scratch {
		p.Release(b)
	}
}

// ActiveCount returns the number of in-use slots for one category.
func (p *Pool) ActiveCount(c Category) int {
	if p == nil || !c.Valid() {
		return 0
	}
	return p.counts[c]
}

// ActiveTotal returns the number of in-use slots across all categories.
func (p *Pool) ActiveTotal() int {
	if p == nil {
		return 0
	}
	return len(p.active)
}

// FreeCount returns the number of free slots for one category.
func (p *Pool) FreeCount(c Category) int {
	if p == nil || !c.Valid() {
		return 0
	}
	return len(p.slots[c]) - p.counts[c]
}

// Capacity returns the fixed slot count for one category.
func (p *Pool) Capacity(c Category) int {
	if p == nil || !c.Valid() {
		return 0
	}
	return len(p.slots[c])
}

// ForEachActive visits every in-use body in active-set order. Callers
// must not acquire or release during the walk.
func (p *Pool) ForEachActive(fn func(*physics.Body, Category)) {
	if p == nil || fn == nil {
		return
	}
	for _, e := range p.active {
		fn(e.body, e.category)
	}
}

// Retune swaps the live tuning values: spawn placement, speeds, cleanup
// margin, and collision tolerance take effect immediately. Capacities
// and body shapes are fixed at construction and ignored here.
func (p *Pool) Retune(cfg *tuning.Config) error {
	if p == nil || cfg == nil {
		return fmt.Errorf("pool: nil retune config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg = cfg
	return nil
}
