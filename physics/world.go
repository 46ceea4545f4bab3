package physics

import (
	"github.com/jakecoffman/cp"
)

// World owns the engine space. All bodies that should collide or move
// must be inserted into the same World; the shell advances it once per
// frame with Step. A World is not safe for concurrent use.
type World struct {
	space   *cp.Space
	gravity float64
}

// NewWorld builds an empty space. gravity is the downward acceleration
// in pixels per second squared applied to dynamic bodies.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &World{space: space, gravity: gravity}
}

// Gravity returns the current downward acceleration.
func (w *World) Gravity() float64 {
	if w == nil {
		return 0
	}
	return w.gravity
}

// SetGravity replaces the downward acceleration for subsequent steps.
func (w *World) SetGravity(g float64) {
	if w == nil || w.space == nil {
		return
	}
	w.gravity = g
	w.space.SetGravity(cp.Vector{X: 0, Y: g})
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

// Insert adds the body and its shape to the space. Inserting a body that
// is already in the world is a no-op; the engine asserts on double adds.
func (w *World) Insert(b *Body) {
	if w == nil || w.space == nil || b == nil || b.inWorld {
		return
	}
	w.space.AddBody(b.body)
	w.space.AddShape(b.shape)
	b.inWorld = true
}

// Remove takes the body and its shape out of the space. Removing a body
// that is not in the world is a no-op.
func (w *World) Remove(b *Body) {
	if w == nil || w.space == nil || b == nil || !b.inWorld {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	b.inWorld = false
}

// AddFloor attaches a static segment between a and b to the space. The
// segment carries KindFloor so contact handlers can route on it.
func (w *World) AddFloor(a, b Vec, friction float64) {
	if w == nil || w.space == nil {
		return
	}
	seg := cp.NewSegment(w.space.StaticBody, a, b, 1)
	seg.SetFriction(friction)
	seg.SetElasticity(0)
	seg.SetCollisionType(cp.CollisionType(KindFloor))
	w.space.AddShape(seg)
}

// HandleContact registers callbacks for contacts between the two kinds.
// begin runs when a contact starts and its return value decides whether
// the engine resolves the contact; separate runs when it ends. Either
// callback may be nil.
func (w *World) HandleContact(a, b Kind, begin func() bool, separate func()) {
	if w == nil || w.space == nil {
		return
	}
	handler := w.space.NewCollisionHandler(cp.CollisionType(a), cp.CollisionType(b))
	if begin != nil {
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			return begin()
		}
	}
	if separate != nil {
		handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			separate()
		}
	}
}
