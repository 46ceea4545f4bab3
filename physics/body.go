package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Vec is the 2D vector type shared with the underlying engine.
// Coordinates are screen-style: x grows rightward, y grows downward.
type Vec = cp.Vector

// ShapeKind selects the collision shape built for a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	}
	return "unknown"
}

// MotionKind selects how the engine integrates a body.
type MotionKind int

const (
	// MotionDynamic bodies respond to gravity, forces, and contacts.
	MotionDynamic MotionKind = iota
	// MotionKinematic bodies move with their set velocity and ignore forces.
	MotionKinematic
	// MotionStatic bodies never move.
	MotionStatic
)

func (k MotionKind) String() string {
	switch k {
	case MotionDynamic:
		return "dynamic"
	case MotionKinematic:
		return "kinematic"
	case MotionStatic:
		return "static"
	}
	return "unknown"
}

// Kind tags bodies and static geometry for contact handler routing.
type Kind cp.CollisionType

const (
	KindFloor Kind = iota + 1
	KindPlayer
	KindObstacle
)

// BodyDef is the closed construction config for a rigid body. Every field
// is fixed at construction; a def is validated before any engine resource
// is created.
type BodyDef struct {
	Shape  ShapeKind
	Width  float64 // box dimensions, pixels
	Height float64
	Radius float64 // circle radius, pixels

	Mass          float64 // dynamic bodies only
	Motion        MotionKind
	Gravity       bool // dynamic bodies only; false pins vertical motion to the set velocity
	FixedRotation bool

	Friction   float64
	Elasticity float64

	Kind      Kind
	RenderKey string // hint for the renderer, opaque to physics
}

// Validate reports the first construction problem in the def.
func (d BodyDef) Validate() error {
	switch d.Shape {
	case ShapeBox:
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("physics: box def needs positive dimensions, got %gx%g", d.Width, d.Height)
		}
	case ShapeCircle:
		if d.Radius <= 0 {
			return fmt.Errorf("physics: circle def needs positive radius, got %g", d.Radius)
		}
	default:
		return fmt.Errorf("physics: unknown shape kind %d", d.Shape)
	}
	switch d.Motion {
	case MotionDynamic:
		if d.Mass <= 0 {
			return fmt.Errorf("physics: dynamic def needs positive mass, got %g", d.Mass)
		}
	case MotionKinematic, MotionStatic:
	default:
		return fmt.Errorf("physics: unknown motion kind %d", d.Motion)
	}
	if d.Friction < 0 {
		return fmt.Errorf("physics: negative friction %g", d.Friction)
	}
	if d.Elasticity < 0 {
		return fmt.Errorf("physics: negative elasticity %g", d.Elasticity)
	}
	if d.Kind == 0 {
		return fmt.Errorf("physics: def needs a collision kind")
	}
	return nil
}

// Body wraps an engine rigid body and its collision shape. A Body exists
// for the life of the process; only its transform and world membership
// change. Bodies are not safe for concurrent use.
type Body struct {
	def     BodyDef
	body    *cp.Body
	shape   *cp.Shape
	inWorld bool
}

// NewBody builds the engine body and shape described by def. The body is
// not inserted into any world.
func NewBody(def BodyDef) (*Body, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	var body *cp.Body
	switch def.Motion {
	case MotionStatic:
		body = cp.NewStaticBody()
	case MotionKinematic:
		body = cp.NewKinematicBody()
	default:
		var moment float64
		if def.Shape == ShapeCircle {
			moment = cp.MomentForCircle(def.Mass, 0, def.Radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(def.Mass, def.Width, def.Height)
		}
		if def.FixedRotation {
			moment = math.Inf(1)
		}
		body = cp.NewBody(def.Mass, moment)
	}
	body.SetAngle(0)

	var shape *cp.Shape
	if def.Shape == ShapeCircle {
		shape = cp.NewCircle(body, def.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, def.Width, def.Height, 0)
	}
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetCollisionType(cp.CollisionType(def.Kind))

	if def.Motion == MotionDynamic && !def.Gravity {
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(b, cp.Vector{}, damping, dt)
		})
	}

	return &Body{def: def, body: body, shape: shape}, nil
}

// Def returns the construction config.
func (b *Body) Def() BodyDef {
	if b == nil {
		return BodyDef{}
	}
	return b.def
}

// Kind returns the contact routing tag.
func (b *Body) Kind() Kind {
	if b == nil {
		return 0
	}
	return b.def.Kind
}

// RenderKey returns the renderer hint set at construction.
func (b *Body) RenderKey() string {
	if b == nil {
		return ""
	}
	return b.def.RenderKey
}

// Position returns the body center in world coordinates.
func (b *Body) Position() Vec {
	if b == nil || b.body == nil {
		return Vec{}
	}
	return b.body.Position()
}

// SetPosition teleports the body center.
func (b *Body) SetPosition(p Vec) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(p)
}

// Velocity returns the linear velocity in pixels per second.
func (b *Body) Velocity() Vec {
	if b == nil || b.body == nil {
		return Vec{}
	}
	return b.body.Velocity()
}

// SetVelocity replaces the linear velocity.
func (b *Body) SetVelocity(vx, vy float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetVelocity(vx, vy)
}

// AngularVelocity returns the spin in radians per second.
func (b *Body) AngularVelocity() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.AngularVelocity()
}

// SetAngularVelocity replaces the spin.
func (b *Body) SetAngularVelocity(w float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetAngularVelocity(w)
}

// Angle returns the body rotation in radians.
func (b *Body) Angle() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Angle()
}

// SetAngle replaces the body rotation.
func (b *Body) SetAngle(a float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetAngle(a)
}

// ApplyImpulse adds an instantaneous momentum change at the body center.
func (b *Body) ApplyImpulse(ix, iy float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.ApplyImpulseAtLocalPoint(cp.Vector{X: ix, Y: iy}, cp.Vector{})
}

// ApplyForce accumulates a force at the body center for the next step.
func (b *Body) ApplyForce(fx, fy float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.ApplyForceAtLocalPoint(cp.Vector{X: fx, Y: fy}, cp.Vector{})
}

// CircleRadius returns the collision radius when the body is circular.
func (b *Body) CircleRadius() (float64, bool) {
	if b == nil || b.def.Shape != ShapeCircle {
		return 0, false
	}
	return b.def.Radius, true
}

// Size returns the bounding box dimensions of the collision shape.
func (b *Body) Size() (width, height float64) {
	if b == nil {
		return 0, 0
	}
	if b.def.Shape == ShapeCircle {
		d := b.def.Radius * 2
		return d, d
	}
	return b.def.Width, b.def.Height
}

// InWorld reports whether the body is currently part of a live world.
func (b *Body) InWorld() bool {
	return b != nil && b.inWorld
}
