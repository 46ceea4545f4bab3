package physics

import (
	"math"
	"testing"
)

const stepDt = 1.0 / 60.0

func TestBodyDefValidate(t *testing.T) {
	cases := []struct {
		name    string
		def     BodyDef
		wantErr bool
	}{
		{
			name:    "valid_box",
			def:     BodyDef{Shape: ShapeBox, Width: 40, Height: 56, Mass: 1, Motion: MotionDynamic, Kind: KindPlayer},
			wantErr: false,
		},
		{
			name:    "valid_circle",
			def:     BodyDef{Shape: ShapeCircle, Radius: 16, Mass: 1, Motion: MotionDynamic, Kind: KindObstacle},
			wantErr: false,
		},
		{
			name:    "valid_kinematic_no_mass",
			def:     BodyDef{Shape: ShapeBox, Width: 36, Height: 44, Motion: MotionKinematic, Kind: KindObstacle},
			wantErr: false,
		},
		{
			name:    "box_zero_width",
			def:     BodyDef{Shape: ShapeBox, Width: 0, Height: 44, Motion: MotionKinematic, Kind: KindObstacle},
			wantErr: true,
		},
		{
			name:    "circle_zero_radius",
			def:     BodyDef{Shape: ShapeCircle, Radius: 0, Mass: 1, Motion: MotionDynamic, Kind: KindObstacle},
			wantErr: true,
		},
		{
			name:    "dynamic_zero_mass",
			def:     BodyDef{Shape: ShapeCircle, Radius: 16, Mass: 0, Motion: MotionDynamic, Kind: KindObstacle},
			wantErr: true,
		},
		{
			name:    "missing_kind",
			def:     BodyDef{Shape: ShapeBox, Width: 40, Height: 56, Mass: 1, Motion: MotionDynamic},
			wantErr: true,
		},
		{
			name:    "negative_friction",
			def:     BodyDef{Shape: ShapeBox, Width: 40, Height: 56, Mass: 1, Motion: MotionDynamic, Kind: KindPlayer, Friction: -1},
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewBody(c.def)
			if c.wantErr && err == nil {
				t.Fatalf("expected error for def %+v, got nil", c.def)
			}
			if !c.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestKinematicBodyHoldsVelocity(t *testing.T) {
	w := NewWorld(2400)
	b, err := NewBody(BodyDef{Shape: ShapeBox, Width: 36, Height: 44, Motion: MotionKinematic, Kind: KindObstacle})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	b.SetPosition(Vec{X: 1000, Y: 600})
	b.SetVelocity(-240, 0)
	w.Insert(b)

	for i := 0; i < 60; i++ {
		w.Step(stepDt)
	}

	v := b.Velocity()
	if v.X != -240 || v.Y != 0 {
		t.Fatalf("expected kinematic velocity (-240, 0) after stepping, got (%g, %g)", v.X, v.Y)
	}
	p := b.Position()
	if math.Abs(p.X-760) > 1e-6 {
		t.Fatalf("expected X near 760 after one second at -240, got %g", p.X)
	}
	if p.Y != 600 {
		t.Fatalf("expected kinematic Y unchanged, got %g", p.Y)
	}
}

func TestDynamicBodyWithoutGravityHoldsAltitude(t *testing.T) {
	w := NewWorld(2400)
	b, err := NewBody(BodyDef{Shape: ShapeBox, Width: 40, Height: 28, Mass: 0.5, Motion: MotionDynamic, Gravity: false, FixedRotation: true, Kind: KindObstacle})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	b.SetPosition(Vec{X: 1100, Y: 480})
	b.SetVelocity(-300, 0)
	w.Insert(b)

	for i := 0; i < 120; i++ {
		w.Step(stepDt)
	}

	if v := b.Velocity(); math.Abs(v.Y) > 1e-6 {
		t.Fatalf("expected zero vertical velocity with gravity off, got %g", v.Y)
	}
	if p := b.Position(); math.Abs(p.Y-480) > 1e-6 {
		t.Fatalf("expected altitude held at 480, got %g", p.Y)
	}
}

func TestDynamicBodyWithGravityFalls(t *testing.T) {
	w := NewWorld(2400)
	b, err := NewBody(BodyDef{Shape: ShapeCircle, Radius: 16, Mass: 1, Motion: MotionDynamic, Gravity: true, Kind: KindObstacle})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	b.SetPosition(Vec{X: 600, Y: 100})
	w.Insert(b)

	for i := 0; i < 30; i++ {
		w.Step(stepDt)
	}

	if v := b.Velocity(); v.Y <= 0 {
		t.Fatalf("expected downward velocity under gravity, got %g", v.Y)
	}
	if p := b.Position(); p.Y <= 100 {
		t.Fatalf("expected body to fall below start, got %g", p.Y)
	}
}

func TestInsertRemoveIdempotent(t *testing.T) {
	w := NewWorld(2400)
	b, err := NewBody(BodyDef{Shape: ShapeCircle, Radius: 16, Mass: 1, Motion: MotionDynamic, Kind: KindObstacle})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}

	if b.InWorld() {
		t.Fatalf("new body should not be in world")
	}
	w.Insert(b)
	w.Insert(b) // second insert must not reach the engine
	if !b.InWorld() {
		t.Fatalf("body should be in world after insert")
	}
	w.Remove(b)
	w.Remove(b)
	if b.InWorld() {
		t.Fatalf("body should not be in world after remove")
	}
	w.Step(stepDt)
}

func TestFloorContactCallbacks(t *testing.T) {
	w := NewWorld(2400)
	w.AddFloor(Vec{X: 0, Y: 700}, Vec{X: 1200, Y: 700}, 0.9)

	b, err := NewBody(BodyDef{Shape: ShapeBox, Width: 40, Height: 56, Mass: 1, Motion: MotionDynamic, Gravity: true, FixedRotation: true, Friction: 0.9, Kind: KindPlayer})
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	b.SetPosition(Vec{X: 600, Y: 600})
	w.Insert(b)

	begins := 0
	w.HandleContact(KindPlayer, KindFloor, func() bool {
		begins++
		return true
	}, nil)

	for i := 0; i < 300 && begins == 0; i++ {
		w.Step(stepDt)
	}
	if begins == 0 {
		t.Fatalf("expected floor contact to begin within five seconds of falling")
	}
	if p := b.Position(); p.Y > 700 {
		t.Fatalf("expected body to rest on floor, got Y=%g", p.Y)
	}
}
