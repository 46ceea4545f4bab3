package pool

import (
	"testing"

	"github.com/BrendanWorks/runnergame/physics"
)

// Default bodies: player box 40x56 (radius 28), ground box 36x44
// (radius 22), rolling circle r16, flying box 40x28 (radius 20).

func TestCheckCollisionOverlap(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		want     bool
	}{
		// player vs ground separation threshold is (28+22)*0.8 = 40
		{"deep_overlap", 11, true},
		{"just_inside_threshold", 39.9, true},
		{"at_threshold", 40, false},
		{"touching_but_tolerated", 45, false},
		{"far_apart", 400, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, _ := newTestPool(t, 1)
			player, ok := p.Acquire(CategoryPlayer)
			if !ok {
				t.Fatalf("acquire player should succeed")
			}
			ground, ok := p.Acquire(CategoryGround)
			if !ok {
				t.Fatalf("acquire ground should succeed")
			}
			player.SetPosition(physics.Vec{X: 600, Y: 640})
			ground.SetPosition(physics.Vec{X: 600 + c.distance, Y: 640})

			if got := p.CheckCollision(CategoryPlayer, CategoryGround); got != c.want {
				t.Fatalf("distance %g: got %v, want %v", c.distance, got, c.want)
			}
		})
	}
}

func TestCheckCollisionSymmetry(t *testing.T) {
	p, _ := newTestPool(t, 3)

	player, _ := p.Acquire(CategoryPlayer)
	player.SetPosition(physics.Vec{X: 300, Y: 640})
	g, _ := p.Acquire(CategoryGround)
	g.SetPosition(physics.Vec{X: 320, Y: 650})
	r, _ := p.Acquire(CategoryRolling)
	r.SetPosition(physics.Vec{X: 800, Y: 680})
	f, _ := p.Acquire(CategoryFlying)
	f.SetPosition(physics.Vec{X: 805, Y: 670})

	for _, a := range Categories() {
		for _, b := range Categories() {
			ab := p.CheckCollision(a, b)
			ba := p.CheckCollision(b, a)
			if ab != ba {
				t.Fatalf("asymmetric result for (%s, %s): %v vs %v", a, b, ab, ba)
			}
		}
	}

	if !p.CheckCollision(CategoryPlayer, CategoryGround) {
		t.Fatalf("expected player/ground overlap to register")
	}
	if !p.CheckCollision(CategoryRolling, CategoryFlying) {
		t.Fatalf("expected rolling/flying overlap to register")
	}
	if p.CheckCollision(CategoryPlayer, CategoryRolling) {
		t.Fatalf("distant pair should not register")
	}
}

func TestCheckCollisionExcludesSelfPairs(t *testing.T) {
	p, _ := newTestPool(t, 1)

	if _, ok := p.Acquire(CategoryRolling); !ok {
		t.Fatalf("acquire should succeed")
	}
	if p.CheckCollision(CategoryRolling, CategoryRolling) {
		t.Fatalf("single body must not collide with itself")
	}

	// a genuine same-category pair at the shared spawn point does overlap
	if _, ok := p.Acquire(CategoryRolling); !ok {
		t.Fatalf("second acquire should succeed")
	}
	if !p.CheckCollision(CategoryRolling, CategoryRolling) {
		t.Fatalf("two co-located rolling bodies should collide")
	}
}

func TestCheckCollisionEmptyCategories(t *testing.T) {
	p, _ := newTestPool(t, 1)

	if p.CheckCollision(CategoryPlayer, CategoryGround) {
		t.Fatalf("empty pool should report no collisions")
	}
	if _, ok := p.Acquire(CategoryPlayer); !ok {
		t.Fatalf("acquire should succeed")
	}
	if p.CheckCollision(CategoryPlayer, CategoryGround) {
		t.Fatalf("empty opposing category should report no collision")
	}
}

func TestEffectiveRadius(t *testing.T) {
	p, cfg := newTestPool(t, 1)

	r, _ := p.Acquire(CategoryRolling)
	if got := effectiveRadius(r); got != cfg.Rolling.Radius {
		t.Fatalf("expected circle radius %g, got %g", cfg.Rolling.Radius, got)
	}

	player, _ := p.Acquire(CategoryPlayer)
	if got := effectiveRadius(player); got != cfg.Player.Height/2 {
		t.Fatalf("expected half the taller box dimension %g, got %g", cfg.Player.Height/2, got)
	}

	f, _ := p.Acquire(CategoryFlying)
	if got := effectiveRadius(f); got != cfg.Flying.Width/2 {
		t.Fatalf("expected half the wider box dimension %g, got %g", cfg.Flying.Width/2, got)
	}
}
