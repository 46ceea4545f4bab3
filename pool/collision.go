package pool

import (
	"github.com/BrendanWorks/runnergame/physics"
)

// CheckCollision reports whether any active body of category a sits
// within the approximate separation distance of any active body of
// category b. The test is symmetric in a and b, a body is never tested
// against itself, and the first hit short-circuits the scan.
func (p *Pool) CheckCollision(a, b Category) bool {
	if p == nil || p.world == nil || !a.Valid() || !b.Valid() {
		return false
	}
	tolerance := p.cfg.Collision.Tolerance
	for _, ea := range p.active {
		if ea.category != a {
			continue
		}
		for _, eb := range p.active {
			if eb.category != b || ea == eb {
				continue
			}
			if approxHit(ea.body, eb.body, tolerance) {
				return true
			}
		}
	}
	return false
}

// effectiveRadius coarsens a body to a circle: the real radius for
// circle shapes, half the larger box dimension otherwise.
func effectiveRadius(b *physics.Body) float64 {
	if r, ok := b.CircleRadius(); ok {
		return r
	}
	w, h := b.Size()
	if w > h {
		return w / 2
	}
	return h / 2
}

// approxHit compares squared center distance against the tolerance-
// scaled sum of effective radii. Coarse on purpose: it gates gameplay
// events only; solid contact response stays with the physics engine.
func approxHit(a, b *physics.Body, tolerance float64) bool {
	pa := a.Position()
	pb := b.Position()
	dx := pa.X - pb.X
	dy := pa.Y - pb.Y
	minSep := (effectiveRadius(a) + effectiveRadius(b)) * tolerance
	return dx*dx+dy*dy < minSep*minSep
}
