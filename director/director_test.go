package director

import (
	"math/rand"
	"testing"

	"github.com/BrendanWorks/runnergame/pool"
	"github.com/BrendanWorks/runnergame/tuning"
)

type fakeCounts struct {
	active   map[pool.Category]int
	capacity map[pool.Category]int
}

func (f fakeCounts) ActiveCount(c pool.Category) int { return f.active[c] }
func (f fakeCounts) Capacity(c pool.Category) int    { return f.capacity[c] }

func testCounts() fakeCounts {
	return fakeCounts{
		active: map[pool.Category]int{},
		capacity: map[pool.Category]int{
			pool.CategoryGround:  10,
			pool.CategoryRolling: 10,
			pool.CategoryFlying:  8,
		},
	}
}

func TestEmbeddedWaveScriptLoads(t *testing.T) {
	ws, err := newWaveScript()
	if err != nil {
		t.Fatalf("embedded wave script should load, got %v", err)
	}
	if ws == nil {
		t.Fatalf("expected a live script")
	}

	d := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(1)))
	if d.script == nil {
		t.Fatalf("director should run with the embedded script")
	}
}

func TestUpdateCadence(t *testing.T) {
	d := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		if c, ok := d.Update(0.1); ok {
			t.Fatalf("wave fired after only %g seconds: %s", float64(i+1)*0.1, c)
		}
	}

	fired := false
	for i := 0; i < 15 && !fired; i++ {
		_, fired = d.Update(0.1)
	}
	if !fired {
		t.Fatalf("expected a wave within the base interval")
	}
}

func TestEarlyWavesAreGroundOnly(t *testing.T) {
	d := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(9)))

	elapsed := 0.0
	for elapsed < 7.5 {
		c, ok := d.Update(0.05)
		elapsed += 0.05
		if ok && c != pool.CategoryGround {
			t.Fatalf("expected only ground waves in the opening stretch, got %s at %gs", c, elapsed)
		}
	}
}

func TestWavesAreDeterministicUnderSeed(t *testing.T) {
	d1 := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(1234)))
	d2 := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(1234)))

	sawFlying := false
	for i := 0; i < 4000; i++ {
		c1, ok1 := d1.Update(0.05)
		c2, ok2 := d2.Update(0.05)
		if ok1 != ok2 || c1 != c2 {
			t.Fatalf("step %d diverged: (%v %v) vs (%v %v)", i, c1, ok1, c2, ok2)
		}
		if !ok1 {
			continue
		}
		switch c1 {
		case pool.CategoryGround, pool.CategoryRolling, pool.CategoryFlying:
		default:
			t.Fatalf("step %d: director picked %s", i, c1)
		}
		if c1 == pool.CategoryFlying {
			sawFlying = true
		}
	}
	if !sawFlying {
		t.Fatalf("expected at least one flying wave over 200 seconds")
	}
}

func TestExhaustedPoolKeepsPacingWaves(t *testing.T) {
	full := map[pool.Category]int{
		pool.CategoryGround:  10,
		pool.CategoryRolling: 10,
		pool.CategoryFlying:  8,
	}
	d := New(tuning.Default(), fakeCounts{active: full, capacity: full}, rand.New(rand.NewSource(42)))

	fired := 0
	lastFired := -1
	for i := 0; i < 8000; i++ {
		c, ok := d.Update(0.05)
		if !ok {
			continue
		}
		fired++
		lastFired = i
		switch c {
		case pool.CategoryGround, pool.CategoryRolling, pool.CategoryFlying:
		default:
			t.Fatalf("step %d: director picked %s with every category full", i, c)
		}
	}
	if fired < 100 {
		t.Fatalf("expected steady waves with every category full, got %d over 400 seconds", fired)
	}
	if lastFired < 7500 {
		t.Fatalf("waves stalled: last fired at step %d of 8000", lastFired)
	}
	if d.script == nil {
		t.Fatalf("wave script dropped out during the drive")
	}
}

func TestForcedFlyerHonorsCapacity(t *testing.T) {
	flyingWaves := func(counts fakeCounts) int {
		d := New(tuning.Default(), counts, rand.New(rand.NewSource(42)))
		n := 0
		for i := 0; i < 8000; i++ {
			if c, ok := d.Update(0.05); ok && c == pool.CategoryFlying {
				n++
			}
		}
		return n
	}

	flyingFull := testCounts()
	flyingFull.active[pool.CategoryFlying] = flyingFull.capacity[pool.CategoryFlying]

	free := flyingWaves(testCounts())
	full := flyingWaves(flyingFull)
	if free == 0 {
		t.Fatalf("expected flying waves with the band free")
	}
	// weighted rolls still land on flying; the game loop skips those at acquire
	if full == 0 {
		t.Fatalf("expected weighted flying picks even with the band full")
	}
	if full >= free {
		t.Fatalf("expected the forced flyer to stand down at capacity, got %d full vs %d free", full, free)
	}
}

func TestFallbackIntervalRampsDown(t *testing.T) {
	cfg := tuning.Default()
	d := New(cfg, testCounts(), rand.New(rand.NewSource(1)))
	d.script = nil

	d.elapsed = 0
	if got := d.fallbackInterval(); got != cfg.Spawn.BaseInterval {
		t.Fatalf("expected base interval %g at start, got %g", cfg.Spawn.BaseInterval, got)
	}
	d.elapsed = 60
	mid := d.fallbackInterval()
	if mid >= cfg.Spawn.BaseInterval || mid <= cfg.Spawn.MinInterval {
		t.Fatalf("expected ramped interval between floor and base, got %g", mid)
	}
	d.elapsed = 100000
	if got := d.fallbackInterval(); got != cfg.Spawn.MinInterval {
		t.Fatalf("expected interval floored at %g, got %g", cfg.Spawn.MinInterval, got)
	}
}

func TestFallbackPickCoversAllObstacleCategories(t *testing.T) {
	d := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(7)))
	d.script = nil

	seen := map[pool.Category]int{}
	for i := 0; i < 1000; i++ {
		c := d.fallbackPick()
		if c == pool.CategoryPlayer {
			t.Fatalf("director must never pick the player")
		}
		seen[c]++
	}
	for _, c := range []pool.Category{pool.CategoryGround, pool.CategoryRolling, pool.CategoryFlying} {
		if seen[c] == 0 {
			t.Fatalf("expected %s waves under default weights, got none in 1000 picks", c)
		}
	}
	if seen[pool.CategoryGround] <= seen[pool.CategoryFlying] {
		t.Fatalf("expected ground weighted above flying, got %d vs %d",
			seen[pool.CategoryGround], seen[pool.CategoryFlying])
	}
}

func TestResetRestartsPacing(t *testing.T) {
	d := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(2)))

	for i := 0; i < 2000; i++ {
		d.Update(0.05)
	}
	if d.elapsed == 0 {
		t.Fatalf("expected elapsed time to accumulate")
	}

	d.Reset()
	if d.elapsed != 0 || d.since != 0 {
		t.Fatalf("expected clock reset, got elapsed=%g since=%g", d.elapsed, d.since)
	}
	if c, ok := d.Update(0.05); ok {
		t.Fatalf("expected no wave right after reset, got %s", c)
	}
}

func TestReloadKeepsRunning(t *testing.T) {
	d := New(tuning.Default(), testCounts(), rand.New(rand.NewSource(3)))
	if err := d.Reload(); err != nil {
		t.Fatalf("Reload with embedded script should succeed, got %v", err)
	}
	if d.script == nil {
		t.Fatalf("expected a live script after reload")
	}
}

func TestNilDirectorIsSafe(t *testing.T) {
	var d *Director
	if c, ok := d.Update(0.1); ok {
		t.Fatalf("nil director produced a wave: %s", c)
	}
	d.Reset()
	d.Retune(tuning.Default())
}
