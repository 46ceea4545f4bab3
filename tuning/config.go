package tuning

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime tuning document. Capacities and shape
// dimensions are read once at startup; speeds, pacing, and thresholds
// may be re-applied on a live reload.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Ground    GroundConfig    `yaml:"ground"`
	Rolling   RollingConfig   `yaml:"rolling"`
	Flying    FlyingConfig    `yaml:"flying"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Gestures  GestureConfig   `yaml:"gestures"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	Collision CollisionConfig `yaml:"collision"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type WorldConfig struct {
	Gravity       float64 `yaml:"gravity"`
	FloorY        float64 `yaml:"floor_y"`
	FloorFriction float64 `yaml:"floor_friction"`
}

type PlayerConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Mass            float64 `yaml:"mass"`
	Friction        float64 `yaml:"friction"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	FastFallImpulse float64 `yaml:"fast_fall_impulse"`
	FastFallForce   float64 `yaml:"fast_fall_force"`
	StartX          float64 `yaml:"start_x"`
	StartY          float64 `yaml:"start_y"`
	Lives           int     `yaml:"lives"`
	HurtGrace       float64 `yaml:"hurt_grace"`
}

type GroundConfig struct {
	Capacity int     `yaml:"capacity"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	Friction float64 `yaml:"friction"`
}

type RollingConfig struct {
	Capacity   int     `yaml:"capacity"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Speed      float64 `yaml:"speed"`
	Spin       float64 `yaml:"spin"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type FlyingConfig struct {
	Capacity int     `yaml:"capacity"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Speed    float64 `yaml:"speed"`
	VyJitter float64 `yaml:"vy_jitter"`
	MinY     float64 `yaml:"min_y"`
	MaxY     float64 `yaml:"max_y"`
}

type SpawnConfig struct {
	XOffset       float64 `yaml:"x_offset"`
	BaseInterval  float64 `yaml:"base_interval"`
	MinInterval   float64 `yaml:"min_interval"`
	Ramp          float64 `yaml:"ramp"`
	GroundWeight  float64 `yaml:"ground_weight"`
	RollingWeight float64 `yaml:"rolling_weight"`
	FlyingWeight  float64 `yaml:"flying_weight"`
}

type GestureConfig struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"` // pixels of vertical travel
	TapMaxSeconds  float64 `yaml:"tap_max_seconds"`
}

type CleanupConfig struct {
	Margin float64 `yaml:"margin"`
}

type CollisionConfig struct {
	Tolerance float64 `yaml:"tolerance"`
}

// Default returns the shipped tuning values. Unmarshal on top of it so
// fields missing from a document keep their defaults.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 1200, Height: 800},
		World:  WorldConfig{Gravity: 2400, FloorY: 700, FloorFriction: 0.9},
		Player: PlayerConfig{
			Width:           40,
			Height:          56,
			Mass:            1,
			Friction:        0.9,
			JumpImpulse:     880,
			FastFallImpulse: 520,
			FastFallForce:   2600,
			StartX:          240,
			StartY:          640,
			Lives:           3,
			HurtGrace:       1.2,
		},
		Ground: GroundConfig{
			Capacity: 10,
			Width:    36,
			Height:   44,
			Speed:    240,
			Friction: 0.6,
		},
		Rolling: RollingConfig{
			Capacity:   10,
			Radius:     16,
			Mass:       0.8,
			Speed:      360,
			Spin:       -12,
			Friction:   0.7,
			Elasticity: 0.1,
		},
		Flying: FlyingConfig{
			Capacity: 8,
			Width:    40,
			Height:   28,
			Mass:     0.5,
			Speed:    300,
			VyJitter: 60,
			MinY:     420,
			MaxY:     560,
		},
		Spawn: SpawnConfig{
			XOffset:       60,
			BaseInterval:  1.8,
			MinInterval:   0.55,
			Ramp:          0.012,
			GroundWeight:  5,
			RollingWeight: 3,
			FlyingWeight:  2,
		},
		Gestures:  GestureConfig{SwipeThreshold: 40, TapMaxSeconds: 0.25},
		Cleanup:   CleanupConfig{Margin: 100},
		Collision: CollisionConfig{Tolerance: 0.8},
	}
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("tuning: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads runner.yaml, preferring a disk copy over the
// embedded one so edits take effect without a rebuild.
func LoadConfig() (*Config, error) {
	data, err := Load("runner.yaml")
	if err != nil {
		return nil, fmt.Errorf("tuning: load runner.yaml: %w", err)
	}
	return Parse(data)
}

// Validate reports the first unusable value in the document.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("tuning: nil config")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("tuning: window %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.Mass <= 0 {
		return fmt.Errorf("tuning: player body needs positive dimensions and mass")
	}
	if c.Player.Lives <= 0 {
		return fmt.Errorf("tuning: player lives %d must be positive", c.Player.Lives)
	}
	if c.Player.HurtGrace < 0 {
		return fmt.Errorf("tuning: player hurt_grace %g must not be negative", c.Player.HurtGrace)
	}
	if c.Ground.Capacity <= 0 || c.Rolling.Capacity <= 0 || c.Flying.Capacity <= 0 {
		return fmt.Errorf("tuning: obstacle capacities must be positive")
	}
	if c.Ground.Width <= 0 || c.Ground.Height <= 0 {
		return fmt.Errorf("tuning: ground body needs positive dimensions")
	}
	if c.Rolling.Radius <= 0 || c.Rolling.Mass <= 0 {
		return fmt.Errorf("tuning: rolling body needs positive radius and mass")
	}
	if c.Flying.Width <= 0 || c.Flying.Height <= 0 || c.Flying.Mass <= 0 {
		return fmt.Errorf("tuning: flying body needs positive dimensions and mass")
	}
	if c.Flying.MinY > c.Flying.MaxY {
		return fmt.Errorf("tuning: flying band min_y %g above max_y %g", c.Flying.MinY, c.Flying.MaxY)
	}
	if c.Spawn.BaseInterval <= 0 || c.Spawn.MinInterval <= 0 {
		return fmt.Errorf("tuning: spawn intervals must be positive")
	}
	if c.Spawn.MinInterval > c.Spawn.BaseInterval {
		return fmt.Errorf("tuning: spawn min_interval %g above base_interval %g", c.Spawn.MinInterval, c.Spawn.BaseInterval)
	}
	if c.Spawn.GroundWeight < 0 || c.Spawn.RollingWeight < 0 || c.Spawn.FlyingWeight < 0 {
		return fmt.Errorf("tuning: spawn weights must not be negative")
	}
	if c.Spawn.GroundWeight+c.Spawn.RollingWeight+c.Spawn.FlyingWeight == 0 {
		return fmt.Errorf("tuning: at least one spawn weight must be positive")
	}
	if c.Cleanup.Margin < 0 {
		return fmt.Errorf("tuning: negative cleanup margin %g", c.Cleanup.Margin)
	}
	if c.Spawn.XOffset < 0 || c.Spawn.XOffset > c.Cleanup.Margin {
		return fmt.Errorf("tuning: spawn x_offset %g must sit inside the cleanup margin %g", c.Spawn.XOffset, c.Cleanup.Margin)
	}
	if c.Gestures.SwipeThreshold <= 0 || c.Gestures.TapMaxSeconds <= 0 {
		return fmt.Errorf("tuning: gesture thresholds must be positive")
	}
	if c.Collision.Tolerance <= 0 || c.Collision.Tolerance > 1 {
		return fmt.Errorf("tuning: collision tolerance %g outside (0, 1]", c.Collision.Tolerance)
	}
	return nil
}
