// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Hare      HareConfig      `yaml:"hare"`
	Wolf      WolfConfig      `yaml:"wolf"`
	Deer      DeerConfig      `yaml:"deer"`
	Player    PlayerConfig    `yaml:"player"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds the playfield margins. The field is the screen shrunk
// by these margins and centered on the origin; the walls sit on its border.
type FieldConfig struct {
	MarginX int `yaml:"margin_x"`
	MarginY int `yaml:"margin_y"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"` // 0 = fixed 1/60 step
	GridCellSize float32 `yaml:"grid_cell_size"`
}

// WanderConfig holds wander behavior parameters.
type WanderConfig struct {
	Radius        float32 `yaml:"radius"`
	Distance      float32 `yaml:"distance"`
	DisplaceRange float32 `yaml:"displace_range"`
	MaxForce      float32 `yaml:"max_force"`
	Weight        float32 `yaml:"weight"`
}

// WeightConfig holds a single steering weight.
type WeightConfig struct {
	Weight float32 `yaml:"weight"`
}

// FlockRuleConfig holds one flocking rule's parameters. Flock forces are
// already bounded by max_force and carry no separate weight.
type FlockRuleConfig struct {
	Radius   float32 `yaml:"radius"`
	MaxForce float32 `yaml:"max_force"`
}

// HareConfig holds the hare species parameters.
type HareConfig struct {
	MovementSpeed float32      `yaml:"movement_speed"`
	Width         float32      `yaml:"width"`
	Height        float32      `yaml:"height"`
	MaxNumber     int          `yaml:"max_number"`
	MaxFleeTime   float32      `yaml:"max_flee_time"` // seconds before the flee speed boost decays
	Wander        WanderConfig `yaml:"wander"`
	Flee          WeightConfig `yaml:"flee"`
	Walls         WeightConfig `yaml:"walls"`
}

// WolfConfig holds the wolf species parameters.
type WolfConfig struct {
	MovementSpeed float32      `yaml:"movement_speed"`
	Width         float32      `yaml:"width"`
	Height        float32      `yaml:"height"`
	MaxNumber     int          `yaml:"max_number"`
	MaxHungerTime float32      `yaml:"max_hunger_time"` // seconds without a kill before starving
	Wander        WanderConfig `yaml:"wander"`
	Pursue        WeightConfig `yaml:"pursue"`
	Walls         WeightConfig `yaml:"walls"`
}

// DeerConfig holds the deer species parameters. MaxNumber bounds the size
// of a single group (sizes are drawn from [3, max_number)); GroupNumber is
// the number of groups.
type DeerConfig struct {
	MovementSpeed float32         `yaml:"movement_speed"`
	Width         float32         `yaml:"width"`
	Height        float32         `yaml:"height"`
	MaxNumber     int             `yaml:"max_number"`
	GroupNumber   int             `yaml:"group_number"`
	Wander        WanderConfig    `yaml:"wander"`
	Flee          WeightConfig    `yaml:"flee"`
	Evade         WeightConfig    `yaml:"evade"`
	Separation    FlockRuleConfig `yaml:"separation"`
	Alignment     FlockRuleConfig `yaml:"alignment"`
	Cohesion      FlockRuleConfig `yaml:"cohesion"`
	Walls         WeightConfig    `yaml:"walls"`
}

// PlayerConfig holds the player parameters.
type PlayerConfig struct {
	MovementSpeed float32 `yaml:"movement_speed"`
	Width         float32 `yaml:"width"`
	Height        float32 `yaml:"height"`
}

// BulletConfig holds projectile parameters.
type BulletConfig struct {
	Speed       float32 `yaml:"speed"`
	Width       float32 `yaml:"width"`
	Height      float32 `yaml:"height"`
	MaxDuration float32 `yaml:"max_duration"` // seconds of flight before despawn
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	FieldW32  float32 // field width (screen minus margins)
	FieldH32  float32 // field height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Physics.DT == 0 {
		c.Physics.DT = 1.0 / 60.0
	}
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.FieldW32 = float32(c.Screen.Width - c.Field.MarginX)
	c.Derived.FieldH32 = float32(c.Screen.Height - c.Field.MarginY)
}

// validate rejects configurations the simulation cannot start from.
// A zero population target is valid; that species simply never spawns.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen dimensions must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Derived.FieldW32 <= 0 || c.Derived.FieldH32 <= 0 {
		return fmt.Errorf("field margins %d,%d leave no playfield", c.Field.MarginX, c.Field.MarginY)
	}
	if c.Physics.DT < 0 {
		return fmt.Errorf("physics.dt must not be negative, got %f", c.Physics.DT)
	}
	if c.Physics.GridCellSize <= 0 {
		return fmt.Errorf("physics.grid_cell_size must be positive, got %f", c.Physics.GridCellSize)
	}

	type speciesCheck struct {
		name          string
		speed         float32
		width, height float32
		target        int
	}
	checks := []speciesCheck{
		{"hare", c.Hare.MovementSpeed, c.Hare.Width, c.Hare.Height, c.Hare.MaxNumber},
		{"wolf", c.Wolf.MovementSpeed, c.Wolf.Width, c.Wolf.Height, c.Wolf.MaxNumber},
		{"deer", c.Deer.MovementSpeed, c.Deer.Width, c.Deer.Height, c.Deer.GroupNumber},
		{"player", c.Player.MovementSpeed, c.Player.Width, c.Player.Height, 0},
		{"bullet", c.Bullet.Speed, c.Bullet.Width, c.Bullet.Height, 0},
	}
	for _, s := range checks {
		if s.speed <= 0 {
			return fmt.Errorf("%s speed must be positive, got %f", s.name, s.speed)
		}
		if s.width <= 0 || s.height <= 0 {
			return fmt.Errorf("%s dimensions must be positive, got %fx%f", s.name, s.width, s.height)
		}
		if s.target < 0 {
			return fmt.Errorf("%s population target must not be negative, got %d", s.name, s.target)
		}
	}
	// Group sizes are drawn from [3, max_number); the range must be non-empty
	// whenever groups will actually spawn.
	if c.Deer.GroupNumber > 0 && c.Deer.MaxNumber <= 3 {
		return fmt.Errorf("deer max_number must exceed 3 when group_number > 0, got %d", c.Deer.MaxNumber)
	}
	if c.Wolf.MaxHungerTime <= 0 {
		return fmt.Errorf("wolf max_hunger_time must be positive, got %f", c.Wolf.MaxHungerTime)
	}
	if c.Bullet.MaxDuration <= 0 {
		return fmt.Errorf("bullet max_duration must be positive, got %f", c.Bullet.MaxDuration)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry stats_window must be positive, got %f", c.Telemetry.StatsWindow)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
