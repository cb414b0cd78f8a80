// Package config provides YAML-based tunables for Counter Flow: playfield
// geometry, vehicle and scenery parameters, level progression and the
// difficulty presets offered on the selection screen.
package config

import "time"

// Config contains every static tunable the simulation reads at startup.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Road        RoadConfig        `yaml:"road"`
	Player      PlayerConfig      `yaml:"player"`
	Enemies     EnemyConfig       `yaml:"enemies"`
	Scenery     SceneryConfig     `yaml:"scenery"`
	Progression ProgressionConfig `yaml:"progression"`
	Presets     []PresetConfig    `yaml:"presets"`
	Timing      TimingConfig      `yaml:"timing"`
	NameMax     int               `yaml:"name_max"` // Max display name length in runes
}

// ScreenConfig is the world size in pixels. Renderers scale from here.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RoadConfig describes the drivable band.
type RoadConfig struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	ScrollSpeed float64 `yaml:"scroll_speed"` // Pixels per tick, also the scenery speed
	LaneGap     float64 `yaml:"lane_gap"`     // Clearance kept between a lane and the centre line
}

// Right returns the x coordinate of the road's right edge.
func (r RoadConfig) Right() float64 {
	return r.X + r.Width
}

// Center returns the x coordinate of the centre line.
func (r RoadConfig) Center() float64 {
	return r.X + r.Width/2
}

// PlayerConfig defines the player vehicle.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // Horizontal pixels per tick while steering
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from the screen bottom to the car's top
}

// EnemyConfig defines oncoming traffic.
type EnemyConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	LeftSpeed  float64 `yaml:"left_speed"`  // Base speed of the left (fast) lane
	RightSpeed float64 `yaml:"right_speed"` // Base speed of the right (slow) lane
	BaseMin    int     `yaml:"base_min"`
	BaseMax    int     `yaml:"base_max"`
	ExtraEvery int     `yaml:"extra_every"` // One more car per this many levels
	SpawnMinY  float64 `yaml:"spawn_min_y"`
	SpawnMaxY  float64 `yaml:"spawn_max_y"`
}

// SceneryConfig defines roadside decoration placement.
type SceneryConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	PerSide       int     `yaml:"per_side"`
	MinSeparation float64 `yaml:"min_separation"`
	MaxAttempts   int     `yaml:"max_attempts"`
	EdgeMargin    float64 `yaml:"edge_margin"`
	RoadMargin    float64 `yaml:"road_margin"`
	RespawnMinY   float64 `yaml:"respawn_min_y"`
	RespawnMaxY   float64 `yaml:"respawn_max_y"`
}

// ProgressionConfig defines when and how the level advances.
type ProgressionConfig struct {
	Quota        int           `yaml:"quota"`         // Score per level advance
	GuardModulus int           `yaml:"guard_modulus"` // Guard clears when score % modulus != 0
	GrowthFactor float64       `yaml:"growth_factor"` // Lane speed multiplier per level
	PursuitStep  float64       `yaml:"pursuit_step"`  // Max horizontal pursuit step per tick
	Stages       []StageConfig `yaml:"stages"`
}

// StageConfig is one scripted campaign stage.
type StageConfig struct {
	Min        int     `yaml:"min"`
	Max        int     `yaml:"max"`
	Pursuit    bool    `yaml:"pursuit"`
	SpeedScale float64 `yaml:"speed_scale"`
}

// Strategy names a progression implementation.
type Strategy string

const (
	StrategyContinuous Strategy = "continuous"
	StrategyStages     Strategy = "stages"
)

// PresetConfig is a named entry on the difficulty selection screen.
type PresetConfig struct {
	Name       string   `yaml:"name"`
	Strategy   Strategy `yaml:"strategy"`
	SpeedScale float64  `yaml:"speed_scale"`
}

// TimingConfig holds wall-clock durations and the modal frame rate.
type TimingConfig struct {
	WelcomeMS    int `yaml:"welcome_ms"`
	CrashFlashMS int `yaml:"crash_flash_ms"`
	ModalFPS     int `yaml:"modal_fps"`
}

// Welcome returns how long the welcome banner stays up without input.
func (t TimingConfig) Welcome() time.Duration {
	return time.Duration(t.WelcomeMS) * time.Millisecond
}

// CrashFlash returns how long the crash flash overlay lasts.
func (t TimingConfig) CrashFlash() time.Duration {
	return time.Duration(t.CrashFlashMS) * time.Millisecond
}
