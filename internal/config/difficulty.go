package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned when a preset name is not configured.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Preset returns the preset with the given name, ignoring case.
func (c Config) Preset(name string) (PresetConfig, error) {
	for _, p := range c.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return PresetConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// PresetNames returns the preset names in menu order.
func (c Config) PresetNames() []string {
	names := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		names[i] = p.Name
	}
	return names
}

// Validate reports the first tunable that would break the simulation.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	}

	r := c.Road
	if r.Width <= 0 || r.X < 0 || r.Right() > c.Screen.Width {
		return fmt.Errorf("road band [%v, %v] must lie inside the screen", r.X, r.Right())
	}
	if r.ScrollSpeed <= 0 {
		return fmt.Errorf("road.scroll_speed must be positive, got %v", r.ScrollSpeed)
	}
	if r.LaneGap < 0 {
		return fmt.Errorf("road.lane_gap must not be negative, got %v", r.LaneGap)
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 || p.Width > r.Width {
		return fmt.Errorf("player size %vx%v does not fit the road", p.Width, p.Height)
	}
	if p.Speed <= 0 {
		return fmt.Errorf("player.speed must be positive, got %v", p.Speed)
	}
	if p.BottomOffset < p.Height || p.BottomOffset > c.Screen.Height {
		return fmt.Errorf("player.bottom_offset %v must keep the car on screen", p.BottomOffset)
	}

	e := c.Enemies
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("enemy size must be positive, got %vx%v", e.Width, e.Height)
	}
	// Each lane must fit one car without crossing the centre line.
	if r.Center()-r.LaneGap-e.Width < r.X || r.Center()+r.LaneGap > r.Right()-e.Width {
		return fmt.Errorf("road too narrow for two lanes of %v-wide cars", e.Width)
	}
	if e.LeftSpeed <= 0 || e.RightSpeed <= 0 {
		return errors.New("enemy speeds must be positive")
	}
	if e.BaseMin < 0 || e.BaseMax < e.BaseMin {
		return fmt.Errorf("enemy counts [%d, %d] are not a valid range", e.BaseMin, e.BaseMax)
	}
	if e.ExtraEvery <= 0 {
		return fmt.Errorf("enemies.extra_every must be positive, got %d", e.ExtraEvery)
	}
	if e.SpawnMinY > e.SpawnMaxY || e.SpawnMaxY+e.Height > 0 {
		return fmt.Errorf("enemy spawn band [%v, %v] must lie above the frame", e.SpawnMinY, e.SpawnMaxY)
	}

	s := c.Scenery
	if s.Width <= 0 || s.Height <= 0 || s.PerSide < 0 {
		return errors.New("scenery size and count must be positive")
	}
	if s.EdgeMargin+s.Width+s.RoadMargin > r.X || r.Right()+s.RoadMargin+s.Width+s.EdgeMargin > c.Screen.Width {
		return fmt.Errorf("scenery zones too narrow for %v-wide scenery", s.Width)
	}
	if s.MaxAttempts <= 0 {
		return fmt.Errorf("scenery.max_attempts must be positive, got %d", s.MaxAttempts)
	}
	if s.RespawnMinY > s.RespawnMaxY || s.RespawnMaxY+s.Height > 0 {
		return fmt.Errorf("scenery respawn band [%v, %v] must lie above the frame", s.RespawnMinY, s.RespawnMaxY)
	}

	g := c.Progression
	if g.Quota <= 0 || g.GuardModulus <= 0 {
		return fmt.Errorf("progression quota %d and guard modulus %d must be positive", g.Quota, g.GuardModulus)
	}
	if g.GrowthFactor <= 1 {
		return fmt.Errorf("progression.growth_factor must exceed 1, got %v", g.GrowthFactor)
	}
	if g.PursuitStep <= 0 {
		return fmt.Errorf("progression.pursuit_step must be positive, got %v", g.PursuitStep)
	}
	for i, st := range g.Stages {
		if st.Min < 0 || st.Max < st.Min {
			return fmt.Errorf("stage %d counts [%d, %d] are not a valid range", i+1, st.Min, st.Max)
		}
		if st.SpeedScale < 0 {
			return fmt.Errorf("stage %d speed_scale must not be negative", i+1)
		}
	}

	if len(c.Presets) == 0 {
		return errors.New("at least one preset is required")
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, pr := range c.Presets {
		key := strings.ToUpper(pr.Name)
		if key == "" || seen[key] {
			return fmt.Errorf("preset name %q is empty or duplicated", pr.Name)
		}
		seen[key] = true
		switch pr.Strategy {
		case StrategyContinuous:
		case StrategyStages:
			if len(g.Stages) == 0 {
				return fmt.Errorf("preset %s uses stages but none are configured", pr.Name)
			}
		default:
			return fmt.Errorf("preset %s has unknown strategy %q", pr.Name, pr.Strategy)
		}
		if pr.SpeedScale <= 0 {
			return fmt.Errorf("preset %s speed_scale must be positive", pr.Name)
		}
	}

	if c.Timing.WelcomeMS < 0 || c.Timing.CrashFlashMS < 0 || c.Timing.ModalFPS <= 0 {
		return errors.New("timing values must be non-negative and modal_fps positive")
	}
	if c.NameMax <= 0 {
		return fmt.Errorf("name_max must be positive, got %d", c.NameMax)
	}
	return nil
}
