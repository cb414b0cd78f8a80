package counterflow

import (
	"fmt"
	"math"

	"github.com/vovakirdan/counterflow/internal/config"
)

// LevelProfile is what a level asks of the spawner.
type LevelProfile struct {
	MinCount   int
	MaxCount   int
	LeftSpeed  float64
	RightSpeed float64
	Pursuit    bool // Spawn one extra car that steers toward the player
	Terminal   bool // Clearing this level's quota wins the run
}

// Speed returns the base speed of lane l.
func (p LevelProfile) Speed(l Lane) float64 {
	if l == LaneLeft {
		return p.LeftSpeed
	}
	return p.RightSpeed
}

// Progression maps a zero-based level index to a profile.
type Progression interface {
	Strategy() config.Strategy
	Profile(level int) LevelProfile
}

// Continuous grows car count and lane speed with every level, forever.
type Continuous struct {
	enemies config.EnemyConfig
	growth  float64
	scale   float64
}

// NewContinuous builds the endless progression at the given speed scale.
func NewContinuous(cfg config.Config, scale float64) *Continuous {
	return &Continuous{
		enemies: cfg.Enemies,
		growth:  cfg.Progression.GrowthFactor,
		scale:   scale,
	}
}

func (c *Continuous) Strategy() config.Strategy {
	return config.StrategyContinuous
}

func (c *Continuous) Profile(level int) LevelProfile {
	level = max(level, 0)
	extra := level / c.enemies.ExtraEvery
	mult := c.scale * math.Pow(c.growth, float64(level))
	return LevelProfile{
		MinCount:   c.enemies.BaseMin + extra,
		MaxCount:   c.enemies.BaseMax + extra,
		LeftSpeed:  c.enemies.LeftSpeed * mult,
		RightSpeed: c.enemies.RightSpeed * mult,
	}
}

// Stages walks a scripted list of stages. The last one is terminal.
type Stages struct {
	enemies config.EnemyConfig
	stages  []config.StageConfig
	scale   float64
}

// NewStages builds the campaign progression at the given speed scale.
func NewStages(cfg config.Config, scale float64) *Stages {
	return &Stages{
		enemies: cfg.Enemies,
		stages:  cfg.Progression.Stages,
		scale:   scale,
	}
}

func (s *Stages) Strategy() config.Strategy {
	return config.StrategyStages
}

func (s *Stages) Profile(level int) LevelProfile {
	idx := min(max(level, 0), len(s.stages)-1)
	st := s.stages[idx]
	mult := s.scale
	if st.SpeedScale > 0 {
		mult *= st.SpeedScale
	}
	return LevelProfile{
		MinCount:   st.Min,
		MaxCount:   st.Max,
		LeftSpeed:  s.enemies.LeftSpeed * mult,
		RightSpeed: s.enemies.RightSpeed * mult,
		Pursuit:    st.Pursuit,
		Terminal:   idx == len(s.stages)-1,
	}
}

// ProgressionFor builds the progression a preset names.
func ProgressionFor(cfg config.Config, preset config.PresetConfig) (Progression, error) {
	switch preset.Strategy {
	case config.StrategyContinuous:
		return NewContinuous(cfg, preset.SpeedScale), nil
	case config.StrategyStages:
		if len(cfg.Progression.Stages) == 0 {
			return nil, fmt.Errorf("counterflow: preset %s needs stages, none configured", preset.Name)
		}
		return NewStages(cfg, preset.SpeedScale), nil
	default:
		return nil, fmt.Errorf("counterflow: unknown strategy %q", preset.Strategy)
	}
}

// Trigger decides when the score earns a level advance.
type Trigger struct {
	Quota        int
	GuardModulus int
}

// Fire applies the advance rule to d and reports whether this tick earned
// an advance. However many quota boundaries the score crossed since the
// last advance, at most one advance fires per call.
func (t Trigger) Fire(d *GameData) bool {
	q := d.Score / t.Quota
	if d.Score > 0 && q > d.QuotasConsumed && !d.LeveledUp {
		d.QuotasConsumed = q
		d.LeveledUp = true
		return true
	}
	if d.Score%t.GuardModulus != 0 {
		d.LeveledUp = false
	}
	return false
}
