package counterflow

import (
	"math"
	"testing"

	"github.com/vovakirdan/counterflow/internal/config"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestContinuousProfile(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name      string
		scale     float64
		level     int
		min, max  int
		leftSpeed float64
	}{
		{"first level", 1.0, 0, 2, 3, 6},
		{"easy first level", 0.75, 0, 2, 3, 4.5},
		{"one extra car at level 5", 1.0, 5, 3, 4, 6 * math.Pow(1.1, 5)},
		{"two extra cars at level 10", 1.0, 10, 4, 5, 6 * math.Pow(1.1, 10)},
		{"negative level clamps", 1.0, -3, 2, 3, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewContinuous(cfg, tc.scale).Profile(tc.level)
			if p.MinCount != tc.min || p.MaxCount != tc.max {
				t.Errorf("counts = %d..%d, expected %d..%d", p.MinCount, p.MaxCount, tc.min, tc.max)
			}
			if !near(p.LeftSpeed, tc.leftSpeed) {
				t.Errorf("left speed = %v, expected %v", p.LeftSpeed, tc.leftSpeed)
			}
			if !near(p.RightSpeed, tc.leftSpeed/3) {
				t.Errorf("right speed = %v, expected a third of the left lane", p.RightSpeed)
			}
			if p.Pursuit || p.Terminal {
				t.Error("continuous levels never pursue or end the run")
			}
		})
	}
}

func TestContinuousSpeedGrows(t *testing.T) {
	c := NewContinuous(config.DefaultConfig(), 1)
	prev := c.Profile(0)
	for level := 1; level < 20; level++ {
		p := c.Profile(level)
		if p.LeftSpeed <= prev.LeftSpeed || p.RightSpeed <= prev.RightSpeed {
			t.Fatalf("level %d did not speed up: %+v after %+v", level, p, prev)
		}
		prev = p
	}
}

func TestStagesProfile(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewStages(cfg, 1)

	if s.Strategy() != config.StrategyStages {
		t.Errorf("Strategy() = %q", s.Strategy())
	}

	first := s.Profile(0)
	if first.Terminal || first.Pursuit {
		t.Errorf("first stage = %+v", first)
	}
	third := s.Profile(2)
	if !third.Pursuit || third.Terminal || !near(third.LeftSpeed, 6*1.35) || !near(third.RightSpeed, 2*1.35) {
		t.Errorf("third stage = %+v, expected pursuit with lane speeds 8.1 and 2.7", third)
	}
	last := s.Profile(3)
	if !last.Terminal || last.MinCount != 4 || last.MaxCount != 5 {
		t.Errorf("last stage = %+v", last)
	}
	if beyond := s.Profile(9); beyond != last {
		t.Errorf("levels past the end should clamp to the last stage, got %+v", beyond)
	}
}

func TestProgressionFor(t *testing.T) {
	cfg := config.DefaultConfig()

	for _, p := range cfg.Presets {
		prog, err := ProgressionFor(cfg, p)
		if err != nil {
			t.Fatalf("%s: %v", p.Name, err)
		}
		if prog.Strategy() != p.Strategy {
			t.Errorf("%s: strategy %q, expected %q", p.Name, prog.Strategy(), p.Strategy)
		}
	}

	if _, err := ProgressionFor(cfg, config.PresetConfig{Name: "X", Strategy: "spiral"}); err == nil {
		t.Error("unknown strategy should fail")
	}

	cfg.Progression.Stages = nil
	if _, err := ProgressionFor(cfg, config.PresetConfig{Name: "C", Strategy: config.StrategyStages}); err == nil {
		t.Error("stages without stage list should fail")
	}
}

func TestTriggerSequence(t *testing.T) {
	tr := Trigger{Quota: 20, GuardModulus: 10}

	tests := []struct {
		name   string
		scores []int
		fires  []bool
	}{
		{
			name:   "crossing the quota",
			scores: []int{19, 22, 23},
			fires:  []bool{false, true, false},
		},
		{
			name:   "jump over several quotas fires once",
			scores: []int{19, 61, 61, 62},
			fires:  []bool{false, true, false, false},
		},
		{
			name:   "exact boundaries",
			scores: []int{20, 21, 40},
			fires:  []bool{true, false, true},
		},
		{
			name:   "guard survives multiples of the modulus",
			scores: []int{20, 30, 40, 41, 42},
			fires:  []bool{true, false, false, false, true},
		},
		{
			name:   "zero score never fires",
			scores: []int{0, 0},
			fires:  []bool{false, false},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d GameData
			for i, s := range tc.scores {
				d.Score = s
				if got := tr.Fire(&d); got != tc.fires[i] {
					t.Fatalf("score %d (step %d): Fire() = %v, expected %v", s, i, got, tc.fires[i])
				}
			}
		})
	}
}

func TestTriggerConsumesQuotas(t *testing.T) {
	tr := Trigger{Quota: 20, GuardModulus: 10}
	d := GameData{Score: 85}
	if !tr.Fire(&d) {
		t.Fatal("expected an advance")
	}
	if d.QuotasConsumed != 4 || !d.LeveledUp {
		t.Errorf("after advance: consumed=%d guard=%v", d.QuotasConsumed, d.LeveledUp)
	}
}
