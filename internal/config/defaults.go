package config

import (
	_ "embed"
)

//go:embed defaults/counterflow.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/counterflow.yaml and is the last fallback when nothing parses.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{
			Width:  720,
			Height: 600,
		},
		Road: RoadConfig{
			X:           98,
			Width:       350,
			ScrollSpeed: 5,
			LaneGap:     5,
		},
		Player: PlayerConfig{
			Width:        40,
			Height:       60,
			Speed:        5,
			BottomOffset: 120,
		},
		Enemies: EnemyConfig{
			Width:      40,
			Height:     60,
			LeftSpeed:  6,
			RightSpeed: 2,
			BaseMin:    2,
			BaseMax:    3,
			ExtraEvery: 5,
			SpawnMinY:  -300,
			SpawnMaxY:  -70,
		},
		Scenery: SceneryConfig{
			Width:         40,
			Height:        80,
			PerSide:       4,
			MinSeparation: 60,
			MaxAttempts:   100,
			EdgeMargin:    10,
			RoadMargin:    10,
			RespawnMinY:   -600,
			RespawnMaxY:   -100,
		},
		Progression: ProgressionConfig{
			Quota:        20,
			GuardModulus: 10,
			GrowthFactor: 1.1,
			PursuitStep:  1.5,
			Stages: []StageConfig{
				{Min: 2, Max: 3, Pursuit: false, SpeedScale: 1.0},
				{Min: 3, Max: 4, Pursuit: false, SpeedScale: 1.2},
				{Min: 3, Max: 4, Pursuit: true, SpeedScale: 1.35},
				{Min: 4, Max: 5, Pursuit: true, SpeedScale: 1.5},
			},
		},
		Presets: []PresetConfig{
			{Name: "EASY", Strategy: StrategyContinuous, SpeedScale: 0.75},
			{Name: "MEDIUM", Strategy: StrategyContinuous, SpeedScale: 1.0},
			{Name: "HARD", Strategy: StrategyContinuous, SpeedScale: 1.35},
			{Name: "CAMPAIGN", Strategy: StrategyStages, SpeedScale: 1.0},
		},
		Timing: TimingConfig{
			WelcomeMS:    1500,
			CrashFlashMS: 200,
			ModalFPS:     10,
		},
		NameMax: 12,
	}
}
