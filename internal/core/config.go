package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters, for renderers
	ScreenH  int   // Terminal height in characters, for renderers
	TickRate int   // Simulation ticks per second while playing (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes the simulation for the platform after each step.
type GameState struct {
	Score      int
	Level      int  // Zero-based level index
	Playing    bool // A run is live and advancing
	Paused     bool
	GameOver   bool
	Terminated bool // Quit was requested; the platform should exit
}

// Modal reports whether the game is waiting on a menu or overlay,
// in which case the platform may tick at its slower modal rate.
func (s GameState) Modal() bool {
	return !s.Playing
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
