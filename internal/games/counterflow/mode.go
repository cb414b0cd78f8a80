package counterflow

// Mode is the state of the game's single state machine.
type Mode int

const (
	ModeMenu Mode = iota
	ModeNameEntry
	ModePlayerPicker
	ModeWelcome
	ModeDifficultySelect
	ModePlaying
	ModePaused
	ModeGameOver
	ModeLeaderboard
	ModeTerminated
)

var modeNames = [...]string{
	ModeMenu:             "menu",
	ModeNameEntry:        "name_entry",
	ModePlayerPicker:     "player_picker",
	ModeWelcome:          "welcome",
	ModeDifficultySelect: "difficulty_select",
	ModePlaying:          "playing",
	ModePaused:           "paused",
	ModeGameOver:         "game_over",
	ModeLeaderboard:      "leaderboard",
	ModeTerminated:       "terminated",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// scrolls reports whether scenery and road markings move in this mode.
func (m Mode) scrolls() bool {
	return m != ModePaused && m != ModeTerminated
}
