package counterflow

import (
	"fmt"

	"github.com/vovakirdan/counterflow/internal/core"
)

// Button is a clickable menu entry, in world pixels.
type Button struct {
	Label    string
	Rect     core.Rect
	Color    core.Color
	Selected bool
}

// Row is one line of the player picker or the leaderboard.
type Row struct {
	Rank     int // Leaderboard position, 0 in the picker
	Name     string
	Score    int
	Rect     core.Rect // Click target in the picker, empty when scrolled away
	Selected bool
	Current  bool // The active player
}

// HUD holds the values shown during play.
type HUD struct {
	Score      int
	Level      int // Zero-based
	PlayerName string
	HighScore  int
	Rank       int // 0 when unknown
	Preset     string
}

// Frame is a snapshot of everything a renderer needs for one frame.
// It owns its slices; the game never touches them again.
type Frame struct {
	Mode       Mode
	Theme      Theme
	Screen     core.Rect
	Road       core.Rect
	RoadOffset float64

	Player     core.Rect
	ShowPlayer bool
	Entities   []Entity // Scenery first, then traffic, in draw order

	HUD      HUD
	Title    string
	Subtitle string
	Buttons  []Button
	Rows     []Row

	NameBuffer string
	NameMax    int

	ShowManual bool // How-to-play panel on the first level
	Flash      bool // Crash flash
	Won        bool
	Notice     string
}

// Frame returns the drawable state of the game.
func (g *Game) Frame() Frame {
	d := &g.data
	theme := ThemeForLevel(d.Level)
	inRun := g.mode == ModePlaying || g.mode == ModePaused || g.mode == ModeGameOver

	f := Frame{
		Mode:       g.mode,
		Theme:      theme,
		Screen:     g.field.Screen,
		Road:       g.field.Road,
		RoadOffset: d.RoadOffset,
		Player:     d.Player,
		ShowPlayer: inRun,
		HUD: HUD{
			Score:      d.Score,
			Level:      d.Level,
			PlayerName: g.player.Username,
			HighScore:  g.player.Score,
			Rank:       g.rank,
			Preset:     g.preset.Name,
		},
		NameMax:    g.cfg.NameMax,
		ShowManual: g.mode == ModePlaying && d.Level < 1,
		Flash:      g.mode == ModeGameOver && g.flashLeft > 0,
		Won:        d.Won,
		Notice:     g.notice,
	}

	f.Entities = make([]Entity, 0, len(d.Scenery)+len(d.Enemies))
	for _, e := range d.Scenery {
		e.Tag = theme.SceneryTag()
		f.Entities = append(f.Entities, e)
	}
	if inRun {
		f.Entities = append(f.Entities, d.Enemies...)
	}

	for i, b := range g.buttons() {
		f.Buttons = append(f.Buttons, Button{
			Label:    b.label,
			Rect:     b.rect,
			Color:    b.color,
			Selected: i == g.selected,
		})
	}

	switch g.mode {
	case ModeMenu:
		f.Title, f.Subtitle = "COUNTER FLOW", "Avoid the oncoming traffic!"
	case ModeNameEntry:
		f.Title = "Enter Username:"
		f.NameBuffer = string(g.nameBuf)
	case ModePlayerPicker:
		f.Title, f.Subtitle = "Select Player", "Up/Down to choose, Enter to load, Esc to go back"
		rects := g.pickerRects()
		for i, p := range g.pickerRows {
			f.Rows = append(f.Rows, Row{
				Name:     p.Username,
				Score:    p.Score,
				Rect:     rects[i],
				Selected: i == g.selected,
			})
		}
	case ModeWelcome:
		f.Title = fmt.Sprintf("Welcome, %s!", g.player.Username)
		f.Subtitle = "Press any key to continue..."
	case ModeDifficultySelect:
		f.Title = "SELECT DIFFICULTY"
	case ModePaused:
		f.Title, f.Subtitle = "PAUSED", "Press S to skip"
	case ModeGameOver:
		f.Title = "GAME OVER"
		if d.Won {
			f.Title = "YOU WIN"
		}
		f.Subtitle = fmt.Sprintf("SCORE: %d", d.Score)
	case ModeLeaderboard:
		f.Title, f.Subtitle = "LEADERBOARD", "Press ESC to return"
		for i, p := range g.boardRows {
			f.Rows = append(f.Rows, Row{
				Rank:    i + 1,
				Name:    p.Username,
				Score:   p.Score,
				Current: p.UID == g.player.UID,
			})
		}
	}
	return f
}
