package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/counterflow/internal/core"
	"github.com/vovakirdan/counterflow/internal/games/counterflow"
)

// KeyMap holds the bindings shown in the help bar. Translation to game
// events lives in MapKey; the bindings here only decide steering and help.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Pause      key.Binding
	Skip       key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Preset     key.Binding
	Screenshot key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "A"),
			key.WithHelp("←/a", "steer left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "D"),
			key.WithHelp("→/d", "steer right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "pause"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "S", "p", "P"),
			key.WithHelp("s/p", "resume"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "play again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q"),
			key.WithHelp("q", "quit"),
		),
		Preset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// bindings is a fixed list of bindings that satisfies help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

// For returns the bindings relevant in the given mode.
func (k KeyMap) For(mode counterflow.Mode) help.KeyMap {
	switch mode {
	case counterflow.ModeMenu:
		return bindings{k.Up, k.Down, k.Select, k.ForceQuit}
	case counterflow.ModeNameEntry:
		return bindings{k.Select, k.Back}
	case counterflow.ModePlayerPicker:
		return bindings{k.Up, k.Down, k.Select, k.Back}
	case counterflow.ModeWelcome:
		return bindings{k.Select}
	case counterflow.ModeDifficultySelect:
		return bindings{k.Up, k.Down, k.Preset, k.Select, k.Back}
	case counterflow.ModePlaying:
		return bindings{k.Left, k.Right, k.Pause, k.Screenshot}
	case counterflow.ModePaused:
		return bindings{k.Skip, k.ForceQuit}
	case counterflow.ModeGameOver:
		return bindings{k.Restart, k.Back, k.Quit}
	case counterflow.ModeLeaderboard:
		return bindings{k.Up, k.Down, k.Back}
	default:
		return bindings{}
	}
}

// Steering returns the steering key a message holds down, if any.
func (k KeyMap) Steering(msg tea.KeyMsg) (core.Key, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.KeyLeft, true
	case key.Matches(msg, k.Right):
		return core.KeyRight, true
	}
	return core.KeyNone, false
}

// MapKey translates a Bubble Tea key message into game events. Pasted text
// arrives as one message and yields one event per rune.
func MapKey(msg tea.KeyMsg) []core.Event {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []core.Event{core.QuitEvent()}
	case tea.KeyUp:
		return []core.Event{core.KeyEvent(core.KeyUp)}
	case tea.KeyDown:
		return []core.Event{core.KeyEvent(core.KeyDown)}
	case tea.KeyLeft:
		return []core.Event{core.KeyEvent(core.KeyLeft)}
	case tea.KeyRight:
		return []core.Event{core.KeyEvent(core.KeyRight)}
	case tea.KeyEnter:
		return []core.Event{core.KeyEvent(core.KeyEnter)}
	case tea.KeyEsc:
		return []core.Event{core.KeyEvent(core.KeyEscape)}
	case tea.KeyBackspace:
		return []core.Event{core.KeyEvent(core.KeyBackspace)}
	case tea.KeySpace:
		return []core.Event{core.RuneEvent(' ')}
	case tea.KeyRunes:
		evs := make([]core.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, core.RuneEvent(r))
		}
		return evs
	}
	return nil
}

// MapMouse translates a left-button press into a click in world pixels.
func MapMouse(msg tea.MouseMsg, v viewport) (core.Event, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Event{}, false
	}
	x, y := v.toWorld(msg.X, msg.Y)
	return core.ClickEvent(x, y), true
}
