package counterflow

import (
	"unicode"

	"github.com/vovakirdan/counterflow/internal/config"
	"github.com/vovakirdan/counterflow/internal/core"
)

type action int

const (
	actNewGame action = iota
	actLoadGame
	actLeaderboard
	actPreset
	actPlayAgain
	actQuit
)

type button struct {
	label  string
	rect   core.Rect
	color  core.Color
	act    action
	preset int // Index into cfg.Presets for actPreset
}

const (
	buttonW      = 200
	buttonH      = 50
	pickerRowH   = 40
	pickerRowGap = 5
	pickerTop    = 150
	pickerRowW   = 400
	pickerRows   = 8
)

// buttons returns the clickable layout of the current mode.
func (g *Game) buttons() []button {
	cx := g.field.Screen.W / 2
	at := func(y, w float64) core.Rect {
		return core.NewRect(cx-w/2, y, w, buttonH)
	}

	switch g.mode {
	case ModeMenu:
		return []button{
			{label: "NEW GAME", rect: at(300, buttonW), color: core.ColorGreen, act: actNewGame},
			{label: "LOAD GAME", rect: at(370, buttonW), color: core.ColorYellow, act: actLoadGame},
			{label: "LEADERBOARD", rect: at(440, 250), color: core.ColorOrange, act: actLeaderboard},
		}
	case ModeDifficultySelect:
		list := make([]button, len(g.cfg.Presets))
		for i, p := range g.cfg.Presets {
			list[i] = button{
				label:  p.Name,
				rect:   at(250+float64(i)*70, buttonW),
				color:  presetColor(i, p),
				act:    actPreset,
				preset: i,
			}
		}
		return list
	case ModeGameOver:
		return []button{
			{label: "PLAY AGAIN", rect: at(300, buttonW), color: core.ColorGreen, act: actPlayAgain},
			{label: "QUIT", rect: at(370, buttonW), color: core.ColorRed, act: actQuit},
		}
	default:
		return nil
	}
}

func presetColor(i int, p config.PresetConfig) core.Color {
	if p.Strategy == config.StrategyStages {
		return core.ColorMagenta
	}
	palette := []core.Color{core.ColorGreen, core.ColorYellow, core.ColorRed}
	return palette[min(i, len(palette)-1)]
}

// navigate moves the focus with up/down and returns the index activated by
// enter or a click, or -1.
func (g *Game) navigate(ev core.Event, rects []core.Rect) int {
	n := len(rects)
	if n == 0 {
		return -1
	}
	g.selected = core.Clamp(g.selected, 0, n-1)

	switch {
	case ev.IsKey(core.KeyUp):
		g.selected = (g.selected - 1 + n) % n
	case ev.IsKey(core.KeyDown):
		g.selected = (g.selected + 1) % n
	case ev.IsKey(core.KeyEnter):
		return g.selected
	case ev.Kind == core.EventClick:
		for i, r := range rects {
			if r.Contains(ev.Pos.X, ev.Pos.Y) {
				g.selected = i
				return i
			}
		}
	}
	return -1
}

func buttonRects(list []button) []core.Rect {
	rects := make([]core.Rect, len(list))
	for i, b := range list {
		rects[i] = b.rect
	}
	return rects
}

// handle dispatches one discrete event to the current mode.
func (g *Game) handle(ev core.Event) {
	switch g.mode {
	case ModeMenu:
		g.handleButtons(ev)
	case ModeNameEntry:
		g.handleNameEntry(ev)
	case ModePlayerPicker:
		g.handlePicker(ev)
	case ModeWelcome:
		if ev.Kind == core.EventKey || ev.Kind == core.EventClick {
			g.enterDifficulty()
		}
	case ModeDifficultySelect:
		if ev.IsKey(core.KeyEscape) {
			g.enterMenu()
			return
		}
		if ev.Kind == core.EventKey && ev.Key == core.KeyRune && ev.Rune >= '1' && ev.Rune <= '9' {
			if i := int(ev.Rune - '1'); i < len(g.cfg.Presets) {
				g.startRun(g.cfg.Presets[i])
			}
			return
		}
		g.handleButtons(ev)
	case ModePlaying:
		if isLetter(ev, 'p') {
			g.mode = ModePaused
		}
	case ModePaused:
		if isLetter(ev, 'p') || isLetter(ev, 's') {
			g.mode = ModePlaying
		}
	case ModeGameOver:
		if g.flashLeft > 0 {
			return
		}
		switch {
		case ev.IsKey(core.KeyEscape):
			g.enterMenu()
		case isLetter(ev, 'r'):
			g.startRun(g.preset)
		case isLetter(ev, 'q'):
			g.mode = ModeTerminated
		default:
			g.handleButtons(ev)
		}
	case ModeLeaderboard:
		if ev.IsKey(core.KeyEscape) {
			g.enterMenu()
		}
	case ModeTerminated:
	}
}

// isLetter matches a rune key in either case.
func isLetter(ev core.Event, r rune) bool {
	return ev.IsRune(r) || ev.IsRune(unicode.ToUpper(r))
}

func (g *Game) handleButtons(ev core.Event) {
	list := g.buttons()
	i := g.navigate(ev, buttonRects(list))
	if i < 0 {
		return
	}

	b := list[i]
	switch b.act {
	case actNewGame:
		g.nameBuf = g.nameBuf[:0]
		g.mode = ModeNameEntry
	case actLoadGame:
		g.enterPicker()
	case actLeaderboard:
		g.enterLeaderboard()
	case actPreset:
		g.startRun(g.cfg.Presets[b.preset])
	case actPlayAgain:
		g.startRun(g.preset)
	case actQuit:
		g.mode = ModeTerminated
	}
}

func (g *Game) enterMenu() {
	g.mode = ModeMenu
	g.selected = 0
}

func (g *Game) enterDifficulty() {
	g.mode = ModeDifficultySelect
	g.selected = 0
}

func (g *Game) enterPicker() {
	rows, err := g.store.Players()
	if err != nil {
		g.logger.Warn("cannot list players", "err", err)
	}
	if len(rows) == 0 {
		g.setNotice("No saved players")
		return
	}
	g.pickerRows = rows
	g.selected = 0
	g.mode = ModePlayerPicker
}

func (g *Game) enterLeaderboard() {
	rows, err := g.store.Leaderboard(leaderboardSize)
	if err != nil {
		g.logger.Warn("cannot load leaderboard", "err", err)
	}
	g.boardRows = rows
	g.mode = ModeLeaderboard
}

func (g *Game) handleNameEntry(ev core.Event) {
	switch {
	case ev.IsKey(core.KeyEscape):
		g.enterMenu()
	case ev.IsKey(core.KeyEnter):
		name := string(g.nameBuf)
		if len(trimmed(g.nameBuf)) == 0 {
			return
		}
		g.createPlayer(name)
	case ev.IsKey(core.KeyBackspace):
		if n := len(g.nameBuf); n > 0 {
			g.nameBuf = g.nameBuf[:n-1]
		}
	case ev.Kind == core.EventKey && ev.Key == core.KeyRune:
		if unicode.IsPrint(ev.Rune) && len(g.nameBuf) < g.cfg.NameMax {
			g.nameBuf = append(g.nameBuf, ev.Rune)
		}
	}
}

func trimmed(buf []rune) []rune {
	start, end := 0, len(buf)
	for start < end && unicode.IsSpace(buf[start]) {
		start++
	}
	for end > start && unicode.IsSpace(buf[end-1]) {
		end--
	}
	return buf[start:end]
}

// pickerWindow returns the first visible picker row.
func (g *Game) pickerWindow() int {
	return max(0, g.selected-pickerRows+1)
}

// pickerRects returns the on-screen rect of every picker row; rows scrolled
// out of view get an empty rect.
func (g *Game) pickerRects() []core.Rect {
	first := g.pickerWindow()
	x := g.field.Screen.W/2 - pickerRowW/2
	rects := make([]core.Rect, len(g.pickerRows))
	for i := range g.pickerRows {
		slot := i - first
		if slot < 0 || slot >= pickerRows {
			continue
		}
		rects[i] = core.NewRect(x, pickerTop+float64(slot)*(pickerRowH+pickerRowGap), pickerRowW, pickerRowH)
	}
	return rects
}

func (g *Game) handlePicker(ev core.Event) {
	if ev.IsKey(core.KeyEscape) {
		g.enterMenu()
		return
	}
	if i := g.navigate(ev, g.pickerRects()); i >= 0 {
		g.choosePlayer(g.pickerRows[i], true)
	}
}
