package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/counterflow/internal/core"
	"github.com/vovakirdan/counterflow/internal/games/counterflow"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// viewport maps world pixels onto terminal cells.
type viewport struct {
	cols, rows int
	sx, sy     float64 // World pixels per cell
}

func newViewport(world core.Rect, cols, rows int) viewport {
	cols, rows = max(cols, 1), max(rows, 1)
	return viewport{
		cols: cols,
		rows: rows,
		sx:   world.W / float64(cols),
		sy:   world.H / float64(rows),
	}
}

func (v viewport) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / v.sx)), int(math.Floor(y / v.sy))
}

// toWorld returns the world position of the centre of a cell.
func (v viewport) toWorld(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * v.sx, (float64(row) + 0.5) * v.sy
}

// cells returns the cell span covering r, at least one cell each way.
func (v viewport) cells(r core.Rect) (x, y, w, h int) {
	x, y = v.toCell(r.X, r.Y)
	x1 := int(math.Ceil(r.Right() / v.sx))
	y1 := int(math.Ceil(r.Bottom() / v.sy))
	return x, y, max(x1-x, 1), max(y1-y, 1)
}

type palette struct {
	ground      rune
	groundColor core.Color
	scenery     rune
	sceneryCol  core.Color
}

var themePalettes = map[counterflow.Theme]palette{
	counterflow.ThemeGrass:  {ground: '"', groundColor: core.ColorGreen, scenery: '♣', sceneryCol: core.ColorBrightGreen},
	counterflow.ThemeDesert: {ground: '.', groundColor: core.ColorYellow, scenery: '▲', sceneryCol: core.ColorOrange},
	counterflow.ThemeDirt:   {ground: ',', groundColor: core.ColorOrange, scenery: '†', sceneryCol: core.ColorGray},
}

// DrawFrame rasterises a game frame into s.
func DrawFrame(s *core.Screen, f counterflow.Frame) {
	v := newViewport(f.Screen, s.Width(), s.Height())
	s.Clear()

	pal := themePalettes[f.Theme]
	drawGround(s, f, v, pal)
	drawRoad(s, f, v)

	for _, e := range f.Entities {
		drawEntity(s, e, v, pal)
	}
	if f.ShowPlayer {
		x, y, w, h := v.cells(f.Player)
		s.FillRect(x, y, w, h, '█', core.ColorBrightCyan)
	}

	if f.Flash {
		s.FillColor('░', core.ColorRed)
	}
	if f.ShowPlayer {
		drawHUD(s, f.HUD)
	}
	if f.ShowManual {
		drawManual(s, f, v)
	}
	drawOverlay(s, f, v)

	if f.Notice != "" {
		centerLine(s, s.Height()-1, f.Notice, core.ColorBrightYellow)
	}
}

func drawGround(s *core.Screen, f counterflow.Frame, v viewport, pal palette) {
	shift := int(f.RoadOffset / v.sy)
	for row := 0; row < s.Height(); row++ {
		world := row - shift
		for col := 0; col < s.Width(); col++ {
			if (col*7+world*3)%11 == 0 {
				s.SetCell(col, row, pal.ground, pal.groundColor)
			}
		}
	}
}

func drawRoad(s *core.Screen, f counterflow.Frame, v viewport) {
	x, _, w, _ := v.cells(f.Road)
	s.FillRect(x, 0, w, s.Height(), ' ', core.ColorDefault)
	s.DrawVLine(x, 0, s.Height(), '│', core.ColorWhite)
	s.DrawVLine(x+w-1, 0, s.Height(), '│', core.ColorWhite)

	mid, _ := v.toCell(f.Road.X+f.Road.W/2, 0)
	shift := int(f.RoadOffset / v.sy)
	for row := 0; row < s.Height(); row++ {
		if ((row-shift)%4+4)%4 < 2 {
			s.SetCell(mid, row, '¦', core.ColorYellow)
		}
	}
}

func drawEntity(s *core.Screen, e counterflow.Entity, v viewport, pal palette) {
	x, y, w, h := v.cells(e.Rect)
	switch e.Kind {
	case counterflow.KindScenery:
		s.FillRect(x, y, w, h, pal.scenery, pal.sceneryCol)
	case counterflow.KindPursuit:
		s.FillRect(x, y, w, h, '▓', core.ColorBrightMagenta)
	default:
		c := core.ColorRed
		if e.Tag == counterflow.TagEnemyRight {
			c = core.ColorBrightRed
		}
		s.FillRect(x, y, w, h, '█', c)
	}
}

func drawHUD(s *core.Screen, h counterflow.HUD) {
	line := fmt.Sprintf(" Score: %d  Level: %d  Best: %d", h.Score, h.Level+1, h.HighScore)
	if h.Rank > 0 {
		line += fmt.Sprintf("  Rank: #%d", h.Rank)
	}
	s.FillRect(0, 0, s.Width(), 1, ' ', core.ColorDefault)
	s.DrawTextColor(0, 0, line, core.ColorBrightWhite)

	right := fmt.Sprintf("%s  %s ", runewidth.Truncate(h.PlayerName, 12, "…"), h.Preset)
	s.DrawTextColor(s.Width()-runewidth.StringWidth(right), 0, right, core.ColorCyan)
}

var manualLines = []string{
	"HOW TO PLAY",
	"",
	"←/→ or A/D  steer",
	"P           pause",
	"",
	"Dodge the oncoming",
	"traffic. Every car",
	"you pass scores 1.",
}

func drawManual(s *core.Screen, f counterflow.Frame, v viewport) {
	left, _ := v.toCell(f.Road.Right(), 0)
	left += 2
	width := 0
	for _, l := range manualLines {
		width = max(width, runewidth.StringWidth(l))
	}
	if left+width+4 > s.Width() {
		return
	}
	top := 2
	s.FillRect(left, top, width+4, len(manualLines)+2, ' ', core.ColorDefault)
	s.DrawBox(left, top, width+4, len(manualLines)+2, core.ColorGray)
	for i, l := range manualLines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		s.DrawTextColor(left+2, top+1+i, l, c)
	}
}

func drawOverlay(s *core.Screen, f counterflow.Frame, v viewport) {
	if f.Title == "" && len(f.Buttons) == 0 {
		return
	}

	_, titleRow := v.toCell(0, 120)
	if f.Mode == counterflow.ModePlayerPicker || f.Mode == counterflow.ModeLeaderboard {
		_, titleRow = v.toCell(0, 60)
	}
	titleColor := core.ColorBrightWhite
	if f.Mode == counterflow.ModeGameOver {
		titleColor = core.ColorBrightRed
		if f.Won {
			titleColor = core.ColorBrightGreen
		}
	}
	centerLine(s, titleRow, f.Title, titleColor)
	if f.Subtitle != "" {
		centerLine(s, titleRow+2, f.Subtitle, core.ColorWhite)
	}

	if f.Mode == counterflow.ModeNameEntry {
		drawNameEntry(s, f, titleRow+3)
	}
	for _, b := range f.Buttons {
		drawButton(s, b, v)
	}
	if f.Mode == counterflow.ModePlayerPicker {
		for _, r := range f.Rows {
			drawPickerRow(s, r, v)
		}
	}
}

func drawNameEntry(s *core.Screen, f counterflow.Frame, row int) {
	w := f.NameMax + 6
	x := (s.Width() - w) / 2
	s.FillRect(x, row, w, 3, ' ', core.ColorDefault)
	s.DrawBox(x, row, w, 3, core.ColorCyan)
	s.DrawTextColor(x+2, row+1, f.NameBuffer+"_", core.ColorBrightWhite)
	count := fmt.Sprintf("%d/%d", runewidth.StringWidth(f.NameBuffer), f.NameMax)
	centerLine(s, row+4, count, core.ColorGray)
}

func drawButton(s *core.Screen, b counterflow.Button, v viewport) {
	x, y, w, h := v.cells(b.Rect)
	s.FillRect(x, y, w, h, ' ', core.ColorDefault)
	label := b.Label
	if b.Selected {
		label = "> " + label + " <"
	}
	if h >= 3 {
		s.DrawBox(x, y, w, h, b.Color)
	}
	lx := x + (w-runewidth.StringWidth(label))/2
	c := b.Color
	if b.Selected {
		c = core.ColorBrightWhite
	}
	s.DrawTextColor(lx, y+h/2, label, c)
}

func drawPickerRow(s *core.Screen, r counterflow.Row, v viewport) {
	if r.Rect.W == 0 {
		return
	}
	x, y, w, _ := v.cells(r.Rect)
	c := core.ColorWhite
	prefix := "  "
	if r.Selected {
		c, prefix = core.ColorBrightYellow, "> "
	}
	name := runewidth.FillRight(runewidth.Truncate(r.Name, 14, "…"), 14)
	line := fmt.Sprintf("%s%s %6d", prefix, name, r.Score)
	s.FillRect(x, y, w, 1, ' ', core.ColorDefault)
	s.DrawTextColor(x+(w-runewidth.StringWidth(line))/2, y, line, c)
}

// centerLine draws text centred using display width, over a cleared band.
func centerLine(s *core.Screen, row int, text string, c core.Color) {
	w := runewidth.StringWidth(text)
	x := (s.Width() - w) / 2
	s.FillRect(x-1, row, w+2, 1, ' ', core.ColorDefault)
	s.DrawTextColor(x, row, text, c)
}
