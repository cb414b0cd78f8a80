// Package counterflow implements the Counter Flow simulation: a lane-based
// arcade game where the player steers against oncoming traffic.
//
// The package is renderer-agnostic. A platform drives it with Step once per
// frame and draws whatever Frame returns.
package counterflow

import "github.com/vovakirdan/counterflow/internal/core"

// Lane is one side of the road centre line. Scenery uses it for its side
// of the road.
type Lane int

const (
	LaneLeft Lane = iota
	LaneRight
)

func (l Lane) String() string {
	if l == LaneLeft {
		return "left"
	}
	return "right"
}

// Kind tags an entity.
type Kind int

const (
	KindEnemy Kind = iota
	KindPursuit
	KindScenery
)

func (k Kind) String() string {
	switch k {
	case KindEnemy:
		return "enemy"
	case KindPursuit:
		return "pursuit"
	case KindScenery:
		return "scenery"
	default:
		return "unknown"
	}
}

// Sprite tags. They only matter to renderers.
const (
	TagEnemyLeft  = "enemy_down_left"
	TagEnemyRight = "enemy_down_right"
	TagPursuit    = "pursuit"
	TagPlayer     = "player"
)

// Entity is anything that scrolls down the playfield.
type Entity struct {
	Rect  core.Rect
	Lane  Lane
	Speed float64 // Pixels per tick, downward
	Kind  Kind
	Tag   string
}

func enemyTag(l Lane) string {
	if l == LaneLeft {
		return TagEnemyLeft
	}
	return TagEnemyRight
}

// Theme selects the background and scenery look. It cycles with the level.
type Theme int

const (
	ThemeGrass Theme = iota
	ThemeDesert
	ThemeDirt
	themeCount
)

// ThemeForLevel returns the theme used at a zero-based level.
func ThemeForLevel(level int) Theme {
	return Theme(level % int(themeCount))
}

func (t Theme) String() string {
	switch t {
	case ThemeGrass:
		return "grass"
	case ThemeDesert:
		return "desert"
	default:
		return "dirt"
	}
}

// SceneryTag returns the sprite tag for roadside scenery in this theme.
func (t Theme) SceneryTag() string {
	switch t {
	case ThemeGrass:
		return "tree"
	case ThemeDesert:
		return "desert_rock"
	default:
		return "burned_tree"
	}
}
