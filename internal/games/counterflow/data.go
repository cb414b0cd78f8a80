package counterflow

import (
	"math"
	"time"

	"github.com/vovakirdan/counterflow/internal/config"
	"github.com/vovakirdan/counterflow/internal/core"
)

// GameData is the state of one run.
type GameData struct {
	Level          int // Zero-based
	Score          int
	Player         core.Rect
	Enemies        []Entity
	Scenery        []Entity
	LeveledUp      bool // Guard flag: an advance fired and the score has not moved off the boundary yet
	QuotasConsumed int
	RoadOffset     float64
	Profile        LevelProfile
	Ticks          uint64
	Elapsed        time.Duration
	Won            bool
}

// newGameData builds a fresh run with the player centred on the road,
// new scenery on both sides and no traffic yet.
func newGameData(cfg config.Config, f Field, p *Placer) GameData {
	pc := cfg.Player
	d := GameData{
		Player: core.NewRect(
			cfg.Road.Center()-pc.Width/2,
			f.Screen.H-pc.BottomOffset,
			pc.Width,
			pc.Height,
		),
	}
	d.Scenery = placeScenery(cfg, p)
	return d
}

// placeScenery fills both roadside zones.
func placeScenery(cfg config.Config, p *Placer) []Entity {
	s := cfg.Scenery
	var positions []core.Vec
	scenery := make([]Entity, 0, 2*s.PerSide)
	for _, side := range []Lane{LaneLeft, LaneRight} {
		placed := p.PlaceScenery(side, s.PerSide, positions)
		positions = append(positions, placed...)
		for _, pos := range placed {
			scenery = append(scenery, Entity{
				Rect:  core.NewRect(pos.X, pos.Y, s.Width, s.Height),
				Lane:  side,
				Speed: cfg.Road.ScrollSpeed,
				Kind:  KindScenery,
			})
		}
	}
	return scenery
}

// spawnTraffic replaces all cars with a new set for profile.
func spawnTraffic(cfg config.Config, prof LevelProfile, p *Placer) []Entity {
	e := cfg.Enemies
	n := p.Count(prof.MinCount, prof.MaxCount)
	cars := make([]Entity, 0, n+1)
	for i := 0; i < n; i++ {
		lane := p.PickLane()
		pos := p.EnemySpawn(lane)
		cars = append(cars, Entity{
			Rect:  core.NewRect(pos.X, pos.Y, e.Width, e.Height),
			Lane:  lane,
			Speed: prof.Speed(lane),
			Kind:  KindEnemy,
			Tag:   enemyTag(lane),
		})
	}
	if prof.Pursuit {
		pos := p.PursuitSpawn()
		car := Entity{
			Rect: core.NewRect(pos.X, pos.Y, e.Width, e.Height),
			Kind: KindPursuit,
			Tag:  TagPursuit,
		}
		followLane(&car, p.field, prof)
		cars = append(cars, car)
	}
	return cars
}

// scrollRoad advances the road marking offset, wrapping at the frame height.
func (d *GameData) scrollRoad(speed, height float64) {
	d.RoadOffset = math.Mod(d.RoadOffset+speed, height)
}
