package counterflow

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/counterflow/internal/config"
	"github.com/vovakirdan/counterflow/internal/core"
)

// Field is the playfield geometry derived from the configuration.
type Field struct {
	Screen core.Rect
	Road   core.Rect
	cfg    config.Config
}

// NewField derives the playfield geometry from cfg.
func NewField(cfg config.Config) Field {
	return Field{
		Screen: core.NewRect(0, 0, cfg.Screen.Width, cfg.Screen.Height),
		Road:   core.NewRect(cfg.Road.X, 0, cfg.Road.Width, cfg.Screen.Height),
		cfg:    cfg,
	}
}

// LaneRange returns the x range an enemy's left edge may take in lane l.
// Within it the car never crosses the centre line or the road edge.
func (f Field) LaneRange(l Lane) (lo, hi float64) {
	w := f.cfg.Enemies.Width
	c := f.cfg.Road.Center()
	gap := f.cfg.Road.LaneGap
	if l == LaneLeft {
		return f.Road.X, c - gap - w
	}
	return c + gap, f.Road.Right() - w
}

// RoadRange returns the x range for the left edge of a w-wide rect
// kept inside the road band.
func (f Field) RoadRange(w float64) (lo, hi float64) {
	return f.Road.X, f.Road.Right() - w
}

// SideRange returns the x range for scenery on one side of the road.
func (f Field) SideRange(side Lane) (lo, hi float64) {
	s := f.cfg.Scenery
	if side == LaneLeft {
		return s.EdgeMargin, f.Road.X - s.Width - s.RoadMargin
	}
	return f.Road.Right() + s.RoadMargin, f.Screen.W - s.Width - s.EdgeMargin
}

// LaneOf returns the lane whose half of the road holds r's centre.
func (f Field) LaneOf(r core.Rect) Lane {
	cx, _ := r.Center()
	if cx < f.cfg.Road.Center() {
		return LaneLeft
	}
	return LaneRight
}

// PlacementStats counts rejection-sampling outcomes.
type PlacementStats struct {
	Placed    int // Scenery positions handed out
	Exhausted int // Of those, accepted after running out of attempts
}

// Placer samples positions for scenery and vehicles.
type Placer struct {
	field  Field
	rng    *rand.Rand
	logger *log.Logger
	stats  PlacementStats
}

// NewPlacer creates a placer drawing from rng.
func NewPlacer(field Field, rng *rand.Rand, logger *log.Logger) *Placer {
	return &Placer{field: field, rng: rng, logger: logger}
}

// Stats returns the placement counters accumulated so far.
func (p *Placer) Stats() PlacementStats {
	return p.stats
}

// uniform samples [lo, hi]. A collapsed range yields lo.
func (p *Placer) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Float64()*(hi-lo)
}

// PlaceScenery returns count positions on one side of the road. Each
// accepted position is at least the minimum separation away from every
// position in existing and from earlier results, in at least one axis.
// When the attempt cap runs out the last candidate is accepted anyway.
func (p *Placer) PlaceScenery(side Lane, count int, existing []core.Vec) []core.Vec {
	s := p.field.cfg.Scenery
	h := p.field.Screen.H
	lo, hi := p.field.SideRange(side)

	accepted := append([]core.Vec(nil), existing...)
	placed := make([]core.Vec, 0, count)
	for i := 0; i < count; i++ {
		var cand core.Vec
		ok := false
		for attempt := 0; attempt < s.MaxAttempts; attempt++ {
			cand = core.Vec{X: p.uniform(lo, hi), Y: p.uniform(-h, h-s.Height)}
			if !tooClose(cand, accepted, s.MinSeparation) {
				ok = true
				break
			}
		}
		if !ok {
			p.stats.Exhausted++
			p.logger.Debug("scenery placement exhausted", "side", side, "attempts", s.MaxAttempts)
		}
		p.stats.Placed++
		accepted = append(accepted, cand)
		placed = append(placed, cand)
	}
	return placed
}

// tooClose reports whether c is within sep of any position on both axes.
func tooClose(c core.Vec, others []core.Vec, sep float64) bool {
	for _, o := range others {
		if math.Abs(c.X-o.X) < sep && math.Abs(c.Y-o.Y) < sep {
			return true
		}
	}
	return false
}

// ScenerySpawn returns a respawn position above the frame. No overlap check.
func (p *Placer) ScenerySpawn(side Lane) core.Vec {
	s := p.field.cfg.Scenery
	lo, hi := p.field.SideRange(side)
	return core.Vec{X: p.uniform(lo, hi), Y: p.uniform(s.RespawnMinY, s.RespawnMaxY)}
}

// EnemySpawn returns a spawn position in lane l, above the frame.
func (p *Placer) EnemySpawn(l Lane) core.Vec {
	e := p.field.cfg.Enemies
	lo, hi := p.field.LaneRange(l)
	return core.Vec{X: p.uniform(lo, hi), Y: p.uniform(e.SpawnMinY, e.SpawnMaxY)}
}

// PursuitSpawn returns a spawn position anywhere across the road band.
func (p *Placer) PursuitSpawn() core.Vec {
	e := p.field.cfg.Enemies
	lo, hi := p.field.RoadRange(e.Width)
	return core.Vec{X: p.uniform(lo, hi), Y: p.uniform(e.SpawnMinY, e.SpawnMaxY)}
}

// PickLane chooses a lane with equal odds.
func (p *Placer) PickLane() Lane {
	if p.rng.Float64() < 0.5 {
		return LaneLeft
	}
	return LaneRight
}

// Count picks an integer in [lo, hi].
func (p *Placer) Count(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Intn(hi-lo+1)
}
