package counterflow

import (
	"math"
	"testing"

	"github.com/vovakirdan/counterflow/internal/config"
	"github.com/vovakirdan/counterflow/internal/core"
)

func TestAdvanceEnemiesMovesBySpeed(t *testing.T) {
	cfg := config.DefaultConfig()
	p := testPlacer(cfg, 1)

	cars := []Entity{
		{Rect: core.NewRect(100, -50, 40, 60), Lane: LaneLeft, Speed: 6.6, Kind: KindEnemy},
		{Rect: core.NewRect(300, 200, 40, 60), Lane: LaneRight, Speed: 2.2, Kind: KindEnemy},
	}
	prof := LevelProfile{LeftSpeed: 6.6, RightSpeed: 2.2}
	if n := advanceEnemies(cars, 600, p, prof); n != 0 {
		t.Fatalf("no car left the frame, got %d respawns", n)
	}
	if math.Abs(cars[0].Rect.Y-(-43.4)) > 1e-9 || math.Abs(cars[1].Rect.Y-202.2) > 1e-9 {
		t.Errorf("cars moved to y=%v and y=%v", cars[0].Rect.Y, cars[1].Rect.Y)
	}
	if cars[0].Rect.X != 100 || cars[1].Rect.X != 300 {
		t.Error("plain enemies must not move sideways")
	}
}

func TestAdvanceEnemiesRespawnKeepsLane(t *testing.T) {
	cfg := config.DefaultConfig()
	p := testPlacer(cfg, 2)
	f := p.field
	prof := LevelProfile{LeftSpeed: 6, RightSpeed: 2}

	for i := 0; i < 100; i++ {
		cars := []Entity{
			{Rect: core.NewRect(120, 599, 40, 60), Lane: LaneLeft, Speed: 6, Kind: KindEnemy},
			{Rect: core.NewRect(350, 600, 40, 60), Lane: LaneRight, Speed: 2, Kind: KindEnemy},
			{Rect: core.NewRect(200, 598, 40, 60), Lane: LaneLeft, Speed: 4, Kind: KindPursuit},
		}
		if n := advanceEnemies(cars, 600, p, prof); n != 3 {
			t.Fatalf("expected 3 respawns, got %d", n)
		}
		for _, c := range cars {
			if c.Rect.Bottom() > 0 {
				t.Fatalf("respawned %s at y=%v is visible", c.Kind, c.Rect.Y)
			}
			if c.Kind == KindPursuit {
				lo, hi := f.RoadRange(c.Rect.W)
				if c.Rect.X < lo || c.Rect.X > hi {
					t.Fatalf("pursuit x %v left the road", c.Rect.X)
				}
				if c.Lane != f.LaneOf(c.Rect) || c.Speed != prof.Speed(c.Lane) {
					t.Fatalf("respawned pursuit car in %s lane moves at %v", c.Lane, c.Speed)
				}
				continue
			}
			lo, hi := f.LaneRange(c.Lane)
			if c.Rect.X < lo || c.Rect.X > hi {
				t.Fatalf("%s lane car respawned at x=%v outside [%v, %v]", c.Lane, c.Rect.X, lo, hi)
			}
		}
		if cars[0].Speed != 6 || cars[1].Speed != 2 {
			t.Fatal("respawn must keep the lane speed")
		}
	}
}

func TestScrollSceneryRecycles(t *testing.T) {
	cfg := config.DefaultConfig()
	p := testPlacer(cfg, 3)

	scenery := []Entity{
		{Rect: core.NewRect(20, 100, 40, 80), Lane: LaneLeft, Speed: 5, Kind: KindScenery},
		{Rect: core.NewRect(500, 598, 40, 80), Lane: LaneRight, Speed: 5, Kind: KindScenery},
	}
	scrollScenery(scenery, 600, p)

	if scenery[0].Rect.Y != 105 {
		t.Errorf("scenery should move by its speed, y=%v", scenery[0].Rect.Y)
	}
	r := scenery[1].Rect
	if r.Bottom() > 0 {
		t.Errorf("recycled scenery at y=%v is visible", r.Y)
	}
	if lo, hi := p.field.SideRange(LaneRight); r.X < lo || r.X > hi {
		t.Errorf("recycled scenery x=%v left its side", r.X)
	}
}

func TestPursueStepIsBounded(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		target  float64
		expectX float64
	}{
		{"far right target", 100, 400, 101.5},
		{"far left target", 300, 120, 298.5},
		{"close target", 200, 220.5, 200.5}, // centre 220 -> 220.5
		{"clamped at road edge", 407, 900, 408},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Entity{Rect: core.NewRect(tc.x, 0, 40, 60), Kind: KindPursuit}
			pursue(&e, tc.target, 1.5, 98, 408)
			if math.Abs(e.Rect.X-tc.expectX) > 1e-9 {
				t.Errorf("x = %v, expected %v", e.Rect.X, tc.expectX)
			}
			if math.Abs(e.Rect.X-tc.x) > 1.5 {
				t.Errorf("step %v exceeds the pursuit step", e.Rect.X-tc.x)
			}
		})
	}
}

func TestFollowLaneAcrossCentreLine(t *testing.T) {
	cfg := config.DefaultConfig()
	f := testPlacer(cfg, 4).field
	prof := LevelProfile{LeftSpeed: 8.1, RightSpeed: 2.7}

	// Centre at 250, left of the 273 centre line
	e := Entity{Rect: core.NewRect(230, 0, 40, 60), Kind: KindPursuit}
	followLane(&e, f, prof)
	if e.Lane != LaneLeft || e.Speed != 8.1 {
		t.Fatalf("start: lane %s speed %v, expected left at 8.1", e.Lane, e.Speed)
	}

	pursue(&e, 400, 30, 98, 408)
	followLane(&e, f, prof)
	if e.Lane != LaneRight || e.Speed != 2.7 {
		t.Errorf("after crossing: lane %s speed %v, expected right at 2.7", e.Lane, e.Speed)
	}
}

func TestSteer(t *testing.T) {
	start := core.NewRect(253, 480, 40, 60)

	if r := steer(start, true, false, 5, 98, 408); r.X != 248 {
		t.Errorf("left: x = %v, expected 248", r.X)
	}
	if r := steer(start, false, true, 5, 98, 408); r.X != 258 {
		t.Errorf("right: x = %v, expected 258", r.X)
	}
	if r := steer(start, true, true, 5, 98, 408); r.X != 253 {
		t.Errorf("both: x = %v, expected 253", r.X)
	}
	if r := steer(core.NewRect(100, 480, 40, 60), true, false, 5, 98, 408); r.X != 98 {
		t.Errorf("left edge clamp: x = %v, expected 98", r.X)
	}
	if r := steer(core.NewRect(406, 480, 40, 60), false, true, 5, 98, 408); r.X != 408 {
		t.Errorf("right edge clamp: x = %v, expected 408", r.X)
	}
}

func TestCollision(t *testing.T) {
	player := core.NewRect(100, 100, 50, 60)

	tests := []struct {
		name  string
		enemy core.Rect
		want  int
	}{
		{"overlapping", core.NewRect(120, 130, 50, 60), 0},
		{"enemy top on player bottom", core.NewRect(100, 160, 50, 60), -1},
		{"enemy bottom on player top", core.NewRect(100, 40, 50, 60), -1},
		{"side by side", core.NewRect(150, 100, 50, 60), -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cars := []Entity{{Rect: tc.enemy, Kind: KindEnemy}}
			if got := collision(player, cars); got != tc.want {
				t.Errorf("collision() = %d, expected %d", got, tc.want)
			}
		})
	}
}
