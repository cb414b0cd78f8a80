package counterflow

import (
	"github.com/vovakirdan/counterflow/internal/core"
)

// scrollScenery moves scenery down by its speed and recycles anything whose
// top passed the bottom of the frame.
func scrollScenery(scenery []Entity, height float64, p *Placer) {
	for i := range scenery {
		e := &scenery[i]
		e.Rect.Y += e.Speed
		if e.Rect.Y > height {
			e.Rect = e.Rect.Moved(p.ScenerySpawn(e.Lane))
		}
	}
}

// advanceEnemies moves every car down by its speed. Cars that left the frame
// respawn above it, enemies in their own lane and the pursuit car anywhere
// on the road. It returns how many cars respawned.
func advanceEnemies(enemies []Entity, height float64, p *Placer, prof LevelProfile) int {
	respawned := 0
	for i := range enemies {
		e := &enemies[i]
		e.Rect.Y += e.Speed
		if e.Rect.Y <= height {
			continue
		}
		switch e.Kind {
		case KindPursuit:
			e.Rect = e.Rect.Moved(p.PursuitSpawn())
			followLane(e, p.field, prof)
		default:
			e.Rect = e.Rect.Moved(p.EnemySpawn(e.Lane))
		}
		respawned++
	}
	return respawned
}

// pursue steps the pursuit car horizontally toward the target centre by at
// most maxStep, keeping it inside [lo, hi].
func pursue(e *Entity, targetX, maxStep, lo, hi float64) {
	cx, _ := e.Rect.Center()
	step := core.ClampF(targetX-cx, -maxStep, maxStep)
	e.Rect.X = core.ClampF(e.Rect.X+step, lo, hi)
}

// followLane files the pursuit car under the lane holding its centre and
// gives it that lane's speed.
func followLane(e *Entity, f Field, prof LevelProfile) {
	e.Lane = f.LaneOf(e.Rect)
	e.Speed = prof.Speed(e.Lane)
}

// steer applies held left/right input to the player car.
func steer(player core.Rect, left, right bool, speed, lo, hi float64) core.Rect {
	if left {
		player.X -= speed
	}
	if right {
		player.X += speed
	}
	player.X = core.ClampF(player.X, lo, hi)
	return player
}

// collision returns the index of the first car overlapping the player, or -1.
func collision(player core.Rect, enemies []Entity) int {
	for i, e := range enemies {
		if player.Intersects(e.Rect) {
			return i
		}
	}
	return -1
}
