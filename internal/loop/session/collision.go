package session

import (
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// gridCellSize must be at least the largest center distance at which a
// bullet and an enemy can overlap.
const gridCellSize = 64

// resolveCollisions runs the overlap checks in their fixed order.
// It returns false when the player died and the tick must stop.
func (s *Session) resolveCollisions(now int64, r *Report) bool {
	s.checkBulletEnemyCollisions(r)
	s.checkEnemyPlayerCollisions(now, r)

	s.bullets = compact(s.bullets)
	s.enemies = compact(s.enemies)

	if s.player.Dead() {
		s.gameOver = true
		r.add(Event{Kind: EventGameOver, X: s.player.X, Y: s.player.Y, Level: s.director.Level})
		return false
	}

	s.checkPlayerPowerUpCollisions(now, r)
	s.powerUps = compact(s.powerUps)
	return true
}

// checkBulletEnemyCollisions consumes every bullet overlapping a live enemy.
// Bullets past the killing one are spent without further damage or score.
// Bullets are bucketed in the spatial grid.
func (s *Session) checkBulletEnemyCollisions(r *Report) {
	if len(s.bullets) == 0 || len(s.enemies) == 0 {
		return
	}

	s.grid.Clear()
	for i, b := range s.bullets {
		s.grid.Insert(b.X, b.Y, i)
	}

	for _, e := range s.enemies {
		if e.Removed {
			continue
		}
		bounds := e.Bounds()
		s.grid.QueryAround(e.X, e.Y, func(i int) bool {
			b := s.bullets[i]
			if b.Removed || !bounds.Overlaps(b.Bounds()) {
				return false
			}
			b.MarkRemoved()
			if e.Removed {
				return false
			}

			if !e.TakeDamage(1) {
				r.add(Event{Kind: EventEnemyHit, X: e.X, Y: e.Y})
				return false
			}
			s.destroyEnemy(e, r)
			return false
		})
	}
}

// destroyEnemy scores a kill and rolls for a power-up drop.
func (s *Session) destroyEnemy(e *object.Enemy, r *Report) {
	e.MarkRemoved()

	points := killScore(s.director.Level, s.settings.ScoreMultiplier)
	s.score += points
	r.ScoreDelta += points
	r.add(Event{Kind: EventEnemyDestroyed, X: e.X, Y: e.Y, Points: points})

	if s.rng.Float64() < s.settings.PowerUpChance {
		p := object.RandomPowerUp(s.rng, e.X, e.Y)
		s.powerUps = append(s.powerUps, p)
		r.add(Event{Kind: EventPowerUpDropped, X: p.X, Y: p.Y, PowerUp: pickup(p.PowerUpKind)})
	}
}

// checkEnemyPlayerCollisions removes every enemy that crashed into the player.
// Each crash is a separate hit; the invulnerability window absorbs repeats.
func (s *Session) checkEnemyPlayerCollisions(now int64, r *Report) {
	bounds := s.player.Bounds()
	for _, e := range s.enemies {
		if e.Removed || !bounds.Overlaps(e.Bounds()) {
			continue
		}
		e.MarkRemoved()

		switch s.player.TakeDamage(now, 1) {
		case object.DamageShielded:
			r.add(Event{Kind: EventShieldBroken, X: s.player.X, Y: s.player.Y})
		case object.DamageTaken:
			r.add(Event{Kind: EventPlayerHit, X: s.player.X, Y: s.player.Y})
		}
	}
}

// checkPlayerPowerUpCollisions collects overlapping pickups.
func (s *Session) checkPlayerPowerUpCollisions(now int64, r *Report) {
	bounds := s.player.Bounds()
	for _, p := range s.powerUps {
		if p.Removed || !bounds.Overlaps(p.Bounds()) {
			continue
		}
		p.MarkRemoved()

		if p.PowerUpKind == object.PowerUpHealth {
			s.player.Heal(1)
		} else {
			s.player.ApplyPowerUp(p.PowerUpKind, now)
		}
		r.add(Event{Kind: EventPowerUpCollected, X: p.X, Y: p.Y, PowerUp: pickup(p.PowerUpKind)})
	}
}

// killScore returns the points for destroying an enemy at the given level.
func killScore(level int, multiplier float64) int {
	return int(float64(config.ScorePerKill*level) * multiplier)
}

// compact drops removed entities in place, keeping order.
func compact[T interface{ IsRemoved() bool }](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsRemoved() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
