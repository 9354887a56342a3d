package session

import (
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// Box is the bounding box of an entity, centered on X, Y.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func boxOf(b *object.Body) Box {
	return Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Effect is an active timed power-up.
type Effect struct {
	Kind        object.PowerUpKind `json:"kind"`
	RemainingMs int64              `json:"remainingMs"`
}

// PlayerView is the render state of the player.
type PlayerView struct {
	Box
	HP           int      `json:"hp"`
	MaxHP        int      `json:"maxHp"`
	Invulnerable bool     `json:"invulnerable"`
	Hidden       bool     `json:"hidden"` // Off phase of the invulnerability blink
	Shielded     bool     `json:"shielded"`
	Effects      []Effect `json:"effects"`
}

// EnemyView is the render state of an enemy.
type EnemyView struct {
	Box
	Health float64 `json:"health"` // Remaining hp fraction
}

// BulletView is the render state of a bullet.
type BulletView struct {
	Box
	Kind object.BulletKind `json:"kind"`
}

// PowerUpView is the render state of a pickup.
type PowerUpView struct {
	Box
	Kind     object.PowerUpKind `json:"kind"`
	Blinking bool               `json:"blinking"`
}

// Snapshot is an immutable copy of the session for render sinks.
type Snapshot struct {
	Now           int64             `json:"now"`
	Width         float64           `json:"width"`
	Height        float64           `json:"height"`
	Difficulty    config.Difficulty `json:"difficulty"`
	Score         int               `json:"score"`
	Level         int               `json:"level"`
	Wave          int               `json:"wave"`
	SpawnInterval int64             `json:"spawnInterval"`
	GameOver      bool              `json:"gameOver"`

	Player   PlayerView    `json:"player"`
	Enemies  []EnemyView   `json:"enemies"`
	Bullets  []BulletView  `json:"bullets"`
	PowerUps []PowerUpView `json:"powerUps"`
}

// Snapshot copies the current state as seen at time now.
func (s *Session) Snapshot(now int64) Snapshot {
	p := s.player
	snap := Snapshot{
		Now:           now,
		Width:         s.area.Width,
		Height:        s.area.Height,
		Difficulty:    s.difficulty,
		Score:         s.score,
		Level:         s.director.Level,
		Wave:          s.director.Wave,
		SpawnInterval: s.director.Interval,
		GameOver:      s.gameOver,
		Player: PlayerView{
			Box:          boxOf(&p.Body),
			HP:           p.HP,
			MaxHP:        p.MaxHP,
			Invulnerable: p.Invulnerable(now),
			Hidden:       p.Invulnerable(now) && (now/config.PlayerBlinkMs)%2 == 0,
			Shielded:     p.Shielded(now),
			Effects:      make([]Effect, 0, len(object.TimedPowerUps)),
		},
		Enemies:  make([]EnemyView, 0, len(s.enemies)),
		Bullets:  make([]BulletView, 0, len(s.bullets)),
		PowerUps: make([]PowerUpView, 0, len(s.powerUps)),
	}

	for _, kind := range object.TimedPowerUps {
		if left := p.Remaining(kind, now); left > 0 {
			snap.Player.Effects = append(snap.Player.Effects, Effect{Kind: kind, RemainingMs: left})
		}
	}
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{Box: boxOf(&e.Body), Health: e.HealthFraction()})
	}
	for _, b := range s.bullets {
		snap.Bullets = append(snap.Bullets, BulletView{Box: boxOf(&b.Body), Kind: b.BulletKind})
	}
	for _, pu := range s.powerUps {
		snap.PowerUps = append(snap.PowerUps, PowerUpView{Box: boxOf(&pu.Body), Kind: pu.PowerUpKind, Blinking: pu.Blinking()})
	}
	return snap
}
