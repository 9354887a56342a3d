package object

import (
	"math"

	"github.com/tomz197/starfall/internal/loop/config"
)

// neverFired is the LastShot value of a ship that has not shot yet.
const neverFired = math.MinInt64 / 2

// DamageResult describes what TakeDamage did.
type DamageResult int

const (
	DamageIgnored  DamageResult = iota // Invulnerable, nothing happened
	DamageShielded                     // Shield absorbed the hit and broke
	DamageTaken                        // Hit points were lost
)

// Player is the player-controlled ship.
//
// All timed effects are absolute expiry timestamps in milliseconds of the
// session clock; an effect is active while now < expiry.
type Player struct {
	Body

	HP    int
	MaxHP int

	Speed      float64 // Base speed in pixels per tick
	BoostSpeed float64 // Speed while SpeedBoostUntil is in the future

	LastShot          int64
	InvulnerableUntil int64
	ShieldUntil       int64
	RapidFireUntil    int64
	DualShotUntil     int64
	SpeedBoostUntil   int64
}

// NewPlayer creates a ship at the standard spawn point of the area.
func NewPlayer(area PlayArea) *Player {
	return &Player{
		Body: Body{
			X: area.Width / 2,
			Y: area.Height - config.PlayerSpawnOffset,
			W: config.PlayerWidth,
			H: config.PlayerHeight,
		},
		HP:         config.PlayerMaxHP,
		MaxHP:      config.PlayerMaxHP,
		Speed:      config.PlayerSpeed,
		BoostSpeed: config.PlayerSpeed,
		LastShot:   neverFired,
	}
}

// Kind implements Entity.
func (p *Player) Kind() Kind { return KindPlayer }

// CurrentSpeed returns the movement speed at time now.
func (p *Player) CurrentSpeed(now int64) float64 {
	if p.SpeedBoosted(now) {
		return p.BoostSpeed
	}
	return p.Speed
}

// Advance moves the ship in direction (dx, dy) and clips it to the area.
func (p *Player) Advance(dx, dy int, now int64, area PlayArea) {
	speed := p.CurrentSpeed(now)
	p.X += float64(dx) * speed
	p.Y += float64(dy) * speed
	area.ClampBody(&p.Body)
}

// Cooldown returns the minimum time between shots at time now.
func (p *Player) Cooldown(now int64) float64 {
	switch {
	case p.RapidFire(now):
		return config.ShootDelayMs * config.RapidFireFactor
	case p.SpeedBoosted(now):
		return config.ShootDelayMs * config.SpeedFireFactor
	default:
		return config.ShootDelayMs
	}
}

// TryShoot fires from the nose of the ship if the cooldown allows it.
// Returns nil while cooling down, two bullets with dual-shot, one otherwise.
func (p *Player) TryShoot(now int64) []*Bullet {
	if float64(now-p.LastShot) < p.Cooldown(now) {
		return nil
	}
	p.LastShot = now

	noseY := p.Y - p.H/2
	if p.DualShot(now) {
		return []*Bullet{
			NewBullet(p.X-config.DualShotSpread, noseY, BulletDual),
			NewBullet(p.X+config.DualShotSpread, noseY, BulletDual),
		}
	}
	return []*Bullet{NewBullet(p.X, noseY, BulletNormal)}
}

// TakeDamage applies a hit at time now.
func (p *Player) TakeDamage(now int64, amount int) DamageResult {
	if p.Invulnerable(now) {
		return DamageIgnored
	}
	p.InvulnerableUntil = now + config.InvulnerableMs

	if p.Shielded(now) {
		p.ShieldUntil = now
		return DamageShielded
	}
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
	return DamageTaken
}

// Heal restores hit points up to MaxHP and reports whether hp increased.
func (p *Player) Heal(amount int) bool {
	old := p.HP
	p.HP = min(p.HP+amount, p.MaxHP)
	return p.HP > old
}

// ApplyPowerUp starts or refreshes a timed power-up. Re-applying overwrites
// the expiry instead of extending it. Health is not timed and is ignored.
func (p *Player) ApplyPowerUp(kind PowerUpKind, now int64) {
	switch kind {
	case PowerUpShield:
		p.ShieldUntil = now + config.ShieldDurationMs
	case PowerUpRapidFire:
		p.RapidFireUntil = now + config.RapidFireDuration
	case PowerUpDualShot:
		p.DualShotUntil = now + config.DualShotDurationMs
	case PowerUpSpeed:
		p.SpeedBoostUntil = now + config.SpeedDurationMs
		p.BoostSpeed = p.Speed * config.PlayerBoostFactor
	}
}

// Dead reports whether the ship has no hit points left.
func (p *Player) Dead() bool { return p.HP <= 0 }

func (p *Player) Invulnerable(now int64) bool { return now < p.InvulnerableUntil }
func (p *Player) Shielded(now int64) bool     { return now < p.ShieldUntil }
func (p *Player) RapidFire(now int64) bool    { return now < p.RapidFireUntil }
func (p *Player) DualShot(now int64) bool     { return now < p.DualShotUntil }
func (p *Player) SpeedBoosted(now int64) bool { return now < p.SpeedBoostUntil }

// Remaining returns the milliseconds left on a timed power-up, or 0.
func (p *Player) Remaining(kind PowerUpKind, now int64) int64 {
	var until int64
	switch kind {
	case PowerUpShield:
		until = p.ShieldUntil
	case PowerUpRapidFire:
		until = p.RapidFireUntil
	case PowerUpDualShot:
		until = p.DualShotUntil
	case PowerUpSpeed:
		until = p.SpeedBoostUntil
	}
	return max(0, until-now)
}
