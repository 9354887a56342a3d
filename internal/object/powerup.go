package object

import (
	"fmt"

	"github.com/tomz197/starfall/internal/loop/config"
)

// PowerUpKind identifies the effect of a pickup.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpRapidFire
	PowerUpSpeed
	PowerUpDualShot
	PowerUpHealth
)

// PowerUpKinds lists every kind; drops pick uniformly from it.
var PowerUpKinds = []PowerUpKind{
	PowerUpShield,
	PowerUpRapidFire,
	PowerUpSpeed,
	PowerUpDualShot,
	PowerUpHealth,
}

// TimedPowerUps lists the kinds that have an expiry on the player.
var TimedPowerUps = []PowerUpKind{
	PowerUpShield,
	PowerUpRapidFire,
	PowerUpSpeed,
	PowerUpDualShot,
}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpRapidFire:
		return "rapidfire"
	case PowerUpSpeed:
		return "speed"
	case PowerUpDualShot:
		return "dual_shot"
	case PowerUpHealth:
		return "health"
	default:
		return fmt.Sprintf("powerup(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k PowerUpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PowerUpKind) UnmarshalText(text []byte) error {
	for _, kind := range PowerUpKinds {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown power-up kind %q", text)
}

// PowerUp is a pickup drifting slowly downward.
type PowerUp struct {
	Body
	VY          float64
	PowerUpKind PowerUpKind
	Life        int // Ticks left before it vanishes
}

// NewPowerUp creates a pickup centered at (x, y).
func NewPowerUp(x, y float64, kind PowerUpKind) *PowerUp {
	return &PowerUp{
		Body: Body{
			X: x,
			Y: y,
			W: config.PowerUpSize,
			H: config.PowerUpSize,
		},
		VY:          config.PowerUpSpeed,
		PowerUpKind: kind,
		Life:        config.PowerUpLifeTicks,
	}
}

// RandomPowerUp creates a pickup of a uniformly chosen kind.
func RandomPowerUp(rng Rand, x, y float64) *PowerUp {
	return NewPowerUp(x, y, PowerUpKinds[rng.IntN(len(PowerUpKinds))])
}

// Kind implements Entity.
func (p *PowerUp) Kind() Kind { return KindPowerUp }

// Advance moves the pickup and ages it. Returns true when its life ran out
// or it left the bottom of the area.
func (p *PowerUp) Advance(area PlayArea) (gone bool) {
	p.Y += p.VY
	p.Life--
	return p.Life <= 0 || p.Bounds().Top() > area.Height+config.EnemyEscapeMargin
}

// Blinking reports whether the pickup is about to vanish.
func (p *PowerUp) Blinking() bool {
	return p.Life < config.PowerUpBlinkTicks
}
