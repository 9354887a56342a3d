// Package object defines the game entities and their per-tick update rules.
package object

import (
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/physics"
)

//go:generate go tool mockgen -destination=./mocks/rand_mock.go -package=mocks . Rand

// Rand is the randomness source used by entity constructors and motion.
// *math/rand/v2.Rand satisfies it; tests substitute a mock to force branches.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Uniform returns a value in [lo, hi) drawn from rng.
func Uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Kind tags the closed set of entity variants.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBullet
	KindPowerUp
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Body is the positional and lifecycle record shared by every entity.
type Body struct {
	X, Y    float64 // Center position
	W, H    float64 // Bounding box size
	Removed bool    // Marked for removal at the end of the current phase
}

// Bounds returns the axis-aligned bounding box.
func (b *Body) Bounds() physics.Rect {
	return physics.RectAround(b.X, b.Y, b.W, b.H)
}

// MarkRemoved flags the entity for removal.
func (b *Body) MarkRemoved() {
	b.Removed = true
}

// IsRemoved reports whether the entity is flagged for removal.
func (b *Body) IsRemoved() bool {
	return b.Removed
}

// Entity is implemented by all entity variants for render sinks.
type Entity interface {
	Kind() Kind
	Bounds() physics.Rect
}

// PlayArea is the rectangle entities live in.
type PlayArea struct {
	Width  float64
	Height float64
}

// DefaultPlayArea returns the standard play area.
func DefaultPlayArea() PlayArea {
	return PlayArea{Width: config.PlayWidth, Height: config.PlayHeight}
}

// ClampBody moves b so its bounding box stays inside the area.
func (a PlayArea) ClampBody(b *Body) {
	b.X = physics.Clamp(b.X, b.W/2, a.Width-b.W/2)
	b.Y = physics.Clamp(b.Y, b.H/2, a.Height-b.H/2)
}

// Input is the per-tick command from the presentation layer.
type Input struct {
	DX, DY  int  // Movement direction, each in {-1, 0, 1}
	Fire    bool // Fire held
	Restart bool // Restart requested (honored after game over)
}

// Normalize clamps the direction axes to {-1, 0, 1}.
func (in Input) Normalize() Input {
	in.DX = sign(in.DX)
	in.DY = sign(in.DY)
	return in
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
