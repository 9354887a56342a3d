package object

import (
	"math"

	"github.com/tomz197/starfall/internal/loop/config"
)

// Enemy is a descending ship that weaves sideways and bounces off the walls.
type Enemy struct {
	Body

	VY       float64 // Descent speed in pixels per tick
	VX       float64 // Smoothed horizontal velocity
	TargetVX float64 // Velocity VX blends toward

	// Sinusoidal weave layered on top of the drift.
	Amplitude float64
	Frequency float64
	Phase     float64
	T         int // Ticks since spawn

	HP    int
	MaxHP int

	Direction      int // Drift direction, -1 or 1
	BounceCooldown int // Ticks during which direction changes are suppressed
}

// NewEnemy creates an enemy just above the area, scaled by difficulty.
func NewEnemy(rng Rand, area PlayArea, difficulty, speedMin, speedMax float64) *Enemy {
	x := Uniform(rng, config.EnemySpawnMargin, area.Width-config.EnemySpawnMargin)
	vx := Uniform(rng, -1.5, 1.5) * difficulty

	direction := 1
	if rng.IntN(2) == 0 {
		direction = -1
	}

	hp := max(1, int(difficulty*config.EnemyHPFactor))

	return &Enemy{
		Body: Body{
			X: x,
			Y: -config.EnemyHeight/2.0 - 10,
			W: config.EnemyWidth,
			H: config.EnemyHeight,
		},
		VY:        Uniform(rng, speedMin, speedMax) * difficulty,
		VX:        vx,
		TargetVX:  vx,
		Amplitude: Uniform(rng, 0.2, 0.5) * difficulty,
		Frequency: Uniform(rng, 0.005, 0.015),
		Phase:     Uniform(rng, 0, 2*math.Pi),
		HP:        hp,
		MaxHP:     hp,
		Direction: direction,
	}
}

// Kind implements Entity.
func (e *Enemy) Kind() Kind { return KindEnemy }

// Advance moves the enemy one tick. Returns true once it has passed far
// enough below the area to count as escaped.
func (e *Enemy) Advance(rng Rand, area PlayArea) (escaped bool) {
	e.T++
	e.Y += e.VY

	if e.BounceCooldown > 0 {
		e.BounceCooldown--
	} else {
		if rng.Float64() < config.EnemyFlipChance {
			e.Direction = -e.Direction
		}
		e.TargetVX = config.EnemyDriftRate * float64(e.Direction)
	}

	e.VX = e.VX*config.EnemyDriftSmoothing + e.TargetVX*(1-config.EnemyDriftSmoothing)
	e.X += e.VX + e.Amplitude*math.Sin(e.Phase+float64(e.T)*e.Frequency)

	halfW := e.W / 2
	switch {
	case e.X-halfW < config.EnemyWallMargin:
		e.X = config.EnemyWallMargin + halfW
		e.bounce(1)
	case e.X+halfW > area.Width-config.EnemyWallMargin:
		e.X = area.Width - config.EnemyWallMargin - halfW
		e.bounce(-1)
	}

	return e.Bounds().Top() > area.Height+config.EnemyEscapeMargin
}

// bounce turns the enemy away from a wall. The velocity is reflected too,
// otherwise the smoothing keeps pushing it into the wall for several ticks.
func (e *Enemy) bounce(direction int) {
	e.Direction = direction
	e.TargetVX = config.EnemyDriftRate * float64(direction)
	e.VX = math.Abs(e.VX) * float64(direction)
	e.BounceCooldown = config.EnemyBounceCooldown
}

// TakeDamage reduces hit points and reports whether the enemy is destroyed.
func (e *Enemy) TakeDamage(amount int) bool {
	e.HP -= amount
	if e.HP < 0 {
		e.HP = 0
	}
	return e.HP <= 0
}

// HealthFraction returns hp / max hp in [0, 1].
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(e.HP) / float64(e.MaxHP)
}

// Difficulty returns the enemy scaling scalar for a level.
func Difficulty(level int) float64 {
	return 1 + float64(level-1)*config.LevelDifficultyStep
}
