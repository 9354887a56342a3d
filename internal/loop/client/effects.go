package client

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/object"
)

// particlePool is a sync.Pool for reusing particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &particle{}
	},
}

// particle is a short-lived explosion fragment. Purely visual.
type particle struct {
	X, Y    float64 // Position in play area coordinates
	VX, VY  float64 // Velocity per frame
	Life    int     // Frames remaining
	MaxLife int
	Color   draw.Color
}

const particleDrag = 0.98

// star is a background star scrolling down.
type star struct {
	X, Y  float64
	Speed float64
	Size  float64
}

// Effects holds the client-side decorations: explosion particles and the
// starfield. They never feed back into the game.
type Effects struct {
	area      object.PlayArea
	rng       *rand.Rand
	particles []*particle
	stars     []star
}

// NewEffects creates an effects layer with a starfield for the given area.
func NewEffects(area object.PlayArea, rng *rand.Rand, starCount int) *Effects {
	e := &Effects{area: area, rng: rng}
	e.stars = make([]star, starCount)
	for i := range e.stars {
		e.stars[i] = e.newStar(rng.Float64() * area.Height)
	}
	return e
}

func (e *Effects) newStar(y float64) star {
	size := []float64{1, 1, 1, 2, 2, 3}[e.rng.IntN(6)]
	return star{
		X:     e.rng.Float64() * e.area.Width,
		Y:     y,
		Speed: (0.5 + e.rng.Float64()*1.5) * (1 + size*0.2),
		Size:  size,
	}
}

// Explode spawns a burst of particles at (x, y).
func (e *Effects) Explode(x, y float64, color draw.Color, intensity float64) {
	count := int(float64(8+e.rng.IntN(7)) * intensity)
	for range count {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := 1.5 + e.rng.Float64()*2.5
		life := 18 + e.rng.IntN(11)

		p := particlePool.Get().(*particle)
		p.X = x
		p.Y = y
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle) * speed
		p.Life = life
		p.MaxLife = life
		p.Color = color
		e.particles = append(e.particles, p)
	}
}

// Update advances particles and stars by one frame.
func (e *Effects) Update() {
	kept := e.particles[:0]
	for _, p := range e.particles {
		p.X += p.VX
		p.Y += p.VY
		p.VX *= particleDrag
		p.VY *= particleDrag
		p.Life--
		if p.Life <= 0 {
			particlePool.Put(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(e.particles[len(kept):])
	e.particles = kept

	for i := range e.stars {
		s := &e.stars[i]
		s.Y += s.Speed
		if s.Y > e.area.Height {
			*s = e.newStar(-s.Size)
		}
	}
}

// Reset removes all particles.
func (e *Effects) Reset() {
	for _, p := range e.particles {
		particlePool.Put(p)
	}
	clear(e.particles)
	e.particles = e.particles[:0]
}

// Particles returns the number of live particles.
func (e *Effects) Particles() int {
	return len(e.particles)
}

// DrawStars draws the starfield.
func (e *Effects) DrawStars(c *draw.Canvas) {
	for _, s := range e.stars {
		color := draw.ColorGray
		if s.Size >= 3 {
			color = draw.ColorWhite
		}
		c.Set(s.X, s.Y, color)
	}
}

// DrawParticles draws the live particles. Fading particles are skipped in
// their last quarter of life.
func (e *Effects) DrawParticles(c *draw.Canvas) {
	for _, p := range e.particles {
		if p.Life*4 < p.MaxLife {
			continue
		}
		c.Set(p.X, p.Y, p.Color)
	}
}
