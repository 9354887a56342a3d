// Package session implements the deterministic game core: one player, the
// enemy waves, bullets and power-ups, advanced one tick at a time.
//
// A Session never reads the wall clock. Every timed operation takes the
// current time in milliseconds, and all randomness comes from the injected
// object.Rand, so a fixed sequence of ticks replays identically.
package session

import (
	"math/rand/v2"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// Options configures a new Session.
type Options struct {
	Difficulty config.Difficulty
	Area       object.PlayArea // Zero value means the default play area
	Rand       object.Rand     // Nil means a fixed-seed generator
	Now        int64           // Session clock at creation
}

// Session owns the game state. It is not safe for concurrent use; a single
// goroutine calls Tick and Restart.
type Session struct {
	area object.PlayArea
	rng  object.Rand
	grid *physics.SpatialGrid

	difficulty config.Difficulty
	settings   config.Settings
	director   *Director

	player   *object.Player
	enemies  []*object.Enemy
	bullets  []*object.Bullet
	powerUps []*object.PowerUp

	score    int
	gameOver bool
}

// New creates a session and starts the first game.
func New(opts Options) *Session {
	area := opts.Area
	if area.Width <= 0 || area.Height <= 0 {
		area = object.DefaultPlayArea()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}

	s := &Session{
		area: area,
		rng:  rng,
		grid: physics.NewSpatialGrid(area.Width, area.Height, gridCellSize),
	}
	s.Restart(opts.Now, opts.Difficulty)
	return s
}

// Restart discards the current game and starts a new one with difficulty d.
func (s *Session) Restart(now int64, d config.Difficulty) {
	s.difficulty = d
	s.settings = d.Settings()
	s.director = NewDirector(s.settings, now)

	s.player = object.NewPlayer(s.area)
	clear(s.enemies)
	clear(s.bullets)
	clear(s.powerUps)
	s.enemies = s.enemies[:0]
	s.bullets = s.bullets[:0]
	s.powerUps = s.powerUps[:0]

	s.score = 0
	s.gameOver = false
}

// Tick advances the game by one step at time now.
//
// The order is fixed: player movement, shooting, entity motion, collisions
// and finally the spawn timer. After game over the only effect of a tick is
// a restart when in.Restart is set.
func (s *Session) Tick(now int64, in object.Input) Report {
	var r Report

	if s.gameOver {
		if in.Restart {
			s.Restart(now, s.difficulty)
			r.add(Event{Kind: EventRestarted, X: s.player.X, Y: s.player.Y})
		}
		return r
	}

	in = in.Normalize()
	s.player.Advance(in.DX, in.DY, now, s.area)

	if in.Fire {
		if shots := s.player.TryShoot(now); shots != nil {
			s.bullets = append(s.bullets, shots...)
			r.add(Event{Kind: EventShot, X: s.player.X, Y: s.player.Y - s.player.H/2})
		}
	}

	s.advanceEntities(&r)

	if !s.resolveCollisions(now, &r) {
		return r
	}

	if s.director.Due(now) {
		s.spawnEnemy(now, &r)
	}
	return r
}

// advanceEntities moves bullets, enemies and pickups and drops the ones
// that left the area or ran out of life.
func (s *Session) advanceEntities(r *Report) {
	for _, b := range s.bullets {
		if b.Advance() {
			b.MarkRemoved()
		}
	}
	s.bullets = compact(s.bullets)

	for _, e := range s.enemies {
		if e.Advance(s.rng, s.area) {
			e.MarkRemoved()
			r.add(Event{Kind: EventEnemyEscaped, X: e.X, Y: e.Y})
		}
	}
	s.enemies = compact(s.enemies)

	for _, p := range s.powerUps {
		if p.Advance(s.area) {
			p.MarkRemoved()
			r.add(Event{Kind: EventPowerUpExpired, X: p.X, Y: p.Y, PowerUp: pickup(p.PowerUpKind)})
		}
	}
	s.powerUps = compact(s.powerUps)
}

// spawnEnemy adds one enemy scaled to the current level, then lets the
// director schedule the next spawn.
func (s *Session) spawnEnemy(now int64, r *Report) {
	e := object.NewEnemy(s.rng, s.area, s.director.Difficulty(), s.settings.SpeedMin, s.settings.SpeedMax)
	s.enemies = append(s.enemies, e)
	r.add(Event{Kind: EventEnemySpawned, X: e.X, Y: e.Y})

	if s.director.Advance(now) {
		r.add(Event{Kind: EventLevelUp, Level: s.director.Level})
	}
}

func (s *Session) Score() int                    { return s.score }
func (s *Session) Level() int                    { return s.director.Level }
func (s *Session) Wave() int                     { return s.director.Wave }
func (s *Session) SpawnInterval() int64          { return s.director.Interval }
func (s *Session) GameOver() bool                { return s.gameOver }
func (s *Session) Difficulty() config.Difficulty { return s.difficulty }
func (s *Session) Area() object.PlayArea         { return s.area }

// Player returns the live player. Callers must not mutate it.
func (s *Session) Player() *object.Player { return s.player }

// Enemies returns the live enemies. Callers must not mutate them.
func (s *Session) Enemies() []*object.Enemy { return s.enemies }

// Bullets returns the live bullets. Callers must not mutate them.
func (s *Session) Bullets() []*object.Bullet { return s.bullets }

// PowerUps returns the live pickups. Callers must not mutate them.
func (s *Session) PowerUps() []*object.PowerUp { return s.powerUps }
