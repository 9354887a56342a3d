// Package desktop runs the game in a native window using ebiten.
//
// Unlike the terminal and web frontends, the window drives the session
// directly: ebiten calls Update at the server tick rate, so every Update is
// exactly one tick and the session clock is derived from the tick count.
package desktop

import (
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/session"
	"github.com/tomz197/starfall/internal/object"
)

type screen int

const (
	screenMenu screen = iota
	screenPlaying
	screenOver
)

// Options configures a Game.
type Options struct {
	Difficulty config.Difficulty
	Seed       uint64
	Logger     *log.Logger
}

// Game implements ebiten.Game.
type Game struct {
	session  *session.Session
	snap     session.Snapshot
	ticks    int64
	screen   screen
	selected config.Difficulty
	fx       *rand.Rand
	sparks   []spark
	logger   *log.Logger
}

// spark is an explosion particle.
type spark struct {
	x, y, vx, vy float64
	life, max    int
	kind         session.EventKind
}

// New creates a window game showing the difficulty menu.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		session: session.New(session.Options{
			Difficulty: opts.Difficulty,
			Rand:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5eed)),
		}),
		selected: opts.Difficulty,
		fx:       rand.New(rand.NewPCG(opts.Seed+1, opts.Seed)),
		logger:   logger,
	}
	g.snap = g.session.Snapshot(0)
	return g
}

// now converts the tick count into session milliseconds.
func (g *Game) now() int64 {
	return g.ticks * 1000 / config.ServerTickRate
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.step(readKeys())
}

func (g *Game) step(k keys) error {
	if k.Quit {
		return ebiten.Termination
	}
	g.ticks++
	now := g.now()

	switch g.screen {
	case screenMenu:
		g.updateMenu(k, now)
	case screenPlaying, screenOver:
		if k.Escape {
			g.screen = screenMenu
			break
		}
		if d, ok := config.FromMenuNumber(k.Number); ok && g.screen == screenOver {
			g.start(d, now)
			break
		}
		report := g.session.Tick(now, k.input())
		g.handle(report)
	}

	g.updateSparks()
	g.snap = g.session.Snapshot(now)
	return nil
}

func (g *Game) updateMenu(k keys, now int64) {
	if d, ok := config.FromMenuNumber(k.Number); ok {
		g.start(d, now)
		return
	}
	n := len(config.Difficulties)
	idx := int(g.selected)
	switch {
	case k.Prev:
		idx = (idx + n - 1) % n
	case k.Next:
		idx = (idx + 1) % n
	}
	g.selected = config.Difficulties[idx]
	if k.Start {
		g.start(g.selected, now)
	}
}

func (g *Game) start(d config.Difficulty, now int64) {
	g.selected = d
	g.session.Restart(now, d)
	g.sparks = g.sparks[:0]
	g.screen = screenPlaying
	g.logger.Info("game started", "difficulty", d)
}

func (g *Game) handle(r session.Report) {
	for _, e := range r.Events {
		switch e.Kind {
		case session.EventEnemyDestroyed:
			g.explode(e, 1.5)
		case session.EventPlayerHit:
			g.explode(e, 2.0)
		case session.EventGameOver:
			g.screen = screenOver
			g.logger.Info("game over",
				"score", g.session.Score(),
				"level", g.session.Level(),
				"wave", g.session.Wave())
		case session.EventRestarted:
			g.sparks = g.sparks[:0]
			g.screen = screenPlaying
		}
	}
}

func (g *Game) explode(e session.Event, intensity float64) {
	count := int(float64(8+g.fx.IntN(7)) * intensity)
	for range count {
		angle := g.fx.Float64() * 2 * math.Pi
		speed := 1.5 + g.fx.Float64()*2.5
		life := 18 + g.fx.IntN(11)
		g.sparks = append(g.sparks, spark{
			x: e.X, y: e.Y,
			vx: math.Cos(angle) * speed, vy: math.Sin(angle) * speed,
			life: life, max: life,
			kind: e.Kind,
		})
	}
}

func (g *Game) updateSparks() {
	kept := g.sparks[:0]
	for _, s := range g.sparks {
		s.x += s.vx
		s.y += s.vy
		s.vx *= 0.98
		s.vy *= 0.98
		s.life--
		if s.life > 0 {
			kept = append(kept, s)
		}
	}
	g.sparks = kept
}

// Layout implements ebiten.Game. The logical screen is the play area.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.PlayWidth, config.PlayHeight
}

// keys is the keyboard state of one tick. Movement and fire are held
// keys; the menu fields only fire on the tick a key goes down.
type keys struct {
	Left, Right, Up, Down bool
	Fire, Restart         bool

	Prev, Next, Start bool
	Escape, Quit      bool
	Number            int // Digit pressed this tick, or -1
}

func (k keys) input() object.Input {
	var in object.Input
	if k.Left {
		in.DX--
	}
	if k.Right {
		in.DX++
	}
	if k.Up {
		in.DY--
	}
	if k.Down {
		in.DY++
	}
	in.Fire = k.Fire
	in.Restart = k.Restart
	return in
}
