// Package server runs a game session in real time on its own goroutine.
package server

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/session"
	"github.com/tomz197/starfall/internal/object"
)

// Game is the interface frontends use to talk to a running game.
// Decouples the clients from the concrete Host, enabling testing.
type Game interface {
	SendInput(in object.Input)
	Restart(d config.Difficulty)
	Snapshot() *session.Snapshot
	Events() <-chan session.Event
}

// Clock supplies the session time in milliseconds.
type Clock interface {
	Now() int64
}

// MonotonicClock measures milliseconds since its creation.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now implements Clock.
func (c *MonotonicClock) Now() int64 {
	return time.Since(c.start).Milliseconds()
}

// Options configures a Host.
type Options struct {
	ID         string // Connection id used in logs
	Difficulty config.Difficulty
	Seed       uint64
	Clock      Clock       // Nil means a new MonotonicClock
	Logger     *log.Logger // Nil means log.Default()
}

// Host owns one session and drives it at the server tick rate.
//
// Inputs, restarts and events cross goroutines through channels; snapshots
// are published through an atomic pointer after every tick.
type Host struct {
	id      string
	session *session.Session
	clock   Clock
	logger  *log.Logger

	snapshot  atomic.Pointer[session.Snapshot]
	inputCh   chan object.Input
	restartCh chan config.Difficulty
	eventsCh  chan session.Event

	// Owned by the tick goroutine.
	input          object.Input
	restartLatched bool
}

// Compile-time check that Host implements Game.
var _ Game = (*Host)(nil)

// NewHost creates a host with a fresh game. Call Run to start ticking.
func NewHost(opts Options) *Host {
	clock := opts.Clock
	if clock == nil {
		clock = NewMonotonicClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.ID != "" {
		logger = logger.With("session", opts.ID)
	}

	now := clock.Now()
	h := &Host{
		id: opts.ID,
		session: session.New(session.Options{
			Difficulty: opts.Difficulty,
			Rand:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5eed)),
			Now:        now,
		}),
		clock:     clock,
		logger:    logger,
		inputCh:   make(chan object.Input, 64),
		restartCh: make(chan config.Difficulty, 1),
		eventsCh:  make(chan session.Event, 256),
	}
	h.publish(now)
	return h
}

// Run ticks the session until the context is cancelled, then closes the
// events channel.
func (h *Host) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()
	defer close(h.eventsCh)

	h.logger.Info("game started", "difficulty", h.session.Difficulty())

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("game stopped",
				"score", h.session.Score(),
				"level", h.session.Level(),
				"wave", h.session.Wave())
			return
		case <-ticker.C:
			h.Step(h.clock.Now())
		}
	}
}

// Step runs exactly one tick at time now. It must not be called while Run
// is active.
func (h *Host) Step(now int64) {
	h.collectInputs()

	select {
	case d := <-h.restartCh:
		h.session.Restart(now, d)
		h.logger.Info("game restarted", "difficulty", d)
		h.emit(session.Event{Kind: session.EventRestarted})
	default:
	}

	in := h.input
	in.Restart = h.restartLatched
	h.restartLatched = false

	report := h.session.Tick(now, in)
	for _, e := range report.Events {
		h.logEvent(e)
		h.emit(e)
	}

	h.publish(now)
}

// SendInput replaces the current input. The latest input wins; a restart
// request survives until the next tick even if newer input overwrites it.
func (h *Host) SendInput(in object.Input) {
	for {
		select {
		case h.inputCh <- in:
			return
		default:
		}
		// Full: drop the oldest input.
		select {
		case <-h.inputCh:
		default:
		}
	}
}

// Restart starts a new game with difficulty d on the next tick.
func (h *Host) Restart(d config.Difficulty) {
	for {
		select {
		case h.restartCh <- d:
			return
		default:
		}
		select {
		case <-h.restartCh:
		default:
		}
	}
}

// ID returns the connection id the host was created with.
func (h *Host) ID() string { return h.id }

// Snapshot returns the state published after the latest tick.
func (h *Host) Snapshot() *session.Snapshot {
	return h.snapshot.Load()
}

// Events returns the event stream. Events are dropped when the reader
// falls behind. The channel is closed when Run returns.
func (h *Host) Events() <-chan session.Event {
	return h.eventsCh
}

// collectInputs drains pending inputs, keeping the latest.
func (h *Host) collectInputs() {
	for {
		select {
		case in := <-h.inputCh:
			h.input = in
			if in.Restart {
				h.restartLatched = true
			}
		default:
			return
		}
	}
}

func (h *Host) emit(e session.Event) {
	select {
	case h.eventsCh <- e:
	default:
		// Events channel full, drop event
	}
}

func (h *Host) logEvent(e session.Event) {
	switch e.Kind {
	case session.EventLevelUp:
		h.logger.Debug("level up", "level", e.Level, "interval", h.session.SpawnInterval())
	case session.EventGameOver:
		h.logger.Info("game over",
			"score", h.session.Score(),
			"level", h.session.Level(),
			"wave", h.session.Wave())
	case session.EventRestarted:
		h.logger.Info("game restarted", "difficulty", h.session.Difficulty())
	}
}

func (h *Host) publish(now int64) {
	snap := h.session.Snapshot(now)
	h.snapshot.Store(&snap)
}
