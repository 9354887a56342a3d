// Package client renders a running game to a terminal and feeds it key input.
package client

import (
	"bufio"
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/server"
	"github.com/tomz197/starfall/internal/loop/session"
	"github.com/tomz197/starfall/internal/object"
)

const starCount = 70

// Client handles rendering and input for a single terminal.
type Client struct {
	game         server.Game
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	prevInput    input.Input
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	effects      *Effects
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Difficulty   config.Difficulty // Preselected on the start screen
	Logger       *log.Logger
}

// NewClient creates a client that renders game and reads keys from r.
func NewClient(game server.Game, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	return newClient(game, input.StartStream(r), w, opts)
}

func newClient(game server.Game, stream *input.Stream, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.PlayWidth, config.PlayHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	area := object.DefaultPlayArea()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	return &Client{
		game:         game,
		state:        NewClientState(opts.Difficulty),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  stream,
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		effects:      NewEffects(area, rng, starCount),
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the user quits, the context is
// cancelled or the game stops.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.state.Running {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		c.processInput()
		c.processGameEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOver:
			c.updateOverState()
		}

		c.effects.Update()

		if err := c.drawFrame(); err != nil {
			return err
		}
		c.prevInput = c.state.Input

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and forwards it to the game while playing.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.state.Input.Closed {
		c.state.Running = false
	}

	if c.state.GameState != GameStateStart {
		c.game.SendInput(c.state.Input.Game())
	}
}

// pressed reports keys that went down this frame. Terminal keys are held
// for a short while after each press, so menu actions need the edge.
func (c *Client) pressed() input.Input {
	cur, prev := c.state.Input, c.prevInput
	edge := input.Input{
		Up:      cur.Up && !prev.Up,
		Down:    cur.Down && !prev.Down,
		Fire:    cur.Fire && !prev.Fire,
		Restart: cur.Restart && !prev.Restart,
		Enter:   cur.Enter && !prev.Enter,
		Escape:  cur.Escape && !prev.Escape,
		Number:  -1,
	}
	if cur.Number != prev.Number {
		edge.Number = cur.Number
	}
	return edge
}

// processGameEvents turns game events into effects and screen changes.
func (c *Client) processGameEvents() {
	for {
		select {
		case e, ok := <-c.game.Events():
			if !ok {
				// The game stopped
				c.state.Running = false
				return
			}
			c.handleEvent(e)
		default:
			return
		}
	}
}

func (c *Client) handleEvent(e session.Event) {
	if e.Kind == session.EventRestarted {
		c.effects.Reset()
		c.state.awaitingRestart = false
		if c.state.GameState != GameStateStart {
			c.state.GameState = GameStatePlaying
		}
		return
	}
	if c.state.GameState == GameStateStart {
		// The game keeps running behind the menu; nothing to show.
		return
	}

	switch e.Kind {
	case session.EventEnemyDestroyed:
		c.effects.Explode(e.X, e.Y, draw.ColorOrange, 1.5)
	case session.EventPlayerHit:
		c.effects.Explode(e.X, e.Y, draw.ColorCyan, 2.0)
	case session.EventShieldBroken:
		c.effects.Explode(e.X, e.Y, draw.ColorBlue, 1.0)
	case session.EventGameOver:
		c.state.GameState = GameStateOver
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the difficulty menu.
func (c *Client) updateStartState() {
	keys := c.pressed()

	if d, ok := config.FromMenuNumber(keys.Number); ok {
		c.state.Selected = d
		c.startGame()
		return
	}

	idx := int(c.state.Selected)
	switch {
	case keys.Up:
		idx = (idx + len(config.Difficulties) - 1) % len(config.Difficulties)
	case keys.Down:
		idx = (idx + 1) % len(config.Difficulties)
	}
	c.state.Selected = config.Difficulties[idx]

	if keys.Enter || keys.Fire {
		c.startGame()
	}
}

// updatePlayingState watches for the game ending and the menu key.
func (c *Client) updatePlayingState() {
	if c.pressed().Escape {
		c.state.GameState = GameStateStart
		return
	}
	if snap := c.game.Snapshot(); snap != nil && snap.GameOver && !c.state.awaitingRestart {
		c.state.GameState = GameStateOver
	}
}

// updateOverState handles the game over screen. R is forwarded as part of
// the regular input; digits restart with another difficulty.
func (c *Client) updateOverState() {
	keys := c.pressed()
	switch {
	case keys.Escape:
		c.state.GameState = GameStateStart
	case keys.Number > 0:
		if d, ok := config.FromMenuNumber(keys.Number); ok {
			c.state.Selected = d
			c.game.Restart(d)
		}
	}
}

// startGame starts a fresh game with the selected difficulty.
func (c *Client) startGame() {
	c.game.Restart(c.state.Selected)
	c.state.awaitingRestart = true
	c.state.GameState = GameStatePlaying
}
