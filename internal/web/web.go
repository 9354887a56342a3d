// Package web serves games to browsers over a WebSocket.
//
// Every connection gets its own game. The browser sends input messages and
// receives snapshot frames at a fixed rate, each carrying the events that
// happened since the previous frame.
package web

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/server"
	"github.com/tomz197/starfall/internal/loop/session"
	"github.com/tomz197/starfall/internal/object"
)

const writeTimeout = 5 * time.Second

// Message types sent by the browser.
const (
	MessageInput   = "input"
	MessageRestart = "restart"
)

// Message is a browser to server message.
type Message struct {
	Type       string             `json:"type"`
	DX         int                `json:"dx"`
	DY         int                `json:"dy"`
	Fire       bool               `json:"fire"`
	Restart    bool               `json:"restart"`
	Difficulty *config.Difficulty `json:"difficulty,omitempty"`
}

// Frame is a server to browser message.
type Frame struct {
	ID       string            `json:"id"`
	Snapshot *session.Snapshot `json:"snapshot"`
	Events   []session.Event   `json:"events"`
}

// Options configures a Handler.
type Options struct {
	Difficulty     config.Difficulty
	Logger         *log.Logger
	OriginPatterns []string // Extra allowed origins, see websocket.AcceptOptions
}

// Handler upgrades requests to WebSocket connections and runs one game per
// connection until either side goes away.
type Handler struct {
	difficulty     config.Difficulty
	logger         *log.Logger
	originPatterns []string
}

// NewHandler creates a play socket handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		difficulty:     opts.Difficulty,
		logger:         logger,
		originPatterns: opts.OriginPatterns,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.logger.Error("failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()

	id := uuid.NewString()
	logger := h.logger.With("conn", id)
	logger.Info("connected", "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	host := server.NewHost(server.Options{
		ID:         id,
		Difficulty: h.difficulty,
		Seed:       rand.Uint64(),
		Logger:     logger,
	})
	go host.Run(ctx)

	go func() {
		defer cancel()
		if err := readLoop(ctx, conn, host, logger); err != nil && !isClosed(err) {
			logger.Warn("read failed", "err", err)
		}
	}()

	err = writeLoop(ctx, conn, host, id)
	switch {
	case err == nil || isClosed(err):
		conn.Close(websocket.StatusNormalClosure, "")
	default:
		logger.Warn("write failed", "err", err)
	}
	logger.Info("disconnected")
}

// readLoop forwards browser messages to the game.
func readLoop(ctx context.Context, conn *websocket.Conn, game server.Game, logger *log.Logger) error {
	for {
		var msg Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}
		handleMessage(game, msg, logger)
	}
}

func handleMessage(game server.Game, msg Message, logger *log.Logger) {
	switch msg.Type {
	case MessageInput:
		game.SendInput(object.Input{
			DX:      msg.DX,
			DY:      msg.DY,
			Fire:    msg.Fire,
			Restart: msg.Restart,
		}.Normalize())
	case MessageRestart:
		if msg.Difficulty != nil {
			game.Restart(*msg.Difficulty)
		} else {
			game.SendInput(object.Input{Restart: true})
		}
	default:
		logger.Debug("unknown message", "type", msg.Type)
	}
}

// writeLoop pushes frames at the snapshot rate until the context ends or
// the game stops.
func writeLoop(ctx context.Context, conn *websocket.Conn, game server.Game, id string) error {
	ticker := time.NewTicker(time.Second / config.WebSnapshotRate)
	defer ticker.Stop()

	var events []session.Event
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-game.Events():
			if !ok {
				return nil
			}
			events = append(events, e)
		case <-ticker.C:
			frame := Frame{ID: id, Snapshot: game.Snapshot(), Events: events}
			if frame.Events == nil {
				frame.Events = []session.Event{}
			}
			if err := writeFrame(ctx, conn, frame); err != nil {
				return err
			}
			events = nil
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, f Frame) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, f)
}

// isClosed reports errors caused by a normal end of the connection.
func isClosed(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}
