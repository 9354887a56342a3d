package client

import (
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop/config"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateStart   GameState = iota // Title screen with difficulty selection
	GameStatePlaying                  // Active gameplay
	GameStateOver                     // Game over, show restart prompt
)

// ClientState holds per-connection UI state.
type ClientState struct {
	Input           input.Input
	GameState       GameState
	prevGameState   GameState
	Selected        config.Difficulty // Difficulty highlighted on the start screen
	Running         bool              // Client loop running
	isInactive      bool              // Whether the client is in inactive warning state
	awaitingRestart bool              // A restart was requested and not yet confirmed
	wasInactive     bool
	frame           int // Frames drawn, drives UI blinking
}

// NewClientState creates a new initialized client state.
func NewClientState(d config.Difficulty) *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: -1,
		Selected:      d,
		Running:       true,
	}
}
