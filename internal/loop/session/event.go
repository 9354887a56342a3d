package session

import (
	"fmt"

	"github.com/tomz197/starfall/internal/object"
)

// EventKind identifies what happened during a tick.
type EventKind int

const (
	EventShot EventKind = iota
	EventEnemySpawned
	EventEnemyHit
	EventEnemyDestroyed
	EventEnemyEscaped
	EventPowerUpDropped
	EventPowerUpCollected
	EventPowerUpExpired // A pickup vanished before it was collected
	EventPlayerHit
	EventShieldBroken
	EventLevelUp
	EventGameOver
	EventRestarted
)

var eventNames = [...]string{
	EventShot:             "shot",
	EventEnemySpawned:     "enemy_spawned",
	EventEnemyHit:         "enemy_hit",
	EventEnemyDestroyed:   "enemy_destroyed",
	EventEnemyEscaped:     "enemy_escaped",
	EventPowerUpDropped:   "powerup_dropped",
	EventPowerUpCollected: "powerup_collected",
	EventPowerUpExpired:   "powerup_expired",
	EventPlayerHit:        "player_hit",
	EventShieldBroken:     "shield_broken",
	EventLevelUp:          "level_up",
	EventGameOver:         "game_over",
	EventRestarted:        "restarted",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EventKind) UnmarshalText(text []byte) error {
	for i, name := range eventNames {
		if name == string(text) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event is a state change reported to the presentation layer.
// Only the fields relevant to the kind are set.
type Event struct {
	Kind    EventKind           `json:"kind"`
	X       float64             `json:"x"`
	Y       float64             `json:"y"`
	PowerUp *object.PowerUpKind `json:"powerUp,omitempty"` // Dropped, collected and expired pickups
	Points  int                 `json:"points,omitempty"`  // Score gained by a kill
	Level   int                 `json:"level,omitempty"`   // New level on level up
}

func pickup(k object.PowerUpKind) *object.PowerUpKind {
	return &k
}

// Report is the outcome of a single tick.
type Report struct {
	Events     []Event
	ScoreDelta int
}

func (r *Report) add(e Event) {
	r.Events = append(r.Events, e)
}

// Has reports whether an event of the given kind happened.
func (r Report) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
