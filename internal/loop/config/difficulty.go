package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned when a difficulty name cannot be parsed.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects one of the preset tuning tables.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
	Nightmare
)

// Difficulties lists every preset in menu order.
var Difficulties = []Difficulty{Easy, Normal, Hard, Nightmare}

// Settings is the tuning table of a difficulty preset.
type Settings struct {
	SpeedMin        float64 // Enemy descent speed range before level scaling
	SpeedMax        float64
	SpawnInterval   int64   // Initial milliseconds between spawns
	SpawnStep       int64   // Interval decrease per level
	PowerUpChance   float64 // Drop probability per destroyed enemy
	ScoreMultiplier float64
}

var settings = [...]Settings{
	Easy: {
		SpeedMin:        1.5,
		SpeedMax:        3.0,
		SpawnInterval:   900,
		SpawnStep:       30,
		PowerUpChance:   0.12,
		ScoreMultiplier: 0.8,
	},
	Normal: {
		SpeedMin:        2.0,
		SpeedMax:        4.5,
		SpawnInterval:   700,
		SpawnStep:       50,
		PowerUpChance:   0.08,
		ScoreMultiplier: 1.0,
	},
	Hard: {
		SpeedMin:        2.8,
		SpeedMax:        5.5,
		SpawnInterval:   500,
		SpawnStep:       70,
		PowerUpChance:   0.05,
		ScoreMultiplier: 1.5,
	},
	Nightmare: {
		SpeedMin:        3.5,
		SpeedMax:        6.5,
		SpawnInterval:   350,
		SpawnStep:       90,
		PowerUpChance:   0.02,
		ScoreMultiplier: 2.5,
	},
}

// Settings returns the tuning table for d. Out-of-range values fall back to Normal.
func (d Difficulty) Settings() Settings {
	if d < Easy || d > Nightmare {
		return settings[Normal]
	}
	return settings[d]
}

// String returns the display name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	case Nightmare:
		return "Nightmare"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler so snapshots carry the name.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDifficulty parses a case-insensitive difficulty name or its 1-based menu number.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "normal", "2":
		return Normal, nil
	case "hard", "3":
		return Hard, nil
	case "nightmare", "4":
		return Nightmare, nil
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// FromMenuNumber maps menu keys 1-4 to a difficulty.
func FromMenuNumber(n int) (Difficulty, bool) {
	if n < 1 || n > len(Difficulties) {
		return Normal, false
	}
	return Difficulties[n-1], true
}
