package session

import (
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// Director schedules enemy spawns and raises the level every few waves.
//
// The spawn rate is constant for WavesPerLevel spawns and then drops by Step,
// never below Minimum.
type Director struct {
	Interval    int64 // Milliseconds between spawns
	Step        int64 // Interval decrease per level
	Minimum     int64
	Wave        int // Enemies spawned so far
	Level       int
	NextSpawnAt int64
}

// NewDirector creates a director whose first spawn is one interval after now.
func NewDirector(s config.Settings, now int64) *Director {
	return &Director{
		Interval:    s.SpawnInterval,
		Step:        s.SpawnStep,
		Minimum:     config.MinSpawnInterval,
		Level:       1,
		NextSpawnAt: now + s.SpawnInterval,
	}
}

// Due reports whether a spawn is pending.
func (d *Director) Due(now int64) bool {
	return now >= d.NextSpawnAt
}

// Advance records a spawn at now and schedules the next one.
// Returns true when the spawn completed a level.
func (d *Director) Advance(now int64) (levelUp bool) {
	d.Wave++

	if d.Wave%config.WavesPerLevel == 0 {
		d.Level++
		d.Interval = max(d.Minimum, d.Interval-d.Step)
		d.NextSpawnAt = now + d.Interval
		return true
	}

	d.NextSpawnAt += d.Interval
	if d.NextSpawnAt <= now {
		// Fell behind (stalled host); skip missed spawns.
		d.NextSpawnAt = now + d.Interval
	}
	return false
}

// Difficulty returns the enemy scaling scalar for the current level.
func (d *Director) Difficulty() float64 {
	return object.Difficulty(d.Level)
}
