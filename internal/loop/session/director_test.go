package session

import (
	"testing"

	"github.com/tomz197/starfall/internal/loop/config"
)

func TestDirector_Staircase(t *testing.T) {
	d := NewDirector(config.Normal.Settings(), 0)

	now := int64(0)
	for wave := 1; wave <= config.WavesPerLevel; wave++ {
		now += 700
		if !d.Due(now) {
			t.Fatalf("wave %d not due at %d, next = %d", wave, now, d.NextSpawnAt)
		}
		if d.Due(now - 1) {
			t.Fatalf("wave %d due early at %d", wave, now-1)
		}
		levelUp := d.Advance(now)
		if levelUp != (wave == config.WavesPerLevel) {
			t.Fatalf("wave %d levelUp = %v", wave, levelUp)
		}
	}

	if d.Level != 2 || d.Wave != config.WavesPerLevel {
		t.Fatalf("level %d wave %d, want level 2 wave %d", d.Level, d.Wave, config.WavesPerLevel)
	}
	if d.Interval != 650 {
		t.Errorf("Interval = %d, want 650", d.Interval)
	}
	if d.NextSpawnAt != now+650 {
		t.Errorf("NextSpawnAt = %d, want %d", d.NextSpawnAt, now+650)
	}
}

func TestDirector_Floor(t *testing.T) {
	d := NewDirector(config.Nightmare.Settings(), 0)

	for range 5 * config.WavesPerLevel {
		d.Advance(d.NextSpawnAt)
		if d.Interval < config.MinSpawnInterval {
			t.Fatalf("Interval = %d, below floor %d", d.Interval, config.MinSpawnInterval)
		}
	}
	if d.Interval != config.MinSpawnInterval {
		t.Errorf("Interval = %d, want %d", d.Interval, config.MinSpawnInterval)
	}
	if d.Level != 6 {
		t.Errorf("Level = %d, want 6", d.Level)
	}
}

func TestDirector_CatchUp(t *testing.T) {
	d := NewDirector(config.Normal.Settings(), 0)

	// A long stall must not queue a burst of spawns.
	d.Advance(10_000)
	if d.Due(10_000) {
		t.Fatal("second spawn due on the same tick")
	}
	if d.NextSpawnAt != 10_700 {
		t.Errorf("NextSpawnAt = %d, want 10700", d.NextSpawnAt)
	}
}

func TestDirector_Difficulty(t *testing.T) {
	d := NewDirector(config.Easy.Settings(), 0)
	if d.Difficulty() != 1 {
		t.Errorf("Difficulty at level 1 = %v, want 1", d.Difficulty())
	}
	d.Level = 3
	if d.Difficulty() != 1.5 {
		t.Errorf("Difficulty at level 3 = %v, want 1.5", d.Difficulty())
	}
}
