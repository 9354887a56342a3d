// Package config centralizes all tunable game parameters.
package config

import "time"

// Play area in logical pixels. Every entity position lives in this space.
const (
	PlayWidth  = 480
	PlayHeight = 720
)

// Player
const (
	PlayerWidth       = 50
	PlayerHeight      = 60
	PlayerSpeed       = 5.0  // Pixels per tick
	PlayerBoostFactor = 1.5  // Speed multiplier while the speed power-up is active
	PlayerMaxHP       = 3    // Hit points on spawn
	PlayerSpawnOffset = 60   // Distance of the spawn point from the bottom edge
	ShootDelayMs      = 220  // Base cooldown between shots
	RapidFireFactor   = 0.4  // Cooldown multiplier with rapid-fire
	SpeedFireFactor   = 0.7  // Cooldown multiplier with speed-boost
	InvulnerableMs    = 1200 // Damage immunity after any hit
	DualShotSpread    = 10.0 // Horizontal offset of each dual bullet
	PlayerBlinkMs     = 100  // Invulnerability blink period
)

// Bullet
const (
	BulletWidth  = 6
	BulletHeight = 12
	BulletSpeed  = 12.0 // Pixels per tick, upward
)

// Enemy
const (
	EnemyWidth          = 45
	EnemyHeight         = 32
	EnemySpawnMargin    = 30   // Minimum distance of spawn center from the side walls
	EnemyWallMargin     = 5    // Wall clamp margin
	EnemyEscapeMargin   = 50   // Distance below the play area before an enemy escapes
	EnemyDriftRate      = 2.0  // Target horizontal speed
	EnemyDriftSmoothing = 0.9  // Weight kept from the previous horizontal velocity
	EnemyFlipChance     = 0.01 // Per-tick chance of a spontaneous direction change
	EnemyBounceCooldown = 15   // Ticks without direction changes after a wall hit
	EnemyHPFactor       = 1.2
	LevelDifficultyStep = 0.25
)

// Power-ups
const (
	PowerUpSize        = 48
	PowerUpSpeed       = 1.5 // Pixels per tick, downward
	PowerUpLifeTicks   = 300
	PowerUpBlinkTicks  = 60 // Blink during the last ticks of life
	ShieldDurationMs   = 8000
	RapidFireDuration  = 6000
	DualShotDurationMs = 7000
	SpeedDurationMs    = 5000
)

// Scoring and waves
const (
	ScorePerKill     = 10
	WavesPerLevel    = 8
	MinSpawnInterval = 300 // Floor for the spawn interval in milliseconds
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminal view. The play area is scaled to fit these limits.
const (
	MaxTermWidth  = 60
	MaxTermHeight = 45
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Web
const (
	WebSnapshotRate = 30 // Snapshots per second pushed to browsers
)
