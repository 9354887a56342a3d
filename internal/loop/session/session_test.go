package session

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/object/mocks"
)

const tickMs = 16

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// midRand never flips enemies and never drops power-ups.
func midRand(ctrl *gomock.Controller) *mocks.MockRand {
	rng := mocks.NewMockRand(ctrl)
	rng.EXPECT().Float64().Return(0.5).AnyTimes()
	rng.EXPECT().IntN(gomock.Any()).Return(0).AnyTimes()
	return rng
}

// stillEnemy is an enemy that does not descend, so tests can place it.
func stillEnemy(x, y float64, hp int) *object.Enemy {
	return &object.Enemy{
		Body:      object.Body{X: x, Y: y, W: config.EnemyWidth, H: config.EnemyHeight},
		HP:        hp,
		MaxHP:     hp,
		Direction: 1,
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Options{Difficulty: config.Hard})

	if s.Area() != object.DefaultPlayArea() {
		t.Errorf("Area = %+v, want default", s.Area())
	}
	if s.Score() != 0 || s.Level() != 1 || s.Wave() != 0 || s.GameOver() {
		t.Errorf("fresh session: score %d level %d wave %d over %v", s.Score(), s.Level(), s.Wave(), s.GameOver())
	}
	if s.SpawnInterval() != config.Hard.Settings().SpawnInterval {
		t.Errorf("SpawnInterval = %d, want %d", s.SpawnInterval(), config.Hard.Settings().SpawnInterval)
	}
	if s.Player().HP != config.PlayerMaxHP {
		t.Errorf("HP = %d, want %d", s.Player().HP, config.PlayerMaxHP)
	}
}

func TestTick_ShootCooldown(t *testing.T) {
	s := New(Options{Difficulty: config.Normal, Rand: seeded(1)})
	fire := object.Input{Fire: true}

	steps := []struct {
		now  int64
		want int
	}{
		{0, 1},
		{219, 1},
		{220, 2},
	}
	for _, st := range steps {
		r := s.Tick(st.now, fire)
		if got := len(s.Bullets()); got != st.want {
			t.Fatalf("bullets after tick at %d = %d, want %d", st.now, got, st.want)
		}
		if shot := r.Has(EventShot); shot != (st.now != 219) {
			t.Errorf("EventShot at %d = %v", st.now, shot)
		}
	}
}

func TestTick_KillScores(t *testing.T) {
	tests := []struct {
		name       string
		difficulty config.Difficulty
		level      int
		want       int
	}{
		{"Easy", config.Easy, 1, 8},
		{"Normal", config.Normal, 1, 10},
		{"Normal level 3", config.Normal, 3, 30},
		{"Hard", config.Hard, 1, 15},
		{"Nightmare level 2", config.Nightmare, 2, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rng := mocks.NewMockRand(ctrl)
			gomock.InOrder(
				rng.EXPECT().Float64().Return(0.5),  // drift roll
				rng.EXPECT().Float64().Return(0.99), // no drop
			)

			s := New(Options{Difficulty: tt.difficulty, Rand: rng})
			s.director.Level = tt.level
			s.enemies = append(s.enemies, stillEnemy(240, 300, 1))
			s.bullets = append(s.bullets, object.NewBullet(240, 300+config.BulletSpeed, object.BulletNormal))

			r := s.Tick(tickMs, object.Input{})

			if s.Score() != tt.want || r.ScoreDelta != tt.want {
				t.Errorf("score %d delta %d, want %d", s.Score(), r.ScoreDelta, tt.want)
			}
			if len(s.Enemies()) != 0 || len(s.Bullets()) != 0 {
				t.Errorf("enemies %d bullets %d, want 0 and 0", len(s.Enemies()), len(s.Bullets()))
			}
			if !r.Has(EventEnemyDestroyed) {
				t.Error("missing EventEnemyDestroyed")
			}
		})
	}
}

func TestTick_KillConsumesEveryOverlappingBullet(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRand(ctrl)
	gomock.InOrder(
		rng.EXPECT().Float64().Return(0.5),
		rng.EXPECT().Float64().Return(0.99),
	)

	s := New(Options{Difficulty: config.Normal, Rand: rng})
	s.enemies = append(s.enemies, stillEnemy(240, 300, 2))
	for range 3 {
		s.bullets = append(s.bullets, object.NewBullet(240, 300+config.BulletSpeed, object.BulletNormal))
	}

	r := s.Tick(tickMs, object.Input{})

	if !r.Has(EventEnemyHit) || !r.Has(EventEnemyDestroyed) {
		t.Errorf("events = %+v, want a hit and a kill", r.Events)
	}
	if len(s.Bullets()) != 0 {
		t.Errorf("bullets = %d, want all spent on the enemy", len(s.Bullets()))
	}
	if s.Score() != 10 {
		t.Errorf("score = %d, want a single kill worth 10", s.Score())
	}
}

func TestTick_DualShotSpentOnOneEnemy(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(Options{Difficulty: config.Normal, Rand: midRand(ctrl)})
	s.enemies = append(s.enemies,
		stillEnemy(240, 300, 1),
		stillEnemy(240, 300-config.BulletSpeed-config.EnemyHeight, 1),
	)
	s.bullets = append(s.bullets,
		object.NewBullet(230, 300+config.BulletSpeed, object.BulletDual),
		object.NewBullet(250, 300+config.BulletSpeed, object.BulletDual),
	)

	r := s.Tick(tickMs, object.Input{})

	if len(s.Bullets()) != 0 {
		t.Errorf("bullets = %d, want both dual bullets consumed", len(s.Bullets()))
	}
	if len(s.Enemies()) != 1 {
		t.Errorf("enemies = %d, want the rear enemy untouched", len(s.Enemies()))
	}
	if s.Score() != 10 || r.ScoreDelta != 10 {
		t.Errorf("score %d delta %d, want 10", s.Score(), r.ScoreDelta)
	}

	r = s.Tick(2*tickMs, object.Input{})
	if r.Has(EventEnemyHit) || r.Has(EventEnemyDestroyed) {
		t.Errorf("second tick events = %+v, want no hits", r.Events)
	}
}

func TestTick_PowerUpDrop(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mocks.NewMockRand(ctrl)
	gomock.InOrder(
		rng.EXPECT().Float64().Return(0.5),
		rng.EXPECT().Float64().Return(0.0),
		rng.EXPECT().IntN(len(object.PowerUpKinds)).Return(int(object.PowerUpDualShot)),
	)

	s := New(Options{Difficulty: config.Normal, Rand: rng})
	s.enemies = append(s.enemies, stillEnemy(240, 300, 1))
	s.bullets = append(s.bullets, object.NewBullet(240, 300+config.BulletSpeed, object.BulletNormal))

	r := s.Tick(tickMs, object.Input{})

	if len(s.PowerUps()) != 1 {
		t.Fatalf("power-ups = %d, want 1", len(s.PowerUps()))
	}
	p := s.PowerUps()[0]
	if p.PowerUpKind != object.PowerUpDualShot {
		t.Errorf("kind = %v, want dual_shot", p.PowerUpKind)
	}
	if !r.Has(EventPowerUpDropped) {
		t.Error("missing EventPowerUpDropped")
	}
}

func TestTick_CrashEndsGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(Options{Difficulty: config.Hard, Rand: midRand(ctrl)})
	p := s.Player()
	p.HP = 1
	s.enemies = append(s.enemies, stillEnemy(p.X, p.Y, 1))

	r := s.Tick(tickMs, object.Input{})

	if !s.GameOver() || p.HP != 0 {
		t.Fatalf("GameOver = %v, HP = %d", s.GameOver(), p.HP)
	}
	if !r.Has(EventPlayerHit) || !r.Has(EventGameOver) {
		t.Errorf("events = %+v, want player hit and game over", r.Events)
	}

	// Frozen until restart.
	x := p.X
	r = s.Tick(1000, object.Input{DX: 1, Fire: true})
	if len(r.Events) != 0 || len(s.Bullets()) != 0 || p.X != x {
		t.Errorf("tick after game over changed state: events %+v", r.Events)
	}
	s.Tick(5000, object.Input{})
	if len(s.Enemies()) != 0 || s.Wave() != 0 {
		t.Error("director kept spawning after game over")
	}

	r = s.Tick(6000, object.Input{Restart: true})
	if !r.Has(EventRestarted) {
		t.Fatal("missing EventRestarted")
	}
	if s.GameOver() || s.Player().HP != config.PlayerMaxHP || s.Score() != 0 {
		t.Errorf("after restart: over %v hp %d score %d", s.GameOver(), s.Player().HP, s.Score())
	}
	if s.Difficulty() != config.Hard {
		t.Errorf("Difficulty = %v, want Hard", s.Difficulty())
	}
}

func TestTick_ShieldAbsorbsCrash(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(Options{Difficulty: config.Normal, Rand: midRand(ctrl)})
	p := s.Player()
	p.ApplyPowerUp(object.PowerUpShield, 0)
	s.enemies = append(s.enemies, stillEnemy(p.X, p.Y, 1))

	r := s.Tick(tickMs, object.Input{})

	if !r.Has(EventShieldBroken) || r.Has(EventPlayerHit) {
		t.Errorf("events = %+v, want only the shield to break", r.Events)
	}
	if p.HP != config.PlayerMaxHP || p.Shielded(tickMs) {
		t.Errorf("HP = %d shielded = %v", p.HP, p.Shielded(tickMs))
	}
	if len(s.Enemies()) != 0 {
		t.Error("crashed enemy should be removed")
	}
}

func TestTick_SimultaneousCrashesCostOneHP(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(Options{Difficulty: config.Normal, Rand: midRand(ctrl)})
	p := s.Player()
	s.enemies = append(s.enemies, stillEnemy(p.X-5, p.Y, 1), stillEnemy(p.X+5, p.Y, 1))

	s.Tick(tickMs, object.Input{})

	if p.HP != config.PlayerMaxHP-1 {
		t.Errorf("HP = %d, want %d", p.HP, config.PlayerMaxHP-1)
	}
	if len(s.Enemies()) != 0 {
		t.Errorf("enemies = %d, want both removed", len(s.Enemies()))
	}
}

func TestTick_CollectPowerUps(t *testing.T) {
	s := New(Options{Difficulty: config.Normal, Rand: seeded(2)})
	p := s.Player()
	p.HP = 2
	s.powerUps = append(s.powerUps,
		object.NewPowerUp(p.X, p.Y, object.PowerUpHealth),
		object.NewPowerUp(p.X, p.Y, object.PowerUpRapidFire),
	)

	r := s.Tick(tickMs, object.Input{})

	if p.HP != 3 {
		t.Errorf("HP = %d, want 3", p.HP)
	}
	if !p.RapidFire(tickMs) {
		t.Error("rapid fire should be active")
	}
	if len(s.PowerUps()) != 0 {
		t.Errorf("power-ups = %d, want 0", len(s.PowerUps()))
	}
	collected := 0
	for _, e := range r.Events {
		if e.Kind == EventPowerUpCollected {
			collected++
		}
	}
	if collected != 2 {
		t.Errorf("collected events = %d, want 2", collected)
	}
}

func TestTick_GameOverSkipsPickup(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(Options{Difficulty: config.Normal, Rand: midRand(ctrl)})
	p := s.Player()
	p.HP = 1
	s.enemies = append(s.enemies, stillEnemy(p.X, p.Y, 1))
	s.powerUps = append(s.powerUps, object.NewPowerUp(p.X, p.Y, object.PowerUpHealth))

	s.Tick(tickMs, object.Input{})

	if !s.GameOver() || p.HP != 0 {
		t.Fatalf("GameOver = %v, HP = %d", s.GameOver(), p.HP)
	}
	if len(s.PowerUps()) != 1 {
		t.Error("pickup must not be collected on the tick the game ended")
	}
}

func TestTick_EscapeAndExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(Options{Difficulty: config.Normal, Rand: midRand(ctrl)})
	area := s.Area()

	s.enemies = append(s.enemies, stillEnemy(100, area.Height+config.EnemyEscapeMargin+config.EnemyHeight, 1))
	pu := object.NewPowerUp(100, 100, object.PowerUpSpeed)
	pu.Life = 1
	s.powerUps = append(s.powerUps, pu)

	r := s.Tick(tickMs, object.Input{})

	if !r.Has(EventEnemyEscaped) || !r.Has(EventPowerUpExpired) {
		t.Errorf("events = %+v, want escape and expiry", r.Events)
	}
	if s.Score() != 0 {
		t.Errorf("escape scored %d", s.Score())
	}
	if len(s.Enemies()) != 0 || len(s.PowerUps()) != 0 {
		t.Error("escaped enemy and expired pickup should be gone")
	}
}

func TestTick_SpawnStaircase(t *testing.T) {
	s := New(Options{Difficulty: config.Normal, Rand: seeded(3)})

	var spawns []int64
	levelUps := 0
	for now := int64(10); len(spawns) < 10; now += 10 {
		r := s.Tick(now, object.Input{})
		if r.Has(EventEnemySpawned) {
			spawns = append(spawns, now)
		}
		if r.Has(EventLevelUp) {
			levelUps++
		}
		// Keep the field clear so nothing reaches the player.
		clear(s.enemies)
		s.enemies = s.enemies[:0]
	}

	want := []int64{700, 1400, 2100, 2800, 3500, 4200, 4900, 5600, 6250, 6900}
	if !reflect.DeepEqual(spawns, want) {
		t.Errorf("spawn times = %v, want %v", spawns, want)
	}
	if levelUps != 1 || s.Level() != 2 {
		t.Errorf("levelUps = %d level = %d, want 1 and 2", levelUps, s.Level())
	}
	if s.Wave() != 10 {
		t.Errorf("Wave = %d, want 10", s.Wave())
	}
}

func TestRestart_Idempotent(t *testing.T) {
	s := New(Options{Difficulty: config.Normal, Rand: seeded(4)})
	for now := int64(0); now < 3000; now += tickMs {
		s.Tick(now, object.Input{DX: 1, Fire: true})
	}

	s.Restart(5000, config.Easy)
	first := s.Snapshot(5000)
	s.Restart(5000, config.Easy)
	second := s.Snapshot(5000)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("restart not idempotent:\n%+v\n%+v", first, second)
	}
	if first.Score != 0 || first.Level != 1 || first.Wave != 0 || len(first.Bullets) != 0 || len(first.Enemies) != 0 {
		t.Errorf("restart left state behind: %+v", first)
	}
	if first.Difficulty != config.Easy || first.SpawnInterval != config.Easy.Settings().SpawnInterval {
		t.Errorf("difficulty not applied: %+v", first)
	}
}

func TestRestart_FromGameOver(t *testing.T) {
	s := New(Options{Difficulty: config.Hard, Rand: seeded(6)})
	s.Player().ApplyPowerUp(object.PowerUpShield, 1000)
	s.powerUps = append(s.powerUps, object.RandomPowerUp(seeded(1), 100, 100))
	s.enemies = append(s.enemies, stillEnemy(240, 300, 3))
	s.player.HP = 0
	s.gameOver = true

	s.Restart(2000, config.Hard)
	snap := s.Snapshot(2000)

	if snap.GameOver || s.GameOver() {
		t.Error("game over survived restart")
	}
	if len(snap.PowerUps) != 0 || len(snap.Enemies) != 0 {
		t.Errorf("power-ups %d enemies %d, want none", len(snap.PowerUps), len(snap.Enemies))
	}
	if snap.Player.HP != snap.Player.MaxHP || len(snap.Player.Effects) != 0 || snap.Player.Shielded {
		t.Errorf("player not reset: %+v", snap.Player)
	}

	r := s.Tick(2000+tickMs, object.Input{Fire: true})
	if !r.Has(EventShot) {
		t.Error("restarted session does not tick")
	}
}

// TestTick_Invariants plays random games and checks the bounds that must
// hold on every tick.
func TestTick_Invariants(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		s := New(Options{Difficulty: config.Nightmare, Rand: seeded(seed)})
		inputs := seeded(seed + 100)

		prev := 0
		for now := int64(0); now < 120_000 && !s.GameOver(); now += tickMs {
			in := object.Input{
				DX:   inputs.IntN(3) - 1,
				DY:   inputs.IntN(3) - 1,
				Fire: inputs.IntN(4) != 0,
			}
			r := s.Tick(now, in)

			if s.Score() < prev {
				t.Fatalf("seed %d: score went down from %d to %d", seed, prev, s.Score())
			}
			if s.Score()-prev != r.ScoreDelta {
				t.Fatalf("seed %d: ScoreDelta %d, score moved by %d", seed, r.ScoreDelta, s.Score()-prev)
			}
			prev = s.Score()

			hp := s.Player().HP
			if hp < 0 || hp > s.Player().MaxHP {
				t.Fatalf("seed %d: hp %d out of range", seed, hp)
			}
			if s.SpawnInterval() < config.MinSpawnInterval {
				t.Fatalf("seed %d: spawn interval %d below floor", seed, s.SpawnInterval())
			}
			if s.GameOver() != (hp == 0) {
				t.Fatalf("seed %d: game over %v with hp %d", seed, s.GameOver(), hp)
			}
		}
	}
}

func TestTick_Replay(t *testing.T) {
	play := func() Snapshot {
		s := New(Options{Difficulty: config.Hard, Rand: seeded(42)})
		inputs := seeded(7)
		var now int64
		for ; now < 20_000; now += tickMs {
			s.Tick(now, object.Input{DX: inputs.IntN(3) - 1, Fire: true})
		}
		return s.Snapshot(now)
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different games")
	}
}

func TestSnapshot_PlayerEffects(t *testing.T) {
	s := New(Options{Difficulty: config.Normal, Rand: seeded(5)})
	p := s.Player()
	p.ApplyPowerUp(object.PowerUpSpeed, 0)
	p.TakeDamage(0, 1)

	snap := s.Snapshot(100)
	if len(snap.Player.Effects) != 1 || snap.Player.Effects[0].Kind != object.PowerUpSpeed {
		t.Fatalf("Effects = %+v, want speed only", snap.Player.Effects)
	}
	if snap.Player.Effects[0].RemainingMs != config.SpeedDurationMs-100 {
		t.Errorf("RemainingMs = %d, want %d", snap.Player.Effects[0].RemainingMs, config.SpeedDurationMs-100)
	}
	if !snap.Player.Invulnerable || snap.Player.Hidden {
		t.Errorf("at 100ms: invulnerable %v hidden %v, want true false", snap.Player.Invulnerable, snap.Player.Hidden)
	}
	if snap := s.Snapshot(200); !snap.Player.Hidden {
		t.Error("player should be hidden on the even blink phase")
	}
	if snap := s.Snapshot(config.InvulnerableMs + 100); snap.Player.Invulnerable || snap.Player.Hidden {
		t.Error("blink should stop with invulnerability")
	}
}
