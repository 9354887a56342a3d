package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/desktop"
	gameconfig "github.com/tomz197/starfall/internal/loop/config"
)

func main() {
	logger := config.NewLogger("desktop")

	difficulty, err := config.GetEnvDifficulty("STARFALL_DIFFICULTY", gameconfig.Normal)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	seed, err := config.GetEnvInt64("STARFALL_SEED", time.Now().UnixNano())
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	g := desktop.New(desktop.Options{
		Difficulty: difficulty,
		Seed:       uint64(seed),
		Logger:     logger,
	})

	ebiten.SetWindowSize(gameconfig.PlayWidth, gameconfig.PlayHeight)
	ebiten.SetWindowTitle("Starfall")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(gameconfig.ServerTickRate)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
