package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/loop/client"
	gameconfig "github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/loop/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	difficulty, err := config.GetEnvDifficulty("STARFALL_DIFFICULTY", gameconfig.Normal)
	if err != nil {
		return err
	}
	seed, err := config.GetEnvInt64("STARFALL_SEED", time.Now().UnixNano())
	if err != nil {
		return err
	}
	logger, closeLog, err := config.NewFileLogger(config.GetEnv(config.LogFileEnv, ""), "game")
	if err != nil {
		return err
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := server.NewHost(server.Options{
		ID:         "local",
		Difficulty: difficulty,
		Seed:       uint64(seed),
		Logger:     logger,
	})
	go host.Run(ctx)

	c := client.NewClient(host, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Difficulty: difficulty,
		Logger:     logger,
	})
	return c.Run(ctx)
}
