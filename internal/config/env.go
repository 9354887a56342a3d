// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"os"
	"strconv"

	gameconfig "github.com/tomz197/starfall/internal/loop/config"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt64 parses the environment variable named by the key as an
// integer. Returns fallback if the variable is not set.
func GetEnvInt64(key string, fallback int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

// GetEnvDifficulty parses the environment variable named by the key as a
// difficulty name or menu number. Returns fallback if the variable is not set.
func GetEnvDifficulty(key string, fallback gameconfig.Difficulty) (gameconfig.Difficulty, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := gameconfig.ParseDifficulty(value)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
