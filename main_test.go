package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for name, level := range cases {
		t.Run(name, func(t *testing.T) {
			logger := newLogger(name)

			assert.True(t, logger.Enabled(context.Background(), level))
			assert.False(t, logger.Enabled(context.Background(), level-1))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(configEnv, "/etc/monster/config.yml")

	assert.Equal(t, "/etc/monster/config.yml", configPath())
}
