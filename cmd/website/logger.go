package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"fisheye/cmd/website/internal/configuration"
	"gopkg.in/natefinch/lumberjack.v2"
)

func setupLogger(config *configuration.Config, version string) {
	var (
		level  slog.Level
		writer io.Writer
	)

	switch strings.ToLower(config.LogLevel) {
	case "debug":
		level = slog.LevelDebug

	case "warn":
		level = slog.LevelWarn

	case "error":
		level = slog.LevelError

	default:
		level = slog.LevelInfo
	}

	writer = os.Stdout

	if config.LogFile != "" {
		writer = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler).With(slog.String("version", version)))
}
