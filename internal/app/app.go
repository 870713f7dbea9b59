package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/testgridgo/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Logger returns the app's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// stageContext attaches the app logger to the context handed to a stage.
func (a *App) stageContext(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
