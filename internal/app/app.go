// Package app wires the pieces of one makeflow invocation together: load
// the declarations, validate the graph, render the description, drive the
// engine.
package app

import (
	"io"
	"log/slog"

	"github.com/adehecq/make-workflow/internal/hclcfg"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	loader *hclcfg.Loader
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW, errW io.Writer, config *Config, loader *hclcfg.Loader) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		loader: loader,
		config: config,
	}
}
