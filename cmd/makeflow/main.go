package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/adehecq/make-workflow/internal/app"
	"github.com/adehecq/make-workflow/internal/cli"
	"github.com/adehecq/make-workflow/internal/engine"
	"github.com/adehecq/make-workflow/internal/hclcfg"
)

// main is the entrypoint for the makeflow application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		var cmdErr *engine.CommandError
		switch {
		case errors.As(err, &exitErr):
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		case errors.As(err, &cmdErr):
			// Mirror the engine's own exit status for failed runs.
			fmt.Fprintln(os.Stderr, err)
			code := cmdErr.ExitCode
			if code <= 0 {
				code = 1
			}
			os.Exit(code)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW, errW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hclcfg.NewLoader()
	makeflowApp := app.NewApp(outW, errW, config, loader)

	return makeflowApp.Run(context.Background())
}
