package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/adehecq/make-workflow/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("makeflow", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
makeflow - compile a declared file workflow into a make description and run it.

Usage:
  makeflow [options] PATH

Arguments:
  PATH
    Path to a single .hcl workflow file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	workflowFlag := flagSet.String("workflow", "", "Path to the workflow file or directory.")
	wFlag := flagSet.String("w", "", "Path to the workflow file or directory (shorthand).")
	jobsFlag := flagSet.Int("jobs", 1, "Maximum number of independent steps to run concurrently.")
	jFlag := flagSet.Int("j", 1, "Maximum number of concurrent steps (shorthand).")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the commands a run would execute without running them.")
	forceFlag := flagSet.Bool("force", false, "Re-run every step regardless of staleness.")
	ignoreErrorsFlag := flagSet.Bool("ignore-errors", false, "Keep going past failing commands so independent branches still run.")
	debugMakeFlag := flagSet.Bool("debug-make", false, "Enable the engine's dependency-resolution trace.")
	cleanFlag := flagSet.Bool("clean", false, "Also run the workflow's clean commands.")
	planFlag := flagSet.Bool("plan", false, "Print the derived execution order and exit.")
	printFlag := flagSet.Bool("print", false, "Print the generated description and exit.")
	makefileFlag := flagSet.String("makefile", "", "Keep the generated description at this path instead of a temporary file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *workflowFlag != "" {
		path = *workflowFlag
	} else if *wFlag != "" {
		path = *wFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	// The shorthand wins only when it was actually given, so an explicit
	// `-j 0` is rejected below instead of falling back to the default.
	jobs := *jobsFlag
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "j" {
			jobs = *jFlag
		}
	})

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Path:         path,
		MakefilePath: *makefileFlag,
		Jobs:         jobs,
		DryRun:       *dryRunFlag,
		IgnoreErrors: *ignoreErrorsFlag,
		Force:        *forceFlag,
		DebugMake:    *debugMakeFlag,
		Clean:        *cleanFlag,
		Plan:         *planFlag,
		Print:        *printFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
