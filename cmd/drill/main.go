// Package main implements the drill command, an interactive vocabulary
// drill against a remote grading service. It presents words on the
// terminal or in a browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/scry-drill/internal/config"
	"github.com/phrazzld/scry-drill/internal/platform/logger"
	"github.com/phrazzld/scry-drill/internal/ui/terminal"
	"github.com/phrazzld/scry-drill/internal/wordclient"
	"github.com/spf13/pflag"
)

// dotEnvFile is read from the working directory when present. Variables
// already set in the environment take precedence over it.
const dotEnvFile = ".env"

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitAuthRequired = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("drill", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	config.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "drill: %v\n", err)
		flags.Usage()
		return exitFailure
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(stderr, "drill: %v\n", err)
		return exitFailure
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "drill: failed to load configuration: %v\n", err)
		return exitFailure
	}

	log, err := logger.Setup(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "drill: failed to set up logger: %v\n", err)
		return exitFailure
	}

	app, err := newApplication(cfg, log, stdin, stdout)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		return exitFailure
	}

	return exitCode(app.run(ctx))
}

// loadDotEnv exports the variables of path into the process environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, terminal.ErrInputClosed):
		return exitOK
	case wordclient.IsAuth(err):
		return exitAuthRequired
	default:
		return exitFailure
	}
}
