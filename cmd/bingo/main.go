package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/usecase"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run reads a puzzle from -input or stdin and prints the score of the selected outcome.
func run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bingo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	policy := fs.String("policy", bingo.PolicyFirst, "elimination policy: first or last")
	inputPath := fs.String("input", "", "puzzle file (default stdin)")
	asJSON := fs.Bool("json", false, "print the whole outcome as JSON")
	verbose := fs.Bool("v", false, "debug logging on stderr")

	if err := fs.Parse(argv); err != nil {
		return exitUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	puzzle, err := readPuzzle(*inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "bingo: %v\n", err)
		return exitUsage
	}

	outcome, err := usecase.NewSimulationManager(logger, nil, bingo.PolicyFirst).Simulate(ctx, puzzle, *policy)
	if err != nil {
		fmt.Fprintf(stderr, "bingo: %v\n", err)
		if errors.Is(err, apperror.ErrMalformedInput) || errors.Is(err, apperror.ErrUnknownPolicy) {
			return exitUsage
		}
		return exitFailure
	}

	if *asJSON {
		if err = json.NewEncoder(stdout).Encode(outcome); err != nil {
			fmt.Fprintf(stderr, "bingo: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintln(stdout, outcome.Score)

	return exitOK
}

func readPuzzle(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle: %w", err)
	}

	return data, nil
}
