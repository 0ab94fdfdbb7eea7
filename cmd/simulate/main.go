package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
	"github.com/rocketscienceinc/dontwakethemonster/internal/i18n"
	"github.com/rocketscienceinc/dontwakethemonster/internal/monster"
	"github.com/rocketscienceinc/dontwakethemonster/internal/random"
	"github.com/rocketscienceinc/dontwakethemonster/internal/repository"
	"github.com/rocketscienceinc/dontwakethemonster/internal/repository/storage"
	"github.com/rocketscienceinc/dontwakethemonster/internal/usecase"
)

type CLI struct {
	Locale  string `default:"en-US" help:"Locale the monster speaks"`
	Players int    `default:"0" help:"Play a whole game automatically with this many players (0 for interactive)"`
	Seed    int64  `default:"0" help:"Board RNG seed (0 for random)"`
	Jitter  int    `default:"0" help:"Extra random board length"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Play Don't Wake the Monster from the terminal"),
		kong.UsageOnError(),
	)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}

	logger := slog.New(log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cli, os.Stdin, os.Stdout); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cli CLI, in io.Reader, out io.Writer) error {
	manager, results, closeFn, err := build(logger, cli)
	if err != nil {
		return err
	}
	defer closeFn()

	sim := newSimulator(logger, manager, out, cli.Locale)

	if cli.Players > 0 {
		if err = sim.autoplay(ctx, cli.Players); err != nil {
			return err
		}

		return printResults(ctx, results, out)
	}

	fmt.Fprintln(out, commandHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		event, err := parseCommand(scanner.Text())
		switch {
		case errors.Is(err, errQuit):
			return printResults(ctx, results, out)
		case errors.Is(err, errEmptyCommand):
			continue
		case err != nil:
			fmt.Fprintln(out, err)
			continue
		}

		response, err := sim.send(ctx, event)
		if err != nil {
			return err
		}

		if response.EndSession {
			return printResults(ctx, results, out)
		}
	}
}

// build wires the game against an in-memory session store and a throwaway
// sqlite history.
func build(logger *slog.Logger, cli CLI) (*usecase.SessionManager, repository.ResultRepository, func(), error) {
	catalog, err := i18n.LoadEmbedded(monster.MessageKeys)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not load message catalog: %w", err)
	}

	seed := cli.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return nil, nil, nil, fmt.Errorf("could not seed board generator: %w", err)
		}
	}

	logger.Debug("board seed", "seed", seed)

	rules := entity.DefaultRules()
	rules.BoardJitter = cli.Jitter
	if err = rules.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid rules: %w", err)
	}

	history, err := storage.NewSQLite(":memory:")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
	}

	if err = history.Init(context.Background()); err != nil {
		_ = history.Close()
		return nil, nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
	}

	results := repository.NewResultRepository(history.Connection)
	machine := monster.NewMachine(logger, rules, random.NewSource(seed))
	manager := usecase.NewSessionManager(
		logger, quartz.NewReal(), machine, catalog, repository.NewMemorySessionRepository(), results,
	)

	return manager, results, func() { _ = history.Close() }, nil
}

func printResults(ctx context.Context, results repository.ResultRepository, out io.Writer) error {
	finished, err := results.ListRecent(ctx, 10)
	if err != nil {
		return fmt.Errorf("failed list results: %w", err)
	}

	for _, result := range finished {
		fmt.Fprintf(out, "game %d: winners %v, scores %v\n", result.ReplayCount+1, result.Winners, result.Scores)
	}

	return nil
}
