package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/naveenspark/gitone/internal/cache"
	"github.com/naveenspark/gitone/internal/config"
	"github.com/naveenspark/gitone/internal/dashboard"
	"github.com/naveenspark/gitone/internal/kv"
	"github.com/naveenspark/gitone/internal/logging"
	"github.com/naveenspark/gitone/internal/suggest"
	"github.com/naveenspark/gitone/internal/token"
	"github.com/naveenspark/gitone/internal/tui"
	"github.com/naveenspark/gitone/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// invocation is a parsed command line.
type invocation struct {
	command string // "", "version", "help" or "token"
	args    []string
	user    string
	plain   bool
}

func parseArgs(args []string) (invocation, error) {
	var inv invocation
	if len(args) == 0 {
		return inv, nil
	}
	switch args[0] {
	case "--version", "version", "-v":
		inv.command = "version"
		return inv, nil
	case "help", "--help", "-h":
		inv.command = "help"
		return inv, nil
	case "token":
		inv.command = "token"
		inv.args = args[1:]
		return inv, nil
	}

	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "--plain" || a == "--user" || a == "-u":
			if a == "--plain" {
				inv.plain = true
			}
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				inv.user = args[i]
			}
		case strings.HasPrefix(a, "--user="):
			inv.user = strings.TrimPrefix(a, "--user=")
		case strings.HasPrefix(a, "-"):
			return inv, fmt.Errorf("unknown flag %q (see gitone help)", a)
		default:
			if inv.user != "" {
				return inv, fmt.Errorf("unexpected argument %q", a)
			}
			inv.user = a
		}
	}
	inv.user = strings.TrimSpace(inv.user)
	if inv.plain && inv.user == "" {
		return inv, errors.New("--plain needs a username")
	}
	return inv, nil
}

func run(args []string) error {
	inv, err := parseArgs(args)
	if err != nil {
		return err
	}
	switch inv.command {
	case "version":
		fmt.Println("gitone " + version)
		return nil
	case "help":
		printHelp(os.Stdout)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logger, logFile, err := logging.OpenFile(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close() //nolint:errcheck

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tokens := token.New(store)
	if inv.command == "token" {
		return runToken(ctx, os.Stdout, tokens, inv.args)
	}

	tok, source := tokens.Resolve(ctx)
	logger.Info("starting", "version", version, "store", cfg.Store, "token", source, "user", inv.user)

	gh, err := client.New(cfg.APIURL, tok, logger)
	if err != nil {
		return err
	}
	ctrl := dashboard.New(gh, cache.New(store, logger, cache.WithTTL(cfg.CacheTTL)), logger)

	if inv.plain {
		return runPlain(ctx, os.Stdout, ctrl, inv.user)
	}

	app := tui.NewApp(ctx, tui.Deps{
		Controller: ctrl,
		Suggest:    suggest.New(gh, logger),
		Tokens:     tokens,
		Auth:       gh,
		Releases:   gh,
		Logger:     logger,
		Version:    version,
	}, inv.user)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func openStore(cfg *config.Config) (kv.Store, error) {
	if cfg.Store == config.StoreMemory {
		return kv.NewMemory(), nil
	}
	s, err := kv.OpenSQLite(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	return s, nil
}

// runToken handles "gitone token set|clear|status".
func runToken(ctx context.Context, w io.Writer, tokens *token.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: gitone token set <value> | clear | status")
	}
	switch args[0] {
	case "set":
		if len(args) < 2 {
			return errors.New("usage: gitone token set <value>")
		}
		if err := tokens.Save(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(w, "token saved")
		return nil
	case "clear":
		if err := tokens.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "token cleared")
		return nil
	case "status":
		printTokenStatus(ctx, w, tokens)
		return nil
	}
	return fmt.Errorf("unknown token command %q", args[0])
}

func printTokenStatus(ctx context.Context, w io.Writer, tokens *token.Store) {
	stored, err := tokens.Stored(ctx)
	if err != nil {
		log.Warn("reading stored token", "err", err)
	}
	active, source := tokens.Resolve(ctx)
	switch {
	case source == token.SourceEnv:
		fmt.Fprintf(w, "using token from environment (%s)\n", token.Mask(active))
	case stored != "":
		fmt.Fprintf(w, "using stored token (%s)\n", token.Mask(stored))
	default:
		fmt.Fprintln(w, "no token; requests are anonymous and rate limited")
	}
}
