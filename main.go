package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/infra/config"
	"github.com/lmarchen/commentdeck/infra/logging"
	"github.com/lmarchen/commentdeck/infra/reddit"
	"github.com/lmarchen/commentdeck/infra/store"
	"github.com/lmarchen/commentdeck/sortworker"
	"github.com/lmarchen/commentdeck/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: commentdeck [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("CommentDeck %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(1)
	}

	// 1. Load config from environment.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Build infrastructure.
	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cache, err := store.Open(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cache: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cache.Close() }()

	// 3. Build services (concrete types satisfy app.* interfaces).
	client := reddit.NewClient(cfg.UserAgent, logger)
	feedSvc := store.NewCachedFeed(client, cache, logger)

	worker := sortworker.New(logger)
	defer worker.Close()

	uiState, _ := config.LoadUIState(cfg.UIStatePath)
	board := cfg.Board
	if uiState.Board != "" {
		board = uiState.Board
	}
	order := app.ParseSortOrder(uiState.SortOrder)

	logger.Info("starting",
		zap.String("board", board),
		zap.Int("limit", cfg.Limit))

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Feed:      feedSvc,
		Sorter:    worker,
		Board:     board,
		Limit:     cfg.Limit,
		Order:     order,
		StatePath: cfg.UIStatePath,
		Log:       logger,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "commentdeck: %v\n", err)
		os.Exit(1)
	}
}
