package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nodian/nodian/internal/app"
	"github.com/nodian/nodian/internal/backend"
	"github.com/nodian/nodian/internal/browser"
	"github.com/nodian/nodian/internal/config"
	"github.com/nodian/nodian/internal/editor"
	"github.com/nodian/nodian/internal/events"
	"github.com/nodian/nodian/internal/preview"
	"github.com/nodian/nodian/internal/state"
	"github.com/nodian/nodian/internal/styles"
)

// Version is set at build time via ldflags
var Version = ""

var (
	rootFlag    = flag.String("root", "", "workspace root directory (overrides the saved one)")
	debugFlag   = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("nodian version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	styles.SyntaxTheme = cfg.UI.SyntaxTheme
	styles.MarkdownTheme = cfg.UI.MarkdownTheme

	// Load persistent state (ignore errors - state is optional)
	_ = state.Init()

	if *rootFlag != "" {
		root, err := filepath.Abs(*rootFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve root: %v\n", err)
			os.Exit(1)
		}
		if err := state.SetLastRootPath(filepath.ToSlash(root)); err != nil {
			logger.Warn("persist root flag failed", "error", err)
		}
	}

	be := backend.NewLocal(logger)

	// Events database lives next to the state file. The app runs without
	// it if opening fails.
	var store *events.Store
	if dir := state.ConfigDir(); cfg.Events.Enabled && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			s, err := events.NewStore(filepath.Join(dir, "events.db"))
			if err != nil {
				logger.Warn("events store unavailable", "error", err)
			} else {
				store = s
				defer store.Close()
			}
		}
	}

	pv := preview.New(be, logger)
	shell := editor.NewShell(pv, logger)
	br := browser.New(be, shell, logger)

	model := app.New(br, shell, pv, store, cfg.UI.TreeWidthPercent, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "dev"
}
