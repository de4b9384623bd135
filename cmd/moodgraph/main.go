package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/mkarlsen/moodgraph/pkg/config"
	"github.com/mkarlsen/moodgraph/pkg/logging"
	"github.com/mkarlsen/moodgraph/pkg/mood"
	"github.com/mkarlsen/moodgraph/pkg/watcher"
	"github.com/mkarlsen/moodgraph/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("moodgraph", pflag.ExitOnError)
	flags.Int("port", 8080, "Port for the web server")
	flags.Bool("open", true, "Open the browser after startup")
	flags.Bool("watch", false, "Watch the layout override directory for changes")
	flags.String("layouts", "", "Directory of layout override TOML files")
	flags.String("mood", "", "Mount a specific mood instead of rotating")
	flags.String("verbosity", "", "Log level: trace, debug, info, warn, error")
	flags.CountP("verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	flags.Bool("json-logs", false, "Emit JSON logs")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	selector, err := mood.NewSelector(mood.BuiltinCatalog())
	if err != nil {
		logging.Fatal("invalid mood catalog", "error", err)
	}

	server := web.NewServer(selector)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mount the first mood before accepting traffic so the page has
	// something to paint.
	if cfg.Mood != "" {
		err = server.ShowMood(ctx, mood.ID(cfg.Mood))
	} else {
		_, err = server.Rotate(ctx)
	}
	if err != nil {
		logging.Fatal("failed to mount initial mood", "error", err)
	}

	if cfg.Watch {
		if err := startWatcher(ctx, cfg.Layouts, server); err != nil {
			logging.Fatal("failed to start layout watcher", "error", err)
		}
	}

	go func() {
		if err := server.Start(cfg.Port); err != nil {
			logging.Fatal("server failed", "error", err)
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	logging.Info("moodgraph running", "url", url)

	if cfg.OpenBrowser {
		// Give the listener a moment before pointing a browser at it.
		time.Sleep(500 * time.Millisecond)
		openBrowser(url)
	}

	<-ctx.Done()
	logging.Info("shutting down")
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Verbosity {
	case "trace":
		level = logging.LevelTrace
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	switch {
	case cfg.VerboseCnt >= 2:
		level = logging.LevelTrace
	case cfg.VerboseCnt == 1:
		level = slog.LevelDebug
	}

	if cfg.JSONLogs {
		logging.SetJSONOutput(level)
	} else {
		logging.SetLevel(level)
	}
}

// startWatcher wires the fsnotify watcher through the debouncer and feeds
// flushed changes into the server as layout overrides.
func startWatcher(ctx context.Context, dir string, server *web.Server) error {
	lw, err := watcher.NewLayoutWatcher(dir)
	if err != nil {
		return err
	}
	if err := lw.Start(ctx); err != nil {
		return err
	}

	deb := watcher.NewDebouncer(lw.Events(), 250*time.Millisecond, 2*time.Second)
	deb.Start(ctx)

	go func() {
		for ev := range deb.Output() {
			for _, path := range ev.Paths {
				moodID := watcher.MoodID(path)
				if err := server.ApplyOverride(moodID, path); err != nil {
					logging.Warn("layout override rejected", "path", path, "error", err)
				}
			}
		}
	}()
	return nil
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on platform", "platform", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
