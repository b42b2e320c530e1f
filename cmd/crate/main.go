package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/crate/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path, TOML or YAML (optional, defaults to ~/.config/crate/config.toml)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 30s)")
	apiURL := flag.String("api", "", "Vinylhound API base URL (overrides config and CRATE_API_BASE_URL)")
	startPath := flag.String("path", "", "route to open first, e.g. /album/42 or /search?q=blue")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIBaseURL: *apiURL,
		StartPath:  *startPath,
		LogLevel:   *logLevel,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "crate: %v\n", err)
		return 1
	}
	return 0
}
