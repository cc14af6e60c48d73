package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bbest/seagrass-dwc/cmd"
	"github.com/bbest/seagrass-dwc/internal/conf"
	"github.com/bbest/seagrass-dwc/internal/logging"
)

func main() {
	// Load configuration, writing a default config.yaml on first run
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	// Route the structured log to a rotated file when enabled, keeping the
	// human readable log on stderr
	if settings.Main.Log.Enabled && settings.Main.Log.Path != "" {
		logging.SetOutput(&lumberjack.Logger{
			Filename:   settings.Main.Log.Path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}, os.Stderr)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
