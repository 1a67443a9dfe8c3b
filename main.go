package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/raceaudio/startline/cmd"
	"github.com/raceaudio/startline/internal/conf"
	"github.com/raceaudio/startline/internal/logging"
)

func main() {
	// The config path has to be known before cobra parses anything, so it
	// is picked out of the arguments up front.
	configPath := configPathFromArgs(os.Args[1:])

	settings, err := conf.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(
			settings.Main.Log.Path, settings.Main.Name, level,
			logging.FileRotation{
				MaxSizeMB:  settings.Main.Log.MaxSizeMB,
				MaxBackups: settings.Main.Log.MaxBackups,
				MaxAgeDays: settings.Main.Log.MaxAgeDays,
			})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = closeLogger() }()
		slog.SetDefault(fileLogger)
	}

	rootCmd := cmd.RootCommand(settings)
	rootCmd.PersistentFlags().String("config", configPath, "Path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configPathFromArgs extracts the --config flag value without disturbing
// the remaining arguments.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
