// Command marlin-complete is the host harness for the marlin completion
// core: it resolves completion suggestions for a line and cursor position
// and prints them, one per line, the way the line editor would receive
// them.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/marlinshell/marlin/internal/completion"
	"github.com/marlinshell/marlin/internal/config"
	"github.com/marlinshell/marlin/internal/core"
	"github.com/marlinshell/marlin/internal/environment"
	"github.com/marlinshell/marlin/internal/shell"
	"github.com/marlinshell/marlin/internal/styles"
)

var BUILD_VERSION = "dev"

var line = flag.String("line", "", "input line to complete")
var pos = flag.Int("pos", -1, "cursor byte offset (default: end of line)")
var configPath = flag.String("config", "", "config file path (default: ~/.marlin/config.yaml)")
var versionFlag = flag.Bool("ver", false, "display build version")

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	logger, level, err := initializeLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if parsed, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		level.SetLevel(parsed)
	}

	options, err := cfg.Completion.Options()
	if err != nil {
		// Unreachable after a successful load, but the conversion still
		// returns the error contractually.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	env := environment.Capture()

	var styler styles.PathStyler
	if cfg.Completion.LsColors {
		spec, _ := env.LookupEnv("LS_COLORS")
		styler = styles.NewLsColorStyler(spec)
	}

	engine := completion.NewEngine(shell.DefaultCommandTable(), env, completion.EngineOptions{
		Completion:         options,
		Styler:             styler,
		ExternalCompletion: cfg.Completion.External.Enable,
		MaxExternalResults: cfg.Completion.External.MaxResults,
		Logger:             logger,
	})

	cursor := *pos
	if cursor < 0 {
		cursor = len(*line)
	}

	for _, suggestion := range engine.Complete(*line, cursor) {
		if suggestion.Description != "" {
			fmt.Printf("%s\t%s\n", suggestion.Value, suggestion.Description)
		} else {
			fmt.Println(suggestion.Value)
		}
	}
}

func initializeLogger() (*zap.Logger, zap.AtomicLevel, error) {
	loggerConfig := zap.NewProductionConfig()
	if BUILD_VERSION == "dev" {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	logger, err := loggerConfig.Build()
	return logger, loggerConfig.Level, err
}

func loadConfig(logger *zap.Logger) (*config.Config, error) {
	loader := config.NewLoader(logger)
	if *configPath != "" {
		return loader.LoadFromFile(*configPath)
	}
	return loader.LoadDefaultConfigPath()
}
