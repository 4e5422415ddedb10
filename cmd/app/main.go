package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/spf13/cobra"

	"github.com/arumata/gitline/internal/adapters/loghandler"
	"github.com/arumata/gitline/internal/app"
	"github.com/arumata/gitline/internal/usecase"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer stop()

	cfg := &usecase.Config{}

	cmd, exitCode := newRootCmd(cfg, app.NewDefaultDependencies, usecase.Run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return *exitCode
}

type runFunc func(context.Context, *usecase.Config, *usecase.Dependencies, *slog.Logger) (string, error)

func newRootCmd(
	cfg *usecase.Config,
	depsFactory func(*slog.Logger) *usecase.Dependencies,
	run runFunc,
) (*cobra.Command, *int) {
	exitCode := 0
	cmd := &cobra.Command{
		Use:           "gitline",
		Short:         "Print a one-line git status summary for shell prompts",
		Version:       versionString(),
		SilenceUsage:  false,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			exitCode = runRootCommand(cmd, cfg, depsFactory, run)
		},
	}
	cmd.SetErr(os.Stderr)

	cmd.Flags().StringVar(&cfg.GitDir, "git-dir", ".", "git directory to analyze")
	cmd.Flags().BoolVar(&cfg.Color, "color", false, "enable color")
	cmd.Flags().BoolVar(&cfg.Zsh, "zsh", false, "enable zsh encoded color")

	return cmd, &exitCode
}

// runRootCommand runs the status pipeline and prints the summary line. The
// tool is designed to be embedded in a shell prompt: on any repository-level
// failure it prints nothing, logs the cause at debug level, and still exits
// successfully.
func runRootCommand(
	cmd *cobra.Command,
	cfg *usecase.Config,
	depsFactory func(*slog.Logger) *usecase.Dependencies,
	run runFunc,
) int {
	logger := setupLogger()
	deps := depsFactory(logger)

	configFile := loadConfigFile(cmd.Context(), deps, logger)
	cfg.Symbols = usecase.SymbolsFromConfig(configFile.Output)

	logger, cleanup := withFileLogging(logger, configFile.Logging)
	defer cleanup()

	line, err := run(cmd.Context(), cfg, deps, logger)
	if err != nil {
		logger.Debug("Cannot report repository status", "error", err)
		return exitSuccess
	}
	fmt.Fprintln(os.Stdout, line)
	return exitSuccess
}

// loadConfigFile reads the optional user config; any failure falls back to
// defaults so the prompt line is never lost to a broken config.
func loadConfigFile(ctx context.Context, deps *usecase.Dependencies, logger *slog.Logger) usecase.ConfigFile {
	if deps == nil || deps.Config == nil {
		return usecase.DefaultConfigFile()
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Debug("Cannot resolve home dir", "error", err)
		return usecase.DefaultConfigFile()
	}
	path := filepath.Join(homeDir, ".config", "gitline", "config.toml")
	cfg, err := deps.Config.Load(ctx, path)
	if err != nil {
		logger.Debug("Cannot load config file", "path", path, "error", err)
		return usecase.DefaultConfigFile()
	}
	return cfg
}

// setupLogger builds the stderr logger. GITLINE_LOG selects the level and
// GITLINE_LOG_STYLE selects coloring; both affect diagnostics only.
func setupLogger() *slog.Logger {
	handler := loghandler.NewHandler(os.Stderr, &loghandler.Options{
		Level:    parseLogLevel(os.Getenv("GITLINE_LOG")),
		UseColor: logColorEnabled(os.Getenv("GITLINE_LOG_STYLE"), os.Stderr),
	})
	return slog.New(handler)
}

// withFileLogging adds a file handler when the config sets a log directory.
func withFileLogging(logger *slog.Logger, logCfg usecase.LoggingConfig) (*slog.Logger, func()) {
	dir := strings.TrimSpace(logCfg.Dir)
	if dir == "" {
		return logger, func() {}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		logger.Warn("Cannot create log directory", "path", dir, "error", err)
		return logger, func() {}
	}
	filename := "gitline-" + time.Now().Format("2006-01-02") + ".log"
	logPath := filepath.Join(dir, filename)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from config
	if err != nil {
		logger.Warn("Cannot open log file", "path", logPath, "error", err)
		return logger, func() {}
	}

	fileHandler := loghandler.NewHandler(f, &loghandler.Options{
		Level:    parseLogLevel(logCfg.Level),
		UseColor: false,
	})
	combined := loghandler.NewMultiHandler(logger.Handler(), fileHandler)
	return slog.New(combined), func() { _ = f.Close() }
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logColorEnabled resolves the log color style: always, never, or automatic
// terminal detection.
func logColorEnabled(style string, f *os.File) bool {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
