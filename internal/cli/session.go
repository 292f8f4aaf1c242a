package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/achimpruben/monte-carlo-sims/internal/config"
	"github.com/achimpruben/monte-carlo-sims/internal/convergence"
	"github.com/achimpruben/monte-carlo-sims/internal/mc"
	"github.com/achimpruben/monte-carlo-sims/internal/store"
)

// session bundles what a command needs to run estimations.
type session struct {
	cfg       config.Config
	svc       *mc.Service
	logger    *slog.Logger
	formatter *OutputFormatter
	closeLog  func() error
}

// Close releases the convergence log.
func (s *session) Close() {
	if s.closeLog == nil {
		return
	}
	if err := s.closeLog(); err != nil {
		s.logger.Error("error closing convergence log", "error", err)
	}
}

// newFormatter builds the output formatter for a command.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger configures slog based on the verbose flag.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.LoadOptional(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	if opts.Backend != "" {
		if cfg.Log.Backend != opts.Backend && opts.LogPath == "" && cfg.Log.Path == config.DefaultPathFor(cfg.Log.Backend) {
			cfg.Log.Path = config.DefaultPathFor(opts.Backend)
		}
		cfg.Log.Backend = opts.Backend
	}
	if opts.LogPath != "" {
		cfg.Log.Path = opts.LogPath
	}
	if opts.Seed >= 0 {
		seed := uint64(opts.Seed)
		cfg.Seed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openLog opens the configured convergence log backend.
func openLog(cfg config.Config) (convergence.Log, func() error, error) {
	switch cfg.Log.Backend {
	case config.BackendMemory:
		return convergence.NewMemoryLog(), nil, nil
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.Log.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("%w: %w", convergence.ErrStorageUnavailable, err)
			}
		}
		st, err := store.Open(cfg.Log.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", convergence.ErrStorageUnavailable, err)
		}
		return st, st.Close, nil
	default:
		return convergence.NewCSVLog(cfg.Log.Path), nil, nil
	}
}

// openSession resolves config, opens the log and builds the service.
// Errors are reported through the formatter and returned as ExitErrors.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	cfg, err := resolveConfig(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeBadConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	log, closeLog, err := openLog(cfg)
	if err != nil {
		return nil, formatter.Fail("failed to open convergence log", err)
	}
	logger.Debug("convergence log ready", "backend", cfg.Log.Backend, "path", cfg.Log.Path)

	svcOpts := []mc.Option{mc.WithLogger(logger)}
	if cfg.Seed != nil {
		svcOpts = append(svcOpts, mc.WithSamplers(mc.SeededSamplers(*cfg.Seed)))
	}

	return &session{
		cfg:       cfg,
		svc:       mc.New(log, svcOpts...),
		logger:    logger,
		formatter: formatter,
		closeLog:  closeLog,
	}, nil
}
