// Package cli implements the stacked command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/paths"
	"github.com/mesh-intelligence/stacked/pkg/stacked"
	"github.com/mesh-intelligence/stacked/pkg/store"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool
}

// session is the per-invocation state shared by the subcommands of one
// root command.
type session struct {
	flags  rootFlags
	config *viper.Viper
	logger *zap.Logger
}

// NewRootCmd creates the top-level "stacked" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	s := &session{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "stacked",
		Short:   "A local gallery of the tech stacks behind your projects",
		Long:    "Stacked catalogues projects as ordered layers of provider and use,\nstored locally and browsable from the command line or a terminal gallery.",
		Version: stacked.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = s.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/stacked)")
	pf.StringVar(&s.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.stacked-db)")
	pf.StringVar(&s.flags.backend, "backend", "", "storage backend: sqlite, jsonl or memory (default: sqlite)")
	pf.BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&s.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(s),
		newListCmd(s),
		newShowCmd(s),
		newAddCmd(s),
		newUpdateCmd(s),
		newDeleteCmd(s),
		newThemeCmd(s),
		newExportCmd(s),
		newImportCmd(s),
		newTUICmd(s),
	)

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup builds the logger and reads config.yaml.
func (s *session) setup() error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if s.flags.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return sysError(fmt.Errorf("initialize logger: %w", err))
	}
	s.logger = logger

	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	s.config = v
	s.logger.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("config_file", v.ConfigFileUsed()),
	)
	return nil
}

// storeConfig resolves the backend and data directory. Flags win over
// config.yaml, which wins over the environment and defaults.
func (s *session) storeConfig() (types.Config, error) {
	configData := ""
	backend := s.flags.backend
	if s.config != nil {
		configData = s.config.GetString(cfgKeyDataDir)
		if backend == "" {
			backend = s.config.GetString(cfgKeyBackend)
		}
	}
	if backend == "" {
		backend = defaultBackend
	}

	dataDir, err := paths.ResolveDataDir(s.flags.dataDir, configData)
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg := types.Config{Backend: backend, DataDir: dataDir}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("backend %q: %w", backend, err)
	}
	return cfg, nil
}

// withApp attaches the configured store, runs fn and detaches.
func (s *session) withApp(fn func(a *app.App) error) error {
	cfg, err := s.storeConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return sysError(err)
	}
	s.logger.Debug("store attached",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
	)

	runErr := fn(app.New(st, s.logger))
	if err := st.Detach(); err != nil && runErr == nil {
		return sysError(fmt.Errorf("detach store: %w", err))
	}
	return runErr
}

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error to a process exit code. Storage and filesystem
// failures are system errors; everything else is the user's to fix.
func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, types.ErrCorruptData),
		errors.Is(err, types.ErrStoreDetached),
		errors.Is(err, types.ErrAlreadyAttached),
		errors.Is(err, fs.ErrPermission):
		return exitSysError
	default:
		return exitUserError
	}
}
