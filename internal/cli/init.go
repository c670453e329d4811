package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/paths"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize stacked storage",
		Long:  "Create the configuration directory with a default config.yaml, then\ninitialize the storage backend in the data directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runInit(cmd)
		},
	}
}

func (s *session) runInit(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := s.storeConfig()
	if err != nil {
		return err
	}

	created, err := writeConfigIfMissing(configDir, configFile{
		Backend: cfg.Backend,
		DataDir: s.flags.dataDir,
	})
	if err != nil {
		return sysError(err)
	}

	// Attaching creates the data directory and the backend's files.
	if err := s.withApp(func(*app.App) error { return nil }); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "Wrote %s\n", paths.ConfigFile(configDir))
	}
	fmt.Fprintf(out, "Stacked initialized (%s backend in %s)\n", cfg.Backend, cfg.DataDir)
	return nil
}
