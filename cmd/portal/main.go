// Command portal runs and administers the district portal's local entity store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"districtportal/internal/config"
	"districtportal/internal/core"
)

var exitFunc = os.Exit

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitFunc(1)
	}
}

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "portal",
		Short:        "District portal entity store",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnvFile(opts.envFile)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("PORTAL_CONFIG"), "path to the TOML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newCreateCmd(opts))
	root.AddCommand(newUpdateCmd(opts))
	root.AddCommand(newDeleteCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// loadEnvFile loads path into the environment; a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// openService loads the config and opens the portal service. The caller must
// Close the service.
func (o *rootOptions) openService(ctx context.Context, logOut io.Writer, extra ...core.ServiceOption) (*core.Service, *config.Config, *slog.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := config.NewLogger(cfg.Log, logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	opts := append([]core.ServiceOption{
		core.WithLogger(logger),
		core.WithAuditRecorder(core.LogAuditRecorder{Logger: logger}),
	}, extra...)
	svc, err := core.Open(ctx, cfg.Storage, opts...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing portal: %w", err)
	}
	return svc, cfg, logger, nil
}
