// Package main is the sahayak CLI entry point.
package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/cli"
	"github.com/hyperjump/sahayak/internal/config"
	"github.com/hyperjump/sahayak/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/sahayak/config.yaml"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	output     string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "sahayak",
		Short: "Local service-provider discovery assistant",
		Long: `sahayak answers questions like "find a cheap plumber in Jaipur" from a
local provider catalog, ranks the matches, and replies in plain language.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(".env")
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "config file path")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newServerCmd(opts),
		newAskCmd(opts),
		newBatchCmd(opts),
		newSearchCmd(opts),
		newDetailsCmd(opts),
		newCategoriesCmd(opts),
		newLookupCmd(opts),
		newStatusCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory; if neither exists the built-in defaults are used.
// SAHAYAK_* environment variables override the file either way.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			cfg, loadErr := config.Load("")
			return cfg, "", loadErr
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setup loads the config and builds a logger. Commands other than server
// only log when debug is on.
func (o *rootOptions) setup(alwaysLog bool) (*config.Config, *zap.Logger, error) {
	cfg, _, err := loadConfig(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	debug := cfg.Debug || o.debug
	if !debug && !alwaysLog {
		return cfg, zap.NewNop(), nil
	}
	logger, err := utils.NewLogger(debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func (o *rootOptions) format() (cli.OutputFormat, error) {
	return cli.ParseOutputFormat(o.output)
}
