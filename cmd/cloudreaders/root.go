package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/INLOpen/cloudreaders/config"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(o.configPath)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cloudreaders",
		Short:         "Resurrect biomechanics from static art",
		Long:          "Cloud Readers reconstructs pen-stroke motion data from static artwork and exports it as a versioned, checksummed RCP package.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Optional YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newExtractCommand(opts),
		newSimulateCommand(opts),
		newExportCommand(opts),
		newVerifyCommand(opts),
	)
	return cmd
}
