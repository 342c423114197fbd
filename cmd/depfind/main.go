package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/depfind/codebase"
	"github.com/dhamidi/depfind/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("depfind.cli")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the settings shared by every subcommand. cfg is filled in
// before any subcommand runs.
type app struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "depfind",
		Short:        "Parse JVM class files and explore their dependencies",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default depfind.yaml in . or ./configs)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newSymbolsCmd(a))
	rootCmd.AddCommand(newGraphCmd(a))
	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	var path *string
	if cfg.Log.Path != "" {
		path = &cfg.Log.Path
	}
	commonlog.Configure(cfg.Log.Verbosity+a.verbose, path)
	log.Debugf("loader: %d workers, cache size %d", cfg.Loader.Workers, cfg.Loader.CacheSize)

	a.cfg = cfg
	return nil
}

func (a *app) newLoader() (*codebase.Loader, error) {
	return codebase.NewLoader(a.cfg.Loader.Workers, a.cfg.Loader.CacheSize)
}
