package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/openpipe/flameset/pkg/config"
	"github.com/openpipe/flameset/pkg/hooks"
	"github.com/openpipe/flameset/pkg/logging"
	"github.com/openpipe/flameset/pkg/paths"
	"github.com/openpipe/flameset/pkg/preset"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbosity  int
	configPath string

	rootCmd = &cobra.Command{
		Use:   "flameset",
		Short: "Generate Flame export presets from pipeline templates",
		Long: `flameset translates a studio pipeline's path-templating configuration
into the xml export preset format consumed by Flame's export engine,
and resolves which preset produced a previously exported file path.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (default: flameset.toml in the working directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadHandler wires the preset handler from the settings file
func loadHandler() (*preset.Handler, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	registry, err := settings.BuildRegistry()
	if err != nil {
		return nil, err
	}

	cache, err := paths.New()
	if err != nil {
		return nil, err
	}

	return preset.NewHandler(settings, registry, hooks.DpxVideoPreset{}, cache), nil
}
