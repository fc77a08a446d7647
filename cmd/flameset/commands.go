package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openpipe/flameset/pkg/config"
	"github.com/openpipe/flameset/pkg/errors"
)

var initWrite bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a starter settings file",
	Long: `Init prints a starter flameset.toml with one DPX plate preset and the
template set it references. With --write the file is created in the
working directory instead; an existing file is never overwritten.`,
	Example: `  # Print a starter configuration to stdout
  flameset init

  # Create flameset.toml in the current directory
  flameset init --write`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initWrite {
			if err := config.WriteSampleSettings(config.SettingsFileName); err != nil {
				return err
			}
			fmt.Printf("Created %s\n", config.SettingsFileName)
			return nil
		}

		content, err := config.GenerateSettingsContent()
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initWrite, "write", "w", false, "Write flameset.toml instead of printing to stdout")
}

var generateCmd = &cobra.Command{
	Use:   "generate <preset>",
	Short: "Generate the Flame export preset xml for a named preset",
	Long: `Generate translates the preset's templates into the Flame dialect,
assembles the export preset xml and writes it to the instance cache.
The path of the written file is printed on stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := loadHandler()
		if err != nil {
			return err
		}

		p, err := handler.PresetByName(args[0])
		if err != nil {
			return err
		}

		path, err := p.XMLPath()
		if err != nil {
			return err
		}

		fmt.Println(path)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the export presets defined in the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := loadHandler()
		if err != nil {
			return err
		}

		names := handler.PresetNames()
		if len(names) == 0 {
			fmt.Println("No export presets configured.")
			return nil
		}

		for _, name := range names {
			p, err := handler.PresetByName(name)
			if err != nil {
				return err
			}

			fmt.Println(styled(titleStyle, name))
			fmt.Printf("   %s %s\n", styled(labelStyle, "publish type:"), p.RenderPublishType())
			if p.MakeHighresQuicktime() {
				fmt.Printf("   %s %s (upload: %v)\n",
					styled(labelStyle, "quicktime:"), p.QuicktimePublishType(), p.UploadQuicktime())
			} else {
				fmt.Printf("   %s none\n", styled(labelStyle, "quicktime:"))
			}
		}
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Find the export preset that produced a render path",
	Long: `Resolve scans the configured presets and reports the first one whose
render template validates the given path. Useful in batch mode, where
the render path is all that Flame hands back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := loadHandler()
		if err != nil {
			return err
		}

		p := handler.PresetForRenderPath(args[0])
		if p == nil {
			return errors.Newf(errors.ErrPresetNotFound,
				"no export preset matches path '%s'", args[0])
		}

		fmt.Println(p.Name())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flameset version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}
