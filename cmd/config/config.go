// Package config implements the config command, which writes a
// configuration file for editing.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raceaudio/startline/internal/conf"
)

// Command creates the config command.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		outputPath  string
		fromCurrent bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write a configuration file",
		Long: `Writes the default configuration to a YAML file so it can be adjusted
before running detection. With --from-current the active settings,
including flag overrides, are written instead of the commented defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromCurrent {
				if err := conf.SaveSettings(settings, outputPath); err != nil {
					return err
				}
			} else if err := conf.WriteDefaultConfig(outputPath); err != nil {
				return err
			}
			fmt.Printf("Configuration written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "path", conf.DefaultConfigName, "Path of the configuration file to write")
	cmd.Flags().BoolVar(&fromCurrent, "from-current", false, "Write the active settings instead of the commented defaults")

	return cmd
}
