// Package cmd assembles the startline command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/raceaudio/startline/cmd/config"
	"github.com/raceaudio/startline/cmd/detect"
	patterncmd "github.com/raceaudio/startline/cmd/pattern"
	"github.com/raceaudio/startline/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "startline",
		Short: "Locate reference audio events and start sequences in recordings",
		Long: `startline scans recordings for occurrences of short reference clips by
matched filtering, and can compose countdown and start signal detections
into validated COUNT→GO start sequences.`,
	}

	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	rootCmd.AddCommand(
		detect.Command(settings),
		patterncmd.Command(settings),
		configcmd.Command(settings),
	)

	return rootCmd
}

// setupFlags defines flags global to the command line interface.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Dir, "output", "o", viper.GetString("output.dir"), "Output directory, empty for stdout")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Format, "format", "f", viper.GetString("output.format"), "Output format: table, csv or md")
	rootCmd.PersistentFlags().StringVar(&settings.Output.BaseURL, "baseurl", viper.GetString("output.baseurl"), "Media URL prefix for timestamp links, e.g. https://example.com/watch?t=")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
