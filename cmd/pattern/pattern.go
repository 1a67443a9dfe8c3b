// Package pattern implements the COUNT→GO pattern detection command.
package pattern

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raceaudio/startline/cmd/detect"
	"github.com/raceaudio/startline/internal/conf"
	"github.com/raceaudio/startline/internal/observation"
	"github.com/raceaudio/startline/internal/pattern"
)

// Command creates the pattern command for dual-template start sequence
// detection.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern [count-template] [go-template] [recording]",
		Short: "Find COUNT→GO start sequences in a recording",
		Long: `Runs two independent detection passes, one per template, and pairs the
resulting COUNT and GO detections into start sequences within the
configured gap window.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.CountTemplate = args[0]
			settings.Input.GoTemplate = args[1]
			settings.Input.Path = args[2]
			return runPattern(cmd.Context(), settings)
		},
	}

	setupFlags(cmd, settings)
	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	p := &settings.Pattern
	cmd.Flags().Float64Var(&p.MinGapSeconds, "min-gap", viper.GetFloat64("pattern.mingapseconds"), "Minimum COUNT→GO gap in seconds")
	cmd.Flags().Float64Var(&p.MaxGapSeconds, "max-gap", viper.GetFloat64("pattern.maxgapseconds"), "Maximum COUNT→GO gap in seconds")
	cmd.Flags().Float64Var(&p.OverlapWindowSeconds, "overlap-window", viper.GetFloat64("pattern.overlapwindowseconds"), "Window for collapsing overlapping patterns in seconds")
	cmd.Flags().Float64Var(&p.IdealGapSeconds, "ideal-gap", viper.GetFloat64("pattern.idealgapseconds"), "Preferred gap for overlap resolution in seconds")
	cmd.Flags().Float64Var(&p.Count.CorrelationThreshold, "count-correlation", viper.GetFloat64("pattern.count.correlationthreshold"), "Correlation threshold for the COUNT pass")
	cmd.Flags().Float64Var(&p.Go.CorrelationThreshold, "go-correlation", viper.GetFloat64("pattern.go.correlationthreshold"), "Correlation threshold for the GO pass")
}

// matcherConfig derives the pattern configuration from settings.
func matcherConfig(s *conf.Settings) pattern.Config {
	p := &s.Pattern
	return pattern.Config{
		Base: detect.DetectorConfig(&s.Detection),
		Count: pattern.Role{
			CorrelationThreshold: p.Count.CorrelationThreshold,
			SpectralThreshold:    p.Count.SpectralThreshold,
			TemplateDuration:     p.Count.TemplateDuration,
		},
		Go: pattern.Role{
			CorrelationThreshold: p.Go.CorrelationThreshold,
			SpectralThreshold:    p.Go.SpectralThreshold,
			TemplateDuration:     p.Go.TemplateDuration,
		},
		MinGapSeconds:        p.MinGapSeconds,
		MaxGapSeconds:        p.MaxGapSeconds,
		MinDistanceSeconds:   p.MinDistanceSeconds,
		OverlapWindowSeconds: p.OverlapWindowSeconds,
		IdealGapSeconds:      p.IdealGapSeconds,
	}
}

func runPattern(ctx context.Context, settings *conf.Settings) error {
	if ctx == nil {
		ctx = context.Background()
	}

	matcher := pattern.NewMatcher(matcherConfig(settings))
	patterns, err := matcher.RunFiles(ctx,
		settings.Input.CountTemplate,
		settings.Input.GoTemplate,
		settings.Input.Path)
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		fmt.Println("No COUNT→GO patterns found")
		return nil
	}

	outFile := ""
	if settings.Output.Dir != "" {
		outFile = filepath.Join(settings.Output.Dir, "patterns")
	}

	switch settings.Output.Format {
	case "csv":
		return observation.WritePatternsCsv(patterns, outFile, settings.Output.BaseURL)
	case "md":
		return observation.WritePatternsMarkdown(patterns, outFile, settings.Output.BaseURL)
	default:
		return observation.WritePatternsTable(patterns, outFile)
	}
}
