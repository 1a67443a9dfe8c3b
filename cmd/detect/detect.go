// Package detect implements the single-template detection command.
package detect

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/raceaudio/startline/internal/conf"
	"github.com/raceaudio/startline/internal/detector"
	"github.com/raceaudio/startline/internal/observation"
)

// Command creates the detect command for scanning a recording with a
// single reference clip.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [template] [recording]",
		Short: "Find occurrences of a reference clip in a recording",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Template = args[0]
			settings.Input.Path = args[1]
			return runDetect(settings)
		},
	}

	setupFlags(cmd, settings)
	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	d := &settings.Detection
	cmd.Flags().Float64VarP(&d.CorrelationThreshold, "correlation", "c", viper.GetFloat64("detection.correlationthreshold"), "Correlation threshold as a fraction of the run's max correlation")
	cmd.Flags().Float64VarP(&d.SpectralThreshold, "spectral", "s", viper.GetFloat64("detection.spectralthreshold"), "Spectral similarity threshold")
	cmd.Flags().Float64Var(&d.TemplateDuration, "duration", viper.GetFloat64("detection.templateduration"), "Seconds of the template to use")
	cmd.Flags().Float64Var(&d.MinDistanceSeconds, "min-distance", viper.GetFloat64("detection.mindistanceseconds"), "Minimum separation between detections in seconds")
	cmd.Flags().IntVar(&d.MaxDetections, "max-detections", viper.GetInt("detection.maxdetections"), "Cap on reported detections, 0 for unlimited")
	cmd.Flags().Float64Var(&d.MinConfidence, "min-confidence", viper.GetFloat64("detection.minconfidence"), "Drop detections below this confidence")
	cmd.Flags().BoolVar(&d.ParabolicRefinement, "refine", viper.GetBool("detection.parabolicrefinement"), "Enable sub-sample peak refinement")
}

// DetectorConfig derives the detector configuration from settings.
func DetectorConfig(s *conf.DetectionSettings) detector.Config {
	return detector.Config{
		SampleRate:           s.SampleRate,
		CorrelationThreshold: s.CorrelationThreshold,
		SpectralThreshold:    s.SpectralThreshold,
		TemplateDuration:     s.TemplateDuration,
		SilenceThreshold:     s.SilenceThreshold,
		FreqHalfWidthHz:      s.FreqHalfWidthHz,
		MinFreqHz:            s.MinFreqHz,
		MaxFreqHz:            s.MaxFreqHz,
		MinDistanceSeconds:   s.MinDistanceSeconds,
		DuplicateWindowMs:    s.DuplicateWindowMs,
		FilterOrder:          s.FilterOrder,
		ParabolicRefinement:  s.ParabolicRefinement,
		MaxDetections:        s.MaxDetections,
		MinConfidence:        s.MinConfidence,
	}
}

func runDetect(settings *conf.Settings) error {
	det, err := detector.NewFromFile(settings.Input.Template, DetectorConfig(&settings.Detection))
	if err != nil {
		return err
	}

	detections, err := det.RunFile(settings.Input.Path)
	if err != nil {
		return err
	}

	if len(detections) == 0 {
		fmt.Println("No detections found")
		return nil
	}

	outFile := ""
	if settings.Output.Dir != "" {
		outFile = filepath.Join(settings.Output.Dir, "detections")
	}

	switch settings.Output.Format {
	case "csv":
		return observation.WriteDetectionsCsv(detections, outFile)
	default:
		return observation.WriteDetectionsTable(detections, outFile)
	}
}
