// Package observation serializes detection and pattern results to
// tabular and human-readable formats. Writers take a filename; an empty
// filename writes to stdout.
package observation

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raceaudio/startline/internal/detector"
	"github.com/raceaudio/startline/internal/pattern"
)

// FormatTimestamp renders a millisecond offset as mm:ss.mmm.
func FormatTimestamp(timeMs float64) string {
	minutes := int(timeMs / 60000)
	seconds := (timeMs - float64(minutes)*60000) / 1000
	return fmt.Sprintf("%02d:%06.3f", minutes, seconds)
}

// mediaLink builds a timestamp link for players that accept ?t=<seconds>.
func mediaLink(baseURL string, timeMs float64) string {
	if baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s%d", baseURL, int(timeMs/1000))
}

func openOutput(filename, ext string) (io.Writer, func() error, string, error) {
	if filename == "" {
		return os.Stdout, func() error { return nil }, "", nil
	}
	if !strings.HasSuffix(filename, ext) {
		filename += ext
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	return file, file.Close, filename, nil
}

// WriteDetectionsTable writes detections as an aligned text table.
func WriteDetectionsTable(detections []detector.Detection, filename string) error {
	w, closeFn, written, err := openOutput(filename, ".txt")
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck // reported through the write error below

	if _, err := fmt.Fprintf(w, "No.  Time          Confidence  Refined\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, d := range detections {
		refined := ""
		if d.Refined {
			refined = "yes"
		}
		if _, err := fmt.Fprintf(w, "%-4d %-13s %.3f       %s\n",
			i+1, FormatTimestamp(d.TimeMs), d.Confidence, refined); err != nil {
			return fmt.Errorf("failed to write detection: %w", err)
		}
	}

	if written != "" {
		fmt.Println("Output written to", written)
	}
	return nil
}

// WriteDetectionsCsv writes detections in CSV format.
func WriteDetectionsCsv(detections []detector.Detection, filename string) error {
	w, closeFn, written, err := openOutput(filename, ".csv")
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck

	if _, err := fmt.Fprintf(w, "Number,Time_MS,Timestamp,Confidence\n"); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, d := range detections {
		if _, err := fmt.Fprintf(w, "%d,%.3f,%s,%.4f\n",
			i+1, d.TimeMs, FormatTimestamp(d.TimeMs), d.Confidence); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if written != "" {
		fmt.Println("Output written to", written)
	}
	return nil
}

// WritePatternsTable writes patterns as an aligned text report.
func WritePatternsTable(patterns []pattern.Pattern, filename string) error {
	w, closeFn, written, err := openOutput(filename, ".txt")
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck

	if _, err := fmt.Fprintf(w, "No.  COUNT Time    GO Time       Gap\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range patterns {
		if _, err := fmt.Fprintf(w, "%-4d %-13s %-13s %4.1fs\n",
			p.SequenceNumber,
			FormatTimestamp(p.CountTimeMs),
			FormatTimestamp(p.GoTimeMs),
			p.GapSeconds); err != nil {
			return fmt.Errorf("failed to write pattern: %w", err)
		}
	}

	if written != "" {
		fmt.Println("Output written to", written)
	}
	return nil
}

// WritePatternsCsv writes patterns in CSV format. When baseURL is set a
// timestamp link column is included.
func WritePatternsCsv(patterns []pattern.Pattern, filename, baseURL string) error {
	w, closeFn, written, err := openOutput(filename, ".csv")
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck

	header := "Sequence_Number,Count_Time_MS,Go_Time_MS,Gap_Seconds,Timestamp"
	if baseURL != "" {
		header += ",URL"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range patterns {
		line := fmt.Sprintf("%d,%.3f,%.3f,%.3f,%s",
			p.SequenceNumber, p.CountTimeMs, p.GoTimeMs, p.GapSeconds,
			FormatTimestamp(p.CountTimeMs))
		if baseURL != "" {
			line += "," + mediaLink(baseURL, p.CountTimeMs)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if written != "" {
		fmt.Println("Output written to", written)
	}
	return nil
}

// WritePatternsMarkdown writes a markdown summary with one section per
// pattern, including timestamp links when baseURL is set.
func WritePatternsMarkdown(patterns []pattern.Pattern, filename, baseURL string) error {
	w, closeFn, written, err := openOutput(filename, ".md")
	if err != nil {
		return err
	}
	defer closeFn() //nolint:errcheck

	if _, err := fmt.Fprintf(w, "# Detected start sequences\n\nTotal patterns: %d\n\n", len(patterns)); err != nil {
		return fmt.Errorf("failed to write markdown header: %w", err)
	}

	for _, p := range patterns {
		if _, err := fmt.Fprintf(w, "## Pattern %d: %s\n\n- Gap: %.1fs\n",
			p.SequenceNumber, FormatTimestamp(p.CountTimeMs), p.GapSeconds); err != nil {
			return fmt.Errorf("failed to write pattern section: %w", err)
		}
		if link := mediaLink(baseURL, p.CountTimeMs); link != "" {
			if _, err := fmt.Fprintf(w, "- [Watch](%s)\n", link); err != nil {
				return fmt.Errorf("failed to write pattern link: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if written != "" {
		fmt.Println("Output written to", written)
	}
	return nil
}
