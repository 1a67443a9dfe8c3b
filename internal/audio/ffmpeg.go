package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// readViaFFmpeg decodes an arbitrary container (mp3, m4a, ogg, ...) through
// an ffmpeg subprocess, asking for mono signed 16-bit little-endian PCM on
// stdout. When targetRate is zero the native stream rate is probed first so
// no implicit resampling happens.
func readViaFFmpeg(path string, targetRate int) (*Signal, error) {
	rate := targetRate
	if rate == 0 {
		var err error
		rate, err = probeSampleRate(path)
		if err != nil {
			return nil, err
		}
	}

	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-loglevel", "error",
		"-vn",           // disable video
		"-f", "s16le",   // signed 16-bit little-endian PCM
		"-ar", strconv.Itoa(rate),
		"-ac", "1",      // mono
		"-hide_banner",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("ffmpeg decode of %s failed: %s", path, msg)
	}

	raw := stdout.Bytes()
	samples := make([]float64, len(raw)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768.0
	}

	return NewSignal(samples, rate), nil
}

// probeSampleRate asks ffprobe for the sample rate of the first audio stream.
func probeSampleRate(path string) (int, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=sample_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe of %s failed: %w", path, err)
	}

	rate, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("ffprobe returned invalid sample rate %q for %s", strings.TrimSpace(string(out)), path)
	}
	return rate, nil
}
