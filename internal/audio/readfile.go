package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/raceaudio/startline/internal/errors"
)

// AudioInfo holds basic stream properties of an audio file.
type AudioInfo struct {
	SampleRate   int
	TotalSamples int
	NumChannels  int
	BitDepth     int
}

// ReadFile decodes an audio file into a mono Signal. WAV and FLAC are
// decoded natively; other containers go through ffmpeg. Multichannel
// streams are downmixed by channel averaging. When targetRate is non-zero
// the result is resampled to it, otherwise the native rate is kept.
//
// A missing or unreadable file is a hard error, as is a stream that decodes
// to zero samples.
func ReadFile(path string, targetRate int) (*Signal, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("audio").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	defer file.Close()

	var sig *Signal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		sig, err = readWAV(file)
	case ".flac":
		sig, err = readFLAC(file)
	default:
		sig, err = readViaFFmpeg(path, targetRate)
	}
	if err != nil {
		return nil, errors.New(err).
			Component("audio").
			Category(errors.CategoryAudioDecode).
			FileContext(path).
			Build()
	}

	if sig.Len() == 0 {
		return nil, errors.Newf("audio file %s decoded to zero samples", path).
			Component("audio").
			Category(errors.CategoryAudioDecode).
			FileContext(path).
			Build()
	}

	if targetRate > 0 {
		sig = sig.Resampled(targetRate)
	}
	return sig, nil
}

// Info probes an audio file for stream properties without decoding the
// whole file. Only WAV and FLAC are supported; other formats report an
// error and callers should decode instead.
func Info(path string) (AudioInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return AudioInfo{}, errors.New(err).
			Component("audio").
			Category(errors.CategoryFileIO).
			FileContext(path).
			Build()
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return readWAVInfo(file)
	case ".flac":
		return readFLACInfo(file)
	default:
		return AudioInfo{}, errors.Newf("no native prober for %s", filepath.Ext(path)).
			Component("audio").
			Category(errors.CategoryAudioDecode).
			FileContext(path).
			Build()
	}
}

// getAudioDivisor returns the scale factor for converting integer PCM of
// the given bit depth to [-1, 1] floats.
func getAudioDivisor(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, errors.Newf("unsupported audio bit depth: %d", bitDepth).
			Component("audio").
			Category(errors.CategoryAudioDecode).
			Build()
	}
}

// downmix averages interleaved multichannel samples into a mono buffer.
// Mono input is returned as-is.
func downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	mono := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		for c := range channels {
			sum += samples[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}
