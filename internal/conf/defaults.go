// conf/defaults.go default values for settings
package conf

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Sets default values for the configuration. The detection defaults are the
// calibrated values the detector was tuned with on race recordings; pattern
// mode overrides the thresholds per role because the countdown clip is long
// and noisy while the go signal is short and clean.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "startline")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "startline.log")
	viper.SetDefault("main.log.maxsizemb", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxagedays", 28)

	viper.SetDefault("detection.samplerate", 22050)
	viper.SetDefault("detection.correlationthreshold", 0.8)
	viper.SetDefault("detection.spectralthreshold", 0.6)
	viper.SetDefault("detection.templateduration", 0.5)
	viper.SetDefault("detection.silencethreshold", 0.02)
	viper.SetDefault("detection.freqhalfwidthhz", 120.0)
	viper.SetDefault("detection.minfreqhz", 100.0)
	viper.SetDefault("detection.maxfreqhz", 8000.0)
	viper.SetDefault("detection.mindistanceseconds", 0.5)
	viper.SetDefault("detection.duplicatewindowms", 100.0)
	viper.SetDefault("detection.filterorder", 6)
	viper.SetDefault("detection.parabolicrefinement", true)
	viper.SetDefault("detection.maxdetections", 0)
	viper.SetDefault("detection.minconfidence", 0.0)

	viper.SetDefault("pattern.count.correlationthreshold", 0.32)
	viper.SetDefault("pattern.count.spectralthreshold", 0.12)
	viper.SetDefault("pattern.count.templateduration", 2.5)
	viper.SetDefault("pattern.go.correlationthreshold", 0.32)
	viper.SetDefault("pattern.go.spectralthreshold", 0.18)
	viper.SetDefault("pattern.go.templateduration", 0.5)
	viper.SetDefault("pattern.mingapseconds", 2.0)
	viper.SetDefault("pattern.maxgapseconds", 10.0)
	viper.SetDefault("pattern.mindistanceseconds", 3.0)
	viper.SetDefault("pattern.overlapwindowseconds", 15.0)
	viper.SetDefault("pattern.idealgapseconds", 4.5)

	viper.SetDefault("output.dir", "")
	viper.SetDefault("output.format", "table")
	viper.SetDefault("output.baseurl", "")
}

// defaultConfigYAML is the commented configuration file written by the
// config subcommand.
const defaultConfigYAML = `# startline configuration

debug: false

main:
  name: startline
  log:
    enabled: false
    path: startline.log
    maxsizemb: 100
    maxbackups: 3
    maxagedays: 28

# Single-template detection settings. These are also the base settings for
# the two passes of pattern mode.
detection:
  samplerate: 22050
  correlationthreshold: 0.8
  spectralthreshold: 0.6
  templateduration: 0.5
  silencethreshold: 0.02
  freqhalfwidthhz: 120.0
  minfreqhz: 100.0
  maxfreqhz: 8000.0
  mindistanceseconds: 0.5
  duplicatewindowms: 100.0
  filterorder: 6
  parabolicrefinement: true
  maxdetections: 0
  minconfidence: 0.0

# COUNT→GO pattern matching settings.
pattern:
  count:
    correlationthreshold: 0.32
    spectralthreshold: 0.12
    templateduration: 2.5
  go:
    correlationthreshold: 0.32
    spectralthreshold: 0.18
    templateduration: 0.5
  mingapseconds: 2.0
  maxgapseconds: 10.0
  mindistanceseconds: 3.0
  overlapwindowseconds: 15.0
  idealgapseconds: 4.5

output:
  dir: ""
  format: table
  baseurl: ""
`

// DefaultConfigName is the file name Load looks for in the working
// directory and the user config directory.
const DefaultConfigName = "config.yaml"

// WriteDefaultConfig writes the commented default configuration to path.
// It refuses to overwrite an existing file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
