package traffic

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors trafficctl.yml. Cycle timings are fixed and not part of it.
type Config struct {
	TickMS   int      `yaml:"tick_ms"`    // 1 (by default), tick source period
	Output   string   `yaml:"output"`     // "sim" (by default) or "expander"
	Pins     Pins     `yaml:"pins"`       // board pin numbers, tinygo builds only
	Expander Expander `yaml:"expander"`   // used when output is "expander"
	EventLog string   `yaml:"event_log"`  // CSV path, empty = off
	RunForMS int      `yaml:"run_for_ms"` // 0 = run until interrupted
	Presses  []int    `yaml:"presses_ms"` // scripted button presses, ms after start (sim only)
	Verbose  bool     `yaml:"verbose"`
}

// Pins maps the five lines to board pin numbers.
type Pins struct {
	Red        int `yaml:"red"`
	Green      int `yaml:"green"`
	Yellow     int `yaml:"yellow"`
	Pedestrian int `yaml:"pedestrian"`
	Button     int `yaml:"button"`
}

// Expander selects the I2C port expander that carries the four outputs.
type Expander struct {
	Bus     string `yaml:"bus"`     // "i2c0" (by default)
	Address uint16 `yaml:"address"` // 0x20 (by default)
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		TickMS: 1,
		Output: "sim",
		Pins: Pins{
			Red:        0,
			Green:      1,
			Yellow:     2,
			Pedestrian: 3,
			Button:     4,
		},
		Expander: Expander{Bus: "i2c0", Address: 0x20},
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig(), err
	}

	// sanity clamps
	if cfg.TickMS <= 0 {
		cfg.TickMS = 1
	}
	if cfg.Output != "expander" {
		cfg.Output = "sim"
	}
	if cfg.Expander.Bus == "" {
		cfg.Expander.Bus = "i2c0"
	}
	if cfg.Expander.Address == 0 || cfg.Expander.Address > 0x7f {
		cfg.Expander.Address = 0x20
	}
	if cfg.RunForMS < 0 {
		cfg.RunForMS = 0
	}
	presses := cfg.Presses[:0]
	for _, ms := range cfg.Presses {
		if ms >= 0 {
			presses = append(presses, ms)
		}
	}
	cfg.Presses = presses

	return cfg, nil
}
