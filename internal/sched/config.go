package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	Policy      string `yaml:"policy"`       // FCFS (by default)
	Quantum     int64  `yaml:"quantum"`      // 2 (by default), RR only
	Input       string `yaml:"input"`        // input.txt (by default)
	Output      string `yaml:"output"`       // output.txt (by default)
	EventsCSV   string `yaml:"events_csv"`   // empty = no event log
	TraceOutput string `yaml:"trace_output"` // empty = tracing off, "-" = stdout
	Compare     bool   `yaml:"compare"`
	LogLevel    string `yaml:"log_level"` // info (by default)
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		Policy:   FCFS.String(),
		Quantum:  2,
		Input:    "input.txt",
		Output:   "output.txt",
		LogLevel: "info",
	}
}

// Load reads YAML and overrides defaults; empty path or a missing file = defaults only.
// A file that exists but does not decode is an error.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := checkQuantum(data); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	// sanity defaults for paths left blank
	if cfg.Input == "" {
		cfg.Input = "input.txt"
	}
	if cfg.Output == "" {
		cfg.Output = "output.txt"
	}
	return cfg, nil
}

// checkQuantum rejects a quantum that is not a YAML integer. Decoding straight
// into int64 would truncate 2.5 to 2.
func checkQuantum(data []byte) error {
	var raw struct {
		Quantum any `yaml:"quantum"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.Quantum.(type) {
	case nil, int, int64:
		return nil
	case uint64:
		if v > math.MaxInt64 {
			return fmt.Errorf("%w: %d overflows", ErrInvalidQuantum, v)
		}
		return nil
	default:
		return fmt.Errorf("%w: got %v", ErrInvalidQuantum, v)
	}
}

// SchedPolicy resolves the configured policy name and quantum.
func (c Config) SchedPolicy() (Policy, error) {
	kind, err := ParseKind(c.Policy)
	if err != nil {
		return Policy{}, err
	}
	return NewPolicy(kind, c.Quantum)
}
