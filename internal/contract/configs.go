package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/lintscore/lintscore/schema"
)

// Default values for configuration.
const (
	// MaxWorkers caps the worker pool regardless of hardware parallelism.
	MaxWorkers = 8

	// DefaultPrecision is the number of decimals in rendered scores.
	DefaultPrecision = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = min(runtime.GOMAXPROCS(0), MaxWorkers)

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Workers      int
	ExcludeTools []schema.Tool
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	UseColors bool
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ExcludeTools = append([]schema.Tool(nil), c.ExcludeTools...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Workers    int    `mapstructure:"workers"`
	Exclude    string `mapstructure:"exclude"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Backend    string `mapstructure:"backend"`
	DBConnect  string `mapstructure:"db-connect"`
	Color      string `mapstructure:"color"`
}

// Validate turns the raw input into a final Config, rejecting values that
// cannot be interpreted.
func (in *ConfigRawInput) Validate() (*Config, error) {
	cfg := &Config{
		Precision:  in.Precision,
		OutputFile: in.OutputFile,
		Width:      in.Width,
		DBConnect:  in.DBConnect,
	}

	cfg.Workers = in.Workers
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Workers > MaxWorkers {
		cfg.Workers = MaxWorkers
	}
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}

	cfg.Output = schema.OutputMode(in.Output)
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return nil, fmt.Errorf("invalid output mode %q", in.Output)
	}

	cfg.Backend = schema.DatabaseBackend(in.Backend)
	if cfg.Backend == "" {
		cfg.Backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidBackends[cfg.Backend]; !ok {
		return nil, fmt.Errorf("invalid backend %q", in.Backend)
	}

	excludes, err := ParseExcludeTools(in.Exclude)
	if err != nil {
		return nil, err
	}
	cfg.ExcludeTools = excludes

	cfg.UseColors = !strings.EqualFold(in.Color, "off")

	return cfg, nil
}

// ParseExcludeTools parses a comma-separated tool list into Tool values.
func ParseExcludeTools(raw string) ([]schema.Tool, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	known := make(map[schema.Tool]struct{}, len(schema.AllTools))
	for _, t := range schema.AllTools {
		known[t] = struct{}{}
	}

	var out []schema.Tool
	for _, part := range strings.Split(raw, ",") {
		name := schema.Tool(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown tool %q in exclude list", name)
		}
		out = append(out, name)
	}
	return out, nil
}
