package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/geange/dfamin/internal/logging"
)

// Output formats.
const (
	FormatText = "text"
	FormatDot  = "dot"
)

// EnvPrefix prefixes every environment variable read by LoadEnv, e.g. DFAMIN_FORMAT or
// DFAMIN_LOGGING_LEVEL.
const EnvPrefix = "dfamin"

// Config settings of a single dfamin run.
type Config struct {
	Logging logging.Config `yaml:"logging"`
	// Format of the written automaton: text or dot.
	Format string `yaml:"format"`
	// NoMinimize rewrites the input without minimizing it.
	NoMinimize bool `yaml:"no-minimize" split_words:"true"`

	// Input and Output come from the command line only.
	Input  string `yaml:"-" ignored:"true"`
	Output string `yaml:"-" ignored:"true"`
}

// NewConfig creates a Config with default settings.
func NewConfig() *Config {
	return &Config{
		Logging: *logging.NewConfig(),
		Format:  FormatText,
	}
}

// LoadFile loads a yaml config from filename on top of cfg.
func LoadFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "can not read config %s", filename)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "can not parse config %s", filename)
	}
	return nil
}

// LoadEnv overrides cfg with the DFAMIN_* environment variables that are set.
func LoadEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return errors.Wrap(err, "can not read environment")
	}
	return nil
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatDot:
	default:
		return errors.Errorf("unknown format %q, possible values: %s, %s", c.Format, FormatText, FormatDot)
	}
	if err := logging.ValidateLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Input == "" {
		return errors.New("input file can not be empty")
	}
	return nil
}
