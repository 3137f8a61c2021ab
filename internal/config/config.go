// Package config holds the settings of the regexnfa command: input limits,
// logging and output format.
//
// Values are layered, lowest precedence first: defaults, an optional YAML
// file, REGEXNFA_* environment variables, command-line flags.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mstoykov/envconfig"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the consolidated configuration.
type Config struct {
	MaxPatternLength int    `yaml:"max_pattern_length" envconfig:"REGEXNFA_MAX_PATTERN_LENGTH" validate:"min=1"`
	MaxDepth         int    `yaml:"max_depth" envconfig:"REGEXNFA_MAX_DEPTH" validate:"min=1"`
	MaxClassSize     int    `yaml:"max_class_size" envconfig:"REGEXNFA_MAX_CLASS_SIZE" validate:"min=1"`
	LogLevel         string `yaml:"log_level" envconfig:"REGEXNFA_LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	LogFormat        string `yaml:"log_format" envconfig:"REGEXNFA_LOG_FORMAT" validate:"oneof=text json"`
	Output           string `yaml:"output" envconfig:"REGEXNFA_OUTPUT" validate:"oneof=json dot table"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxPatternLength: 4096,
		MaxDepth:         256,
		MaxClassSize:     1 << 16,
		LogLevel:         "info",
		LogFormat:        "text",
		Output:           "table",
	}
}

// use a single instance, it caches struct info
var validate = validator.New()

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and the environment as seen through lookup. A nil
// lookup reads the process environment.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if path != "" {
		if err := c.readFile(path); err != nil {
			return c, err
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := envconfig.Process("", &c, lookup); err != nil {
		return c, errors.Wrap(err, "reading environment")
	}
	return c, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	return nil
}

// AddFlags registers the flags that can override the configuration.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("log-level", d.LogLevel, "log level: trace, debug, info, warn or error")
	fs.String("log-format", d.LogFormat, "log format: text or json")
	fs.BoolP("verbose", "v", false, "enable debug logging")
	fs.Int("max-pattern-length", d.MaxPatternLength, "longest accepted pattern, in bytes")
	fs.Int("max-depth", d.MaxDepth, "deepest accepted syntax tree")
	fs.Int("max-class-size", d.MaxClassSize, "most characters class ranges may expand to, summed over the pattern")
}

// ApplyFlags copies every flag of fs the user actually set onto c. Flags
// that fs does not define are ignored. --verbose wins over --log-level.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	var err error
	if changed("log-level") {
		c.LogLevel, err = fs.GetString("log-level")
		if err != nil {
			return err
		}
	}
	if changed("log-format") {
		c.LogFormat, err = fs.GetString("log-format")
		if err != nil {
			return err
		}
	}
	if changed("output") {
		c.Output, err = fs.GetString("output")
		if err != nil {
			return err
		}
	}
	if changed("max-pattern-length") {
		c.MaxPatternLength, err = fs.GetInt("max-pattern-length")
		if err != nil {
			return err
		}
	}
	if changed("max-depth") {
		c.MaxDepth, err = fs.GetInt("max-depth")
		if err != nil {
			return err
		}
	}
	if changed("max-class-size") {
		c.MaxClassSize, err = fs.GetInt("max-class-size")
		if err != nil {
			return err
		}
	}
	if changed("verbose") {
		verbose, err := fs.GetBool("verbose")
		if err != nil {
			return err
		}
		if verbose {
			c.LogLevel = "debug"
		}
	}
	return nil
}
