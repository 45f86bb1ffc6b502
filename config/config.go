// Package config loads the service configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"webtools/logging"
	"webtools/regexengine"
	"webtools/tools"
)

// Main is the top level configuration.
type Main struct {
	Listen        string        `yaml:"listen"`
	HealthNetwork string        `yaml:"healthNetwork"`
	HealthAddress string        `yaml:"healthAddress"`
	LogLevel      string        `yaml:"logLevel"`
	LogFormat     string        `yaml:"logFormat"`
	Engine        string        `yaml:"engine"`
	MatchTimeout  time.Duration `yaml:"matchTimeout"`
	BodyLimits    BodyLimits    `yaml:"bodyLimits"`
	ResultsLog    ResultsLog    `yaml:"resultsLog"`
}

// BodyLimits are the request body length limits, in bytes.
type BodyLimits struct {
	MaxLengthField    int `yaml:"maxLengthField"`
	MaxLengthPausable int `yaml:"maxLengthPausable"`
	MaxLengthTotal    int `yaml:"maxLengthTotal"`
}

// ResultsLog configures where the outcome of every tool invocation is recorded. With an empty Path the results go to the process logger.
type ResultsLog struct {
	Path string `yaml:"path"`
}

// Default gives the configuration used for keys missing in the file.
func Default() Main {
	return Main{
		Listen:        ":8080",
		HealthNetwork: "tcp",
		HealthAddress: "127.0.0.1:37291",
		LogLevel:      "info",
		LogFormat:     logging.FormatConsole,
		Engine:        regexengine.EngineBacktrack,
		MatchTimeout:  2 * time.Second,
		BodyLimits: BodyLimits{
			MaxLengthField:    tools.DefaultLengthLimits.MaxLengthField,
			MaxLengthPausable: tools.DefaultLengthLimits.MaxLengthPausable,
			MaxLengthTotal:    tools.DefaultLengthLimits.MaxLengthTotal,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path gives the defaults.
func Load(path string) (c Main, err error) {
	c = Default()
	if path == "" {
		return
	}

	bb, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}

	c, err = Parse(bb)
	return
}

// Parse parses YAML config file content on top of the defaults.
func Parse(bb []byte) (c Main, err error) {
	c = Default()
	err = yaml.Unmarshal(bb, &c)
	if err != nil {
		err = fmt.Errorf("failed to parse config file: %w", err)
		return
	}

	err = c.Validate()
	return
}

// Validate checks that the values are usable.
func (c *Main) Validate() error {
	var errs []error

	if c.Listen == "" {
		errs = append(errs, errors.New("listen must not be empty"))
	}

	if _, err := regexengine.NewEngineFactory(c.Engine, c.MatchTimeout); err != nil {
		errs = append(errs, err)
	}

	if c.MatchTimeout < 0 {
		errs = append(errs, fmt.Errorf("matchTimeout must not be negative, got %v", c.MatchTimeout))
	}

	if c.BodyLimits.MaxLengthField <= 0 || c.BodyLimits.MaxLengthPausable <= 0 || c.BodyLimits.MaxLengthTotal <= 0 {
		errs = append(errs, fmt.Errorf("bodyLimits must be positive, got %+v", c.BodyLimits))
	}

	if c.LogFormat != logging.FormatConsole && c.LogFormat != logging.FormatJSON {
		errs = append(errs, fmt.Errorf("logFormat must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.LogFormat))
	}

	return errors.Join(errs...)
}

// LengthLimits converts the body limits for the body parser.
func (c *Main) LengthLimits() tools.LengthLimits {
	return tools.LengthLimits{
		MaxLengthField:    c.BodyLimits.MaxLengthField,
		MaxLengthPausable: c.BodyLimits.MaxLengthPausable,
		MaxLengthTotal:    c.BodyLimits.MaxLengthTotal,
	}
}
