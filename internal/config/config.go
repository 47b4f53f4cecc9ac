// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/poverty-level/pkg/constants"
	"github.com/iwvelando/poverty-level/pkg/fpl"
	"github.com/iwvelando/poverty-level/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a batch of guideline calculations.
type Configuration struct {
	Precision  int           `yaml:"precision"`
	Households []Household   `yaml:"households"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, yaml
}

// Household describes one household to evaluate. A zero Year means the
// current calendar year.
type Household struct {
	Name            string `yaml:"name"`
	State           string `yaml:"state"`
	Year            int    `yaml:"year,omitempty"`
	HouseholdSize   int    `yaml:"householdSize"`
	HouseholdIncome int    `yaml:"householdIncome"`
}

// Label returns the household name, or a positional name when it is empty.
func (h Household) Label(index int) string {
	if h.Name != "" {
		return h.Name
	}
	return fmt.Sprintf("household %d", index+1)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("FPL")
	v.AutomaticEnv()
	v.SetDefault("precision", constants.DefaultPrecision)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Households that would fail to evaluate are reported here
// too; the report still runs them and records the failure.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Households) == 0 {
		warnings = append(warnings, "No households configured")
	}
	if c.Precision < 0 {
		warnings = append(warnings, fmt.Sprintf("Negative precision %d rounds ratios to tens or hundreds", c.Precision))
	}

	seen := make(map[string]int)
	for i, household := range c.Households {
		label := household.Label(i)
		if first, ok := seen[label]; ok {
			warnings = append(warnings, fmt.Sprintf("Household '%s' is defined more than once (entries %d and %d)",
				label, first+1, i+1))
		} else {
			seen[label] = i
		}

		if warning := validation.ValidateStateCode(label, household.State); warning != "" {
			warnings = append(warnings, warning)
		}

		switch {
		case household.Year == 0:
			warnings = append(warnings, fmt.Sprintf("Household '%s' has no year - the current calendar year will be used", label))
		case !fpl.IsSupportedYear(household.Year):
			warnings = append(warnings, fmt.Sprintf("Household '%s' uses unsupported year %d (supported: %v)",
				label, household.Year, fpl.SupportedYears()))
		}

		if household.HouseholdSize < 1 {
			warnings = append(warnings, fmt.Sprintf("Household '%s' has size %d - at least 1 person is required",
				label, household.HouseholdSize))
		}
		if household.HouseholdIncome < 0 {
			warnings = append(warnings, fmt.Sprintf("Household '%s' has negative income %d", label, household.HouseholdIncome))
		}
	}

	return warnings
}
