// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/take-home/pkg/constants"
	"github.com/iwvelando/take-home/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a take-home calculation.
type Configuration struct {
	Salary            float64       `yaml:"salary"`
	UndergraduateLoan bool          `yaml:"undergraduateLoan"`
	PostgraduateLoan  bool          `yaml:"postgraduateLoan"`
	Rent              float64       `yaml:"rent"` // monthly
	Food              float64       `yaml:"food"` // weekly
	Expenses          []Expense     `yaml:"expenses,omitempty"`
	Logging           LoggingConfig `yaml:"logging,omitempty"`
	Output            OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, yaml, json, pdf
	View   string `yaml:"view,omitempty"`   // annual, monthly
	File   string `yaml:"file,omitempty"`   // destination, stdout when empty
}

// Expense is a recurring expense item.
type Expense struct {
	Description string  `yaml:"description,omitempty"`
	Amount      float64 `yaml:"amount"`
	Frequency   string  `yaml:"frequency"` // Weekly, Monthly
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("salary", constants.DefaultSalary)
	v.SetDefault("undergraduateLoan", false)
	v.SetDefault("postgraduateLoan", false)
	v.SetDefault("rent", constants.DefaultRentMonthly)
	v.SetDefault("food", constants.DefaultFoodWeekly)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.view", constants.ViewAnnual)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Values may be overridden with TAKEHOME_* environment
// variables, e.g. TAKEHOME_SALARY.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.InputValidator{
		Salary:      c.Salary,
		RentMonthly: c.Rent,
		FoodWeekly:  c.Food,
	}
	for _, e := range c.Expenses {
		validator.Expenses = append(validator.Expenses, validation.ExpenseConfig{
			Description: e.Description,
			Amount:      e.Amount,
			Frequency:   e.Frequency,
		})
	}
	return validator.ValidateAll()
}
