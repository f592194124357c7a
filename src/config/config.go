package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Database struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Account string `yaml:"account"`
}

// DSN builds the MySQL connection string. The password comes from the caller
// (env or prompt), never from the config file.
func (d Database) DSN(password string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/", d.User, password, d.Host, d.Port)
}

type Timezones struct {
	// Venue is the timezone the venue reports naive timestamps in.
	Venue string `yaml:"venue"`
	// Local is the desk timezone all timestamps are converted to.
	Local string `yaml:"local"`
}

type Config struct {
	FillDataDir         string    `yaml:"fill_data_dir"`
	TCADir              string    `yaml:"tca_dir"`
	BrokerLookaheadDays int       `yaml:"broker_lookahead_days"`
	Database            Database  `yaml:"database"`
	Timezones           Timezones `yaml:"timezones"`
}

func defaults() *Config {
	return &Config{
		FillDataDir:         "FillData",
		TCADir:              "TCA",
		BrokerLookaheadDays: 3,
		Database: Database{
			Port: 3307,
		},
		Timezones: Timezones{
			Venue: "America/Chicago",
			Local: "America/New_York",
		},
	}
}

// Load reads the yaml config at path over the defaults. A missing file is not
// an error: the defaults stand.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config.Load: failed to parse %s: %v", path, err)
	}

	return cfg, nil
}
