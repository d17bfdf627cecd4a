package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"tripleboardpoker-server/internal/util"
)

// Config provides configuration for the Triple-Board Omaha server
type Config struct {
	loaded bool
	JWT    struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Table struct {
		SmallBlind int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind   int `yaml:"bigBlind" envconfig:"big_blind"`
		BetMin     int `yaml:"betMin" envconfig:"bet_min"`
		BetMax     int `yaml:"betMax" envconfig:"bet_max"`
		BuyInMin   int `yaml:"buyInMin" envconfig:"buy_in_min"`
		BuyInMax   int `yaml:"buyInMax" envconfig:"buy_in_max"`

		// ActionTimeSeconds is the per-turn clock; zero keeps the game default
		ActionTimeSeconds  int `yaml:"actionTimeSeconds" envconfig:"action_time_seconds"`
		ArrangeTimeSeconds int `yaml:"arrangeTimeSeconds" envconfig:"arrange_time_seconds"`
	}
}

var config Config

// DefaultConfig returns a config populated with sane defaults
func DefaultConfig() Config {
	var c Config
	c.JWT.PublicKey = "public.pem"
	c.JWT.PrivateKey = "private.key"
	c.Log.Level = "info"
	c.Table.SmallBlind = 5
	c.Table.BigBlind = 10
	c.Table.BetMin = 10
	c.Table.BetMax = 500
	c.Table.BuyInMin = 200
	c.Table.BuyInMax = 2000
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	configFile := util.Getenv("TBP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer file.Close()

	config = Config{}
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return err
	}

	if err := envconfig.Process("tbp", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
