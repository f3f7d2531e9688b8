package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"weizen-server/internal/util"
)

// Config provides configuration for the weizen server
type Config struct {
	loaded bool
	// Host is the external URL players use to reach the site
	Host           string `yaml:"host"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Email struct {
		Disable       bool   `yaml:"disable"`
		From          string `yaml:"from"`
		Sender        string `yaml:"sender"`
		Username      string `yaml:"username"`
		Password      string `yaml:"password"`
		Host          string `yaml:"host"`
		TemplatesPath string `yaml:"templatesPath" envconfig:"templates_path"`
	}
	// RecaptchaSecret enables recaptcha verification on sign-up when set
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	// PlayerCreateDelay is the minimum number of seconds between sign-ups from one address
	PlayerCreateDelay int `yaml:"playerCreateDelay" envconfig:"player_create_delay"`
	StartGameDelay    int `yaml:"startGameDelay" envconfig:"start_game_delay"`
	Game              struct {
		// BuyIn is the stake each player antes into the pot
		BuyIn int `yaml:"buyIn" envconfig:"buy_in"`
		// Rounds is how many deals make up one game
		Rounds int `yaml:"rounds"`
		// ReconnectTimeout is how many seconds a disconnected player keeps their seat
		ReconnectTimeout int `yaml:"reconnectTimeout" envconfig:"reconnect_timeout"`
	}
}

var config Config

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
// A missing config file is not an error; the environment and defaults still apply
func Load() error {
	config = Config{}

	configFile := util.Getenv("WZN_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	}

	if err := envconfig.Process("wzn", &config); err != nil {
		return err
	}

	setGameDefaults(&config)

	config.loaded = true
	return nil
}

// DefaultConfig returns a starter configuration suitable for writing to disk
func DefaultConfig() Config {
	c := Config{}
	c.Host = "http://localhost:5000"
	c.PGDSN = "postgres://localhost:5432/weizen?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = "public.pem"
	c.JWT.PrivateKey = "private.key"
	c.StartGameDelay = 10
	setGameDefaults(&c)

	return c
}

func setGameDefaults(c *Config) {
	if c.PlayerCreateDelay <= 0 {
		c.PlayerCreateDelay = 60
	}

	if c.Email.TemplatesPath == "" {
		c.Email.TemplatesPath = "./templates"
	}

	if c.Game.BuyIn <= 0 {
		c.Game.BuyIn = 100
	}

	if c.Game.Rounds <= 0 {
		c.Game.Rounds = 10
	}

	if c.Game.ReconnectTimeout <= 0 {
		c.Game.ReconnectTimeout = 60
	}
}
