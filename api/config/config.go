package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address string `yaml:"address" env:"API_ADDRESS" env-default:":8080"`
	// Timeout bounds header reads and every call to the board service.
	Timeout         time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"5s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"API_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Config struct {
	LogLevel     string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	HTTP         HTTPConfig `yaml:"api_server"`
	BoardAddress string     `yaml:"board_address" env:"BOARD_ADDRESS" env-default:"tasks:8080"`
}

func (c Config) validate() error {
	if c.BoardAddress == "" {
		return errors.New("board_address is required")
	}
	if c.HTTP.Timeout <= 0 || c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("api_server timeouts must be positive")
	}
	return nil
}

func MustLoad(configPath string) Config {
	var cfg Config

	// no path: env only
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read env: %s", err)
		}
		return mustValidate(cfg)
	}

	// missing file falls back to env
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				log.Fatalf("cannot read env: %s", err)
			}
			return mustValidate(cfg)
		}
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}

	return mustValidate(cfg)
}

func mustValidate(cfg Config) Config {
	if err := cfg.validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}
	return cfg
}
