package config

import (
	"errors"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	Address   string `yaml:"tasks_address" env:"TASKS_ADDRESS" env-default:":8080"`
	Storage   string `yaml:"storage" env:"STORAGE" env-default:"postgres"`
	DBAddress string `yaml:"db_address" env:"DB_ADDRESS"`
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageMemory:
		return nil
	case StoragePostgres:
		if c.DBAddress == "" {
			return errors.New("db_address is required for postgres storage")
		}
		return nil
	default:
		return errors.New("storage must be postgres or memory")
	}
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

	// try the file, fall back to env when it is missing
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
