package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	FuturesServicePortHTTP string `env:"FUTURES_SERVICE_PORT_HTTP" envDefault:"5000"`
	LogLevel               string `env:"LOG_LEVEL" envDefault:"info"`
	PostgresPassword       string `env:"POSTGRES_PASSWORD"`
	PostgresUser           string `env:"POSTGRES_USER"`
	PostgresDB             string `env:"POSTGRES_DB"`
	PostgresHost           string `env:"POSTGRES_HOST"`
	PostgresPort           string `env:"POSTGRES_PORT"`
}

func (c *Config) GetConnStringPostgres() string {
	return fmt.Sprintf("postgres://%v:%v@%v:%v/%v", c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

// JournalEnabled true when a Postgres instance is configured for the position journal
func (c *Config) JournalEnabled() bool {
	return c.PostgresHost != ""
}

func GetConfig() (*Config, error) {
	conf := Config{}
	err := env.Parse(&conf)
	if err != nil {
		return nil, err
	}
	return &conf, nil
}
