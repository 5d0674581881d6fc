package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	ServerEndpointAddr string
	// TokenFile keeps the session token between invocations.
	TokenFile      string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.TokenFile = ".catsocial-token"
	if home, err := os.UserHomeDir(); err == nil {
		c.TokenFile = filepath.Join(home, ".catsocial-token")
	}
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then the optional JSON file.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	return cfg
}
