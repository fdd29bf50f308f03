package config

import "github.com/caarlos0/env/v11"

type envConfig struct {
	ServerEndpointAddr string `env:"GOPHAUTH_SERVER"`
}

// parseEnv overlays the server address from GOPHAUTH_SERVER when set.
func parseEnv(cfg *Config) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		panic(err)
	}
	if e.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = e.ServerEndpointAddr
	}
}
