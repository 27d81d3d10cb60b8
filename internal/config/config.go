package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	DatabaseURL   string        `yaml:"database_url"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenScheme   string        `yaml:"token_scheme"`
	TokenDuration time.Duration `yaml:"token_duration"`
	APITimeout    time.Duration `yaml:"timeout"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	FrontendDist  string        `yaml:"frontend_dist"`
	Environment   string        `yaml:"environment"`
}

func LoadConfig(path string) (*Config, error) {
	addr := getEnv("BRIDGE_ADDR", ":4001")
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}

	cfg := &Config{
		Addr:          addr,
		DatabaseURL:   getEnv("DATABASE_URL", "bridge.db"),
		JWTSecret:     getEnv("BRIDGE_JWT_SECRET", "supersecretkey"),
		TokenScheme:   getEnv("BRIDGE_TOKEN_SCHEME", "legacy"),
		TokenDuration: 24 * time.Hour,
		APITimeout:    30 * time.Second,
		MaxBodyBytes:  50 << 20, // survey payloads embed photos as JSON
		CORSOrigins:   splitOrigins(os.Getenv("CORS_ORIGIN")),
		FrontendDist:  getEnv("FRONTEND_DIST", ""),
		Environment:   getEnv("APP_ENV", "development"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if o := strings.TrimSpace(part); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
