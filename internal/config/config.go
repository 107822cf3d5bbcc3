package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	UploadBaseURL string        `yaml:"upload_base_url"`
	BlacklistGC   time.Duration `yaml:"blacklist_gc_interval"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 1 * time.Hour
	blacklistGC := 1 * time.Hour

	cfg := &Config{
		Addr:          getEnv("JOBBOARD_ADDR", ":8080"),
		JWTSecret:     getEnv("JOBBOARD_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("JOBBOARD_DATABASE_PATH", "jobboard.db"),
		TokenDuration: tokenDuration,
		UploadBaseURL: getEnv("JOBBOARD_UPLOAD_BASE_URL", "/uploads"),
		BlacklistGC:   blacklistGC,
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

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
