package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port     string `env:"PORT" envDefault:"9000"`
	DBPath   string `env:"DB_PATH" envDefault:"db/fleamarket.sqlite3"`
	ImageDir string `env:"IMAGE_DIR" envDefault:"images"`
	FrontURL string `env:"FRONT_URL" envDefault:"http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
