package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all service configuration loaded from environment
// variables.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	MongoURI    string   `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string   `env:"MONGO_DB" envDefault:"realestate"`
	JWTSecret   string   `env:"JWT_SECRET" envDefault:"devsecret"`
	PingMessage string   `env:"PING_MESSAGE" envDefault:"ping"`
	Razorpay    Razorpay `envPrefix:"RAZORPAY_"`
}

// Razorpay contains payment gateway credentials.
type Razorpay struct {
	KeyID     string `env:"KEY_ID"`
	KeySecret string `env:"KEY_SECRET"`
	BaseURL   string `env:"BASE_URL" envDefault:"https://api.razorpay.com"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
