// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds everything the process needs to wire its collaborators.
type Config struct {
	Addr string `env:"HSSUGGEST_ADDR" envDefault:":8080"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	VoyageAPIKey string `env:"VOYAGEAI_API_KEY,required"`

	PineconeAPIKey    string `env:"PINECONE_API_KEY,required"`
	PineconeHost      string `env:"PINECONE_HOST,required"`
	PineconeNamespace string `env:"PINECONE_NAMESPACE" envDefault:"hs-kb"`
}

// Load reads the .env file if present, then parses the environment.
func Load() (Config, error) {
	// Missing .env is fine: production supplies real environment variables.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// OracleEnabled reports whether an oracle client should be constructed.
func (c Config) OracleEnabled() bool {
	return c.GeminiAPIKey != ""
}
