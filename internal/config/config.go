package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything read from the environment. Defaults mirror a
// local dev setup; production overrides each DSN and the API key.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Two independent stores: applications (+communications, reminders,
	// chat sessions) and resumes. No cross-store foreign keys.
	ApplicationsDSN string `env:"APPLICATIONS_DATABASE_URL" envDefault:"host=localhost user=postgres password=password dbname=jobvibe port=5432 sslmode=disable"`
	ResumesDSN      string `env:"RESUMES_DATABASE_URL" envDefault:"host=localhost user=postgres password=password dbname=jobvibe_resumes port=5432 sslmode=disable"`

	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	// One fixed client-side timeout on every outbound call; no retries.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"60s"`

	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"false"`
}

// Load parses the process environment into a Config.
func Load() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal("Failed to parse environment:", err)
	}
	return cfg
}
