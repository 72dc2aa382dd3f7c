package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	DictionaryURL string `env:"DICTIONARY_API_URL" envDefault:"https://api.dictionaryapi.dev"`
	AladhanURL    string `env:"ALADHAN_API_URL" envDefault:"http://api.aladhan.com"`
	FreeToGameURL string `env:"FREETOGAME_API_URL" envDefault:"https://www.freetogame.com"`
	RiddlesURL    string `env:"RIDDLE_API_URL" envDefault:"https://riddles-api.vercel.app"`

	// UpstreamTimeout of zero leaves outbound calls to the platform default.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`
	TranslateDelay  time.Duration `env:"TRANSLATE_DELAY" envDefault:"600ms"`

	// GeminiAPIKey belongs to the AI-assist feature; no proxy endpoint uses it.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
