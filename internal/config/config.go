package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort     string `env:"HTTP_PORT" envDefault:"8080"`
	LLMAPIKey    string `env:"LLM_API_KEY,required"`
	LLMModel     string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMMaxTokens int    `env:"LLM_MAX_TOKENS" envDefault:"1024"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ShareTTLHours int `env:"SHARE_TTL_HOURS" envDefault:"168"`

	RateLimitMax           int `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitWindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"10"`

	ScrapeTimeoutSeconds    int    `env:"SCRAPE_TIMEOUT_SECONDS" envDefault:"45"`
	ScrapeMaxAttempts       int    `env:"SCRAPE_MAX_ATTEMPTS" envDefault:"3"`
	ScrapeRetryDelaySeconds int    `env:"SCRAPE_RETRY_DELAY_SECONDS" envDefault:"2"`
	ScrapeMaxContentChars   int    `env:"SCRAPE_MAX_CONTENT_CHARS" envDefault:"8000"`
	ScrapeUserAgent         string `env:"SCRAPE_USER_AGENT"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
