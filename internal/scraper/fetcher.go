package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// ErrUnsupportedScheme indica una URL que no es http ni https.
var ErrUnsupportedScheme = errors.New("unsupported url scheme")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FetcherConfig agrupa los parámetros de navegación del fetcher.
type FetcherConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// Fetcher descarga el HTML crudo de una URL con reintentos acotados.
type Fetcher struct {
	cfg    FetcherConfig
	logger *zap.Logger
}

func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{cfg: cfg, logger: logger}
}

// ValidURL verifica el esquema http/https requerido para scrapear.
func ValidURL(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

// Fetch descarga la página y devuelve su HTML; agota MaxAttempts antes de fallar.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if !ValidURL(rawURL) {
		return "", ErrUnsupportedScheme
	}

	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		markup, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return markup, nil
		}
		lastErr = err
		f.logger.Warn("fetch attempt failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < f.cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.cfg.RetryDelay):
			}
		}
	}

	return "", fmt.Errorf("fetch %s: %w", rawURL, lastErr)
}

// fetchOnce usa un collector nuevo por intento; el recurso no sobrevive a ninguna salida.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(f.cfg.Timeout)

	var body string
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(rawURL); err != nil {
		return "", err
	}
	if fetchErr != nil {
		return "", fetchErr
	}
	if strings.TrimSpace(body) == "" {
		return "", errors.New("empty response body")
	}
	return body, nil
}
