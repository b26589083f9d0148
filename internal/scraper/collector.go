package scraper

import (
	"context"

	"go.uber.org/zap"

	"researchbot/internal/domain"
)

// PageFetcher abstrae la descarga de HTML para poder testear el collector.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Collector recorre la lista de URLs en orden y acumula las fuentes scrapeables.
type Collector struct {
	fetcher   PageFetcher
	extractor *Extractor
	logger    *zap.Logger
}

func NewCollector(fetcher PageFetcher, extractor *Extractor, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{fetcher: fetcher, extractor: extractor, logger: logger}
}

// Collect scrapea cada URL secuencialmente; las que fallan se omiten, nunca
// abortan el lote. Una lista vacía de resultado es válida, no un error.
func (c *Collector) Collect(ctx context.Context, urls []string) []domain.Source {
	sources := make([]domain.Source, 0, len(urls))
	seen := make(map[string]bool, len(urls))

	for _, rawURL := range urls {
		if seen[rawURL] {
			continue
		}
		seen[rawURL] = true

		if !ValidURL(rawURL) {
			c.logger.Warn("skipping url with invalid scheme", zap.String("url", rawURL))
			continue
		}

		markup, err := c.fetcher.Fetch(ctx, rawURL)
		if err != nil {
			c.logger.Warn("skipping url after fetch failure", zap.String("url", rawURL), zap.Error(err))
			continue
		}

		content, title, err := c.extractor.Extract(markup)
		if err != nil {
			c.logger.Warn("skipping url after extract failure", zap.String("url", rawURL), zap.Error(err))
			continue
		}
		if content == "" {
			c.logger.Warn("skipping url without extractable content", zap.String("url", rawURL))
			continue
		}

		sources = append(sources, domain.Source{URL: rawURL, Title: title, Content: content})
	}

	return sources
}
