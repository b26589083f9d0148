package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"researchbot/internal/config"
	"researchbot/internal/llm"
	"researchbot/internal/scraper"
	"researchbot/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	fetcher := scraper.NewFetcher(scraper.FetcherConfig{
		UserAgent:   cfg.ScrapeUserAgent,
		Timeout:     time.Duration(cfg.ScrapeTimeoutSeconds) * time.Second,
		MaxAttempts: cfg.ScrapeMaxAttempts,
		RetryDelay:  time.Duration(cfg.ScrapeRetryDelaySeconds) * time.Second,
	}, logger)
	extractor := scraper.NewExtractor(cfg.ScrapeMaxContentChars)
	collector := scraper.NewCollector(fetcher, extractor, logger)

	llmClient := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMModel)
	answerSvc := service.NewAnswerService(llmClient, cfg.LLMMaxTokens, logger)

	fmt.Print("URLs (separadas por coma): ")
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal(err)
	}
	var urls []string
	for _, u := range strings.Split(line, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}

	fmt.Println("Scrapeando...")
	sources := collector.Collect(ctx, urls)
	if len(sources) == 0 {
		log.Fatal("ninguna URL produjo contenido scrapeable")
	}
	for _, src := range sources {
		fmt.Printf("  ok: %s (%d chars)\n", src.URL, len(src.Content))
	}

	for {
		fmt.Print("\nPregunta (vacío para salir): ")
		q, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		q = strings.TrimSpace(q)
		if q == "" {
			break
		}

		answer, used, err := answerSvc.Answer(ctx, q, sources)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Println("\n" + answer)
		for _, src := range used {
			fmt.Printf("  [Source: %s]\n", src.URL)
		}
	}
}
