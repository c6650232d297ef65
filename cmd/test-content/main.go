package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"daily-bot/internal/config"
	"daily-bot/internal/content"
	"daily-bot/internal/models"
	"daily-bot/pkg/logger"
)

func main() {
	logger.Init("debug", nil)

	fmt.Println("=== Testing Content Provider ===")
	fmt.Println()

	cfg := config.GeneratorConfig{
		APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		Model:     "claude-3-7-sonnet-latest",
		Timeout:   30 * time.Second,
		MaxTokens: 150,
	}

	var source content.Source
	if cfg.APIKey != "" {
		source = content.NewGenerator(cfg)
	} else {
		fmt.Println("ANTHROPIC_API_KEY not set, exercising fallback tables only")
		fmt.Println()
	}

	fallback := content.NewFallback(rand.New(rand.NewSource(time.Now().UnixNano())))
	provider := content.NewProvider(source, fallback)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	for _, kind := range []models.ContentKind{models.KindJoke, models.KindTrivia} {
		item := provider.Content(ctx, kind)
		fmt.Printf("[%s] generated=%v\n  %s\n\n", item.Kind, item.Generated, item.Text)
	}

	fmt.Println("=== Test Complete ===")
}
