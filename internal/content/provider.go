package content

import (
	"context"

	"daily-bot/internal/models"
	"daily-bot/pkg/logger"
)

type Source interface {
	Generate(ctx context.Context, kind models.ContentKind) (string, error)
}

// Provider fulfills content requests: the generator first when one is
// configured, the static tables otherwise. It cannot fail — the tables
// are compiled in and non-empty.
type Provider struct {
	generator Source
	fallback  *Fallback
}

// NewProvider composes the two content paths. A nil generator disables
// generation entirely; no network call is ever attempted then.
func NewProvider(generator Source, fallback *Fallback) *Provider {
	return &Provider{
		generator: generator,
		fallback:  fallback,
	}
}

func (p *Provider) Content(ctx context.Context, kind models.ContentKind) models.ContentItem {
	if p.generator != nil {
		text, err := p.generator.Generate(ctx, kind)
		if err == nil {
			logger.Info("Using generated content", logger.String("kind", string(kind)))
			return models.ContentItem{Kind: kind, Text: text, Generated: true}
		}
		logger.Warn("Generation failed, using fallback",
			logger.String("kind", string(kind)),
			logger.Err(err),
		)
	}

	text := p.fallback.Pick(kind)
	logger.Info("Using fallback content", logger.String("kind", string(kind)))
	return models.ContentItem{Kind: kind, Text: text}
}
