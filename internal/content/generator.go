package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"daily-bot/internal/config"
	"daily-bot/internal/models"
	"daily-bot/pkg/logger"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	apiVersion     = "2023-06-01"

	jokeTemperature   = 0.8
	triviaTemperature = 0.7

	retryDelay = time.Second
)

var (
	ErrNoAPIKey        = errors.New("generator API key is not configured")
	ErrEmptyCompletion = errors.New("generator returned an empty completion")
)

// Generator produces content through the Anthropic messages API. One
// transient failure is retried once; everything else is reported to the
// caller, which is expected to fall back.
type Generator struct {
	cfg     config.GeneratorConfig
	client  *http.Client
	baseURL string
	now     func() time.Time
}

func NewGenerator(cfg config.GeneratorConfig, opts ...GeneratorOption) *Generator {
	g := &Generator{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

type GeneratorOption func(*Generator)

func WithHTTPClient(client *http.Client) GeneratorOption {
	return func(g *Generator) {
		g.client = client
	}
}

func WithBaseURL(url string) GeneratorOption {
	return func(g *Generator) {
		g.baseURL = url
	}
}

func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

type generateRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (g *Generator) Generate(ctx context.Context, kind models.ContentKind) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}

	temperature := jokeTemperature
	if kind == models.KindTrivia {
		temperature = triviaTemperature
	}

	body, err := json.Marshal(generateRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: temperature,
		Messages: []message{
			{Role: "user", Content: buildPrompt(kind, g.now())},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	var text string
	err = retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(retryDelay)), func(ctx context.Context) error {
		text, err = g.complete(ctx, body)
		return err
	})
	if err != nil {
		return "", err
	}

	logger.Debug("Generated content",
		logger.String("kind", string(kind)),
		logger.Int("length", len(text)),
	)
	return text, nil
}

// complete performs a single API call. Network failures and 429/5xx
// responses are marked retryable; auth errors and malformed responses
// are permanent.
func (g *Generator) complete(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", g.cfg.APIKey)
	req.Header.Set("Anthropic-Version", apiVersion)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("generator request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("failed to read generator response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return "", retry.RetryableError(fmt.Errorf("generator returned status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("failed to decode generator response: %w", err)
	}
	if len(gr.Content) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(gr.Content[0].Text)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}

func buildPrompt(kind models.ContentKind, now time.Time) string {
	date := now.Format("2006-01-02")

	if kind == models.KindTrivia {
		return fmt.Sprintf(`Generate a single, interesting science/tech trivia fact that would be engaging for developers.
Today's date: %s. If something notable happened in science/tech history today, use it; otherwise any trivia fact is fine.

Requirements:
- Science/tech history related
- Factually accurate and verifiable
- Interesting and not widely known, but not too obscure
- Maximum 280 characters
- Include relevant context/numbers when applicable

Just return the trivia fact, no extra text.`, date)
	}

	return fmt.Sprintf(`Generate a single, short science/tech joke that would be appropriate for a workplace chat channel.
Today's date: %s. If something notable happened in science/tech history today, use it; otherwise any joke is fine.

Requirements:
- Clean and workplace-appropriate
- Science or tech related
- Include a relevant emoji
- Maximum 280 characters
- A complete joke with setup and punchline

Just return the joke, no extra text.`, date)
}
