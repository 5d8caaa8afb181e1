package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
)

// GroqClient translates construction text through a Groq-hosted chat
// model. Transient API failures (rate limits, server errors) are
// retried with backoff before the error is surfaced.
type GroqClient struct {
	client *openai.Client
	model  string
	log    *slog.Logger

	// Stats collects per-call latency for the stats endpoint.
	Stats *LLMStats
}

type GroqOptions struct {
	APIKey     string
	BaseURL    string // defaults to DefaultBaseURL
	Model      string // defaults to DefaultModel
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func NewGroqClient(opts GroqOptions) *GroqClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	} else {
		cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &GroqClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
		Stats:  NewLLMStats(time.Hour),
	}
}

// Model reports the configured chat model.
func (c *GroqClient) Model() string { return c.model }

type translationResult struct {
	Hindi    string `json:"hindi_translation"`
	Gujarati string `json:"gujrati_translation"`
}

// Translate implements Translator.
func (c *GroqClient) Translate(ctx context.Context, text string) (string, string, error) {
	var hindi, gujarati string
	var lastErr error
	for attempt := range MaxRetries {
		hindi, gujarati, lastErr = c.translateOnce(ctx, text)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		c.log.Warn("retryable translation error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	return hindi, gujarati, lastErr
}

func (c *GroqClient) translateOnce(ctx context.Context, text string) (string, string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	c.Stats.Record(time.Since(start).Milliseconds(), err == nil)
	if err != nil {
		return "", "", fmt.Errorf("groq api: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("empty response from groq")
	}

	content := stripCodeBlock(resp.Choices[0].Message.Content)
	var out translationResult
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", "", fmt.Errorf("parse translation json: %w (raw: %s)", err, truncate(content, 200))
	}
	return out.Hindi, out.Gujarati, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripCodeBlock unwraps a response the model fenced despite the JSON
// instruction.
func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
