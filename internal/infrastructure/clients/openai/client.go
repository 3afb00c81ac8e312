package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/pkg/config"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the LLM provider to classify UGC creative patterns.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the internal HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the default API base URL (useful for tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// NewClient creates a new LLM client.
func NewClient(cfg *config.OpenAIConfig, opts ...Option) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type patternPayload struct {
	HookType         string  `json:"hook_type"`
	Format           string  `json:"format"`
	ProofType        string  `json:"proof_type"`
	ObjectionHandled string  `json:"objection_handled"`
	CTAStyle         string  `json:"cta_style"`
	Confidence       float64 `json:"confidence"`
}

// ExtractPatterns classifies a caption into creative pattern categories.
func (c *Client) ExtractPatterns(ctx context.Context, caption string) (*entities.UGCPatterns, error) {
	if strings.TrimSpace(caption) == "" {
		return nil, errors.New("caption is empty")
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: patternSystemPrompt},
			{Role: "user", Content: buildPatternUserPrompt(caption)},
		},
		Temperature: 0.1,
		MaxTokens:   300,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm returned status %d", resp.StatusCode)
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode llm response: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, errors.New("llm returned no choices")
	}

	content := stripCodeFence(envelope.Choices[0].Message.Content)

	var parsed patternPayload
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse llm pattern payload: %w", err)
	}

	if parsed.Confidence <= 0 || parsed.Confidence > 1 {
		parsed.Confidence = 0.9
	}

	return &entities.UGCPatterns{
		HookType:         parsed.HookType,
		Format:           parsed.Format,
		ProofType:        parsed.ProofType,
		ObjectionHandled: parsed.ObjectionHandled,
		CTAStyle:         parsed.CTAStyle,
		Confidence:       parsed.Confidence,
	}, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
