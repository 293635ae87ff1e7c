package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	DefaultBaseURL        = "https://generativelanguage.googleapis.com/"
	DefaultAPIVersion     = "v1beta"
	DefaultModeratorModel = "gemini-2.5-flash"
	DefaultPlannerModel   = "gemini-2.5-pro"
	DefaultChatModel      = "gemini-2.5-flash"
	DefaultTimeout        = 60 * time.Second

	maxRetries   = 3
	initialDelay = 1 * time.Second
)

// Config selects the endpoint and models used by Client.
type Config struct {
	APIKey         string
	BaseURL        string
	ModeratorModel string
	PlannerModel   string
	ChatModel      string
	Timeout        time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ModeratorModel == "" {
		c.ModeratorModel = DefaultModeratorModel
	}
	if c.PlannerModel == "" {
		c.PlannerModel = DefaultPlannerModel
	}
	if c.ChatModel == "" {
		c.ChatModel = DefaultChatModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// endpoint splits a base URL that may still carry the API version
// ("https://host/v1beta") into the root URL and the version.
func endpoint(baseURL string) (root, version string) {
	root = strings.TrimRight(baseURL, "/")
	version = DefaultAPIVersion
	if i := strings.LastIndex(root, "/"); i >= 0 {
		switch last := root[i+1:]; last {
		case "v1", "v1beta", "v1alpha":
			root, version = root[:i], last
		}
	}
	return root + "/", version
}

// Client talks to the Gemini API through the genai SDK. It implements
// engine.Moderator, engine.Planner and engine.Chat.
type Client struct {
	cfg    Config
	models *genai.Models
	now    func() time.Time
	// retryDelay is the first backoff step; tests shrink it.
	retryDelay time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errNoAPIKey
	}
	root, version := endpoint(cfg.BaseURL)
	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    root,
			APIVersion: version,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{
		cfg:        cfg,
		models:     gc.Models,
		now:        time.Now,
		retryDelay: initialDelay,
	}, nil
}

func systemText(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

func userText(s string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(s, genai.RoleUser)}
}

// responseText concatenates the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func functionCalls(resp *genai.GenerateContentResponse) []*genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var out []*genai.FunctionCall
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.FunctionCall != nil {
			out = append(out, p.FunctionCall)
		}
	}
	return out
}

// StatusCode extracts the HTTP status of an API error.
func StatusCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

// retryable reports rate limits, server errors and transport failures.
func retryable(err error) bool {
	code, ok := StatusCode(err)
	if !ok {
		return !errors.Is(err, context.Canceled)
	}
	return code == http.StatusTooManyRequests || code >= 500
}

// generate calls GenerateContent. Rate limits and server errors are retried
// with exponential backoff up to attempts times; each attempt is bounded by
// the configured timeout.
func (c *Client) generate(ctx context.Context, model string, contents []*genai.Content, gc *genai.GenerateContentConfig, attempts int) (*genai.GenerateContentResponse, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * c.retryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		resp, err := c.models.GenerateContent(callCtx, model, contents, gc)
		cancel()
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil || !retryable(err) {
			return nil, err
		}
	}
	if attempts == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("max retries (%d) exceeded: %w", attempts, lastErr)
}
