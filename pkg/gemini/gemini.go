// Package gemini is a small REST client for the Gemini generateContent API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

// DefaultBaseURL is the public Generative Language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the Gemini client settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls generateContent for a single model.
type Client struct {
	cfg Config
}

// NewClient creates a new Gemini client. It returns nil when no API key is
// configured so callers can treat the generator as absent.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{cfg: cfg}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText returns the model's free-text answer to prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
}

// GenerateJSON asks for a JSON answer constrained by schema and returns
// the raw JSON text.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema map[string]interface{}) (string, error) {
	return c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	})
}

func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	agent := fiber.Post(url).
		JSONEncoder(json.Marshal).
		JSONDecoder(json.Unmarshal).
		Timeout(timeout).
		Set("x-goog-api-key", c.cfg.APIKey).
		JSON(req)
	if err := agent.Parse(); err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}

	var resp generateResponse
	code, body, errs := agent.Struct(&resp)
	if len(errs) > 0 {
		return "", fmt.Errorf("gemini request failed: %w", errs[0])
	}
	if resp.Error != nil {
		return "", fmt.Errorf("gemini returned %d %s: %s", resp.Error.Code, resp.Error.Status, resp.Error.Message)
	}
	if code != fiber.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", code, string(body))
	}

	if len(resp.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
