// Package research wraps a single Gemini structured-output call that
// fills in specimen metadata from partial identification.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/matsen/hortus/internal/config"
	"github.com/matsen/hortus/internal/plant"
)

// RateLimit is requests per second against the Gemini API, kept well
// under the free-tier quota of 15 requests per minute.
const RateLimit = 0.2

// Common errors returned by the research client.
var (
	// ErrAPIKeyMissing indicates no Gemini API key was configured.
	// Research stays disabled; no network call is attempted.
	ErrAPIKeyMissing = errors.New("gemini api key not configured")

	// ErrResearchFailed indicates a transport or remote failure,
	// including an unparseable response body.
	ErrResearchFailed = errors.New("research call failed")

	// ErrInvalidResponse indicates the model returned parseable JSON
	// that fails fragment validation.
	ErrInvalidResponse = errors.New("invalid research response")
)

// Client calls the Gemini API for botanical research.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	limiter *rate.Limiter
}

// NewClient builds a research client from resolved configuration.
// Returns ErrAPIKeyMissing when no key is present.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResearchFailed, err)
	}

	modelName := cfg.GeminiModel
	if modelName == "" {
		modelName = config.DefaultModel
	}
	model := gc.GenerativeModel(modelName)
	// Structured-output contract: the model constrains itself to JSON
	model.GenerationConfig.ResponseMIMEType = "application/json"

	return &Client{
		client:  gc,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(RateLimit), 1),
	}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Research queries the model for a fully-populated fragment from the
// given identification clues. At least one input must be non-empty;
// callers enforce that before invoking. The returned fragment never
// carries id, date_added, or is_wishlist; the caller adds those
// before persisting.
func (c *Client) Research(ctx context.Context, common, scientific, clues string) (*plant.Fragment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrResearchFailed, err)
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(common, scientific, clues)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResearchFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return ParseFragment(text)
}

// responseText extracts the text body from a generation response.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content returned", ErrResearchFailed)
	}

	part, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: response part is not text (%T)", ErrResearchFailed, resp.Candidates[0].Content.Parts[0])
	}
	return string(part), nil
}

// ParseFragment decodes a model response body into a validated
// fragment. Parse failures report ErrResearchFailed; responses that
// parse but fail validation report ErrInvalidResponse.
func ParseFragment(text string) (*plant.Fragment, error) {
	text = stripCodeFence(strings.TrimSpace(text))

	var frag plant.Fragment
	if err := json.Unmarshal([]byte(text), &frag); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %v", ErrResearchFailed, err)
	}
	if err := frag.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &frag, nil
}

// stripCodeFence removes a markdown code fence wrapper, which some
// models emit even with a JSON response type configured.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}
