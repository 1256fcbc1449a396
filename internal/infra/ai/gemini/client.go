package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	domai "github.com/litholens/prospector/internal/domain/ai"
	"github.com/litholens/prospector/internal/domain/rocks"
	"github.com/litholens/prospector/internal/infra/ai/prompt"
)

const defaultModel = "gemini-2.5-flash"

// Lower temperature keeps the identification factual.
const temperature = float32(0.3)

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{client: cli, model: model}, nil
}

// Identify sends the inline image plus instruction and parses the
// schema-constrained JSON reply through the sanitizer.
func (c *Client) Identify(ctx context.Context, img domai.Image, location string) (rocks.Analysis, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(img.Data, img.MIMEType),
		genai.NewPartFromText(prompt.UserPrompt(location)),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema(),
		SystemInstruction: genai.NewContentFromText(prompt.SystemInstruction(), genai.RoleUser),
		Temperature:       genai.Ptr(temperature),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return rocks.Analysis{}, translateErr(err)
	}

	text := resp.Text()
	if text == "" {
		return rocks.Analysis{}, domai.ErrEmptyResponse
	}
	return rocks.Parse([]byte(text))
}

func translateErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
	}
	if strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("gemini: generate content: %w", err)
}
