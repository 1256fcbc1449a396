package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	domai "github.com/litholens/prospector/internal/domain/ai"
	"github.com/litholens/prospector/internal/domain/rocks"
	"github.com/litholens/prospector/internal/infra/ai/prompt"
)

const maxTokens = 2048

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Identify runs the identification through a vision-capable chat model in
// JSON mode. Unlike the Gemini transport there is no server-side schema, so
// the system prompt carries the shape; the sanitizer squares away whatever
// comes back.
func (c *Client) Identify(ctx context.Context, img domai.Image, location string) (rocks.Analysis, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))

	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt.SystemInstruction() + "\n\n" + prompt.JSONSchemaHint(),
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURI, Detail: openai.ImageURLDetailAuto},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt.UserPrompt(location),
					},
				},
			},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return rocks.Analysis{}, fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return rocks.Analysis{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return rocks.Analysis{}, domai.ErrEmptyResponse
	}

	return rocks.Parse([]byte(resp.Choices[0].Message.Content))
}
