package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiService issues a single schema-constrained generation call. No
// retries: one upstream failure is reported as-is to the caller.
type GeminiService interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiService builds the Gemini-backed service. Without an API key it
// returns a disabled service instead of failing, so the server still starts
// and only /gemini-analyze requests fail.
func NewGeminiService(apiKey string) (GeminiService, error) {
	if apiKey == "" {
		return &disabledGeminiService{}, nil
	}

	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   "gemini-2.5-flash",
		temperature: 0.3,
	}, nil
}

// GenerateJSON implements GeminiService.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
		}
		return "", &UpstreamError{Err: err}
	}

	if resp == nil {
		return "", &ResponseParseError{Detail: "nil generation response"}
	}

	text := resp.Text()
	if text == "" {
		return "", &ResponseParseError{Detail: "no text content in generation response"}
	}

	return text, nil
}

type disabledGeminiService struct{}

func (disabledGeminiService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	return "", &UpstreamError{Err: errors.New("GEMINI_API_KEY is not configured")}
}
