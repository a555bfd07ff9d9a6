package generativeAI

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Client is the remote enhancer contract: one prompt in, one text body out.
// The orchestrator mocks this in tests.
type Client interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// Ensure implementation satisfies the interface
var _ Client = (*AIClient)(nil)

// AIClient wraps the Gemini SDK client.
type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient builds a Gemini client from GOOGLE_GEMINI_API_KEY. A missing
// key is an error the caller treats as "remote enhancer not configured", not
// a fatal condition.
func NewAIClient(ctx context.Context) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		err := fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, err
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return &AIClient{
		client: client,
		model:  defaultModel,
	}, nil
}

// GenerateResponse sends the prompt and returns the first candidate's text.
func (ai *AIClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateResponse", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	response, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	for _, candidate := range response.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			txt := candidate.Content.Parts[0].Text
			if txt != "" {
				span.SetStatus(codes.Ok, "Content generated")
				return txt, nil
			}
		}
	}

	err = fmt.Errorf("no valid content in AI response")
	span.RecordError(err)
	span.SetStatus(codes.Error, "Empty response")
	return "", err
}
