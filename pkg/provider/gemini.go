package provider

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements TextProvider for Gemini models. It serves the
// low-latency coding strategy and is the terminal fallback of the router.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Google Gemini provider.
func NewGeminiProvider(apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, NewUnconfigured("google")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google client: %w", err)
	}

	return &GeminiProvider{client: client, model: DefaultGeminiModel}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "google"
}

// Model returns the configured Gemini model.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Invoke sends a prompt to Gemini and returns the generated text.
func (p *GeminiProvider) Invoke(ctx context.Context, req TextRequest) (*TextResponse, error) {
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = 1
	}
	maxTokens := int32(req.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 8192
	}
	mimeType := req.ResponseMIMEType
	if mimeType == "" {
		mimeType = "application/json"
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		TopP:             genai.Ptr[float32](0.95),
		TopK:             genai.Ptr[float32](40),
		MaxOutputTokens:  maxTokens,
		ResponseMIMEType: mimeType,
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.UserText), cfg)
	if err != nil {
		return nil, NewTransport(p.Name(), err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, NewMalformed(p.Name(), fmt.Errorf("google returned no candidates"))
	}

	var content string
	if resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				content += part.Text
			}
		}
	}
	if content == "" {
		return nil, NewMalformed(p.Name(), fmt.Errorf("google returned empty content"))
	}

	rawModel := resp.ModelVersion
	if rawModel == "" {
		rawModel = p.model
	}

	out := &TextResponse{Text: content, RawModel: rawModel}
	if resp.UsageMetadata != nil {
		out.Usage = &Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}
