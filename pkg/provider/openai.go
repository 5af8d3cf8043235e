package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultVisionModel = "gpt-4o"

// OpenAIProvider implements TextProvider for GPT models. It serves the
// multimodal vision-analysis strategy.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, NewUnconfigured("openai")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: client, model: DefaultVisionModel}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Model returns the configured GPT model.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Invoke sends a prompt, with an optional inline image, to GPT and returns
// the generated text.
func (p *OpenAIProvider) Invoke(ctx context.Context, req TextRequest) (*TextResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.UserText),
	}
	if req.ImageDataURI != "" {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: req.ImageDataURI,
		}))
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(parts),
	}
	if req.SystemPrompt != "" {
		messages = append([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
		}, messages...)
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(p.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(maxTokens),
		Temperature:         openai.Float(temperature),
	})
	if err != nil {
		return nil, NewTransport(p.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return nil, NewMalformed(p.Name(), fmt.Errorf("openai returned no choices"))
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, NewMalformed(p.Name(), fmt.Errorf("openai returned empty content"))
	}

	return &TextResponse{
		Text:     content,
		RawModel: resp.Model,
		Usage: &Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}
