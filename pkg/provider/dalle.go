package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultImageModel = "dall-e-3"

// DallEProvider implements ImageProvider for DALL-E models. It serves the
// asset-generation strategy. There is no cross-modal substitute, so callers
// fail hard when it is unavailable.
type DallEProvider struct {
	client openai.Client
	model  string
}

// NewDallEProvider creates a new DALL-E image provider.
func NewDallEProvider(apiKey string) (*DallEProvider, error) {
	if apiKey == "" {
		return nil, NewUnconfigured("dall-e")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &DallEProvider{client: client, model: DefaultImageModel}, nil
}

// Name returns the provider identifier.
func (p *DallEProvider) Name() string {
	return "dall-e"
}

// Model returns the configured image model.
func (p *DallEProvider) Model() string {
	return p.model
}

// Invoke generates an asset and returns its hosted URL.
func (p *DallEProvider) Invoke(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	size := req.Size
	if size == "" {
		size = "1024x1024"
	}
	quality := req.Quality
	if quality == "" {
		quality = "standard"
	}
	style := req.Style
	if style == "" {
		style = "natural"
	}

	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:   openai.ImageModel(p.model),
		Prompt:  req.Prompt,
		N:       openai.Int(1),
		Size:    openai.ImageGenerateParamsSize(size),
		Quality: openai.ImageGenerateParamsQuality(quality),
		Style:   openai.ImageGenerateParamsStyle(style),
	})
	if err != nil {
		return nil, NewTransport(p.Name(), err)
	}

	if resp == nil || len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, NewMalformed(p.Name(), fmt.Errorf("dall-e returned no image"))
	}

	return &ImageResponse{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
		RawModel:      p.model,
	}, nil
}
