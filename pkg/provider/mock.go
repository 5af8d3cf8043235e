package provider

import "context"

// MockTextProvider returns deterministic responses for local runs and tests.
type MockTextProvider struct {
	ProviderName string
	ModelID      string
	Responses    map[string]string
	Default      string
	Err          error
	Calls        int
	LastRequest  TextRequest
}

// NewMockTextProvider creates a mock text provider with a default response.
func NewMockTextProvider(name, model string) *MockTextProvider {
	return &MockTextProvider{
		ProviderName: name,
		ModelID:      model,
		Responses:    make(map[string]string),
		Default:      "mock response",
	}
}

// Name returns the provider identifier.
func (p *MockTextProvider) Name() string {
	return p.ProviderName
}

// Model returns the configured mock model.
func (p *MockTextProvider) Model() string {
	return p.ModelID
}

// Invoke returns a scripted failure or a deterministic response.
func (p *MockTextProvider) Invoke(_ context.Context, req TextRequest) (*TextResponse, error) {
	p.Calls++
	p.LastRequest = req
	if p.Err != nil {
		return nil, p.Err
	}
	if response, ok := p.Responses[req.UserText]; ok {
		return &TextResponse{Text: response, RawModel: p.ModelID}, nil
	}
	return &TextResponse{
		Text:     p.Default,
		RawModel: p.ModelID,
		Usage:    &Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	}, nil
}

// MockImageProvider returns a fixed URL for asset-generation tests.
type MockImageProvider struct {
	ProviderName string
	ModelID      string
	URL          string
	Revised      string
	Err          error
	Calls        int
	LastRequest  ImageRequest
}

// NewMockImageProvider creates a mock image provider.
func NewMockImageProvider(name, model string) *MockImageProvider {
	return &MockImageProvider{
		ProviderName: name,
		ModelID:      model,
		URL:          "https://assets.example/mock.png",
	}
}

// Name returns the provider identifier.
func (p *MockImageProvider) Name() string {
	return p.ProviderName
}

// Model returns the configured mock model.
func (p *MockImageProvider) Model() string {
	return p.ModelID
}

// Invoke returns a scripted failure or the fixed asset URL.
func (p *MockImageProvider) Invoke(_ context.Context, req ImageRequest) (*ImageResponse, error) {
	p.Calls++
	p.LastRequest = req
	if p.Err != nil {
		return nil, p.Err
	}
	return &ImageResponse{URL: p.URL, RevisedPrompt: p.Revised, RawModel: p.ModelID}, nil
}
