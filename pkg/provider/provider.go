package provider

import "context"

// TextProvider is implemented by providers that turn a text prompt into
// generated text. Vision-capable providers accept an optional inline image.
type TextProvider interface {
	// Invoke sends the request and returns the generated text.
	Invoke(ctx context.Context, req TextRequest) (*TextResponse, error)

	// Name returns the provider's identifier.
	Name() string

	// Model returns the model identifier this provider is configured for.
	Model() string
}

// ImageProvider is implemented by providers that generate image assets.
type ImageProvider interface {
	// Invoke generates an asset and returns its URL.
	Invoke(ctx context.Context, req ImageRequest) (*ImageResponse, error)

	// Name returns the provider's identifier.
	Name() string

	// Model returns the model identifier this provider is configured for.
	Model() string
}

// TextRequest carries everything a text or vision call needs. Zero values
// mean "use the provider's default".
type TextRequest struct {
	SystemPrompt string
	UserText     string
	Temperature  float64
	MaxTokens    int64

	// ResponseMIMEType requests structured ("application/json") or plain
	// ("text/plain") output on providers that support it.
	ResponseMIMEType string

	// ImageDataURI is an inline image (data URI or https URL) for
	// vision-capable providers. Ignored by text-only providers.
	ImageDataURI string
}

// TextResponse is a provider's raw reply before router normalization.
type TextResponse struct {
	Text string

	// RawModel is the model identifier the provider reported serving the
	// request, which may differ from the configured one.
	RawModel string

	Usage *Usage
}

// ImageRequest carries an asset-generation call.
type ImageRequest struct {
	Prompt  string
	Size    string
	Quality string
	Style   string
}

// ImageResponse is the image provider's reply.
type ImageResponse struct {
	URL           string
	RevisedPrompt string
	RawModel      string
}

// Usage captures normalized token usage.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
