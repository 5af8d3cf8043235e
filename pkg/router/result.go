package router

import "github.com/zen-systems/sitesmith/pkg/provider"

// TaskType selects an explicit strategy, bypassing the classifier.
type TaskType string

const (
	TaskAuto     TaskType = "auto"
	TaskPlanning TaskType = "planning"
	TaskCoding   TaskType = "coding"
	TaskVision   TaskType = "vision"
	TaskAsset    TaskType = "asset"
)

// MultiModel is the envelope model identifier for composite results.
const MultiModel = "multi-model"

// Options configures one RouteTask call. Unset fields take documented
// defaults (TaskType "auto", booleans false). Options are read by the
// classifier and every downstream builder but never mutated.
type Options struct {
	TaskType         TaskType `json:"taskType,omitempty"`
	RequiresVision   bool     `json:"requiresVision,omitempty"`
	RequiresPlanning bool     `json:"requiresPlanning,omitempty"`
	RequiresSpeed    bool     `json:"requiresSpeed,omitempty"`
	RequiresAssets   bool     `json:"requiresAssets,omitempty"`

	// Image is an inline image (data URI or URL) for vision analysis.
	Image string `json:"image,omitempty"`

	Context      string `json:"context,omitempty"`
	SystemPrompt string `json:"systemPrompt,omitempty"`

	Temperature      float64 `json:"temperature,omitempty"`
	MaxTokens        int64   `json:"maxTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`

	// Asset-generation knobs, passed through to the image provider.
	Size      string `json:"size,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Style     string `json:"style,omitempty"`
	AssetType string `json:"assetType,omitempty"`
}

// ModelResult is the normalized success envelope returned to callers
// regardless of which provider served the request. Content is never empty
// on success: absent content is always signaled as a failure.
type ModelResult struct {
	Model    string            `json:"model"`
	Content  string            `json:"content"`
	Usage    *provider.Usage   `json:"usage,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Result is what RouteTask returns. For single-strategy paths it is just the
// embedded ModelResult. For the composite plan-and-code path, Model is
// "multi-model", Content is the code stage's output, and Plan/Code hold the
// two stage results.
type Result struct {
	ModelResult
	Plan *ModelResult `json:"plan,omitempty"`
	Code *ModelResult `json:"code,omitempty"`
}

// Strategy names one of the five fixed dispatch paths.
type Strategy string

const (
	StrategyPlanning  Strategy = "planning"
	StrategyCoding    Strategy = "coding"
	StrategyVision    Strategy = "vision"
	StrategyAsset     Strategy = "asset"
	StrategyComposite Strategy = "composite"
)
