// Package router is the orchestration core: it decides, per request, which
// provider strategy serves a task, builds the provider payload, and
// normalizes heterogeneous responses into one envelope with multi-level
// fallback when a provider is unavailable or fails.
package router

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/zen-systems/sitesmith/pkg/config"
	"github.com/zen-systems/sitesmith/pkg/prompt"
	"github.com/zen-systems/sitesmith/pkg/provider"
)

// ErrMissingTask is returned when the task text is empty. It is rejected
// before any provider is contacted.
var ErrMissingTask = errors.New("task text is required")

// Orchestrator routes tasks across the configured providers. Providers are
// constructed once by the composition root and injected here; a nil provider
// means that capability is unconfigured. The Orchestrator holds no per-call
// state and is safe for concurrent use.
type Orchestrator struct {
	planner provider.TextProvider
	coder   provider.TextProvider
	vision  provider.TextProvider
	images  provider.ImageProvider
	routing *config.RoutingConfig
	debug   bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPlanner sets the high-reasoning text provider.
func WithPlanner(p provider.TextProvider) Option {
	return func(o *Orchestrator) { o.planner = p }
}

// WithCoder sets the low-latency text/code provider, the router's terminal
// fallback.
func WithCoder(p provider.TextProvider) Option {
	return func(o *Orchestrator) { o.coder = p }
}

// WithVision sets the multimodal provider.
func WithVision(p provider.TextProvider) Option {
	return func(o *Orchestrator) { o.vision = p }
}

// WithImages sets the image-generation provider.
func WithImages(p provider.ImageProvider) Option {
	return func(o *Orchestrator) { o.images = p }
}

// WithRouting overrides the classifier keyword lists.
func WithRouting(cfg *config.RoutingConfig) Option {
	return func(o *Orchestrator) { o.routing = cfg }
}

// WithDebug enables routing-decision logging.
func WithDebug(debug bool) Option {
	return func(o *Orchestrator) { o.debug = debug }
}

// NewOrchestrator creates an orchestrator with the given providers.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{routing: config.DefaultRoutingConfig()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Resolve determines which strategy a task/options pair dispatches to,
// without invoking any provider. The precedence is a design contract:
// asset and vision signals always outrank planning/quick-edit keyword
// matches, so those requests are never misrouted into pure text generation.
func (o *Orchestrator) Resolve(task string, opts Options) Strategy {
	if opts.TaskType != "" && opts.TaskType != TaskAuto {
		// Explicit routing bypasses the classifier entirely.
		switch opts.TaskType {
		case TaskPlanning:
			return StrategyPlanning
		case TaskCoding:
			return StrategyCoding
		case TaskVision:
			return StrategyVision
		case TaskAsset:
			return StrategyAsset
		default:
			return StrategyCoding
		}
	}

	switch {
	case opts.RequiresAssets || HasAssetSignal(task, o.routing):
		return StrategyAsset
	case opts.RequiresVision || opts.Image != "":
		return StrategyVision
	case opts.RequiresPlanning || IsPlanningTask(task, o.routing):
		return StrategyPlanning
	case opts.RequiresSpeed || IsQuickEditTask(task, o.routing):
		return StrategyCoding
	default:
		return StrategyComposite
	}
}

// RouteTask is the public entry point: it selects a strategy for the task
// and invokes it, returning the normalized result envelope.
func (o *Orchestrator) RouteTask(ctx context.Context, task string, opts Options) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrMissingTask
	}

	strategy := o.Resolve(task, opts)
	if o.debug {
		log.Printf("[router] task routed to %s strategy", strategy)
	}

	switch strategy {
	case StrategyPlanning:
		return o.Plan(ctx, task, opts)
	case StrategyVision:
		return o.AnalyzeVision(ctx, task, opts)
	case StrategyAsset:
		return o.GenerateAsset(ctx, task, opts)
	case StrategyComposite:
		return o.PlanAndCode(ctx, task, opts)
	default:
		return o.Code(ctx, task, opts)
	}
}

// Plan invokes the high-reasoning provider with a structured planning
// prompt. Planning is a soft preference: if the provider is unconfigured or
// the call fails, it falls back to the fast coder instead of failing the
// caller.
func (o *Orchestrator) Plan(ctx context.Context, task string, opts Options) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrMissingTask
	}
	if o.planner == nil {
		log.Printf("[router] planning provider not configured, falling back to fast coder")
		return o.Code(ctx, task, opts)
	}

	resp, err := o.planner.Invoke(ctx, provider.TextRequest{
		SystemPrompt: opts.SystemPrompt,
		UserText:     prompt.BuildPlanning(task),
		Temperature:  opts.Temperature,
		MaxTokens:    opts.MaxTokens,
	})
	if err != nil {
		log.Printf("[router] planning failed: %v, falling back to fast coder", err)
		return o.Code(ctx, task, opts)
	}

	return o.envelope(o.planner.Model(), resp), nil
}

// Code invokes the low-latency coding provider. This is the terminal
// fallback of the whole router: failures propagate to the caller.
func (o *Orchestrator) Code(ctx context.Context, task string, opts Options) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrMissingTask
	}
	if o.coder == nil {
		return nil, provider.NewUnconfigured("google")
	}

	resp, err := o.coder.Invoke(ctx, provider.TextRequest{
		UserText:         prompt.BuildCoding(task, opts.Context, opts.SystemPrompt),
		Temperature:      opts.Temperature,
		MaxTokens:        opts.MaxTokens,
		ResponseMIMEType: opts.ResponseMIMEType,
	})
	if err != nil {
		return nil, err
	}

	return o.envelope(o.coder.Model(), resp), nil
}

// AnalyzeVision invokes the multimodal provider with the vision prompt and,
// when present, the inline image. If the provider is unconfigured or fails,
// it falls back to the fast coder. The fallback is lossy: the image is
// dropped and only the text prompt is analyzed.
func (o *Orchestrator) AnalyzeVision(ctx context.Context, task string, opts Options) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrMissingTask
	}
	if o.vision == nil {
		log.Printf("[router] vision provider not configured, falling back to fast coder (image dropped)")
		return o.Code(ctx, task, opts)
	}

	resp, err := o.vision.Invoke(ctx, provider.TextRequest{
		SystemPrompt: opts.SystemPrompt,
		UserText:     prompt.BuildVision(task),
		ImageDataURI: opts.Image,
		Temperature:  opts.Temperature,
		MaxTokens:    opts.MaxTokens,
	})
	if err != nil {
		log.Printf("[router] vision failed: %v, falling back to fast coder (image dropped)", err)
		return o.Code(ctx, task, opts)
	}

	return o.envelope(o.vision.Model(), resp), nil
}

// GenerateAsset invokes the image-generation provider. There is no
// cross-modal substitute for image generation, so failures propagate.
func (o *Orchestrator) GenerateAsset(ctx context.Context, task string, opts Options) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrMissingTask
	}
	if o.images == nil {
		return nil, provider.NewUnconfigured("dall-e")
	}

	resp, err := o.images.Invoke(ctx, provider.ImageRequest{
		Prompt:  prompt.BuildAsset(task, opts.AssetType),
		Size:    opts.Size,
		Quality: opts.Quality,
		Style:   opts.Style,
	})
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{"model": resp.RawModel}
	if resp.RevisedPrompt != "" {
		metadata["revised_prompt"] = resp.RevisedPrompt
	}
	return &Result{ModelResult: ModelResult{
		Model:    o.images.Model(),
		Content:  resp.URL,
		Metadata: metadata,
	}}, nil
}

// PlanAndCode is the composite default: a fixed sequential two-stage
// pipeline, never parallel. Stage 2 strictly observes stage 1's completed
// output. Stage 1 degrades internally via Plan's fallback, so a usable plan
// is always produced; a stage 2 failure fails the whole call.
func (o *Orchestrator) PlanAndCode(ctx context.Context, task string, opts Options) (*Result, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrMissingTask
	}

	planOpts := opts
	planOpts.TaskType = TaskPlanning
	plan, err := o.Plan(ctx, task, planOpts)
	if err != nil {
		return nil, err
	}

	synthesized := "Based on this plan: " + plan.Content + "\n\nOriginal task: " + task
	codeOpts := opts
	codeOpts.TaskType = TaskCoding
	code, err := o.Code(ctx, synthesized, codeOpts)
	if err != nil {
		return nil, err
	}

	return &Result{
		ModelResult: ModelResult{Model: MultiModel, Content: code.Content},
		Plan:        &plan.ModelResult,
		Code:        &code.ModelResult,
	}, nil
}

func (o *Orchestrator) envelope(model string, resp *provider.TextResponse) *Result {
	return &Result{ModelResult: ModelResult{
		Model:    model,
		Content:  resp.Text,
		Usage:    resp.Usage,
		Metadata: map[string]string{"model": resp.RawModel},
	}}
}
