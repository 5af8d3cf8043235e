package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zen-systems/sitesmith/pkg/config"
	"github.com/zen-systems/sitesmith/pkg/provider"
)

func newTestOrchestrator() (*Orchestrator, *provider.MockTextProvider, *provider.MockTextProvider, *provider.MockTextProvider, *provider.MockImageProvider) {
	planner := provider.NewMockTextProvider("anthropic", "claude-sonnet-4-20250514")
	planner.Default = "the plan:"
	coder := provider.NewMockTextProvider("google", "gemini-2.5-flash")
	coder.Default = "the code:"
	vision := provider.NewMockTextProvider("openai", "gpt-4o")
	vision.Default = "the analysis:"
	images := provider.NewMockImageProvider("dall-e", "dall-e-3")

	o := NewOrchestrator(
		WithPlanner(planner),
		WithCoder(coder),
		WithVision(vision),
		WithImages(images),
	)
	return o, planner, coder, vision, images
}

func TestResolvePrecedence(t *testing.T) {
	o, _, _, _, _ := newTestOrchestrator()

	tests := []struct {
		name string
		task string
		opts Options
		want Strategy
	}{
		{"asset keyword", "generate a hero image for the landing page", Options{}, StrategyAsset},
		{"asset flag", "make something nice", Options{RequiresAssets: true}, StrategyAsset},
		{"asset outranks vision", "create an image like this screenshot", Options{Image: "data:image/png;base64,x"}, StrategyAsset},
		{"vision via image", "what layout is this", Options{Image: "data:image/png;base64,x"}, StrategyVision},
		{"vision flag", "describe the layout", Options{RequiresVision: true}, StrategyVision},
		{"vision outranks planning", "plan from this screenshot", Options{Image: "data:image/png;base64,x"}, StrategyVision},
		{"planning keyword", "design the database architecture", Options{}, StrategyPlanning},
		{"planning flag", "hello there", Options{RequiresPlanning: true}, StrategyPlanning},
		{"quick edit keyword", "fix the navbar color", Options{}, StrategyCoding},
		{"speed flag", "hello there", Options{RequiresSpeed: true}, StrategyCoding},
		{"planning outranks quick edit", "plan how to fix the navbar", Options{}, StrategyPlanning},
		{"default composite", "build a portfolio site", Options{}, StrategyComposite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := o.Resolve(tt.task, tt.opts)
			if got != tt.want {
				t.Fatalf("Resolve(%q) = %s, want %s", tt.task, got, tt.want)
			}
		})
	}
}

func TestResolveExplicitTypeBypassesClassifier(t *testing.T) {
	o, _, _, _, _ := newTestOrchestrator()

	// Task text screams "asset" but the explicit type wins.
	if got := o.Resolve("generate an image asset", Options{TaskType: TaskPlanning}); got != StrategyPlanning {
		t.Fatalf("explicit planning ignored, got %s", got)
	}
	if got := o.Resolve("plan the architecture", Options{TaskType: TaskCoding}); got != StrategyCoding {
		t.Fatalf("explicit coding ignored, got %s", got)
	}
	// Unrecognized explicit types degrade to the fast path.
	if got := o.Resolve("whatever", Options{TaskType: "turbo"}); got != StrategyCoding {
		t.Fatalf("unknown type should resolve to coding, got %s", got)
	}
}

func TestRouteTaskRejectsEmptyTask(t *testing.T) {
	o, planner, coder, vision, images := newTestOrchestrator()

	for _, task := range []string{"", "   ", "\n\t"} {
		if _, err := o.RouteTask(context.Background(), task, Options{}); !errors.Is(err, ErrMissingTask) {
			t.Fatalf("task %q: expected ErrMissingTask, got %v", task, err)
		}
	}

	if planner.Calls+coder.Calls+vision.Calls+images.Calls != 0 {
		t.Fatalf("providers contacted for empty task")
	}
}

func TestPlanEnvelope(t *testing.T) {
	o, planner, _, _, _ := newTestOrchestrator()
	planner.Responses = map[string]string{}
	planner.Default = "step one"

	result, err := o.RouteTask(context.Background(), "design the site architecture", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Model != "claude-sonnet-4-20250514" {
		t.Fatalf("unexpected model: %s", result.Model)
	}
	if result.Metadata["model"] != "claude-sonnet-4-20250514" {
		t.Fatalf("metadata model missing: %+v", result.Metadata)
	}
	if result.Content == "" {
		t.Fatalf("empty content on success")
	}
}

func TestPlanFallsBackWhenPlannerUnconfigured(t *testing.T) {
	coder := provider.NewMockTextProvider("google", "gemini-2.5-flash")
	o := NewOrchestrator(WithCoder(coder))

	result, err := o.RouteTask(context.Background(), "plan the architecture", Options{})
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if result.Model != "gemini-2.5-flash" {
		t.Fatalf("expected coder to serve the fallback, got %s", result.Model)
	}
	if coder.Calls != 1 {
		t.Fatalf("coder calls = %d, want 1", coder.Calls)
	}
}

func TestPlanFallsBackWhenPlannerFails(t *testing.T) {
	o, planner, coder, _, _ := newTestOrchestrator()
	planner.Err = provider.NewTransport("anthropic", errors.New("upstream 500"))

	result, err := o.RouteTask(context.Background(), "plan the architecture", Options{})
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if result.Model != "gemini-2.5-flash" {
		t.Fatalf("expected coder model, got %s", result.Model)
	}
	if coder.Calls != 1 {
		t.Fatalf("coder calls = %d, want 1", coder.Calls)
	}
}

func TestCodeFailsHardWhenUnconfigured(t *testing.T) {
	o := NewOrchestrator()

	_, err := o.RouteTask(context.Background(), "fix the navbar", Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !provider.IsUnconfigured(err) {
		t.Fatalf("expected unconfigured error, got %v", err)
	}
}

func TestCodeErrorPropagates(t *testing.T) {
	o, _, coder, _, _ := newTestOrchestrator()
	coder.Err = provider.NewTransport("google", errors.New("timeout"))

	_, err := o.RouteTask(context.Background(), "fix the navbar", Options{})
	if err == nil {
		t.Fatal("expected transport error to propagate")
	}
	if !provider.IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestVisionFallbackDropsImage(t *testing.T) {
	o, _, coder, vision, _ := newTestOrchestrator()
	vision.Err = provider.NewTransport("openai", errors.New("unavailable"))

	result, err := o.RouteTask(context.Background(), "what layout is this", Options{
		Image: "data:image/png;base64,xyz",
	})
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if result.Model != "gemini-2.5-flash" {
		t.Fatalf("expected coder model, got %s", result.Model)
	}
	// The fallback is text-only: the image must not reach the coder.
	if coder.LastRequest.ImageDataURI != "" {
		t.Fatalf("image leaked into text fallback")
	}
}

func TestVisionRequestCarriesImage(t *testing.T) {
	o, _, _, vision, _ := newTestOrchestrator()

	_, err := o.RouteTask(context.Background(), "what layout is this", Options{
		Image: "data:image/png;base64,xyz",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vision.LastRequest.ImageDataURI != "data:image/png;base64,xyz" {
		t.Fatalf("image not forwarded: %+v", vision.LastRequest)
	}
}

func TestGenerateAssetFailsHardWhenUnconfigured(t *testing.T) {
	planner := provider.NewMockTextProvider("anthropic", "claude")
	coder := provider.NewMockTextProvider("google", "gemini")
	o := NewOrchestrator(WithPlanner(planner), WithCoder(coder))

	_, err := o.RouteTask(context.Background(), "generate a logo image", Options{})
	if !provider.IsUnconfigured(err) {
		t.Fatalf("expected unconfigured error, got %v", err)
	}
	if planner.Calls+coder.Calls != 0 {
		t.Fatalf("text providers contacted for asset task")
	}
}

func TestGenerateAssetEnvelope(t *testing.T) {
	o, _, _, _, images := newTestOrchestrator()
	images.Revised = "a refined logo prompt"

	result, err := o.RouteTask(context.Background(), "generate a logo image", Options{Size: "1024x1024"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Model != "dall-e-3" {
		t.Fatalf("unexpected model: %s", result.Model)
	}
	if result.Content != images.URL {
		t.Fatalf("content should be the asset URL, got %q", result.Content)
	}
	if result.Metadata["revised_prompt"] != "a refined logo prompt" {
		t.Fatalf("revised prompt missing: %+v", result.Metadata)
	}
	if images.LastRequest.Size != "1024x1024" {
		t.Fatalf("size not forwarded: %+v", images.LastRequest)
	}
}

func TestPlanAndCodeComposite(t *testing.T) {
	o, planner, coder, _, _ := newTestOrchestrator()
	planner.Default = "1. scaffold\n2. style"
	coder.Default = "<html>done</html>"

	result, err := o.RouteTask(context.Background(), "build a portfolio site", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Model != MultiModel {
		t.Fatalf("composite model = %s, want %s", result.Model, MultiModel)
	}
	if result.Plan == nil || result.Code == nil {
		t.Fatalf("composite result missing stages: %+v", result)
	}
	if result.Content != result.Code.Content {
		t.Fatalf("top-level content must mirror the code stage")
	}
	if planner.Calls != 1 || coder.Calls != 1 {
		t.Fatalf("calls: planner=%d coder=%d, want 1/1", planner.Calls, coder.Calls)
	}

	// Stage 2 must observe stage 1's output in the synthesized task.
	if !strings.Contains(coder.LastRequest.UserText, "Based on this plan: "+result.Plan.Content) {
		t.Fatalf("plan not threaded into code stage: %q", coder.LastRequest.UserText)
	}
	if !strings.Contains(coder.LastRequest.UserText, "\n\nOriginal task: build a portfolio site") {
		t.Fatalf("original task missing from code stage: %q", coder.LastRequest.UserText)
	}
}

func TestPlanAndCodeDegradesWhenPlannerDown(t *testing.T) {
	o, planner, coder, _, _ := newTestOrchestrator()
	planner.Err = provider.NewTransport("anthropic", errors.New("down"))

	result, err := o.RouteTask(context.Background(), "build a portfolio site", Options{})
	if err != nil {
		t.Fatalf("expected degraded composite, got error: %v", err)
	}
	if result.Model != MultiModel {
		t.Fatalf("composite model = %s", result.Model)
	}
	// Plan stage degraded to the coder but still produced a plan.
	if result.Plan == nil || result.Plan.Content == "" {
		t.Fatalf("expected a populated plan from the fallback")
	}
	if coder.Calls != 2 {
		t.Fatalf("coder calls = %d, want 2 (fallback plan + code)", coder.Calls)
	}
}

func TestPlanAndCodeFailsWhenCodeStageFails(t *testing.T) {
	o, _, coder, _, _ := newTestOrchestrator()
	coder.Err = provider.NewTransport("google", errors.New("down"))

	_, err := o.RouteTask(context.Background(), "build a portfolio site", Options{})
	if err == nil {
		t.Fatal("expected composite to fail when the code stage fails")
	}
}

func TestWithRoutingOverridesKeywords(t *testing.T) {
	coder := provider.NewMockTextProvider("google", "gemini")
	o := NewOrchestrator(
		WithCoder(coder),
		WithRouting(&config.RoutingConfig{
			PlanningKeywords:  []string{"blueprint"},
			QuickEditKeywords: []string{"nudge"},
			AssetKeywords:     []string{"sticker"},
		}),
	)

	if got := o.Resolve("make a sticker", Options{}); got != StrategyAsset {
		t.Fatalf("custom asset keyword ignored, got %s", got)
	}
	if got := o.Resolve("nudge the header", Options{}); got != StrategyCoding {
		t.Fatalf("custom quick-edit keyword ignored, got %s", got)
	}
	// The default planning keyword no longer applies.
	if got := o.Resolve("plan the site", Options{}); got != StrategyComposite {
		t.Fatalf("default keyword should not match custom config, got %s", got)
	}
}
