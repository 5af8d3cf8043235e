package prompt

import (
	"strings"
	"testing"
)

func TestBuildPlanningEmbedsTask(t *testing.T) {
	p := BuildPlanning("build a blog")
	if !strings.Contains(p, "Your task: build a blog") {
		t.Fatalf("task missing from planning prompt: %q", p)
	}
	if !strings.Contains(p, "Implementation steps") {
		t.Fatal("planning checklist missing")
	}
}

func TestBuildPlanningIsPure(t *testing.T) {
	if BuildPlanning("x") != BuildPlanning("x") {
		t.Fatal("identical input produced different prompts")
	}
}

func TestBuildCodingOptionalSections(t *testing.T) {
	bare := BuildCoding("add a navbar", "", "")
	if strings.Contains(bare, "Context:") {
		t.Fatal("context section present without context")
	}

	full := BuildCoding("add a navbar", "existing React app", "respond as JSON")
	if !strings.Contains(full, "Task: add a navbar") {
		t.Fatal("task missing")
	}
	if !strings.Contains(full, "Context: existing React app") {
		t.Fatal("context missing")
	}
	if !strings.HasSuffix(full, "respond as JSON") {
		t.Fatal("system prompt should be appended last")
	}
}

func TestBuildVisionEmbedsTask(t *testing.T) {
	p := BuildVision("match this screenshot")
	if !strings.Contains(p, "Task: match this screenshot") {
		t.Fatalf("task missing from vision prompt: %q", p)
	}
}

func TestBuildAssetDefaultsType(t *testing.T) {
	p := BuildAsset("company logo", "")
	if !strings.Contains(p, "professional image for a web application") {
		t.Fatalf("default asset type not applied: %q", p)
	}

	p = BuildAsset("company logo", "icon")
	if !strings.Contains(p, "professional icon for a web application") {
		t.Fatalf("explicit asset type not applied: %q", p)
	}
	if !strings.Contains(p, "Requirements: company logo") {
		t.Fatal("requirements missing")
	}
}
