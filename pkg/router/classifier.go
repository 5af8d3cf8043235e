package router

import (
	"strings"

	"github.com/zen-systems/sitesmith/pkg/config"
)

// Classifier predicates are pure, case-insensitive substring checks over
// curated keyword lists. They are heuristics: false positives and negatives
// are acceptable and never raise errors. Matching is deliberately plain
// substring, not word-boundary, for parity with established routing
// behavior ("fixing" matches "fix").

// IsPlanningTask reports whether the task text suggests an architecture or
// design request. A nil cfg uses the default keyword list.
func IsPlanningTask(task string, cfg *config.RoutingConfig) bool {
	return containsAny(task, keywords(cfg).PlanningKeywords)
}

// IsQuickEditTask reports whether the task text suggests a small edit.
func IsQuickEditTask(task string, cfg *config.RoutingConfig) bool {
	return containsAny(task, keywords(cfg).QuickEditKeywords)
}

// HasAssetSignal reports whether the task text asks for an image or asset.
func HasAssetSignal(task string, cfg *config.RoutingConfig) bool {
	return containsAny(task, keywords(cfg).AssetKeywords)
}

func containsAny(task string, kws []string) bool {
	lower := strings.ToLower(task)
	for _, kw := range kws {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func keywords(cfg *config.RoutingConfig) *config.RoutingConfig {
	if cfg == nil {
		return config.DefaultRoutingConfig()
	}
	return cfg
}
