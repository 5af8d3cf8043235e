package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// RoutingConfig holds the keyword lists the task classifier matches against.
// The lists are heuristics; the precedence between strategies is fixed in
// the router and not configurable.
type RoutingConfig struct {
	PlanningKeywords  []string `yaml:"planning_keywords"`
	QuickEditKeywords []string `yaml:"quick_edit_keywords"`
	AssetKeywords     []string `yaml:"asset_keywords"`
}

// LoadRoutingConfig reads routing configuration from a YAML file.
func LoadRoutingConfig(path string) (*RoutingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg RoutingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyRoutingDefaults(&cfg)
	return &cfg, nil
}

// DefaultRoutingConfig returns the default keyword lists.
func DefaultRoutingConfig() *RoutingConfig {
	cfg := &RoutingConfig{}
	applyRoutingDefaults(cfg)
	return cfg
}

func applyRoutingDefaults(cfg *RoutingConfig) {
	if cfg == nil {
		return
	}
	if len(cfg.PlanningKeywords) == 0 {
		cfg.PlanningKeywords = []string{"plan", "design", "architecture", "structure", "strategy", "approach"}
	}
	if len(cfg.QuickEditKeywords) == 0 {
		cfg.QuickEditKeywords = []string{"change", "update", "modify", "edit", "fix", "adjust", "tweak"}
	}
	if len(cfg.AssetKeywords) == 0 {
		cfg.AssetKeywords = []string{"image", "asset"}
	}
}
