package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zen-systems/sitesmith/pkg/config"
	"github.com/zen-systems/sitesmith/pkg/provider"
	"github.com/zen-systems/sitesmith/pkg/repofetch"
	"github.com/zen-systems/sitesmith/pkg/router"
	"github.com/zen-systems/sitesmith/pkg/server"
	"github.com/zen-systems/sitesmith/pkg/store"
)

var routingFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "sitesmith",
		Short: "AI orchestration router for website generation",
		Long: `Sitesmith routes generation tasks to the most appropriate AI model:
	planning to a high-reasoning model, coding to a low-latency one, image
	analysis to a multimodal one, and asset generation to an image model,
	with automatic fallback when a provider is unavailable.`,
	}

	rootCmd.PersistentFlags().StringVar(&routingFile, "routing", "", "path to routing keyword config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(routesCmd())
	rootCmd.AddCommand(modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var addrFlag string
	var dbFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if addrFlag != "" {
				cfg.ListenAddr = addrFlag
			}
			if dbFlag != "" {
				cfg.DatabasePath = dbFlag
			}

			orch, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			srv := server.New(orch,
				server.WithStore(st),
				server.WithFetcher(repofetch.NewFetcher(cfg.GitHubToken)),
			)

			log.Printf("listening on %s (db: %s)", cfg.ListenAddr, cfg.DatabasePath)
			return http.ListenAndServe(cfg.ListenAddr, srv.Routes())
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&dbFlag, "db", "", "sqlite database path")

	return cmd
}

func askCmd() *cobra.Command {
	var taskType string
	var imageFlag string
	var contextFlag string
	var planningFlag bool
	var speedFlag bool
	var visionFlag bool
	var assetsFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "ask [task]",
		Short: "Route a task to the appropriate AI model",
		Long: `Routes the task through the orchestrator: planning requests go to the
	high-reasoning model, quick edits to the fast coder, image work to the
	multimodal or image-generation model, and everything else through the
	plan-and-code pipeline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			orch, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}

			opts := router.Options{
				TaskType:         router.TaskType(taskType),
				Image:            imageFlag,
				Context:          contextFlag,
				RequiresPlanning: planningFlag,
				RequiresSpeed:    speedFlag,
				RequiresVision:   visionFlag,
				RequiresAssets:   assetsFlag,
			}

			fmt.Fprintf(os.Stderr, "Routing to %s strategy\n", orch.Resolve(task, opts))

			result, err := orch.RouteTask(context.Background(), task, opts)
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Println(result.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskType, "type", "auto", "task type (auto, planning, coding, vision, asset)")
	cmd.Flags().StringVar(&imageFlag, "image", "", "image data URI or URL for vision analysis")
	cmd.Flags().StringVar(&contextFlag, "context", "", "additional context for code generation")
	cmd.Flags().BoolVar(&planningFlag, "planning", false, "force the planning strategy")
	cmd.Flags().BoolVar(&speedFlag, "speed", false, "force the fast-coding strategy")
	cmd.Flags().BoolVar(&visionFlag, "vision", false, "force the vision strategy")
	cmd.Flags().BoolVar(&assetsFlag, "assets", false, "force the asset-generation strategy")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print the full result envelope as JSON")

	return cmd
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Show classifier keywords and strategy precedence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			rc := cfg.RoutingConfig

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STRATEGY\tPROVIDER\tKEYWORDS")
			fmt.Fprintf(w, "asset\tdall-e\t%s\n", strings.Join(rc.AssetKeywords, ", "))
			fmt.Fprintf(w, "vision\topenai\t(image attached)\n")
			fmt.Fprintf(w, "planning\tanthropic\t%s\n", strings.Join(rc.PlanningKeywords, ", "))
			fmt.Fprintf(w, "coding\tgoogle\t%s\n", strings.Join(rc.QuickEditKeywords, ", "))
			fmt.Fprintf(w, "composite\tanthropic+google\t(default)\n")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Strategies are checked top to bottom; the first match wins.")
			return w.Flush()
		},
	}
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List providers, their models, and credential status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			rows := []struct {
				provider string
				model    string
				role     string
			}{
				{"anthropic", provider.DefaultClaudeModel, "planning"},
				{"google", provider.DefaultGeminiModel, "coding"},
				{"openai", provider.DefaultVisionModel, "vision"},
				{"dall-e", provider.DefaultImageModel, "assets"},
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODEL\tROLE\tSTATUS")
			for _, row := range rows {
				status := "no key"
				if cfg.HasProvider(row.provider) {
					status = "ready"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.provider, row.model, row.role, status)
			}
			return w.Flush()
		},
	}
}

func loadConfig() (*config.Config, error) {
	if routingFile != "" {
		return config.LoadWithRoutingFile(routingFile)
	}
	return config.Load()
}

// buildOrchestrator constructs providers for every configured credential and
// injects them into the router. Missing keys leave the matching capability
// nil; the router degrades or fails per its fallback policy.
func buildOrchestrator(cfg *config.Config) (*router.Orchestrator, error) {
	opts := []router.Option{router.WithRouting(cfg.RoutingConfig)}

	if cfg.AnthropicAPIKey != "" {
		p, err := provider.NewAnthropicProvider(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic provider: %w", err)
		}
		opts = append(opts, router.WithPlanner(p))
	}

	if cfg.GoogleAPIKey != "" {
		p, err := provider.NewGeminiProvider(cfg.GoogleAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create google provider: %w", err)
		}
		opts = append(opts, router.WithCoder(p))
	}

	if cfg.OpenAIAPIKey != "" {
		p, err := provider.NewOpenAIProvider(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai provider: %w", err)
		}
		opts = append(opts, router.WithVision(p))

		img, err := provider.NewDallEProvider(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create dall-e provider: %w", err)
		}
		opts = append(opts, router.WithImages(img))
	}

	return router.NewOrchestrator(opts...), nil
}
