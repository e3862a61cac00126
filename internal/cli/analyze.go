package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/notecraft/discovery/internal/model"
	"github.com/notecraft/discovery/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	analyzeJSON    string
	analyzeMD      string
	analyzeTimeout time.Duration
	llmProvider    string
	llmModel       string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <submission.json>",
	Short: "Run the full discovery analysis over a questionnaire submission",
	Long: `Analyze reads a discovery questionnaire submission, enriches the
client company, derives commercial insights, runs the three-stage AI
analysis (overall readiness, per-section scores, agent recommendations)
and persists everything when storage is configured.

Without an LLM provider the analysis runs on built-in fixtures and the
result is flagged as degraded. Without storage the run is local.

Example:
  discovery analyze submission.json
  discovery analyze submission.json --llm-provider openai --md report.md
  discovery analyze submission.json --json result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&analyzeMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 5*time.Minute, "total analysis timeout")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, mock; empty disables)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read submission: %w", err)
	}

	var sub model.FormSubmission
	if err := json.Unmarshal(data, &sub); err != nil {
		return fmt.Errorf("decode submission: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	// Build configuration from flags and environment
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		}
	}

	// Storage comes from the environment only, never from flags.
	cfg.Storage.URL = os.Getenv("SUPABASE_URL")
	cfg.Storage.APIKey = os.Getenv("SUPABASE_KEY")

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := p.Process(ctx, sub)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer()

	if analyzeJSON != "" {
		if err := renderer.RenderJSON(result, analyzeJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", analyzeJSON)
		}
	}

	if analyzeMD != "" {
		if err := renderer.RenderMarkdown(result, analyzeMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", analyzeMD)
		}
	}

	renderer.RenderSummary(result)

	return nil
}
