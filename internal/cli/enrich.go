package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/notecraft/discovery/internal/cnpj"
	"github.com/notecraft/discovery/internal/enrich"
	"github.com/notecraft/discovery/internal/model"
	"github.com/notecraft/discovery/internal/pipeline"
	"github.com/notecraft/discovery/internal/score"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	withInsights bool
	timeout      time.Duration
	retryDelay   time.Duration
	noCache      bool
	cacheDir     string
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich <cnpj>",
	Short: "Enrich a single CNPJ with registry data and derived estimates",
	Long: `Enrich validates a CNPJ, queries the configured registry APIs with
automatic fallback, and derives business estimates:
- Company size, tax regime, revenue and headcount estimates
- Tax recovery (RCT) eligibility and complexity
- Optional commercial insights for the sales team

Example:
  discovery enrich 11222333000181
  discovery enrich 11.222.333/0001-81 --insights
  discovery enrich 11222333000181 --json company.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	// Output flags
	enrichCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	enrichCmd.Flags().BoolVar(&withInsights, "insights", false, "include commercial insights")

	// Registry flags
	enrichCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout per registry attempt")
	enrichCmd.Flags().DurationVar(&retryDelay, "retry-delay", 2*time.Second, "pause between registry attempts")
	enrichCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh lookup)")
	enrichCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persistent cache directory (optional)")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	id := args[0]

	if !cnpj.Valid(id) {
		return fmt.Errorf("invalid CNPJ: %s", id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Registry.Timeout = timeout
	cfg.Registry.RetryDelay = retryDelay
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Output.Verbose = verbose

	if verbose {
		fmt.Fprintf(os.Stderr, "Enriching: %s\n", cnpj.Format(id))
		fmt.Fprintf(os.Stderr, "Cache: %v\n\n", cfg.Cache.Enabled)
	}

	service := enrich.New(cfg.Registry, cfg.Cache, verbose)
	company := service.Enrich(ctx, id)

	var insights *model.BusinessInsights
	if withInsights {
		result := score.NewScorer().Insights(company)
		insights = &result
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Resolved %s (confidence %d/100)\n\n", company.RazaoSocial, company.Confiabilidade)
	}

	if outJSON != "" {
		renderer := pipeline.NewRenderer()
		if err := renderer.RenderCompanyJSON(company, insights, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Printf("✓ Wrote JSON: %s\n", outJSON)
		return nil
	}

	payload := struct {
		Company  model.CompanyData       `json:"company"`
		Insights *model.BusinessInsights `json:"insights,omitempty"`
	}{Company: company, Insights: insights}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
