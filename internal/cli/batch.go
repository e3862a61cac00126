package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/notecraft/discovery/internal/cnpj"
	"github.com/notecraft/discovery/internal/enrich"
	"github.com/notecraft/discovery/internal/model"
	"github.com/notecraft/discovery/internal/score"
	"github.com/notecraft/discovery/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Enrich a list of CNPJs from a file in parallel",
	Long: `Batch enriches a lead list concurrently:
- Read CNPJs from input file (one per line, # comments allowed)
- Enrich in parallel with a configurable worker count
- Registry calls are rate limited per host
- Write one JSON record per company

Every CNPJ resolves to a record: invalid numbers and registry outages
produce minimal records with zero confidence instead of failures.

Example:
  discovery batch leads.txt
  discovery batch leads.txt --concurrency 8 --output-dir ./companies`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./discovery-companies", "output directory for company records")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh lookups)")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persistent cache directory (optional)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n\n", outputDir)

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	service := enrich.New(cfg.Registry, cfg.Cache, verbose)
	scorer := score.NewScorer()
	processor := worker.NewBatchEnricher(service, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	resolved := 0
	for i, result := range results {
		if result.Data.Confiabilidade > 0 {
			resolved++
		}

		insights := scorer.Insights(result.Data)
		payload := struct {
			Company  model.CompanyData      `json:"company"`
			Insights model.BusinessInsights `json:"insights"`
		}{Company: result.Data, Insights: insights}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", result.CNPJ, err)
		}

		// Raw input lines may be punctuated; file names use digits only.
		name := cnpj.Normalize(result.CNPJ)
		if name == "" {
			name = fmt.Sprintf("invalid-%d", i)
		}
		path := filepath.Join(outputDir, name+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (confidence %d/100)\n", result.CNPJ, result.Data.Confiabilidade)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Total:    %d CNPJs\n", len(results))
	fmt.Fprintf(os.Stderr, "Resolved: %d\n", resolved)
	fmt.Fprintf(os.Stderr, "Minimal:  %d\n", len(results)-resolved)
	fmt.Fprintf(os.Stderr, "Output:   %s\n", outputDir)

	return nil
}
