package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/notecraft/discovery/internal/model"
)

// Enricher defines the interface for enriching a single identifier
type Enricher interface {
	Enrich(ctx context.Context, cnpj string) model.CompanyData
}

// EnrichResult pairs an input identifier with its enriched record.
// Enrichment itself never fails; records with Confiabilidade 0 mark
// identifiers that were invalid or could not be resolved.
type EnrichResult struct {
	CNPJ string
	Data model.CompanyData
}

// BatchEnricher enriches lists of identifiers concurrently
type BatchEnricher struct {
	enricher    Enricher
	concurrency int
}

// NewBatchEnricher creates a new batch enricher
func NewBatchEnricher(enricher Enricher, concurrency int) *BatchEnricher {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchEnricher{
		enricher:    enricher,
		concurrency: concurrency,
	}
}

// Process enriches every identifier using a fixed pool of workers.
// Results preserve input order.
func (b *BatchEnricher) Process(ctx context.Context, cnpjs []string) []EnrichResult {
	results := make([]EnrichResult, len(cnpjs))
	if len(cnpjs) == 0 {
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = EnrichResult{
					CNPJ: cnpjs[i],
					Data: b.enricher.Enrich(ctx, cnpjs[i]),
				}
			}
		}()
	}

	for i := range cnpjs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// ProcessFile reads identifiers from a file and enriches them concurrently
func (b *BatchEnricher) ProcessFile(ctx context.Context, filePath string) ([]EnrichResult, error) {
	cnpjs, err := ReadCNPJsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read identifiers: %w", err)
	}

	return b.Process(ctx, cnpjs), nil
}

// ReadCNPJsFromFile reads identifiers from a file (one per line)
func ReadCNPJsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var cnpjs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			cnpjs = append(cnpjs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return cnpjs, nil
}
