// Package pipeline orchestrates the complete discovery analysis: CNPJ
// enrichment, commercial insights, AI analysis and persistence.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/notecraft/discovery/internal/cnpj"
	"github.com/notecraft/discovery/internal/enrich"
	"github.com/notecraft/discovery/internal/llm"
	"github.com/notecraft/discovery/internal/model"
	"github.com/notecraft/discovery/internal/score"
	"github.com/notecraft/discovery/internal/store"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	IsConfigured() bool
	SaveSubmission(ctx context.Context, sub model.FormSubmission) (string, error)
	SaveAnalysis(ctx context.Context, analysis *model.DiscoveryAnalysis) error
}

// CompanyEnricher resolves a registry number into enriched company data.
type CompanyEnricher interface {
	Enrich(ctx context.Context, id string) model.CompanyData
}

// Pipeline runs a discovery submission end to end.
type Pipeline struct {
	enricher CompanyEnricher
	scorer   *score.Scorer
	analyzer *llm.Analyzer
	store    Store
	verbose  bool
}

// Result is the consolidated output of one submission run.
type Result struct {
	SubmissionID string                   `json:"submission_id"`
	Persisted    bool                     `json:"persisted"`
	Company      *model.CompanyData       `json:"company,omitempty"`
	Insights     *model.BusinessInsights  `json:"insights,omitempty"`
	Analysis     *model.DiscoveryAnalysis `json:"analysis"`
}

// New creates a pipeline from application configuration.
func New(cfg *model.Config) (*Pipeline, error) {
	analyzer, err := llm.NewAnalyzer(llm.ConfigFromModel(cfg.LLM), cfg.Output.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	return &Pipeline{
		enricher: enrich.New(cfg.Registry, cfg.Cache, cfg.Output.Verbose),
		scorer:   score.NewScorer(),
		analyzer: analyzer,
		store:    store.New(cfg.Storage),
		verbose:  cfg.Output.Verbose,
	}, nil
}

// Process runs one submission through enrichment, persistence and analysis.
// Enrichment and persistence failures degrade the result, they never abort
// the analysis.
func (p *Pipeline) Process(ctx context.Context, sub model.FormSubmission) (*Result, error) {
	result := &Result{}

	// 1. Enrich the client company when a registry number is present.
	if id := sub.ClientProfile.CNPJ; id != "" && cnpj.Valid(id) {
		company := p.enricher.Enrich(ctx, id)
		insights := p.scorer.Insights(company)
		result.Company = &company
		result.Insights = &insights
	} else if id != "" {
		p.logf("pipeline: ignoring invalid registry number %q", id)
	}

	// 2. Persist the submission, or assign a local id in degraded mode.
	if p.store != nil && p.store.IsConfigured() {
		id, err := p.store.SaveSubmission(ctx, sub)
		if err != nil {
			p.logf("pipeline: submission not persisted: %v", err)
			result.SubmissionID = store.LocalSubmissionID()
		} else {
			result.SubmissionID = id
			result.Persisted = true
		}
	} else {
		p.logf("pipeline: storage not configured, running in local mode")
		result.SubmissionID = store.LocalSubmissionID()
	}

	// 3. Run the three-stage AI analysis.
	analysis := p.analyzer.Analyze(ctx, sub, result.Company)
	analysis.SubmissionID = result.SubmissionID
	result.Analysis = analysis

	// 4. Persist the analysis for stored submissions.
	if result.Persisted {
		if err := p.store.SaveAnalysis(ctx, analysis); err != nil {
			p.logf("pipeline: analysis not persisted: %v", err)
		}
	}

	return result, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
