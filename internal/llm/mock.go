package llm

import "context"

// MockProvider returns the development fixtures that ship with the product.
// It backs the explicit "mock" provider choice and the per-stage fallback
// used when a live provider call fails.
type MockProvider struct{}

// NewMockProvider creates a new mock provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// IsAvailable always succeeds: fixtures need no configuration
func (p *MockProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// Complete returns the fixture document for the requested stage
func (p *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return &CompletionResponse{
		Content: MockContent(req.Stage),
		Model:   "mock",
	}, nil
}

// MockContent returns the fixture JSON document for an analysis stage
func MockContent(stage string) string {
	switch stage {
	case StageDiscoveryAnalyzer:
		return `{
			"overall_score": 75,
			"key_insights": [
				"Escritório com boa base técnica mas processos manuais",
				"Alta receptividade à automação por IA",
				"Oportunidade significativa em gestão de conhecimento"
			]
		}`

	case StageSectionScorer:
		return `{
			"score": 7,
			"insights": "Seção com pontuação boa mas com espaço para melhorias",
			"recommendations": "Implementar automação gradual",
			"priority": "medium"
		}`

	case StageAgentRecommender:
		return `{
			"primary_agents": [
				{
					"name": "Knowledge Vault Organizer",
					"priority": 1,
					"roi": 280,
					"justification": "Base de conhecimento dispersa precisa de organização"
				}
			]
		}`

	default:
		return `{}`
	}
}
