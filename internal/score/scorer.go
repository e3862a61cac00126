// Package score derives commercial insights from enriched company records.
package score

import (
	"strings"

	"github.com/notecraft/discovery/internal/model"
)

// Scorer maps enriched company records to strategic insights.
// All derivations are total and side-effect free.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Insights derives the full strategic-insight bundle for a company
func (s *Scorer) Insights(data model.CompanyData) model.BusinessInsights {
	rctScore := s.rctPotential(data)

	return model.BusinessInsights{
		RCTPotentialScore:       rctScore,
		PlanningComplexityLevel: complexityLevel(data.ComplexidadeTributaria),
		EstimatedRecoveryValue:  data.PotencialRecuperacao,

		ClientTier:      s.clientTier(data),
		SalesApproach:   s.salesApproach(data),
		PricingStrategy: s.pricingStrategy(data),

		ComplianceAlerts: s.complianceAlerts(data),
		GrowthIndicators: s.growthIndicators(data),
		RiskFactors:      s.riskFactors(data),

		SectorBenchmark: model.SectorBenchmark{
			AvgEmployees:    model.EmployeeRanges[data.PorteOficial].Max,
			AvgRevenue:      data.FaturamentoEstimado,
			TypicalServices: typicalServices(data.CNAEPrincipal.Setor),
			SuccessCases:    10 + rctScore/2,
		},
	}
}

// rctPotential computes the 0-100 recovery-opportunity score:
// size tier up to 40, sector up to 30, tax regime up to 20, active status 10.
func (s *Scorer) rctPotential(data model.CompanyData) int {
	score := 0

	switch data.PorteOficial {
	case model.PorteGrande:
		score += 40
	case model.PorteEPP:
		score += 30
	case model.PorteME:
		score += 15
	case model.PorteMEI:
		score += 5
	}

	setor := data.CNAEPrincipal.Setor
	switch {
	case strings.Contains(setor, "Fabricação"),
		strings.Contains(setor, "Comércio"),
		strings.Contains(setor, "Transporte"):
		score += 30
	case strings.Contains(setor, "Serviços"):
		score += 20
	default:
		score += 10
	}

	switch data.RegimeTributario {
	case model.RegimeReal:
		score += 20
	case model.RegimePresumido:
		score += 15
	case model.RegimeSimples:
		score += 5
	}

	if data.SituacaoAtiva {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func (s *Scorer) clientTier(data model.CompanyData) model.ClientTier {
	if data.PorteOficial == model.PorteGrande && data.FaturamentoEstimado > 10_000_000 {
		return model.TierPremium
	}
	if data.PorteOficial == model.PorteEPP || data.FaturamentoEstimado > 1_000_000 {
		return model.TierStandard
	}
	return model.TierBasic
}

func (s *Scorer) salesApproach(data model.CompanyData) model.SalesApproach {
	if data.ComplexidadeTributaria == model.ComplexityAlta {
		return model.ApproachConsultative
	}
	if data.PorteOficial == model.PorteGrande {
		return model.ApproachPremium
	}
	return model.ApproachVolume
}

func (s *Scorer) pricingStrategy(data model.CompanyData) model.PricingStrategy {
	if data.PotencialRecuperacao > 500_000 {
		return model.PricingValueBased
	}
	if data.PorteOficial == model.PorteME {
		return model.PricingCompetitive
	}
	return model.PricingCostPlus
}

func (s *Scorer) complianceAlerts(data model.CompanyData) []string {
	var alerts []string

	if !data.SituacaoAtiva {
		alerts = append(alerts, "Empresa com situação cadastral irregular")
	}
	if data.RegimeTributario == model.RegimeDesconhecido {
		alerts = append(alerts, "Regime tributário não identificado - verificar situação")
	}
	if data.Confiabilidade < 50 {
		alerts = append(alerts, "Dados com baixa confiabilidade - validar informações")
	}

	return alerts
}

func (s *Scorer) growthIndicators(data model.CompanyData) []string {
	var indicators []string

	if data.PorteOficial == model.PorteEPP || data.PorteOficial == model.PorteGrande {
		indicators = append(indicators, "Empresa de médio/grande porte - potencial de crescimento")
	}
	if data.ElegivelRCT {
		indicators = append(indicators, "Elegível para RCT - oportunidade de recuperação")
	}
	if data.ComplexidadeTributaria == model.ComplexityAlta {
		indicators = append(indicators, "Alta complexidade tributária - potencial consultivo")
	}

	return indicators
}

func (s *Scorer) riskFactors(data model.CompanyData) []string {
	var risks []string

	if !data.SituacaoAtiva {
		risks = append(risks, "Situação cadastral irregular")
	}
	if data.FaturamentoEstimado < 100_000 {
		risks = append(risks, "Baixo faturamento estimado")
	}
	if data.Confiabilidade < 70 {
		risks = append(risks, "Dados com confiabilidade limitada")
	}

	return risks
}

func complexityLevel(c model.Complexity) model.InsightLevel {
	switch c {
	case model.ComplexityAlta:
		return model.LevelHigh
	case model.ComplexityMedia:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

// typicalServices lists the service lines usually sold into a sector
func typicalServices(setor string) []string {
	serviceMap := []struct {
		keyword  string
		services []string
	}{
		{"Atividades jurídicas", []string{"RCT", "Planejamento Tributário", "Consultoria"}},
		{"Fabricação", []string{"RCT", "Auditoria Tributária", "Planejamento"}},
		{"Comércio", []string{"RCT", "Compliance", "Auditoria"}},
		{"Serviços", []string{"Planejamento", "Consultoria", "Compliance"}},
	}

	for _, entry := range serviceMap {
		if strings.Contains(setor, entry.keyword) {
			return entry.services
		}
	}

	return []string{"RCT", "Planejamento", "Consultoria"}
}
