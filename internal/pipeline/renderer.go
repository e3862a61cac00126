package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/notecraft/discovery/internal/model"
)

// Renderer writes discovery results as JSON or Markdown reports.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full result as indented JSON.
func (r *Renderer) RenderJSON(result *Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(result *Result, path string) error {
	var b strings.Builder

	b.WriteString("# Relatório de Discovery\n\n")
	fmt.Fprintf(&b, "Submissão: `%s`\n\n", result.SubmissionID)

	if result.Company != nil {
		c := result.Company
		b.WriteString("## Empresa\n\n")
		fmt.Fprintf(&b, "- **Razão social:** %s\n", c.RazaoSocial)
		fmt.Fprintf(&b, "- **CNPJ:** %s\n", c.CNPJ)
		fmt.Fprintf(&b, "- **Porte:** %s\n", c.PorteOficial)
		fmt.Fprintf(&b, "- **Setor:** %s\n", c.CNAEPrincipal.Setor)
		fmt.Fprintf(&b, "- **Regime tributário:** %s\n", c.RegimeTributario)
		fmt.Fprintf(&b, "- **Faturamento estimado:** R$ %.2f\n", c.FaturamentoEstimado)
		fmt.Fprintf(&b, "- **Complexidade tributária:** %s\n", c.ComplexidadeTributaria)
		b.WriteString("\n")
	}

	if result.Insights != nil {
		i := result.Insights
		b.WriteString("## Insights comerciais\n\n")
		fmt.Fprintf(&b, "- **Potencial RCT:** %d/100\n", i.RCTPotentialScore)
		fmt.Fprintf(&b, "- **Perfil do cliente:** %s\n", i.ClientTier)
		fmt.Fprintf(&b, "- **Abordagem:** %s\n", i.SalesApproach)
		fmt.Fprintf(&b, "- **Precificação:** %s\n", i.PricingStrategy)
		if len(i.ComplianceAlerts) > 0 {
			b.WriteString("\n### Alertas\n\n")
			for _, alert := range i.ComplianceAlerts {
				fmt.Fprintf(&b, "- %s\n", alert)
			}
		}
		b.WriteString("\n")
	}

	if a := result.Analysis; a != nil {
		b.WriteString("## Análise de prontidão\n\n")
		fmt.Fprintf(&b, "- **Score geral:** %d/100 (%s)\n", a.OverallScore, a.ReadinessLevel)
		if a.Degraded {
			b.WriteString("- **Modo:** degradado (sem provedor de IA)\n")
		}
		if len(a.KeyInsights) > 0 {
			b.WriteString("\n### Principais insights\n\n")
			for _, insight := range a.KeyInsights {
				fmt.Fprintf(&b, "- %s\n", insight)
			}
		}
		if len(a.SectionInsights) > 0 {
			b.WriteString("\n### Seções\n\n")
			b.WriteString("| Seção | Score | Prioridade |\n")
			b.WriteString("|-------|-------|------------|\n")
			for _, s := range a.SectionInsights {
				fmt.Fprintf(&b, "| %s | %d/10 | %s |\n", s.SectionName, s.Score, s.Priority)
			}
		}
		if len(a.AgentRecommendations) > 0 {
			b.WriteString("\n### Agentes recomendados\n\n")
			for _, agent := range a.AgentRecommendations {
				fmt.Fprintf(&b, "%d. **%s** (ROI projetado %d%%) — %s\n", agent.Priority, agent.Name, agent.ROI, agent.Justification)
			}
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short result summary to stdout.
func (r *Renderer) RenderSummary(result *Result) {
	fmt.Printf("Submissão: %s\n", result.SubmissionID)
	if result.Company != nil {
		fmt.Printf("Empresa: %s (%s)\n", result.Company.RazaoSocial, result.Company.CNPJ)
	}
	if result.Insights != nil {
		fmt.Printf("Potencial RCT: %d/100\n", result.Insights.RCTPotentialScore)
	}
	if a := result.Analysis; a != nil {
		mode := "ao vivo"
		if a.Degraded {
			mode = "degradado"
		}
		fmt.Printf("Prontidão: %d/100 (%s, análise %s)\n", a.OverallScore, a.ReadinessLevel, mode)
	}
}

// RenderCompanyJSON writes a single enriched company with its insights.
func (r *Renderer) RenderCompanyJSON(company model.CompanyData, insights *model.BusinessInsights, path string) error {
	payload := struct {
		Company  model.CompanyData       `json:"company"`
		Insights *model.BusinessInsights `json:"insights,omitempty"`
	}{Company: company, Insights: insights}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal company: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}
