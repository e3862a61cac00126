package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/notecraft/discovery/internal/model"
)

// Analysis stage labels. Each stage carries its own prompt and its own
// expected JSON payload shape.
const (
	StageDiscoveryAnalyzer = "discovery-analyzer"
	StageSectionScorer     = "section-scorer"
	StageAgentRecommender  = "agent-recommender"
)

// systemRole is the consultant persona shared by every stage.
const systemRole = `Você é um consultor sênior especializado em automação tributária e IA para escritórios contábeis brasileiros.
Analisa respostas de questionários de discovery para avaliar a maturidade de automação do escritório.
Responda SEMPRE com um único documento JSON válido, sem texto fora do JSON, sem markdown e sem comentários.`

// buildDiscoveryPrompt asks for the overall readiness assessment.
func buildDiscoveryPrompt(sub model.FormSubmission, company *model.CompanyData) string {
	var b strings.Builder

	b.WriteString("Analise o questionário de discovery abaixo e avalie a prontidão do escritório para automação com IA.\n\n")
	writeClientContext(&b, sub, company)
	writeResponses(&b, sub.Responses)

	b.WriteString(`
Responda com este formato JSON:
{
  "overall_score": <número 0-100>,
  "key_insights": ["<insight 1>", "<insight 2>", "<insight 3>"]
}`)

	return b.String()
}

// buildSectionPrompt asks for the score of one questionnaire section.
func buildSectionPrompt(sectionName string, responses []model.QuestionResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Avalie a seção %q do questionário de discovery.\n\n", sectionName)
	writeResponses(&b, responses)

	b.WriteString(`
Responda com este formato JSON:
{
  "score": <número 0-10>,
  "insights": "<análise da seção>",
  "recommendations": "<recomendações práticas>",
  "priority": "<critical|high|medium|low>"
}`)

	return b.String()
}

// buildAgentPrompt asks for the ranked automation agent recommendations.
func buildAgentPrompt(sub model.FormSubmission, company *model.CompanyData) string {
	var b strings.Builder

	b.WriteString("Com base no questionário abaixo, recomende os agentes de automação mais adequados para este escritório, em ordem de prioridade, com ROI projetado em percentual.\n\n")
	writeClientContext(&b, sub, company)
	writeResponses(&b, sub.Responses)

	b.WriteString(`
Responda com este formato JSON:
{
  "primary_agents": [
    {"name": "<nome do agente>", "priority": <1..n>, "roi": <percentual>, "justification": "<por quê>"}
  ]
}`)

	return b.String()
}

func writeClientContext(b *strings.Builder, sub model.FormSubmission, company *model.CompanyData) {
	fmt.Fprintf(b, "Cliente: %s (%s)\n", sub.ClientProfile.Name, sub.ClientProfile.Company)
	if sub.ClientProfile.Position != "" {
		fmt.Fprintf(b, "Cargo: %s\n", sub.ClientProfile.Position)
	}
	if company != nil {
		fmt.Fprintf(b, "Empresa: %s, porte %s, setor %s, regime %s\n",
			company.RazaoSocial, company.PorteOficial, company.CNAEPrincipal.Setor, company.RegimeTributario)
	}
	fmt.Fprintf(b, "Total de respostas: %d\n\n", len(sub.Responses))
}

func writeResponses(b *strings.Builder, responses []model.QuestionResponse) {
	b.WriteString("Respostas:\n")
	for _, r := range responses {
		value, err := json.Marshal(r.ResponseValue)
		if err != nil {
			value = []byte(`"?"`)
		}
		fmt.Fprintf(b, "- [%s] %s: %s", r.SectionName, r.QuestionText, value)
		if r.Observations != "" {
			fmt.Fprintf(b, " (obs: %s)", r.Observations)
		}
		b.WriteString("\n")
	}
}
