package enrich

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/notecraft/discovery/internal/cnpj"
	"github.com/notecraft/discovery/internal/model"
)

// highPotentialPrefixes are activity prefixes with above-average tax-recovery
// potential (manufacturing, trade, transport, tech, real estate).
var highPotentialPrefixes = map[string]bool{
	"10": true, "25": true, "46": true, "47": true, "49": true, "62": true, "68": true,
}

// naturezaJuridicaLabels maps the most common legal-nature codes
var naturezaJuridicaLabels = map[int]string{
	206: "Sociedade Empresária Limitada",
	213: "Empresário Individual",
	230: "Sociedade Anônima Fechada",
	231: "Sociedade Anônima Aberta",
	325: "Sociedade Limitada Unipessoal",
}

// buildCompanyData transforms a raw registry payload into the enriched record
func buildCompanyData(raw *model.RegistryResponse, clean, source string) model.CompanyData {
	cnaeCode := strconv.Itoa(raw.CNAEFiscal)
	porte := determinePorte(raw)
	revenue, revenueLabel := estimateRevenue(porte, raw.CNAEFiscal)

	razao := raw.RazaoSocial
	if razao == "" {
		razao = "Não informado"
	}
	fantasia := raw.NomeFantasia
	if fantasia == "" {
		fantasia = razao
	}

	secundarios := raw.CNAEsSecundarios
	if secundarios == nil {
		secundarios = []model.SecondaryCNAE{}
	}

	data := model.CompanyData{
		CNPJ:          cnpj.Format(clean),
		RazaoSocial:   razao,
		NomeFantasia:  fantasia,
		SituacaoAtiva: raw.SituacaoCadastral == 2, // 2 = ATIVA
		DataFundacao:  raw.DataInicioAtividade,

		EnderecoCompleto: buildAddress(raw),
		Cidade:           raw.Municipio,
		Estado:           raw.UF,
		CEP:              raw.CEP,

		CNAEPrincipal: model.CNAE{
			Codigo:    cnaeCode,
			Descricao: raw.CNAEFiscalDescricao,
			Setor:     cnpj.SectorFromCNAE(cnaeCode),
		},
		CNAEsSecundarios: secundarios,
		NaturezaJuridica: naturezaJuridica(raw.CodigoNaturezaJuridica),

		PorteOficial:     porte,
		CapitalSocial:    raw.CapitalSocial,
		RegimeTributario: determineRegime(raw),

		FuncionariosEstimado: estimateEmployees(porte),
		FaturamentoEstimado:  revenue,
		FaturamentoFaixa:     revenueLabel,

		ElegivelRCT:          rctEligible(porte, raw.CNAEFiscal),
		ElegivelPlanejamento: porte != model.PorteMEI,
		PotencialRecuperacao: recoveryPotential(revenue, porte),

		DataConsulta:   time.Now().UTC(),
		FonteDados:     []string{"Receita Federal", source},
		Confiabilidade: 95,
	}

	// Complexity needs the assembled record
	data.ComplexidadeTributaria = EstimateComplexity(data)

	return data
}

// determinePorte resolves the size tier from the explicit porte code, the MEI
// flag, or declared-capital thresholds as a last resort.
func determinePorte(raw *model.RegistryResponse) model.Porte {
	if raw.OpcaoPeloMEI {
		return model.PorteMEI
	}
	switch raw.Porte {
	case "01":
		return model.PorteME
	case "03":
		return model.PorteEPP
	case "05":
		return model.PorteGrande
	}

	switch {
	case raw.CapitalSocial <= 81_000:
		return model.PorteMEI
	case raw.CapitalSocial <= 360_000:
		return model.PorteME
	case raw.CapitalSocial <= 4_800_000:
		return model.PorteEPP
	default:
		return model.PorteGrande
	}
}

// estimateRevenue takes the midpoint of the tier's revenue band and applies a
// sector multiplier from the activity-code prefix.
func estimateRevenue(porte model.Porte, cnaeFiscal int) (float64, string) {
	band, ok := model.RevenueRanges[porte]
	if !ok {
		band = model.RevenueRanges[model.PorteME]
	}

	multiplier := 1.0
	switch prefix := cnaePrefix(cnaeFiscal); prefix {
	case "69", "70", "71", "72": // professional services
		multiplier = 1.5
	case "46", "47": // trade
		multiplier = 1.2
	case "10", "25": // manufacturing
		multiplier = 1.8
	}

	value := math.Round((band.Min + band.Max) / 2 * multiplier)
	return value, band.Label
}

// estimateEmployees takes the midpoint of the tier's headcount band
func estimateEmployees(porte model.Porte) int {
	band, ok := model.EmployeeRanges[porte]
	if !ok {
		band = model.EmployeeRanges[model.PorteME]
	}
	return int(math.Round(float64(band.Min+band.Max) / 2))
}

// determineRegime infers the probable tax regime
func determineRegime(raw *model.RegistryResponse) model.Regime {
	if raw.OpcaoPeloSimples || raw.OpcaoPeloMEI {
		return model.RegimeSimples
	}
	if raw.CapitalSocial > 78_000_000 {
		return model.RegimeReal // mandatory above R$ 78M
	}
	switch raw.Porte {
	case "05":
		return model.RegimeReal
	case "03":
		return model.RegimePresumido
	}
	return model.RegimeDesconhecido
}

// rctEligible reports whether the company is worth a tax-recovery review
func rctEligible(porte model.Porte, cnaeFiscal int) bool {
	if porte == model.PorteMEI {
		return false
	}
	return porte == model.PorteGrande || highPotentialPrefixes[cnaePrefix(cnaeFiscal)]
}

// EstimateComplexity accumulates a score from size, secondary activities,
// capital and regime, then maps it to the three-level complexity label.
func EstimateComplexity(data model.CompanyData) model.Complexity {
	score := 0

	switch data.PorteOficial {
	case model.PorteGrande:
		score += 3
	case model.PorteEPP:
		score += 2
	default:
		score++
	}

	if n := len(data.CNAEsSecundarios); n > 3 {
		score += 3
	} else {
		score += n
	}

	if data.CapitalSocial > 1_000_000 {
		score += 2
	} else if data.CapitalSocial > 100_000 {
		score++
	}

	switch data.RegimeTributario {
	case model.RegimeReal:
		score += 3
	case model.RegimePresumido:
		score += 2
	}

	switch {
	case score >= 8:
		return model.ComplexityAlta
	case score >= 5:
		return model.ComplexityMedia
	default:
		return model.ComplexityBaixa
	}
}

// recoveryPotential estimates the recoverable amount as a tier-keyed
// percentage of the revenue estimate.
func recoveryPotential(revenue float64, porte model.Porte) float64 {
	percentage := 0.02
	switch porte {
	case model.PorteMEI:
		percentage = 0.01
	case model.PorteME:
		percentage = 0.02
	case model.PorteEPP:
		percentage = 0.03
	case model.PorteGrande:
		percentage = 0.05
	}
	return math.Round(revenue * percentage)
}

// buildAddress joins the non-empty address parts
func buildAddress(raw *model.RegistryResponse) string {
	parts := []string{
		raw.DescricaoTipoLogradouro,
		raw.Logradouro,
		raw.Numero,
		raw.Complemento,
		raw.Bairro,
		raw.Municipio,
		raw.UF,
	}

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func naturezaJuridica(code int) string {
	if label, ok := naturezaJuridicaLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Natureza %d", code)
}

func cnaePrefix(cnaeFiscal int) string {
	code := strconv.Itoa(cnaeFiscal)
	if len(code) < 2 {
		return code
	}
	return code[:2]
}
