package enrich

import (
	"testing"

	"github.com/notecraft/discovery/internal/model"
)

func TestDeterminePorte(t *testing.T) {
	cases := []struct {
		name string
		raw  model.RegistryResponse
		want model.Porte
	}{
		{"mei flag wins", model.RegistryResponse{OpcaoPeloMEI: true, Porte: "05"}, model.PorteMEI},
		{"porte code 01", model.RegistryResponse{Porte: "01"}, model.PorteME},
		{"porte code 03", model.RegistryResponse{Porte: "03"}, model.PorteEPP},
		{"porte code 05", model.RegistryResponse{Porte: "05"}, model.PorteGrande},
		{"capital fallback mei", model.RegistryResponse{CapitalSocial: 50_000}, model.PorteMEI},
		{"capital fallback me", model.RegistryResponse{CapitalSocial: 200_000}, model.PorteME},
		{"capital fallback epp", model.RegistryResponse{CapitalSocial: 2_000_000}, model.PorteEPP},
		{"capital fallback grande", model.RegistryResponse{CapitalSocial: 10_000_000}, model.PorteGrande},
	}

	for _, tc := range cases {
		if got := determinePorte(&tc.raw); got != tc.want {
			t.Errorf("%s: determinePorte = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestEstimateRevenue_SectorMultipliers(t *testing.T) {
	cases := []struct {
		name  string
		porte model.Porte
		cnae  int
		want  float64
	}{
		{"epp manufacturing x1.8", model.PorteEPP, 2512800, 4_644_000},
		{"epp professional services x1.5", model.PorteEPP, 6920601, 3_870_000},
		{"epp retail x1.2", model.PorteEPP, 4711301, 3_096_000},
		{"epp no multiplier", model.PorteEPP, 8599604, 2_580_000},
		{"me manufacturing", model.PorteME, 1011201, 396_900},
	}

	for _, tc := range cases {
		got, label := estimateRevenue(tc.porte, tc.cnae)
		if got != tc.want {
			t.Errorf("%s: estimateRevenue = %v, want %v", tc.name, got, tc.want)
		}
		if label == "" {
			t.Errorf("%s: empty revenue label", tc.name)
		}
	}
}

func TestEstimateEmployees(t *testing.T) {
	cases := []struct {
		porte model.Porte
		want  int
	}{
		{model.PorteMEI, 1},   // (0+1)/2 rounded
		{model.PorteME, 10},   // (1+19)/2
		{model.PorteEPP, 60},  // (20+99)/2 rounded
		{model.PorteGrande, 500050},
	}

	for _, tc := range cases {
		if got := estimateEmployees(tc.porte); got != tc.want {
			t.Errorf("estimateEmployees(%s) = %d, want %d", tc.porte, got, tc.want)
		}
	}
}

func TestDetermineRegime(t *testing.T) {
	cases := []struct {
		name string
		raw  model.RegistryResponse
		want model.Regime
	}{
		{"simples flag", model.RegistryResponse{OpcaoPeloSimples: true}, model.RegimeSimples},
		{"mei flag", model.RegistryResponse{OpcaoPeloMEI: true}, model.RegimeSimples},
		{"capital above 78M", model.RegistryResponse{CapitalSocial: 100_000_000}, model.RegimeReal},
		{"porte 05", model.RegistryResponse{Porte: "05"}, model.RegimeReal},
		{"porte 03", model.RegistryResponse{Porte: "03"}, model.RegimePresumido},
		{"unknown", model.RegistryResponse{Porte: "01"}, model.RegimeDesconhecido},
	}

	for _, tc := range cases {
		if got := determineRegime(&tc.raw); got != tc.want {
			t.Errorf("%s: determineRegime = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRCTEligible(t *testing.T) {
	cases := []struct {
		name  string
		porte model.Porte
		cnae  int
		want  bool
	}{
		{"mei never eligible", model.PorteMEI, 2512800, false},
		{"grande always eligible", model.PorteGrande, 8599604, true},
		{"me with high-potential prefix", model.PorteME, 4711301, true},
		{"me outside high-potential set", model.PorteME, 8599604, false},
	}

	for _, tc := range cases {
		if got := rctEligible(tc.porte, tc.cnae); got != tc.want {
			t.Errorf("%s: rctEligible = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEstimateComplexity(t *testing.T) {
	// Large tier (3) + 4 secondaries capped at 3 + capital bonus (2) +
	// regime bonus (3) = 11 >= 8
	high := model.CompanyData{
		PorteOficial: model.PorteGrande,
		CNAEsSecundarios: []model.SecondaryCNAE{
			{Codigo: 1}, {Codigo: 2}, {Codigo: 3}, {Codigo: 4},
		},
		CapitalSocial:    2_000_000,
		RegimeTributario: model.RegimeReal,
	}
	if got := EstimateComplexity(high); got != model.ComplexityAlta {
		t.Errorf("EstimateComplexity(high) = %s, want ALTA", got)
	}

	low := model.CompanyData{
		PorteOficial:     model.PorteME,
		RegimeTributario: model.RegimeSimples,
	}
	if got := EstimateComplexity(low); got != model.ComplexityBaixa {
		t.Errorf("EstimateComplexity(low) = %s, want BAIXA", got)
	}

	// EPP (2) + 1 secondary + capital > 100k (1) + presumido (2) = 6
	medium := model.CompanyData{
		PorteOficial:     model.PorteEPP,
		CNAEsSecundarios: []model.SecondaryCNAE{{Codigo: 1}},
		CapitalSocial:    500_000,
		RegimeTributario: model.RegimePresumido,
	}
	if got := EstimateComplexity(medium); got != model.ComplexityMedia {
		t.Errorf("EstimateComplexity(medium) = %s, want MEDIA", got)
	}
}

func TestRecoveryPotential(t *testing.T) {
	cases := []struct {
		porte model.Porte
		want  float64
	}{
		{model.PorteMEI, 10_000},    // 1%
		{model.PorteME, 20_000},     // 2%
		{model.PorteEPP, 30_000},    // 3%
		{model.PorteGrande, 50_000}, // 5%
	}

	for _, tc := range cases {
		if got := recoveryPotential(1_000_000, tc.porte); got != tc.want {
			t.Errorf("recoveryPotential(1M, %s) = %v, want %v", tc.porte, got, tc.want)
		}
	}
}

func TestBuildAddress(t *testing.T) {
	raw := model.RegistryResponse{
		DescricaoTipoLogradouro: "Rua",
		Logradouro:              "das Indústrias",
		Numero:                  "100",
		Bairro:                  "Distrito Industrial",
		Municipio:               "Campinas",
		UF:                      "SP",
	}

	want := "Rua, das Indústrias, 100, Distrito Industrial, Campinas, SP"
	if got := buildAddress(&raw); got != want {
		t.Errorf("buildAddress = %q, want %q", got, want)
	}
}

func TestBuildCompanyData_Fallbacks(t *testing.T) {
	raw := model.RegistryResponse{
		SituacaoCadastral: 4, // not active
		CNAEFiscal:        9999999,
	}

	data := buildCompanyData(&raw, "11222333000181", "receitaws.com.br")

	if data.RazaoSocial != "Não informado" {
		t.Errorf("RazaoSocial = %q, want placeholder", data.RazaoSocial)
	}
	if data.NomeFantasia != "Não informado" {
		t.Errorf("NomeFantasia = %q, want fallback to razão social", data.NomeFantasia)
	}
	if data.SituacaoAtiva {
		t.Error("situacao_cadastral != 2 must be inactive")
	}
	if data.CNAEsSecundarios == nil {
		t.Error("CNAEsSecundarios must never be nil")
	}
	if data.FonteDados[1] != "receitaws.com.br" {
		t.Errorf("FonteDados = %v, want winning endpoint recorded", data.FonteDados)
	}
}
