package model

import "time"

// Porte is the official company size tier used by the federal registry.
type Porte string

const (
	PorteMEI    Porte = "MEI"    // micro-entrepreneur
	PorteME     Porte = "ME"     // micro company
	PorteEPP    Porte = "EPP"    // small company
	PorteGrande Porte = "GRANDE" // medium/large company
)

// Regime is the tax-calculation framework a company is presumed to use.
type Regime string

const (
	RegimeSimples      Regime = "SIMPLES"
	RegimePresumido    Regime = "LUCRO_PRESUMIDO"
	RegimeReal         Regime = "LUCRO_REAL"
	RegimeDesconhecido Regime = "DESCONHECIDO"
)

// Complexity summarizes tax-planning complexity from size, capital and regime signals.
type Complexity string

const (
	ComplexityBaixa Complexity = "BAIXA"
	ComplexityMedia Complexity = "MEDIA"
	ComplexityAlta  Complexity = "ALTA"
)

// SecondaryCNAE is a secondary activity code as returned by the registry.
type SecondaryCNAE struct {
	Codigo    int    `json:"codigo"`
	Descricao string `json:"descricao"`
}

// RegistryResponse is the raw payload returned by the registry lookup APIs
// (ReceitaWS, BrasilAPI, Minha Receita all share this field set).
type RegistryResponse struct {
	CNPJ                    string          `json:"cnpj"`
	RazaoSocial             string          `json:"razao_social"`
	NomeFantasia            string          `json:"nome_fantasia"`
	SituacaoCadastral       int             `json:"situacao_cadastral"`
	DescricaoSituacao       string          `json:"descricao_situacao_cadastral"`
	DataInicioAtividade     string          `json:"data_inicio_atividade"`
	CodigoNaturezaJuridica  int             `json:"codigo_natureza_juridica"`
	CNAEFiscal              int             `json:"cnae_fiscal"`
	CNAEFiscalDescricao     string          `json:"cnae_fiscal_descricao"`
	CNAEsSecundarios        []SecondaryCNAE `json:"cnaes_secundarios"`
	DescricaoTipoLogradouro string          `json:"descricao_tipo_logradouro"`
	Logradouro              string          `json:"logradouro"`
	Numero                  string          `json:"numero"`
	Complemento             string          `json:"complemento"`
	Bairro                  string          `json:"bairro"`
	CEP                     string          `json:"cep"`
	UF                      string          `json:"uf"`
	Municipio               string          `json:"municipio"`
	CapitalSocial           float64         `json:"capital_social"`
	Porte                   string          `json:"porte"`
	OpcaoPeloSimples        bool            `json:"opcao_pelo_simples"`
	OpcaoPeloMEI            bool            `json:"opcao_pelo_mei"`

	// Error envelope: ReceitaWS signals failure inside a 200 response.
	Status  string `json:"status,omitempty"`
	Erro    bool   `json:"erro,omitempty"`
	Message string `json:"message,omitempty"`
}

// Failed reports whether the payload carries an explicit error flag.
func (r *RegistryResponse) Failed() bool {
	return r.Status == "ERROR" || r.Erro
}

// CNAE is the primary activity classification with the mapped sector label.
type CNAE struct {
	Codigo    string `json:"codigo"`
	Descricao string `json:"descricao"`
	Setor     string `json:"setor"`
}

// CompanyData is the enriched company record produced by the enrichment
// service. Every field is always populated: lookups that fail entirely yield
// the minimal record from MinimalCompanyData, never a nil result.
type CompanyData struct {
	CNPJ          string `json:"cnpj"` // formatted: 11.222.333/0001-81
	RazaoSocial   string `json:"razao_social"`
	NomeFantasia  string `json:"nome_fantasia"`
	SituacaoAtiva bool   `json:"situacao_ativa"`
	DataFundacao  string `json:"data_fundacao"`

	EnderecoCompleto string `json:"endereco_completo"`
	Cidade           string `json:"cidade"`
	Estado           string `json:"estado"`
	CEP              string `json:"cep"`

	CNAEPrincipal    CNAE            `json:"cnae_principal"`
	CNAEsSecundarios []SecondaryCNAE `json:"cnaes_secundarios"`
	NaturezaJuridica string          `json:"natureza_juridica"`

	PorteOficial     Porte   `json:"porte_oficial"`
	CapitalSocial    float64 `json:"capital_social"`
	RegimeTributario Regime  `json:"regime_tributario"`

	FuncionariosEstimado int     `json:"funcionarios_estimado"`
	FaturamentoEstimado  float64 `json:"faturamento_estimado"`
	FaturamentoFaixa     string  `json:"faturamento_faixa"`

	ElegivelRCT            bool       `json:"elegivel_rct"`
	ElegivelPlanejamento   bool       `json:"elegivel_planejamento"`
	ComplexidadeTributaria Complexity `json:"complexidade_tributaria"`
	PotencialRecuperacao   float64    `json:"potencial_recuperacao_estimado"`

	DataConsulta   time.Time `json:"data_consulta"`
	FonteDados     []string  `json:"fonte_dados"`
	Confiabilidade int       `json:"confiabilidade"` // 0-100
}

// ErrorSource marks records produced after every registry endpoint failed.
const ErrorSource = "Erro na consulta"

// MinimalCompanyData builds the degraded record returned when the identifier
// is invalid or every registry endpoint failed. The record is fully populated
// so downstream consumers handle "not found" the same way as low confidence.
//
// PorteOficial defaults to ME even though confidence is zero; this mirrors
// the historical behavior other layers already depend on.
func MinimalCompanyData(formattedCNPJ string) CompanyData {
	return CompanyData{
		CNPJ:          formattedCNPJ,
		RazaoSocial:   "Dados não encontrados",
		NomeFantasia:  "Dados não encontrados",
		SituacaoAtiva: false,
		CNAEPrincipal: CNAE{
			Codigo:    "",
			Descricao: "Não identificado",
			Setor:     "Não identificado",
		},
		CNAEsSecundarios:       []SecondaryCNAE{},
		NaturezaJuridica:       "Não identificado",
		PorteOficial:           PorteME,
		RegimeTributario:       RegimeDesconhecido,
		FaturamentoFaixa:       "Não identificado",
		ComplexidadeTributaria: ComplexityBaixa,
		DataConsulta:           time.Now().UTC(),
		FonteDados:             []string{ErrorSource},
		Confiabilidade:         0,
	}
}

// EmployeeRange is the employee headcount band for a size tier.
type EmployeeRange struct {
	Min int
	Max int
}

// RevenueRange is the annual revenue band for a size tier.
type RevenueRange struct {
	Min   float64
	Max   float64
	Label string
}

// EmployeeRanges maps each size tier to its typical headcount band.
var EmployeeRanges = map[Porte]EmployeeRange{
	PorteMEI:    {Min: 0, Max: 1},
	PorteME:     {Min: 1, Max: 19},
	PorteEPP:    {Min: 20, Max: 99},
	PorteGrande: {Min: 100, Max: 999999},
}

// RevenueRanges maps each size tier to the statutory revenue band.
var RevenueRanges = map[Porte]RevenueRange{
	PorteMEI:    {Min: 0, Max: 81_000, Label: "Até R$ 81 mil"},
	PorteME:     {Min: 81_000, Max: 360_000, Label: "R$ 81k - R$ 360k"},
	PorteEPP:    {Min: 360_000, Max: 4_800_000, Label: "R$ 360k - R$ 4,8M"},
	PorteGrande: {Min: 4_800_000, Max: 999_999_999, Label: "Acima de R$ 4,8M"},
}
