package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/notecraft/discovery/internal/model"
)

const testCNPJ = "11222333000181"

// registryPayload is a realistic ReceitaWS-style success response
const registryPayload = `{
	"cnpj": "11222333000181",
	"razao_social": "Metalurgica Exemplo Ltda",
	"nome_fantasia": "Exemplo Metal",
	"situacao_cadastral": 2,
	"data_inicio_atividade": "2010-05-20",
	"codigo_natureza_juridica": 206,
	"cnae_fiscal": 2512800,
	"cnae_fiscal_descricao": "Fabricação de esquadrias de metal",
	"cnaes_secundarios": [{"codigo": 2599399, "descricao": "Serviços de usinagem"}],
	"descricao_tipo_logradouro": "Rua",
	"logradouro": "das Indústrias",
	"numero": "100",
	"bairro": "Distrito Industrial",
	"cep": "13000-000",
	"uf": "SP",
	"municipio": "Campinas",
	"capital_social": 500000,
	"porte": "03",
	"opcao_pelo_simples": false,
	"opcao_pelo_mei": false
}`

func testConfig(primary string, backups ...string) model.RegistryConfig {
	return model.RegistryConfig{
		PrimaryURL: primary,
		BackupURLs: backups,
		Timeout:    2 * time.Second,
		RetryDelay: 50 * time.Millisecond,
		UserAgent:  "Discovery-Test/1.0",
	}
}

func testCacheConfig() model.CacheConfig {
	return model.CacheConfig{Enabled: true, TTL: time.Minute}
}

func successServer(calls *atomic.Int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(registryPayload))
	}))
}

func TestEnrich_Success(t *testing.T) {
	var calls atomic.Int64
	server := successServer(&calls)
	defer server.Close()

	svc := New(testConfig(server.URL+"/"), testCacheConfig(), false)
	data := svc.Enrich(context.Background(), testCNPJ)

	if data.CNPJ != "11.222.333/0001-81" {
		t.Errorf("CNPJ = %q, want formatted identifier", data.CNPJ)
	}
	if !data.SituacaoAtiva {
		t.Error("expected active company for situacao_cadastral = 2")
	}
	if data.PorteOficial != model.PorteEPP {
		t.Errorf("PorteOficial = %s, want EPP", data.PorteOficial)
	}
	// EPP midpoint 2,580,000 with manufacturing multiplier 1.8
	if data.FaturamentoEstimado != 4_644_000 {
		t.Errorf("FaturamentoEstimado = %v, want 4644000", data.FaturamentoEstimado)
	}
	if data.RegimeTributario != model.RegimePresumido {
		t.Errorf("RegimeTributario = %s, want LUCRO_PRESUMIDO", data.RegimeTributario)
	}
	if !data.ElegivelRCT {
		t.Error("manufacturing EPP should be RCT-eligible")
	}
	if data.Confiabilidade != 95 {
		t.Errorf("Confiabilidade = %d, want 95", data.Confiabilidade)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 registry call, got %d", calls.Load())
	}
}

func TestEnrich_InvalidIdentifier_NoNetworkCall(t *testing.T) {
	var calls atomic.Int64
	server := successServer(&calls)
	defer server.Close()

	svc := New(testConfig(server.URL+"/"), testCacheConfig(), false)
	data := svc.Enrich(context.Background(), "11222333000199") // bad checksum

	if calls.Load() != 0 {
		t.Errorf("expected no registry calls for invalid identifier, got %d", calls.Load())
	}
	if data.Confiabilidade != 0 {
		t.Errorf("Confiabilidade = %d, want 0", data.Confiabilidade)
	}
	if data.SituacaoAtiva {
		t.Error("minimal record must be inactive")
	}
	if len(data.FonteDados) != 1 || data.FonteDados[0] != model.ErrorSource {
		t.Errorf("FonteDados = %v, want [%s]", data.FonteDados, model.ErrorSource)
	}
}

func TestEnrich_SecondCallServedFromCache(t *testing.T) {
	var calls atomic.Int64
	server := successServer(&calls)
	defer server.Close()

	svc := New(testConfig(server.URL+"/"), testCacheConfig(), false)

	first := svc.Enrich(context.Background(), testCNPJ)
	second := svc.Enrich(context.Background(), "11.222.333/0001-81") // same id, punctuated

	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 registry call, got %d", calls.Load())
	}
	if first.RazaoSocial != second.RazaoSocial {
		t.Errorf("cached record differs: %q vs %q", first.RazaoSocial, second.RazaoSocial)
	}
}

func TestEnrich_ExpiredEntryRefetched(t *testing.T) {
	var calls atomic.Int64
	server := successServer(&calls)
	defer server.Close()

	cacheCfg := model.CacheConfig{Enabled: true, TTL: 30 * time.Millisecond}
	svc := New(testConfig(server.URL+"/"), cacheCfg, false)

	svc.Enrich(context.Background(), testCNPJ)
	time.Sleep(60 * time.Millisecond)
	svc.Enrich(context.Background(), testCNPJ)

	if calls.Load() != 2 {
		t.Errorf("expected expired entry to trigger a refetch, got %d calls", calls.Load())
	}
}

func TestEnrich_PrimaryFailsBackupSucceeds(t *testing.T) {
	var primaryCalls, backupCalls atomic.Int64

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryCalls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer primary.Close()

	backup := successServer(&backupCalls)
	defer backup.Close()

	cfg := testConfig(primary.URL+"/", backup.URL+"/")
	svc := New(cfg, testCacheConfig(), false)

	start := time.Now()
	data := svc.Enrich(context.Background(), testCNPJ)
	elapsed := time.Since(start)

	if primaryCalls.Load() != 1 || backupCalls.Load() != 1 {
		t.Errorf("expected 1 call each, got primary=%d backup=%d", primaryCalls.Load(), backupCalls.Load())
	}
	if elapsed < cfg.RetryDelay {
		t.Errorf("expected retry delay %v between attempts, elapsed %v", cfg.RetryDelay, elapsed)
	}
	if data.Confiabilidade != 95 {
		t.Errorf("Confiabilidade = %d, want 95 after backup success", data.Confiabilidade)
	}
	if len(data.FonteDados) != 2 {
		t.Fatalf("FonteDados = %v, want registry + endpoint host", data.FonteDados)
	}
}

func TestEnrich_ErrorPayloadTriggersFallback(t *testing.T) {
	var primaryCalls, backupCalls atomic.Int64

	// 200 response carrying the ReceitaWS error envelope
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ERROR", "message": "CNPJ rejeitado"}`))
	}))
	defer primary.Close()

	backup := successServer(&backupCalls)
	defer backup.Close()

	svc := New(testConfig(primary.URL+"/", backup.URL+"/"), testCacheConfig(), false)
	data := svc.Enrich(context.Background(), testCNPJ)

	if primaryCalls.Load() != 1 || backupCalls.Load() != 1 {
		t.Errorf("expected fallback after error payload, got primary=%d backup=%d", primaryCalls.Load(), backupCalls.Load())
	}
	if data.Confiabilidade != 95 {
		t.Errorf("Confiabilidade = %d, want 95", data.Confiabilidade)
	}
}

func TestEnrich_AllEndpointsFail_ResolvesMinimal(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	svc := New(testConfig(failing.URL+"/", failing.URL+"/"), testCacheConfig(), false)
	data := svc.Enrich(context.Background(), testCNPJ)

	if data.Confiabilidade != 0 {
		t.Errorf("Confiabilidade = %d, want 0", data.Confiabilidade)
	}
	if len(data.FonteDados) != 1 || data.FonteDados[0] != model.ErrorSource {
		t.Errorf("FonteDados = %v, want [%s]", data.FonteDados, model.ErrorSource)
	}
	if data.CNPJ != "11.222.333/0001-81" {
		t.Errorf("minimal record should keep the formatted identifier, got %q", data.CNPJ)
	}
	// Historical default: porte ME even at zero confidence
	if data.PorteOficial != model.PorteME {
		t.Errorf("PorteOficial = %s, want ME", data.PorteOficial)
	}
}

func TestEnrich_FailureNotCached(t *testing.T) {
	var calls atomic.Int64
	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(registryPayload))
	}))
	defer flaky.Close()

	svc := New(testConfig(flaky.URL+"/"), testCacheConfig(), false)

	first := svc.Enrich(context.Background(), testCNPJ)
	if first.Confiabilidade != 0 {
		t.Fatalf("expected first lookup to fail, got confidence %d", first.Confiabilidade)
	}

	second := svc.Enrich(context.Background(), testCNPJ)
	if second.Confiabilidade != 95 {
		t.Errorf("expected retry after failure, got confidence %d", second.Confiabilidade)
	}
}
