package worker

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/notecraft/discovery/internal/model"
)

// countingEnricher implements Enricher
type countingEnricher struct {
	calls atomic.Int64
}

func (e *countingEnricher) Enrich(ctx context.Context, cnpj string) model.CompanyData {
	e.calls.Add(1)
	time.Sleep(5 * time.Millisecond) // Simulate work
	data := model.MinimalCompanyData(cnpj)
	data.Confiabilidade = 95
	return data
}

func TestBatchEnricher_Process(t *testing.T) {
	enricher := &countingEnricher{}
	batch := NewBatchEnricher(enricher, 2)

	cnpjs := []string{"11222333000181", "11444777000161", "99999999999999"}
	results := batch.Process(context.Background(), cnpjs)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if got := enricher.calls.Load(); got != 3 {
		t.Errorf("expected 3 enrich calls, got %d", got)
	}

	// Input order is preserved
	for i, r := range results {
		if r.CNPJ != cnpjs[i] {
			t.Errorf("result %d: got %s, want %s", i, r.CNPJ, cnpjs[i])
		}
	}
}

func TestBatchEnricher_Empty(t *testing.T) {
	batch := NewBatchEnricher(&countingEnricher{}, 4)

	results := batch.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadCNPJsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cnpjs.txt")
	content := "11222333000181\n\n# comment\n11444777000161\n11222333000181\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cnpjs, err := ReadCNPJsFromFile(path)
	if err != nil {
		t.Fatalf("ReadCNPJsFromFile: %v", err)
	}

	// Blank lines, comments and duplicates are dropped
	want := []string{"11222333000181", "11444777000161"}
	if len(cnpjs) != len(want) {
		t.Fatalf("expected %d identifiers, got %d", len(want), len(cnpjs))
	}
	for i := range want {
		if cnpjs[i] != want[i] {
			t.Errorf("identifier %d: got %s, want %s", i, cnpjs[i], want[i])
		}
	}
}

func TestReadCNPJsFromFile_Missing(t *testing.T) {
	if _, err := ReadCNPJsFromFile("/nonexistent/cnpjs.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
