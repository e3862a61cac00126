// Package enrich turns a bare registry identifier into a structured company
// profile via external lookup plus derived estimates.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/notecraft/discovery/internal/cache"
	"github.com/notecraft/discovery/internal/cnpj"
	"github.com/notecraft/discovery/internal/model"
	"github.com/notecraft/discovery/internal/worker"
)

// maxBodyBytes caps registry response reads
const maxBodyBytes = 1 << 20

// Service resolves registry identifiers into enriched company records.
// Construct one instance at the composition root and share it; the cache is
// owned by the instance, not package state.
type Service struct {
	cfg        model.RegistryConfig
	httpClient *http.Client
	cache      cache.Cache
	ttl        time.Duration
	limiter    *worker.Limiter
	verbose    bool
}

// New creates an enrichment service from configuration
func New(cfg model.RegistryConfig, cacheCfg model.CacheConfig, verbose bool) *Service {
	var c cache.Cache
	if cacheCfg.Enabled {
		if cacheCfg.Dir != "" {
			c = cache.NewLayeredCache(cacheCfg.TTL, cacheCfg.Dir, cacheCfg.TTL)
		} else {
			c = cache.NewMemoryCache(cacheCfg.TTL)
		}
	}

	var limiter *worker.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = worker.NewLimiter(cfg.RequestsPerSecond, 1)
	}

	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:   c,
		ttl:     cacheCfg.TTL,
		limiter: limiter,
		verbose: verbose,
	}
}

// Enrich resolves an identifier into a fully populated company record.
// It never fails: invalid identifiers and exhausted endpoints both yield the
// minimal record with confidence 0 and the error source marker, so the form
// flow is never blocked by registry availability.
func (s *Service) Enrich(ctx context.Context, id string) model.CompanyData {
	if !cnpj.Valid(id) {
		return model.MinimalCompanyData(cnpj.Format(id))
	}

	clean := cnpj.Normalize(id)

	if s.cache != nil {
		if raw, found := s.cache.Get(cache.Key(clean)); found {
			var data model.CompanyData
			if err := json.Unmarshal(raw, &data); err == nil {
				s.logf("cache hit for %s", cnpj.Format(clean))
				return data
			}
			// Corrupt entry: drop it and fall through to a fresh fetch
			_ = s.cache.Delete(cache.Key(clean))
		}
	}

	raw, source, err := s.fetchRegistry(ctx, clean)
	if err != nil {
		s.logf("registry lookup failed for %s: %v", cnpj.Format(clean), err)
		return model.MinimalCompanyData(cnpj.Format(clean))
	}

	data := buildCompanyData(raw, clean, source)

	if s.cache != nil {
		if encoded, err := json.Marshal(data); err == nil {
			_ = s.cache.Set(cache.Key(clean), encoded, s.ttl)
		}
	}

	return data
}

// fetchRegistry tries the primary endpoint, then each backup in configured
// order. A fixed delay separates failed attempts; each attempt carries its
// own timeout.
func (s *Service) fetchRegistry(ctx context.Context, clean string) (*model.RegistryResponse, string, error) {
	endpoints := make([]string, 0, 1+len(s.cfg.BackupURLs))
	endpoints = append(endpoints, s.cfg.PrimaryURL+clean)
	for _, base := range s.cfg.BackupURLs {
		endpoints = append(endpoints, base+clean)
	}

	var lastErr error
	for i, endpoint := range endpoints {
		if i > 0 && s.cfg.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(s.cfg.RetryDelay):
			}
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx, endpoint); err != nil {
				return nil, "", err
			}
		}

		resp, err := s.fetchOne(ctx, endpoint)
		if err != nil {
			s.logf("registry endpoint %s failed: %v", endpoint, err)
			lastErr = err
			continue
		}

		return resp, hostOf(endpoint), nil
	}

	return nil, "", fmt.Errorf("all registry endpoints failed: %w", lastErr)
}

// fetchOne performs a single lookup attempt against one endpoint
func (s *Service) fetchOne(ctx context.Context, endpoint string) (*model.RegistryResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed model.RegistryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	// ReceitaWS reports failures inside a 200 response
	if parsed.Failed() {
		if parsed.Message != "" {
			return nil, fmt.Errorf("registry error: %s", parsed.Message)
		}
		return nil, fmt.Errorf("registry error payload")
	}

	return &parsed, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func hostOf(endpoint string) string {
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return endpoint
	}
	return parsed.Host
}
