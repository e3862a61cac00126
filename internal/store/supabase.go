// Package store persists discovery submissions and analyses through the
// Supabase REST endpoint.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/notecraft/discovery/internal/model"
)

// SupabaseStore talks to the Supabase PostgREST API. A zero-configured
// store (empty URL or key) is valid: every call reports ErrNotConfigured
// and callers fall back to local mode.
type SupabaseStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ErrNotConfigured is returned when the store has no endpoint configured.
var ErrNotConfigured = fmt.Errorf("storage not configured")

// New creates a store from configuration.
func New(cfg model.StorageConfig) *SupabaseStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &SupabaseStore{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsConfigured reports whether the store can reach a backend.
func (s *SupabaseStore) IsConfigured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

// LocalSubmissionID returns a submission id for unpersisted runs.
func LocalSubmissionID() string {
	return "local-" + uuid.New().String()
}

// submissionRow is the form_submissions table shape.
type submissionRow struct {
	ID                string `json:"id,omitempty"`
	ClientName        string `json:"client_name"`
	ClientEmail       string `json:"client_email"`
	ClientCompany     string `json:"client_company"`
	ClientCNPJ        string `json:"client_cnpj,omitempty"`
	IsCompleted       bool   `json:"is_completed"`
	CompletedAt       string `json:"completed_at,omitempty"`
	AnalysisCompleted bool   `json:"analysis_completed"`
}

// responseRow is the question_responses table shape.
type responseRow struct {
	SubmissionID  string `json:"submission_id"`
	QuestionID    string `json:"question_id"`
	SectionNumber int    `json:"section_number"`
	SectionName   string `json:"section_name"`
	QuestionText  string `json:"question_text"`
	ResponseType  string `json:"response_type"`
	ResponseValue any    `json:"response_value"`
	Observations  string `json:"observations,omitempty"`
	AIAwareNotes  string `json:"ai_aware_notes,omitempty"`
	AnsweredAt    string `json:"answered_at,omitempty"`
}

// analysisRow is the discovery_analysis table shape.
type analysisRow struct {
	SubmissionID         string                      `json:"submission_id"`
	OverallScore         int                         `json:"overall_score"`
	ReadinessLevel       string                      `json:"readiness_level"`
	SectionInsights      []model.SectionInsight      `json:"section_insights"`
	AgentRecommendations []model.AgentRecommendation `json:"agent_recommendations"`
	KeyInsights          []string                    `json:"key_insights"`
	ProcessingTimeMs     int64                       `json:"processing_time_ms"`
	AnalyzedAt           time.Time                   `json:"analyzed_at"`
}

// SaveSubmission inserts the submission and its responses, returning the
// generated submission id.
func (s *SupabaseStore) SaveSubmission(ctx context.Context, sub model.FormSubmission) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}

	row := submissionRow{
		ClientName:    sub.ClientProfile.Name,
		ClientEmail:   sub.ClientProfile.Email,
		ClientCompany: sub.ClientProfile.Company,
		ClientCNPJ:    sub.ClientProfile.CNPJ,
		IsCompleted:   sub.IsCompleted,
		CompletedAt:   sub.CompletedAt,
	}

	body, err := s.request(ctx, http.MethodPost, "/rest/v1/form_submissions", row, true)
	if err != nil {
		return "", fmt.Errorf("save submission: %w", err)
	}

	// PostgREST returns the inserted rows as an array.
	var inserted []submissionRow
	if err := json.Unmarshal(body, &inserted); err != nil {
		return "", fmt.Errorf("decode inserted submission: %w", err)
	}
	if len(inserted) == 0 || inserted[0].ID == "" {
		return "", fmt.Errorf("no id returned for inserted submission")
	}
	id := inserted[0].ID

	if len(sub.Responses) > 0 {
		rows := make([]responseRow, 0, len(sub.Responses))
		for _, r := range sub.Responses {
			rows = append(rows, responseRow{
				SubmissionID:  id,
				QuestionID:    r.QuestionID,
				SectionNumber: r.SectionNumber,
				SectionName:   r.SectionName,
				QuestionText:  r.QuestionText,
				ResponseType:  r.ResponseType,
				ResponseValue: r.ResponseValue,
				Observations:  r.Observations,
				AIAwareNotes:  r.AIAwareNotes,
				AnsweredAt:    r.AnsweredAt,
			})
		}
		if _, err := s.request(ctx, http.MethodPost, "/rest/v1/question_responses", rows, false); err != nil {
			return "", fmt.Errorf("save responses: %w", err)
		}
	}

	return id, nil
}

// SaveAnalysis inserts the analysis and marks the submission as analyzed.
func (s *SupabaseStore) SaveAnalysis(ctx context.Context, analysis *model.DiscoveryAnalysis) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	row := analysisRow{
		SubmissionID:         analysis.SubmissionID,
		OverallScore:         analysis.OverallScore,
		ReadinessLevel:       string(analysis.ReadinessLevel),
		SectionInsights:      analysis.SectionInsights,
		AgentRecommendations: analysis.AgentRecommendations,
		KeyInsights:          analysis.KeyInsights,
		ProcessingTimeMs:     analysis.ProcessingTime.Milliseconds(),
		AnalyzedAt:           analysis.AnalyzedAt,
	}

	if _, err := s.request(ctx, http.MethodPost, "/rest/v1/discovery_analysis", row, false); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}

	patch := map[string]bool{"analysis_completed": true}
	path := "/rest/v1/form_submissions?id=eq." + analysis.SubmissionID
	if _, err := s.request(ctx, http.MethodPatch, path, patch, false); err != nil {
		return fmt.Errorf("mark submission analyzed: %w", err)
	}

	return nil
}

// GetSubmission loads a submission and its responses by id.
func (s *SupabaseStore) GetSubmission(ctx context.Context, id string) (*model.FormSubmission, error) {
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	body, err := s.request(ctx, http.MethodGet, "/rest/v1/form_submissions?id=eq."+id+"&select=*", nil, false)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}

	var rows []submissionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("submission %s not found", id)
	}

	body, err = s.request(ctx, http.MethodGet, "/rest/v1/question_responses?submission_id=eq."+id+"&select=*", nil, false)
	if err != nil {
		return nil, fmt.Errorf("get responses: %w", err)
	}

	var respRows []responseRow
	if err := json.Unmarshal(body, &respRows); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}

	sub := &model.FormSubmission{
		ClientProfile: model.ClientProfile{
			Name:    rows[0].ClientName,
			Email:   rows[0].ClientEmail,
			Company: rows[0].ClientCompany,
			CNPJ:    rows[0].ClientCNPJ,
		},
		IsCompleted: rows[0].IsCompleted,
		CompletedAt: rows[0].CompletedAt,
	}
	for _, r := range respRows {
		sub.Responses = append(sub.Responses, model.QuestionResponse{
			QuestionID:    r.QuestionID,
			SectionNumber: r.SectionNumber,
			SectionName:   r.SectionName,
			QuestionText:  r.QuestionText,
			ResponseType:  r.ResponseType,
			ResponseValue: r.ResponseValue,
			Observations:  r.Observations,
			AIAwareNotes:  r.AIAwareNotes,
			AnsweredAt:    r.AnsweredAt,
		})
	}

	return sub, nil
}

// request performs one PostgREST call and returns the response body.
func (s *SupabaseStore) request(ctx context.Context, method, path string, payload any, returning bool) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if returning {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
