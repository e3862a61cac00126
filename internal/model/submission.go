package model

import "time"

// ClientProfile identifies the person and company filling the questionnaire.
type ClientProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	CNPJ     string `json:"cnpj,omitempty"`
	Position string `json:"position,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// QuestionResponse is a single answered question from the intake form.
type QuestionResponse struct {
	QuestionID    string `json:"question_id"`
	SectionNumber int    `json:"section_number"`
	SectionName   string `json:"section_name"`
	QuestionText  string `json:"question_text"`
	ResponseType  string `json:"response_type"` // radio, checkbox, slider, text, select, number
	ResponseValue any    `json:"response_value"`
	Observations  string `json:"observations,omitempty"`
	AIAwareNotes  string `json:"ai_aware_notes,omitempty"`
	AnsweredAt    string `json:"answered_at,omitempty"`
}

// FormSubmission is a complete discovery questionnaire submission.
type FormSubmission struct {
	ClientProfile ClientProfile      `json:"client_profile"`
	Responses     []QuestionResponse `json:"responses"`
	IsCompleted   bool               `json:"is_completed"`
	CompletedAt   string             `json:"completed_at,omitempty"`
}

// ReadinessLevel buckets the overall AI-readiness score.
type ReadinessLevel string

const (
	ReadinessIniciante     ReadinessLevel = "iniciante"
	ReadinessIntermediario ReadinessLevel = "intermediario"
	ReadinessAvancado      ReadinessLevel = "avancado"
)

// ReadinessFromScore maps an overall 0-100 score to a readiness level.
func ReadinessFromScore(score int) ReadinessLevel {
	switch {
	case score >= 80:
		return ReadinessAvancado
	case score >= 60:
		return ReadinessIntermediario
	default:
		return ReadinessIniciante
	}
}

// SectionInsight is the per-section result of the AI analysis.
type SectionInsight struct {
	SectionName     string `json:"section_name"`
	Score           int    `json:"score"` // 0-10
	Insights        string `json:"insights"`
	Recommendations string `json:"recommendations"`
	Priority        string `json:"priority"` // critical, high, medium, low
}

// AgentRecommendation is one recommended automation agent with its business case.
type AgentRecommendation struct {
	Name          string `json:"name"`
	Priority      int    `json:"priority"` // 1 is most important
	ROI           int    `json:"roi"`      // projected ROI percentage
	Justification string `json:"justification"`
}

// DiscoveryAnalysis is the consolidated output of the AI analysis pipeline.
type DiscoveryAnalysis struct {
	SubmissionID         string                `json:"submission_id"`
	OverallScore         int                   `json:"overall_score"` // 0-100
	ReadinessLevel       ReadinessLevel        `json:"readiness_level"`
	SectionInsights      []SectionInsight      `json:"section_insights"`
	AgentRecommendations []AgentRecommendation `json:"agent_recommendations"`
	KeyInsights          []string              `json:"key_insights"`
	Degraded             bool                  `json:"degraded"` // produced by mock fixtures, not a live model
	ProcessingTime       time.Duration         `json:"processing_time_ms"`
	AnalyzedAt           time.Time             `json:"analyzed_at"`
}
