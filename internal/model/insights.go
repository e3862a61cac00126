package model

// ClientTier classifies the commercial value of a prospect.
type ClientTier string

const (
	TierPremium  ClientTier = "PREMIUM"
	TierStandard ClientTier = "STANDARD"
	TierBasic    ClientTier = "BASIC"
)

// SalesApproach is the recommended engagement style for a prospect.
type SalesApproach string

const (
	ApproachConsultative SalesApproach = "CONSULTATIVE"
	ApproachVolume       SalesApproach = "VOLUME"
	ApproachPremium      SalesApproach = "PREMIUM"
)

// PricingStrategy is the recommended pricing model for a prospect.
type PricingStrategy string

const (
	PricingValueBased  PricingStrategy = "VALUE_BASED"
	PricingCompetitive PricingStrategy = "COMPETITIVE"
	PricingCostPlus    PricingStrategy = "COST_PLUS"
)

// InsightLevel is the low/medium/high planning-complexity label exposed to
// the commercial layer (English-labelled counterpart of Complexity).
type InsightLevel string

const (
	LevelLow    InsightLevel = "LOW"
	LevelMedium InsightLevel = "MEDIUM"
	LevelHigh   InsightLevel = "HIGH"
)

// SectorBenchmark carries reference numbers for the company's sector.
type SectorBenchmark struct {
	AvgEmployees    int      `json:"avg_employees"`
	AvgRevenue      float64  `json:"avg_revenue"`
	TypicalServices []string `json:"typical_services"`
	SuccessCases    int      `json:"success_cases"`
}

// BusinessInsights is the strategic-insight bundle derived from a
// CompanyData record. Derivation is total and side-effect free.
type BusinessInsights struct {
	RCTPotentialScore       int          `json:"rct_potential_score"` // 0-100
	PlanningComplexityLevel InsightLevel `json:"planning_complexity_level"`
	EstimatedRecoveryValue  float64      `json:"estimated_recovery_value"`

	ClientTier      ClientTier      `json:"client_tier"`
	SalesApproach   SalesApproach   `json:"sales_approach"`
	PricingStrategy PricingStrategy `json:"pricing_strategy"`

	ComplianceAlerts []string `json:"compliance_alerts"`
	GrowthIndicators []string `json:"growth_indicators"`
	RiskFactors      []string `json:"risk_factors"`

	SectorBenchmark SectorBenchmark `json:"sector_benchmark"`
}
