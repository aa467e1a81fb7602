package models

import "time"

// ForecastResult holds a projection with its confidence band
type ForecastResult struct {
	Mid   []float64 `json:"mid"`
	Upper []float64 `json:"upper"`
	Lower []float64 `json:"lower"`
}

// Severity grades an anomaly
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AnomalyRecord is a transaction flagged as statistically unusual
type AnomalyRecord struct {
	ID          int64      `json:"id"`
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Direction   Direction  `json:"direction"`
	Reason      string     `json:"reason"`
	Severity    Severity   `json:"severity"`
}

// MetricComparison pairs a user value with the industry reference
type MetricComparison struct {
	Metric   string  `json:"metric"`
	User     float64 `json:"user"`
	Industry float64 `json:"industry"`
}

// BenchmarkComparison compares a business against its sector
type BenchmarkComparison struct {
	Industry    string             `json:"industry"`
	Description string             `json:"description"`
	Comparisons []MetricComparison `json:"comparisons"`
}

// CreditScore is a bounded score with its additive decomposition
type CreditScore struct {
	Score          int `json:"score"`
	Base           int `json:"base"`
	DSCRPoints     int `json:"dscr_points"`
	SolvencyPoints int `json:"solvency_points"`
	MarginPoints   int `json:"margin_points"`
}

// LoanOffer is a catalog product evaluated against a credit score
type LoanOffer struct {
	ID          string `json:"id"`
	Bank        string `json:"bank"`
	Name        string `json:"name"`
	MinScore    int    `json:"min_score"`
	Amount      string `json:"amount"`
	Rate        string `json:"rate"`
	Type        string `json:"type"`
	Purpose     string `json:"purpose"`
	ApplyURL    string `json:"apply_url"`
	IsEligible  bool   `json:"is_eligible"`
	MatchReason string `json:"match_reason"`
}

// RoadmapStep is one credit improvement action
type RoadmapStep struct {
	Step   int    `json:"step"`
	Task   string `json:"task"`
	Impact string `json:"impact,omitempty"`
	Desc   string `json:"desc"`
}

// SavingsAction is a suggested cost reduction
type SavingsAction struct {
	Title           string `json:"title"`
	Desc            string `json:"desc"`
	EstimatedSaving string `json:"savings"`
}
