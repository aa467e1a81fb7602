package models

// Report is the full financial health assessment of one business
type Report struct {
	HasData        bool                 `json:"has_any_data"`
	Fingerprint    string               `json:"fingerprint,omitempty"`
	HealthScore    HealthScore          `json:"health_score"`
	Ratios         Ratios               `json:"ratios"`
	Components     Components           `json:"components"`
	CashFlow       CashFlow             `json:"cash_flow"`
	Forecast       Forecast             `json:"forecast"`
	Lending        Lending              `json:"lending"`
	Benchmarks     *BenchmarkComparison `json:"benchmarks,omitempty"`
	Savings        []SavingsAction      `json:"savings"`
	WorkingCapital WorkingCapital       `json:"working_capital"`
	Insights       []string             `json:"insights"`
	Anomalies      []AnomalyRecord      `json:"anomalies"`
}

// HealthScore is the 0-100 display score
type HealthScore struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Ratios holds the headline ratios
type Ratios struct {
	SolvencyIndex float64 `json:"z_score"`
	DSCR          float64 `json:"dscr"`
	NetMargin     float64 `json:"net_margin"`
}

// Components holds the derived aggregates behind the ratios
type Components struct {
	WorkingCapital   int64 `json:"working_capital"`
	EBIT             int64 `json:"ebit"`
	Sales            int64 `json:"sales"`
	TotalAssets      int64 `json:"total_assets"`
	TotalLiabilities int64 `json:"total_liabilities"`
	RetainedEarnings int64 `json:"retained_earnings"`
}

// CashFlow summarizes inflows, outflows and runway
type CashFlow struct {
	Inflow         int64             `json:"inflow"`
	Outflow        int64             `json:"outflow"`
	Net            int64             `json:"net"`
	Categories     []ExpenseCategory `json:"categories"`
	SurvivalMonths float64           `json:"survival_months"`
	BurnRate       int64             `json:"burn_rate"`
}

// Forecast is the labelled balance projection
type Forecast struct {
	PeriodLabels []string  `json:"months"`
	Mid          []float64 `json:"mid"`
	Upper        []float64 `json:"upper"`
	Lower        []float64 `json:"lower"`
}

// Lending holds the credit score and what it unlocks
type Lending struct {
	Score         int           `json:"score"`
	Factors       CreditScore   `json:"factors"`
	Loans         []LoanOffer   `json:"loans"`
	Roadmap       []RoadmapStep `json:"roadmap"`
	ReferenceRate *float64      `json:"reference_rate,omitempty"`
}

// WorkingCapital holds working-capital cycle timing metrics
type WorkingCapital struct {
	DSO                 float64 `json:"dso"`
	DPO                 float64 `json:"dpo"`
	DIO                 float64 `json:"dio"`
	CCC                 float64 `json:"ccc"`
	InventoryTurnover   float64 `json:"inventory_turnover"`
	WorkingCapitalRatio float64 `json:"working_capital_ratio"`
}
