package models

// FinancialSnapshot holds the aggregated ledger and bank figures of one business
type FinancialSnapshot struct {
	Sales          float64 `json:"sales"`
	Expenses       float64 `json:"expenses"`
	InventoryValue float64 `json:"inventory_value"`
	BankBalance    float64 `json:"bank_balance"`
}

// EBIT approximates earnings before interest and tax as sales minus expenses
func (s FinancialSnapshot) EBIT() float64 {
	return s.Sales - s.Expenses
}

// TotalAssets adds a fixed-asset buffer to the liquid assets
func (s FinancialSnapshot) TotalAssets(fixedAssetBuffer float64) float64 {
	return s.InventoryValue + s.BankBalance + fixedAssetBuffer
}

// TotalLiabilities approximates liabilities as a share of expenses
func (s FinancialSnapshot) TotalLiabilities(liabilityFactor float64) float64 {
	return s.Expenses * liabilityFactor
}

// IsZero reports whether no aggregate carries a value
func (s FinancialSnapshot) IsZero() bool {
	return s.Sales == 0 && s.Expenses == 0 && s.InventoryValue == 0 && s.BankBalance == 0
}

// ExpenseCategory is one named bucket of expenses
type ExpenseCategory struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// AssessmentInput is everything the engine needs to assess one business
type AssessmentInput struct {
	CompanyName  string            `json:"company_name"`
	Snapshot     FinancialSnapshot `json:"snapshot"`
	Transactions []Transaction     `json:"transactions"`
	History      []float64         `json:"history"`
	Categories   []ExpenseCategory `json:"categories"`
	Horizon      int               `json:"horizon"`
}

// HasData reports whether there is any financial data to assess
func (in AssessmentInput) HasData() bool {
	return !in.Snapshot.IsZero() || len(in.Transactions) > 0 || len(in.History) > 0 || len(in.Categories) > 0
}
