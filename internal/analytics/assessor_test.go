package analytics

import (
	"math"
	"testing"

	"github.com/Dan9191/finhealth/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssessor(t *testing.T) (*Assessor, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	a, err := NewAssessor(mustTables(t), DefaultAssumptions(), log)
	require.NoError(t, err)
	return a, hook
}

func healthyInput() models.AssessmentInput {
	return models.AssessmentInput{
		CompanyName: "Sharma Textiles Pvt Ltd",
		Snapshot: models.FinancialSnapshot{
			Sales:          1000000,
			Expenses:       600000,
			InventoryValue: 200000,
			BankBalance:    300000,
		},
		History: []float64{100, 200, 300},
	}
}

func TestAssess_HealthyBusiness(t *testing.T) {
	a, hook := newTestAssessor(t)

	r, err := a.Assess(healthyInput())
	require.NoError(t, err)

	assert.True(t, r.HasData)
	assert.Equal(t, 11.29, r.Ratios.SolvencyIndex)
	assert.Equal(t, 6.67, r.Ratios.DSCR)
	assert.Equal(t, 0.4, r.Ratios.NetMargin)
	assert.Equal(t, models.HealthScore{Value: 100, Label: "Strong", Color: "green"}, r.HealthScore)

	assert.Equal(t, models.Components{
		WorkingCapital:   200000,
		EBIT:             400000,
		Sales:            1000000,
		TotalAssets:      501000,
		TotalLiabilities: 300000,
		RetainedEarnings: 400000,
	}, r.Components)

	assert.Equal(t, 900, r.Lending.Score)
	assert.Equal(t, 300, r.Lending.Factors.DSCRPoints)
	require.Len(t, r.Lending.Loans, 4)
	for _, l := range r.Lending.Loans {
		assert.True(t, l.IsEligible, l.ID)
	}
	assert.Equal(t, "Apply for Priority Sector Lending", r.Lending.Roadmap[0].Task)

	require.NotNil(t, r.Benchmarks)
	assert.Equal(t, "Textiles", r.Benchmarks.Industry)
	assert.Equal(t, 40.0, r.Benchmarks.Comparisons[0].User)
	assert.Equal(t, 1.0, r.Benchmarks.Comparisons[2].User)

	assert.Equal(t, []string{"Next Month", "+2 Months", "+3 Months"}, r.Forecast.PeriodLabels)
	assert.Equal(t, []float64{400, 500, 600}, r.Forecast.Mid)

	assert.Empty(t, r.Anomalies)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "Assessment computed", hook.LastEntry().Message)
	assert.Equal(t, "Textiles", hook.LastEntry().Data["industry"])
}

func TestAssess_CashFlowAndWorkingCapital(t *testing.T) {
	a, _ := newTestAssessor(t)

	r, err := a.Assess(healthyInput())
	require.NoError(t, err)

	cf := r.CashFlow
	require.Len(t, cf.Categories, 1)
	assert.Equal(t, "Operational", cf.Categories[0].Name)
	assert.Equal(t, "#3b82f6", cf.Categories[0].Color)
	assert.Equal(t, int64(1000000), cf.Inflow)
	assert.Equal(t, int64(600000), cf.Outflow)
	assert.Equal(t, int64(400000), cf.Net)
	assert.Equal(t, int64(600000), cf.BurnRate)
	assert.Equal(t, 0.5, cf.SurvivalMonths)

	wc := r.WorkingCapital
	assert.InDelta(t, 54.75, wc.DSO, 0.06)
	assert.Equal(t, 36.5, wc.DPO)
	assert.Equal(t, 121.7, wc.DIO)
	assert.InDelta(t, 140.0, wc.CCC, 0.06)
	assert.Equal(t, 3.0, wc.InventoryTurnover)
	assert.Equal(t, 0.33, wc.WorkingCapitalRatio)

	assert.Equal(t, []string{"Operational Buffer"}, titles(r.Savings))
}

func TestAssess_CategoriesAndSavings(t *testing.T) {
	a, _ := newTestAssessor(t)
	in := healthyInput()
	in.Snapshot.Sales = 620000
	in.Categories = []models.ExpenseCategory{
		{Name: "Rent", Value: 200000},
		{Name: "", Value: 1000},
		{Name: "Electricity", Value: 100000.9},
	}

	r, err := a.Assess(in)
	require.NoError(t, err)

	require.Len(t, r.CashFlow.Categories, 2)
	assert.Equal(t, "#3b82f6", r.CashFlow.Categories[0].Color)
	assert.Equal(t, "#8b5cf6", r.CashFlow.Categories[1].Color)
	assert.Equal(t, 100000.0, r.CashFlow.Categories[1].Value)
	assert.Equal(t, int64(300000), r.CashFlow.Outflow)
	assert.Equal(t, 1.0, r.CashFlow.SurvivalMonths)

	// margin 20000/620000 is thin
	assert.Equal(t, []string{"Lease Renegotiation", "Energy Optimization", "Bulk Procurement"}, titles(r.Savings))
	assert.Equal(t, "₹12,000", r.Savings[1].EstimatedSaving)
}

func TestAssess_NoExpensesOrSales(t *testing.T) {
	a, _ := newTestAssessor(t)

	r, err := a.Assess(models.AssessmentInput{
		CompanyName: "Nothing Co",
		Snapshot:    models.FinancialSnapshot{BankBalance: 5000},
	})
	require.NoError(t, err)

	assert.True(t, r.HasData)
	assert.Equal(t, NoDebtCoverage, r.Ratios.DSCR)
	assert.Equal(t, 0.0, r.Ratios.NetMargin)
	assert.Equal(t, 99.0, r.CashFlow.SurvivalMonths)
	assert.Equal(t, int64(0), r.CashFlow.BurnRate)
	assert.Equal(t, models.WorkingCapital{}, r.WorkingCapital)
	assert.Empty(t, r.Forecast.Mid)
	assert.Empty(t, r.Forecast.PeriodLabels)
	assert.Equal(t, DefaultIndustry, r.Benchmarks.Industry)
}

func TestAssess_FlagsAnomalies(t *testing.T) {
	a, _ := newTestAssessor(t)
	in := healthyInput()
	in.Transactions = txs(-1200, -1100, 5000, -1300, -1250, -98000)

	r, err := a.Assess(in)
	require.NoError(t, err)

	require.Len(t, r.Anomalies, 1)
	assert.Equal(t, int64(6), r.Anomalies[0].ID)
	assert.Equal(t, models.SeverityHigh, r.Anomalies[0].Severity)
}

func TestAssess_EmptyReport(t *testing.T) {
	a, hook := newTestAssessor(t)

	r, err := a.Assess(models.AssessmentInput{CompanyName: "Fresh Co"})
	require.NoError(t, err)

	assert.Equal(t, EmptyReport(), r)
	assert.False(t, r.HasData)
	assert.Equal(t, 0, r.HealthScore.Value)
	assert.Equal(t, "No Data", r.HealthScore.Label)
	assert.Empty(t, r.Forecast.Mid)
	assert.Len(t, r.Insights, 1)
	assert.Empty(t, hook.Entries)
}

func TestAssess_CustomHorizon(t *testing.T) {
	a, _ := newTestAssessor(t)
	in := healthyInput()
	in.Horizon = 6

	r, err := a.Assess(in)
	require.NoError(t, err)

	assert.Len(t, r.Forecast.Mid, 6)
	assert.Len(t, r.Forecast.PeriodLabels, 6)
	assert.Equal(t, "+6 Months", r.Forecast.PeriodLabels[5])
}

func TestAssess_HorizonClampedToMax(t *testing.T) {
	a, _ := newTestAssessor(t)
	in := models.AssessmentInput{
		Snapshot: models.FinancialSnapshot{Sales: 1000, Expenses: 500},
		History:  []float64{100, 200},
		Horizon:  1 << 60,
	}

	r, err := a.Assess(in)
	require.NoError(t, err)

	assert.Len(t, r.Forecast.Mid, DefaultMaxHorizon)
	assert.Len(t, r.Forecast.PeriodLabels, DefaultMaxHorizon)
}

func TestAssess_TruncatesMoneyToWholeUnits(t *testing.T) {
	a, _ := newTestAssessor(t)
	in := healthyInput()
	in.Categories = []models.ExpenseCategory{
		{Name: "Rent", Value: 1000.9},
		{Name: "Energy", Value: 200.7},
	}

	r, err := a.Assess(in)
	require.NoError(t, err)

	assert.Equal(t, int64(1200), r.CashFlow.Outflow)
	assert.Equal(t, 1000.0, r.CashFlow.Categories[0].Value)
	assert.Equal(t, 200.0, r.CashFlow.Categories[1].Value)
	assert.Equal(t, int64(1000000-1200), r.CashFlow.Net)
}

func TestAssess_SaturatesOversizedAmounts(t *testing.T) {
	a, _ := newTestAssessor(t)
	in := healthyInput()
	in.Snapshot.Sales = 1e19

	r, err := a.Assess(in)
	require.NoError(t, err)

	assert.Equal(t, int64(math.MaxInt64), r.Components.Sales)
	assert.Equal(t, int64(math.MaxInt64), r.CashFlow.Inflow)
	assert.Equal(t, int64(math.MaxInt64), r.CashFlow.Net)
}

func TestAssess_Idempotent(t *testing.T) {
	a, _ := newTestAssessor(t)
	in := healthyInput()
	in.Transactions = txs(-1200, -1100, 5000, -1300, -1250, -98000)

	first, err := a.Assess(in)
	require.NoError(t, err)
	second, err := a.Assess(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewAssessor_NilTables(t *testing.T) {
	_, err := NewAssessor(nil, DefaultAssumptions(), logrus.New())
	assert.ErrorIs(t, err, ErrInvalidTables)

	var a *Assessor
	_, err = a.Assess(healthyInput())
	assert.ErrorIs(t, err, ErrInvalidTables)
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		z        float64
		expected models.HealthScore
	}{
		{15, models.HealthScore{Value: 100, Label: "Strong", Color: "green"}},
		{3, models.HealthScore{Value: 93, Label: "Strong", Color: "green"}},
		{2.5, models.HealthScore{Value: 74, Label: "Good", Color: "yellow"}},
		{1.8, models.HealthScore{Value: 60, Label: "Good", Color: "yellow"}},
		{1.0, models.HealthScore{Value: 30, Label: "Weak", Color: "red"}},
		{-4, models.HealthScore{Value: 10, Label: "Weak", Color: "red"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, healthScore(tt.z), "z=%v", tt.z)
	}
}
