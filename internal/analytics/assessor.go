package analytics

import (
	"fmt"

	"github.com/Dan9191/finhealth/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultHorizon is the forecast length when the input does not request one
	DefaultHorizon = 3
	// DefaultMaxHorizon caps the forecast length a caller may request
	DefaultMaxHorizon = 60
)

const placeholderCategory = "Operational"

// Assumptions are the calibration constants standing in for real balance-sheet data
type Assumptions struct {
	FixedAssetBuffer       float64
	LiabilityFactor        float64
	DebtServiceFactor      float64
	ReceivablesRatio       float64
	PayablesRatio          float64
	SurvivalSentinel       float64
	AnomalyContamination   float64
	AnomalyMaxTransactions int
	MaxHorizon             int
}

// DefaultAssumptions returns the stock calibration
func DefaultAssumptions() Assumptions {
	return Assumptions{
		FixedAssetBuffer:       1000,
		LiabilityFactor:        0.5,
		DebtServiceFactor:      0.1,
		ReceivablesRatio:       0.15,
		PayablesRatio:          0.10,
		SurvivalSentinel:       99,
		AnomalyContamination:   DefaultContamination,
		AnomalyMaxTransactions: 10000,
		MaxHorizon:             DefaultMaxHorizon,
	}
}

// Assessor runs every model over one business and assembles the report
type Assessor struct {
	tables     *Tables
	assume     Assumptions
	detector   *AnomalyDetector
	classifier *IndustryClassifier
	lender     *Lender
	advisor    *SavingsAdvisor
	log        *logrus.Logger
}

// NewAssessor wires the engine components over validated tables
func NewAssessor(tables *Tables, assume Assumptions, log *logrus.Logger) (*Assessor, error) {
	if tables == nil {
		return nil, fmt.Errorf("%w: nil tables", ErrInvalidTables)
	}
	return &Assessor{
		tables:     tables,
		assume:     assume,
		detector:   NewAnomalyDetector(assume.AnomalyContamination, assume.AnomalyMaxTransactions),
		classifier: NewIndustryClassifier(tables),
		lender:     NewLender(tables),
		advisor:    NewSavingsAdvisor(tables),
		log:        log,
	}, nil
}

// EmptyReport is returned for businesses with no financial data
func EmptyReport() *models.Report {
	return &models.Report{
		HasData:     false,
		HealthScore: models.HealthScore{Value: 0, Label: "No Data", Color: "gray"},
		CashFlow:    models.CashFlow{Categories: []models.ExpenseCategory{}},
		Forecast: models.Forecast{
			PeriodLabels: []string{},
			Mid:          []float64{},
			Upper:        []float64{},
			Lower:        []float64{},
		},
		Lending:   models.Lending{Loans: []models.LoanOffer{}, Roadmap: []models.RoadmapStep{}},
		Savings:   []models.SavingsAction{},
		Insights:  []string{"Complete your onboarding to see analytics."},
		Anomalies: []models.AnomalyRecord{},
	}
}

// Assess computes the full report. It only fails when the assessor was not built
// through NewAssessor; missing or zero data degrades to neutral values.
func (a *Assessor) Assess(in models.AssessmentInput) (*models.Report, error) {
	if a == nil || a.tables == nil {
		return nil, fmt.Errorf("%w: assessor not initialized", ErrInvalidTables)
	}
	if !in.HasData() {
		return EmptyReport(), nil
	}

	s := in.Snapshot
	horizon := a.horizon(in.Horizon)

	// 1. Derived aggregates
	totalAssets := s.TotalAssets(a.assume.FixedAssetBuffer)
	totalLiabilities := s.TotalLiabilities(a.assume.LiabilityFactor)
	ebit := s.EBIT()
	workingCapital := s.BankBalance + s.InventoryValue - totalLiabilities
	retainedEarnings := ebit
	netMargin := safeDiv(ebit, s.Sales, 0)

	// 2. Ratios
	solvency := SolvencyIndex(
		workingCapital,
		retainedEarnings,
		ebit,
		totalAssets-totalLiabilities,
		max(totalLiabilities, 1),
		max(totalAssets, 1),
	)
	dscr := DebtCoverage(ebit, s.Expenses*a.assume.DebtServiceFactor)

	// 3. Forecast
	projection := Project(in.History, horizon)
	labels := PeriodLabels(horizon)
	if len(projection.Mid) == 0 {
		labels = []string{}
	}

	// 4. Anomalies
	anomalies := a.detector.Detect(in.Transactions)

	// 5. Lending
	credit := ScoreCredit(dscr, solvency, netMargin)

	// 6. Industry
	industry := a.classifier.Identify(in.CompanyName, in.Transactions)
	comparison := a.classifier.Comparison(industry, UserMetrics{
		NetMargin:  netMargin,
		DSCR:       dscr,
		QuickRatio: s.BankBalance / max(totalLiabilities, 1),
	})

	// 7. Cash flow and savings
	categories := a.categories(in.Categories, s.Expenses)
	savings := a.advisor.Actions(categories, netMargin)

	// money is reported in whole units, truncated toward zero
	outflowSum := decimal.Zero
	for _, c := range categories {
		outflowSum = outflowSum.Add(wholeUnits(c.Value))
	}
	inflowSum := wholeUnits(s.Sales)
	outflow := toInt64(outflowSum)
	inflow := toInt64(inflowSum)
	burnRate := outflow
	survival := a.assume.SurvivalSentinel
	if burnRate > 0 {
		survival = round1(s.BankBalance / float64(burnRate))
	}

	health := healthScore(solvency)
	report := &models.Report{
		HasData:     true,
		HealthScore: health,
		Ratios: models.Ratios{
			SolvencyIndex: round2(solvency),
			DSCR:          round2(dscr),
			NetMargin:     round2(netMargin),
		},
		Components: models.Components{
			WorkingCapital:   truncMoney(workingCapital),
			EBIT:             truncMoney(ebit),
			Sales:            truncMoney(s.Sales),
			TotalAssets:      truncMoney(totalAssets),
			TotalLiabilities: truncMoney(totalLiabilities),
			RetainedEarnings: truncMoney(retainedEarnings),
		},
		CashFlow: models.CashFlow{
			Inflow:         inflow,
			Outflow:        outflow,
			Net:            toInt64(inflowSum.Sub(outflowSum)),
			Categories:     categories,
			SurvivalMonths: survival,
			BurnRate:       burnRate,
		},
		Forecast: models.Forecast{
			PeriodLabels: labels,
			Mid:          projection.Mid,
			Upper:        projection.Upper,
			Lower:        projection.Lower,
		},
		Lending: models.Lending{
			Score:   credit.Score,
			Factors: credit,
			Loans:   a.lender.EligibleLoans(credit.Score, s.Sales, ebit),
			Roadmap: a.lender.Roadmap(credit.Score),
		},
		Benchmarks:     &comparison,
		Savings:        savings,
		WorkingCapital: a.workingCapital(s, workingCapital),
		Insights:       []string{},
		Anomalies:      anomalies,
	}

	if a.log != nil {
		a.log.WithFields(logrus.Fields{
			"company":      in.CompanyName,
			"industry":     industry,
			"health_score": health.Value,
			"credit_score": credit.Score,
			"anomalies":    len(anomalies),
		}).Debug("Assessment computed")
	}
	return report, nil
}

// horizon defaults non-positive requests and clamps long ones to MaxHorizon
func (a *Assessor) horizon(requested int) int {
	if requested < 1 {
		return DefaultHorizon
	}
	limit := a.assume.MaxHorizon
	if limit < 1 || limit > HorizonLimit {
		limit = HorizonLimit
	}
	return min(requested, limit)
}

// categories drops unnamed buckets, falls back to a single placeholder and assigns colors
func (a *Assessor) categories(in []models.ExpenseCategory, expenses float64) []models.ExpenseCategory {
	out := make([]models.ExpenseCategory, 0, len(in))
	colors := a.tables.CategoryColors
	for i, c := range in {
		if c.Name == "" {
			continue
		}
		out = append(out, models.ExpenseCategory{
			Name:  c.Name,
			Value: wholeUnits(c.Value).InexactFloat64(),
			Color: colors[i%len(colors)],
		})
	}
	if len(out) == 0 {
		out = append(out, models.ExpenseCategory{
			Name:  placeholderCategory,
			Value: wholeUnits(expenses).InexactFloat64(),
			Color: colors[0],
		})
	}
	return out
}

func (a *Assessor) workingCapital(s models.FinancialSnapshot, workingCapital float64) models.WorkingCapital {
	var dso, dpo, dio float64
	if s.Sales > 0 {
		dso = round1(s.Sales * a.assume.ReceivablesRatio / s.Sales * 365)
	}
	if s.Expenses > 0 {
		dpo = round1(s.Expenses * a.assume.PayablesRatio / s.Expenses * 365)
		dio = round1(s.InventoryValue / s.Expenses * 365)
	}

	wc := models.WorkingCapital{
		DSO: dso,
		DPO: dpo,
		DIO: dio,
		CCC: round1(dso + dio - dpo),
	}
	if s.InventoryValue > 0 {
		wc.InventoryTurnover = round2(s.Expenses / s.InventoryValue)
	}
	if s.Expenses > 0 {
		wc.WorkingCapitalRatio = round2(workingCapital / s.Expenses)
	}
	return wc
}

// healthScore maps the solvency index onto a 0-100 display score
func healthScore(z float64) models.HealthScore {
	var raw float64
	switch {
	case z >= 3:
		raw = 90 + min(z, 10)
	case z >= 1.8:
		raw = 60 + (z-1.8)*20
	default:
		raw = max(z*30, 10)
	}
	value := min(int(raw), 100)

	switch {
	case value > 80:
		return models.HealthScore{Value: value, Label: "Strong", Color: "green"}
	case value > 50:
		return models.HealthScore{Value: value, Label: "Good", Color: "yellow"}
	default:
		return models.HealthScore{Value: value, Label: "Weak", Color: "red"}
	}
}
