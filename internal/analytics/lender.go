package analytics

import (
	"fmt"

	"github.com/Dan9191/finhealth/internal/models"
)

const (
	MinCreditScore = 300
	MaxCreditScore = 900
	// RoadmapLength is the number of steps in every improvement roadmap
	RoadmapLength = 3

	reasonQualifies = "qualifies on credit score"
)

// ScoreCredit derives the credit score from tiered DSCR, solvency and margin bonuses
func ScoreCredit(dscr, solvencyIndex, netMargin float64) models.CreditScore {
	cs := models.CreditScore{Base: MinCreditScore}

	// DSCR factor (max 300 points)
	if dscr > 2.0 {
		cs.DSCRPoints = 300
	} else if dscr > 1.25 {
		cs.DSCRPoints = 200
	} else if dscr > 1.0 {
		cs.DSCRPoints = 100
	}

	// Solvency factor (max 200 points)
	if solvencyIndex > 3.0 {
		cs.SolvencyPoints = 200
	} else if solvencyIndex > 1.8 {
		cs.SolvencyPoints = 100
	}

	// Net margin factor (max 100 points)
	if netMargin > 0.20 {
		cs.MarginPoints = 100
	} else if netMargin > 0.10 {
		cs.MarginPoints = 50
	}

	cs.Score = clamp(cs.Base+cs.DSCRPoints+cs.SolvencyPoints+cs.MarginPoints, MinCreditScore, MaxCreditScore)
	return cs
}

// CreditScore returns the bounded score in [300, 900]
func CreditScore(dscr, solvencyIndex, netMargin float64) int {
	return ScoreCredit(dscr, solvencyIndex, netMargin).Score
}

// Lender matches credit scores against the loan catalog and roadmap tiers
type Lender struct {
	loans    []LoanProduct
	roadmaps []RoadmapTier
}

// NewLender builds a lender over the given tables
func NewLender(t *Tables) *Lender {
	return &Lender{loans: t.Loans, roadmaps: t.Roadmaps}
}

// EligibleLoans evaluates every catalog product, in catalog order
func (l *Lender) EligibleLoans(score int, sales, ebit float64) []models.LoanOffer {
	offers := make([]models.LoanOffer, 0, len(l.loans))
	for _, p := range l.loans {
		eligible := score >= p.MinScore
		if p.MinSales > 0 && sales < p.MinSales {
			eligible = false
		}

		reason := reasonQualifies
		if !eligible {
			reason = fmt.Sprintf("requires score of %d+", p.MinScore)
		}

		offers = append(offers, models.LoanOffer{
			ID:          p.ID,
			Bank:        p.Bank,
			Name:        p.Name,
			MinScore:    p.MinScore,
			Amount:      p.Amount,
			Rate:        p.Rate,
			Type:        p.Type,
			Purpose:     p.Purpose,
			ApplyURL:    p.ApplyURL,
			IsEligible:  eligible,
			MatchReason: reason,
		})
	}
	return offers
}

// Roadmap returns the three improvement steps of the highest tier the score reaches
func (l *Lender) Roadmap(score int) []models.RoadmapStep {
	tier := l.roadmaps[0]
	for _, t := range l.roadmaps {
		if score >= t.MinScore {
			tier = t
		}
	}

	steps := make([]models.RoadmapStep, 0, len(tier.Steps))
	for i, s := range tier.Steps {
		steps = append(steps, models.RoadmapStep{
			Step:   i + 1,
			Task:   s.Task,
			Impact: s.Impact,
			Desc:   s.Desc,
		})
	}
	return steps
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
