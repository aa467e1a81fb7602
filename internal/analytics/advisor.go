package analytics

import (
	"strings"

	"github.com/Dan9191/finhealth/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SavingsAdvisor suggests cost reductions from categorized expenses
type SavingsAdvisor struct {
	rules SavingsRules
}

// NewSavingsAdvisor builds an advisor over the given tables
func NewSavingsAdvisor(t *Tables) *SavingsAdvisor {
	return &SavingsAdvisor{rules: t.Savings}
}

// Actions returns at most MaxActions suggestions: category rules first,
// then the thin-margin rule, then the fallback when nothing else applied.
func (a *SavingsAdvisor) Actions(categories []models.ExpenseCategory, netMargin float64) []models.SavingsAction {
	var actions []models.SavingsAction

	for _, cat := range categories {
		name := strings.ToLower(cat.Name)
		for _, rule := range a.rules.CategoryRules {
			if containsAny(name, rule.Keywords) {
				actions = append(actions, a.action(rule.SavingsTemplate, cat.Value))
				break
			}
		}
	}

	if netMargin < a.rules.ThinMargin.Threshold {
		actions = append(actions, a.action(a.rules.ThinMargin.SavingsTemplate, 0))
	}

	if len(actions) == 0 {
		actions = append(actions, a.action(a.rules.Fallback, 0))
	}

	if len(actions) > a.rules.MaxActions {
		actions = actions[:a.rules.MaxActions]
	}
	return actions
}

func (a *SavingsAdvisor) action(t SavingsTemplate, base float64) models.SavingsAction {
	saving := t.FixedSaving
	if t.SavingRate > 0 {
		saving = FormatRupees(base * t.SavingRate)
	}
	return models.SavingsAction{Title: t.Title, Desc: t.Desc, EstimatedSaving: saving}
}

// FormatRupees renders a whole-rupee amount with thousands separators
func FormatRupees(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("₹%d", int64(v))
}
