package analytics

import (
	"strings"

	"github.com/Dan9191/finhealth/internal/models"
)

// UserMetrics are the business's own figures compared against its sector
type UserMetrics struct {
	NetMargin  float64
	DSCR       float64
	QuickRatio float64
}

// IndustryClassifier infers a sector from names and transaction text
type IndustryClassifier struct {
	nameRules  []IndustryRule
	descRules  []IndustryRule
	benchmarks map[string]Benchmark
}

// NewIndustryClassifier builds a classifier over the given tables
func NewIndustryClassifier(t *Tables) *IndustryClassifier {
	return &IndustryClassifier{
		nameRules:  t.Industries,
		descRules:  t.DescriptionKeywords,
		benchmarks: t.Benchmarks,
	}
}

// Identify runs the keyword cascade on the company name, then on the
// concatenated transaction descriptions. First match wins.
func (c *IndustryClassifier) Identify(companyName string, txs []models.Transaction) string {
	name := strings.ToLower(companyName)
	for _, rule := range c.nameRules {
		if !containsAny(name, rule.Keywords) {
			continue
		}
		for _, sub := range rule.Overrides {
			if containsAny(name, sub.Keywords) {
				return sub.Label
			}
		}
		return rule.Label
	}

	descs := make([]string, 0, len(txs))
	for _, tx := range txs {
		descs = append(descs, strings.ToLower(tx.Description))
	}
	all := strings.Join(descs, " ")
	for _, rule := range c.descRules {
		if containsAny(all, rule.Keywords) {
			return rule.Label
		}
	}
	return DefaultIndustry
}

// Benchmark returns the reference figures for an industry, or the default ones
func (c *IndustryClassifier) Benchmark(industry string) Benchmark {
	if b, ok := c.benchmarks[industry]; ok {
		return b
	}
	return c.benchmarks[DefaultIndustry]
}

// Comparison lines up the user's metrics against the industry benchmark.
// Net margin is a percentage with 1 decimal; DSCR and quick ratio use 2 decimals.
func (c *IndustryClassifier) Comparison(industry string, m UserMetrics) models.BenchmarkComparison {
	b := c.Benchmark(industry)
	return models.BenchmarkComparison{
		Industry:    industry,
		Description: b.Description,
		Comparisons: []models.MetricComparison{
			{Metric: "Net Margin", User: round1(m.NetMargin * 100), Industry: round1(b.NetMargin * 100)},
			{Metric: "DSCR", User: round2(m.DSCR), Industry: round2(b.DSCR)},
			{Metric: "Quick Ratio", User: round2(m.QuickRatio), Industry: round2(b.QuickRatio)},
		},
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
