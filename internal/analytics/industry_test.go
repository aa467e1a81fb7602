package analytics

import (
	"testing"

	"github.com/Dan9191/finhealth/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify_ByName(t *testing.T) {
	c := NewIndustryClassifier(mustTables(t))

	tests := []struct {
		name     string
		company  string
		expected string
	}{
		{"textiles", "Sharma Textiles Pvt Ltd", "Textiles"},
		{"services", "Bright Tech Solutions", "Services/IT"},
		{"healthcare", "City Medical Centre", "Healthcare"},
		{"pharma takes precedence", "Apollo Pharma Clinic", "Pharma"},
		{"hospitality takes precedence", "Sunrise Hotel", "Hospitality"},
		{"food", "Green Cafe", "Food & Beverage"},
		{"logistics", "Acme Logistics", "Logistics"},
		{"case insensitive", "KIRANA BAZAAR", "Retail"},
		{"real estate phrase", "Prime Real Estate LLP", "Real Estate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Identify(tt.company, nil))
		})
	}
}

func TestIdentify_ByTransactions(t *testing.T) {
	c := NewIndustryClassifier(mustTables(t))

	assert.Equal(t, "Manufacturing", c.Identify("Random Co", []models.Transaction{
		{Description: "raw material purchase"},
	}))
	assert.Equal(t, "Services/IT", c.Identify("Acme Co", []models.Transaction{
		{Description: "Office rent"},
		{Description: "Monthly SaaS bill"},
	}))
	assert.Equal(t, "Logistics", c.Identify("Acme Co", []models.Transaction{
		{Description: "Same day DELIVERY charges"},
	}))
}

func TestIdentify_NameBeatsTransactions(t *testing.T) {
	c := NewIndustryClassifier(mustTables(t))
	assert.Equal(t, "Textiles", c.Identify("Sharma Textiles", []models.Transaction{
		{Description: "server hosting"},
	}))
}

func TestIdentify_Default(t *testing.T) {
	c := NewIndustryClassifier(mustTables(t))
	assert.Equal(t, DefaultIndustry, c.Identify("Nothing Co", nil))
	assert.Equal(t, DefaultIndustry, c.Identify("", []models.Transaction{{Description: "misc"}}))
}

func TestComparison(t *testing.T) {
	c := NewIndustryClassifier(mustTables(t))

	cmp := c.Comparison("Textiles", UserMetrics{NetMargin: 0.4, DSCR: 6.666, QuickRatio: 1})

	assert.Equal(t, "Textiles", cmp.Industry)
	assert.Equal(t, "Labor-intensive, seasonal demand, export-oriented.", cmp.Description)
	require.Len(t, cmp.Comparisons, 3)
	assert.Equal(t, models.MetricComparison{Metric: "Net Margin", User: 40, Industry: 6}, cmp.Comparisons[0])
	assert.Equal(t, models.MetricComparison{Metric: "DSCR", User: 6.67, Industry: 1.3}, cmp.Comparisons[1])
	assert.Equal(t, models.MetricComparison{Metric: "Quick Ratio", User: 1, Industry: 0.9}, cmp.Comparisons[2])
}

func TestComparison_UnknownIndustryUsesDefault(t *testing.T) {
	c := NewIndustryClassifier(mustTables(t))

	cmp := c.Comparison("Space Mining", UserMetrics{NetMargin: 0.123})

	assert.Equal(t, "Space Mining", cmp.Industry)
	assert.Equal(t, "Standard business growth profile.", cmp.Description)
	assert.Equal(t, 12.3, cmp.Comparisons[0].User)
	assert.Equal(t, 15.0, cmp.Comparisons[0].Industry)
}

func TestBenchmarkTableCoversEveryLabel(t *testing.T) {
	tables := mustTables(t)
	assert.Len(t, tables.Benchmarks, 16)

	for _, rule := range tables.Industries {
		assert.Contains(t, tables.Benchmarks, rule.Label)
		for _, sub := range rule.Overrides {
			assert.Contains(t, tables.Benchmarks, sub.Label)
		}
	}
	for _, rule := range tables.DescriptionKeywords {
		assert.Contains(t, tables.Benchmarks, rule.Label)
	}
}
