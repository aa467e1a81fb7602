package analytics

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v2"
)

// DefaultIndustry is the label used when no sector can be inferred
const DefaultIndustry = "Default"

// ErrInvalidTables is returned when the reference tables are incomplete or corrupted
var ErrInvalidTables = errors.New("invalid analytics tables")

//go:embed tables.yaml
var defaultTables []byte

// Tables holds the immutable reference data the engine scores against
type Tables struct {
	Industries          []IndustryRule       `yaml:"industries"`
	DescriptionKeywords []IndustryRule       `yaml:"description_keywords"`
	Benchmarks          map[string]Benchmark `yaml:"benchmarks"`
	Loans               []LoanProduct        `yaml:"loans"`
	Roadmaps            []RoadmapTier        `yaml:"roadmaps"`
	Savings             SavingsRules         `yaml:"savings"`
	CategoryColors      []string             `yaml:"category_colors"`
}

// IndustryRule maps keywords to an industry label; overrides are checked first once the rule matches
type IndustryRule struct {
	Label     string         `yaml:"label"`
	Keywords  []string       `yaml:"keywords"`
	Overrides []IndustryRule `yaml:"overrides"`
}

// Benchmark holds the reference metrics of one industry
type Benchmark struct {
	NetMargin         float64 `yaml:"net_margin"`
	DSCR              float64 `yaml:"dscr"`
	QuickRatio        float64 `yaml:"quick_ratio"`
	InventoryTurnover float64 `yaml:"inventory_turnover"`
	Description       string  `yaml:"description"`
}

// LoanProduct is one entry of the loan catalog
type LoanProduct struct {
	ID       string  `yaml:"id"`
	Bank     string  `yaml:"bank"`
	Name     string  `yaml:"name"`
	MinScore int     `yaml:"min_score"`
	MinSales float64 `yaml:"min_sales"`
	Amount   string  `yaml:"amount"`
	Rate     string  `yaml:"rate"`
	Type     string  `yaml:"type"`
	Purpose  string  `yaml:"purpose"`
	ApplyURL string  `yaml:"apply_url"`
}

// RoadmapTier lists the improvement steps for scores at or above MinScore
type RoadmapTier struct {
	MinScore int           `yaml:"min_score"`
	Steps    []RoadmapTask `yaml:"steps"`
}

// RoadmapTask is one curated improvement action
type RoadmapTask struct {
	Task   string `yaml:"task"`
	Impact string `yaml:"impact"`
	Desc   string `yaml:"desc"`
}

// SavingsRules drives the savings advisor
type SavingsRules struct {
	MaxActions    int             `yaml:"max_actions"`
	CategoryRules []CategoryRule  `yaml:"category_rules"`
	ThinMargin    MarginRule      `yaml:"thin_margin"`
	Fallback      SavingsTemplate `yaml:"fallback"`
}

// SavingsTemplate is the text of a savings action
type SavingsTemplate struct {
	Title       string  `yaml:"title"`
	Desc        string  `yaml:"desc"`
	SavingRate  float64 `yaml:"saving_rate"`
	FixedSaving string  `yaml:"fixed_saving"`
}

// CategoryRule proposes an action for expense categories matching any keyword
type CategoryRule struct {
	Keywords        []string `yaml:"keywords"`
	SavingsTemplate `yaml:",inline"`
}

// MarginRule proposes an action when the net margin is below Threshold
type MarginRule struct {
	Threshold       float64 `yaml:"threshold"`
	SavingsTemplate `yaml:",inline"`
}

// LoadDefaultTables parses the embedded reference tables
func LoadDefaultTables() (*Tables, error) {
	return LoadTables(defaultTables)
}

// LoadTables parses and validates reference tables from YAML
func LoadTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTables, err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(t.Roadmaps, func(i, j int) bool {
		return t.Roadmaps[i].MinScore < t.Roadmaps[j].MinScore
	})
	return &t, nil
}

func (t *Tables) validate() error {
	if _, ok := t.Benchmarks[DefaultIndustry]; !ok {
		return fmt.Errorf("%w: missing %q benchmark", ErrInvalidTables, DefaultIndustry)
	}
	for _, rules := range [][]IndustryRule{t.Industries, t.DescriptionKeywords} {
		for _, r := range rules {
			if r.Label == "" || len(r.Keywords) == 0 {
				return fmt.Errorf("%w: industry rule %q has no keywords", ErrInvalidTables, r.Label)
			}
		}
	}
	if len(t.Loans) == 0 {
		return fmt.Errorf("%w: empty loan catalog", ErrInvalidTables)
	}
	if len(t.Roadmaps) == 0 {
		return fmt.Errorf("%w: no roadmap tiers", ErrInvalidTables)
	}
	for _, tier := range t.Roadmaps {
		if len(tier.Steps) != RoadmapLength {
			return fmt.Errorf("%w: roadmap tier %d has %d steps, want %d",
				ErrInvalidTables, tier.MinScore, len(tier.Steps), RoadmapLength)
		}
	}
	if t.Savings.MaxActions <= 0 {
		return fmt.Errorf("%w: savings max_actions must be positive", ErrInvalidTables)
	}
	if t.Savings.Fallback.Title == "" {
		return fmt.Errorf("%w: missing savings fallback", ErrInvalidTables)
	}
	if len(t.CategoryColors) == 0 {
		return fmt.Errorf("%w: no category colors", ErrInvalidTables)
	}
	return nil
}
