package analytics

import (
	"fmt"
	"math"

	"github.com/Dan9191/finhealth/internal/models"
)

// Flat-projection band for a single observation
const (
	singlePointUpper = 1.10
	singlePointLower = 0.90
)

// HorizonLimit is the longest projection Project will produce
const HorizonLimit = 600

// Project extrapolates a balance series horizon steps ahead.
// Two or more points fit a least-squares line whose confidence band is the
// series standard deviation widened by the square root of the step.
// Horizons beyond HorizonLimit are truncated to it.
func Project(series []float64, horizon int) models.ForecastResult {
	if len(series) == 0 || horizon < 1 {
		return models.ForecastResult{Mid: []float64{}, Upper: []float64{}, Lower: []float64{}}
	}
	horizon = min(horizon, HorizonLimit)

	res := models.ForecastResult{
		Mid:   make([]float64, horizon),
		Upper: make([]float64, horizon),
		Lower: make([]float64, horizon),
	}

	if len(series) == 1 {
		v := series[0]
		for i := 0; i < horizon; i++ {
			res.Mid[i] = round2(v)
			res.Upper[i] = round2(v * singlePointUpper)
			res.Lower[i] = round2(v * singlePointLower)
		}
		return res
	}

	slope, intercept := linearFit(series)
	sd := stdDev(series)
	for i := 1; i <= horizon; i++ {
		x := float64(len(series) + i - 1)
		projected := slope*x + intercept
		spread := sd * math.Sqrt(float64(i))

		res.Mid[i-1] = round2(projected)
		res.Upper[i-1] = round2(projected + spread)
		res.Lower[i-1] = round2(projected - spread)
	}
	return res
}

// PeriodLabels names the forecast steps: "Next Month", "+2 Months", ...
func PeriodLabels(horizon int) []string {
	horizon = min(horizon, HorizonLimit)
	labels := make([]string, 0, max(horizon, 0))
	for i := 1; i <= horizon; i++ {
		if i == 1 {
			labels = append(labels, "Next Month")
			continue
		}
		labels = append(labels, fmt.Sprintf("+%d Months", i))
	}
	return labels
}
