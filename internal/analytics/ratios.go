package analytics

// NoDebtCoverage is the coverage reported when there is no debt service to cover
const NoDebtCoverage = 999.0

// Solvency index weights (Altman Z” for private, non-manufacturing firms)
const (
	workingCapitalWeight   = 6.56
	retainedEarningsWeight = 3.26
	ebitWeight             = 6.72
	equityWeight           = 1.05
)

// SolvencyIndex computes the weighted solvency composite, rounded to 2 decimals.
// It is 0 when total assets are zero.
func SolvencyIndex(workingCapital, retainedEarnings, ebit, equityValue, totalLiabilities, totalAssets float64) float64 {
	if totalAssets == 0 {
		return 0
	}
	x1 := workingCapital / totalAssets
	x2 := retainedEarnings / totalAssets
	x3 := ebit / totalAssets
	x4 := safeDiv(equityValue, totalLiabilities, 0)

	z := workingCapitalWeight*x1 + retainedEarningsWeight*x2 + ebitWeight*x3 + equityWeight*x4
	return round2(z)
}

// DebtCoverage computes the debt-service coverage ratio, rounded to 2 decimals.
// Without debt service it returns NoDebtCoverage.
func DebtCoverage(netOperatingIncome, totalDebtService float64) float64 {
	if totalDebtService == 0 {
		return NoDebtCoverage
	}
	return round2(netOperatingIncome / totalDebtService)
}
