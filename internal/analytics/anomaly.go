package analytics

import (
	"math"

	"github.com/Dan9191/finhealth/internal/models"
)

const (
	// DefaultContamination is the expected share of transactions flagged as outliers
	DefaultContamination = 0.05
	// MinAnomalySample is the smallest population worth scoring
	MinAnomalySample = 5
	// HighSeverityAmount is the magnitude above which an anomaly is high severity
	HighSeverityAmount = 50000.0

	anomalyReason = "Unusual amount for this business pattern."

	// consistency constants turning MAD and mean absolute deviation into a sigma estimate
	madScale     = 1.4826
	meanAbsScale = 1.2533
)

// AnomalyDetector flags transactions whose magnitude is far from the population's.
//
// Each transaction is scored with a robust z-score, |x - median| / (1.4826 * MAD),
// falling back to the mean absolute deviation when more than half the amounts are
// identical. Scores strictly above the (1 - Contamination) percentile of all scores
// are outliers, so roughly Contamination of the population is flagged; ties at the
// cutoff are never flagged.
type AnomalyDetector struct {
	Contamination   float64
	MaxTransactions int // 0 means unbounded; otherwise only the most recent are scored
}

// NewAnomalyDetector returns a detector; out-of-range contamination falls back to the default
func NewAnomalyDetector(contamination float64, maxTransactions int) *AnomalyDetector {
	if contamination <= 0 || contamination >= 0.5 {
		contamination = DefaultContamination
	}
	if maxTransactions < 0 {
		maxTransactions = 0
	}
	return &AnomalyDetector{Contamination: contamination, MaxTransactions: maxTransactions}
}

// Detect returns the anomalous transactions in input order
func (d *AnomalyDetector) Detect(txs []models.Transaction) []models.AnomalyRecord {
	anomalies := []models.AnomalyRecord{}
	if d.MaxTransactions > 0 && len(txs) > d.MaxTransactions {
		txs = txs[len(txs)-d.MaxTransactions:]
	}
	if len(txs) < MinAnomalySample {
		return anomalies
	}

	scores := d.Scores(txs)
	if scores == nil {
		return anomalies
	}
	cutoff := percentile(scores, 1-d.Contamination)

	for i, tx := range txs {
		if scores[i] <= cutoff {
			continue
		}
		amount := tx.Magnitude()
		severity := models.SeverityMedium
		if amount > HighSeverityAmount {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, models.AnomalyRecord{
			ID:          tx.ID,
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      amount,
			Direction:   tx.Direction(),
			Reason:      anomalyReason,
			Severity:    severity,
		})
	}
	return anomalies
}

// Scores returns the robust z-score of every transaction magnitude,
// or nil when the amounts have no spread at all.
func (d *AnomalyDetector) Scores(txs []models.Transaction) []float64 {
	amounts := make([]float64, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Magnitude()
	}

	center := median(amounts)
	deviations := make([]float64, len(amounts))
	for i, a := range amounts {
		deviations[i] = math.Abs(a - center)
	}

	scale := madScale * median(deviations)
	if scale == 0 {
		scale = meanAbsScale * mean(deviations)
	}
	if scale == 0 {
		return nil
	}

	scores := make([]float64, len(amounts))
	for i, dev := range deviations {
		scores[i] = dev / scale
	}
	return scores
}
