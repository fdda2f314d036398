package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/model"
)

// Anomaly detection parameters. A point is anomalous when either the z-score
// rule or the IQR rule fires against its sliding window.
const (
	// defaultZThreshold is the z-score cutoff at sensitivity 0.5.
	defaultZThreshold = 2.5
	// iqrMultiplier bounds the Tukey fences at Q1/Q3 ± multiplier*IQR.
	iqrMultiplier = 1.5
	// anomalyWindowDays is the sliding comparison window.
	anomalyWindowDays = 7
	// anomalyMinSamples is the minimum window population for a rule to fire.
	anomalyMinSamples = 10
)

// DetectAnomalies scores every transaction in the window against its trailing
// peers and returns the flagged outliers with severity and explanation. A
// constant-value series yields no anomalies.
func DetectAnomalies(query model.AnomalyQuery, transactions []*model.Transaction) *model.AnomalyReport {
	report := &model.AnomalyReport{
		Anomalies:       []model.Anomaly{},
		CountBySeverity: make(map[model.AnomalySeverity]int),
	}
	if len(transactions) == 0 {
		report.DetectionAccuracy = 1
		return report
	}

	zThreshold := zThresholdFor(query.Sensitivity)

	sorted := make([]*model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	merchantCounts := make(map[string]int)
	for _, t := range sorted {
		if t.Description != "" {
			merchantCounts[t.Description]++
		}
	}

	for _, t := range sorted {
		window := windowAmounts(sorted, t, anomalyWindowDays)
		if len(window) < anomalyMinSamples {
			// Thin window: compare against the whole requested range instead.
			window = allAmounts(sorted)
		}
		if len(window) < anomalyMinSamples {
			continue
		}

		if a, ok := scoreTransaction(t, window, zThreshold); ok {
			report.Anomalies = append(report.Anomalies, a)
			continue
		}

		// A merchant seen exactly once in the window is worth a quiet flag.
		if t.Description != "" && merchantCounts[t.Description] == 1 {
			report.Anomalies = append(report.Anomalies, model.Anomaly{
				ID:            uuid.New().String(),
				TransactionID: t.ID,
				Type:          model.AnomalyTypeNewMerchant,
				Severity:      model.AnomalySeverityLow,
				Date:          t.Date,
				CategoryID:    t.CategoryID,
				ActualValue:   t.Amount,
				Confidence:    0.5,
				Explanation:   fmt.Sprintf("first transaction seen for merchant %q in this period", t.Description),
			})
		}
	}

	sort.Slice(report.Anomalies, func(i, j int) bool {
		si, sj := severityRank(report.Anomalies[i].Severity), severityRank(report.Anomalies[j].Severity)
		if si != sj {
			return si > sj
		}
		return report.Anomalies[i].ActualValue > report.Anomalies[j].ActualValue
	})

	catCounts := make(map[string]int)
	var confidenceSum float64
	for _, a := range report.Anomalies {
		report.CountBySeverity[a.Severity]++
		report.AnomalousSpendTotal += a.ActualValue
		confidenceSum += a.Confidence
		if a.CategoryID != "" {
			catCounts[a.CategoryID]++
		}
	}
	report.TotalAnomalies = len(report.Anomalies)

	var topCount int
	for cat, count := range catCounts {
		if count > topCount {
			topCount = count
			report.TopCategoryID = cat
		}
	}

	// Retrospective confidence aggregate; with nothing flagged there is
	// nothing to second-guess.
	if report.TotalAnomalies == 0 {
		report.DetectionAccuracy = 1
	} else {
		report.DetectionAccuracy = round2(confidenceSum / float64(report.TotalAnomalies))
	}
	return report
}

// scoreTransaction applies the hybrid z-score/IQR rule to one transaction
// against its window population (which includes the transaction itself).
func scoreTransaction(t *model.Transaction, window []float64, zThreshold float64) (model.Anomaly, bool) {
	m := mean(window)
	sd := stddev(window)

	var exceedance float64 // how far past the firing threshold, as a ratio
	var zScore float64
	fired := false

	if sd > 0 {
		zScore = (t.Amount - m) / sd
		if math.Abs(zScore) > zThreshold {
			fired = true
			exceedance = math.Abs(zScore) / zThreshold
		}
	}

	q1, q3 := quartiles(window)
	if iqr := q3 - q1; iqr > 0 {
		lower := q1 - iqrMultiplier*iqr
		upper := q3 + iqrMultiplier*iqr
		if t.Amount > upper || t.Amount < lower {
			fired = true
			var iqrExceedance float64
			if t.Amount > upper {
				iqrExceedance = (t.Amount - q3) / (iqrMultiplier * iqr)
			} else {
				iqrExceedance = (q1 - t.Amount) / (iqrMultiplier * iqr)
			}
			if iqrExceedance > exceedance {
				exceedance = iqrExceedance
			}
		}
	}

	if !fired {
		return model.Anomaly{}, false
	}

	deviation := t.Amount - m
	var deviationPct float64
	if m != 0 {
		deviationPct = deviation / m * 100
	}

	direction := "above"
	if deviation < 0 {
		direction = "below"
	}

	return model.Anomaly{
		ID:                  uuid.New().String(),
		TransactionID:       t.ID,
		Type:                model.AnomalyTypeAmountOutlier,
		Severity:            severityFor(exceedance),
		Date:                t.Date,
		CategoryID:          t.CategoryID,
		ExpectedValue:       round2(m),
		ActualValue:         t.Amount,
		Deviation:           round2(deviation),
		DeviationPercentage: round2(deviationPct),
		Confidence:          clamp(0.5+0.2*(exceedance-1), 0.5, 0.99),
		Explanation: fmt.Sprintf("amount %.2f is %.1f standard deviations %s the %d-day average of %.2f",
			t.Amount, math.Abs(zScore), direction, anomalyWindowDays, m),
	}, true
}

// Severity is graded by how far the score exceeds its firing threshold.
func severityFor(exceedance float64) model.AnomalySeverity {
	switch {
	case exceedance >= 2.2:
		return model.AnomalySeverityCritical
	case exceedance >= 1.6:
		return model.AnomalySeverityHigh
	case exceedance >= 1.2:
		return model.AnomalySeverityMedium
	default:
		return model.AnomalySeverityLow
	}
}

func severityRank(s model.AnomalySeverity) int {
	switch s {
	case model.AnomalySeverityCritical:
		return 4
	case model.AnomalySeverityHigh:
		return 3
	case model.AnomalySeverityMedium:
		return 2
	default:
		return 1
	}
}

// zThresholdFor maps a [0,1] sensitivity to a z cutoff; 0.5 keeps the default.
func zThresholdFor(sensitivity float64) float64 {
	if sensitivity <= 0 || sensitivity > 1 {
		return defaultZThreshold
	}
	return 3.5 - 2.0*sensitivity
}

// windowAmounts collects amounts of transactions within windowDays before the
// candidate through its own date, candidate included.
func windowAmounts(sorted []*model.Transaction, candidate *model.Transaction, windowDays int) []float64 {
	windowStart := candidate.Date.AddDate(0, 0, -windowDays)
	var out []float64
	for _, t := range sorted {
		if t.Date.After(candidate.Date) {
			break
		}
		if t.Date.Before(windowStart) {
			continue
		}
		out = append(out, t.Amount)
	}
	return out
}

func allAmounts(transactions []*model.Transaction) []float64 {
	out := make([]float64, len(transactions))
	for i, t := range transactions {
		out[i] = t.Amount
	}
	return out
}
