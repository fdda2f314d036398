package engine

import (
	"math"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

// Pattern detection thresholds. Chosen by calibration against synthetic
// series: a 2%/day drift on a flat baseline trips the trend test, and a
// weekend amplitude of ~30% of the mean trips the seasonality test, while
// i.i.d. noise at CV 0.2 trips neither.
const (
	// minPatternPoints is the shortest series either detector will judge.
	minPatternPoints = 14
	// trendSlopeRatio is the minimum |slope|/mean per bucket to call a trend.
	trendSlopeRatio = 0.015
	// seasonalAmplitudeRatio is the minimum day-of-week amplitude relative to
	// the overall mean to call seasonality.
	seasonalAmplitudeRatio = 0.25
	// seasonalMinPerGroup is the minimum observations per weekday group.
	seasonalMinPerGroup = 2
)

// DetectTrend reports whether the series shows a sustained directional drift.
// It fits a linear regression of amount against the bucket index and compares
// the slope's relative magnitude to the series mean. Weak trends in short
// series go undetected on purpose.
func DetectTrend(series []model.TimeSeriesPoint) bool {
	if len(series) < minPatternPoints {
		return false
	}
	values := amounts(series)
	m := mean(values)
	if m == 0 {
		return false
	}
	slope, _, _ := linearRegression(values)
	return math.Abs(slope)/math.Abs(m) > trendSlopeRatio
}

// DetectSeasonality reports whether spend shows a recognizable day-of-week
// amplitude, e.g. weekend vs weekday spending. It groups buckets by weekday
// and compares the spread of group means against the overall mean.
func DetectSeasonality(series []model.TimeSeriesPoint) bool {
	if len(series) < minPatternPoints {
		return false
	}

	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, pt := range series {
		wd := pt.Date.Weekday()
		sums[wd] += pt.Amount
		counts[wd]++
	}
	if len(counts) < 7 {
		return false
	}
	for _, c := range counts {
		if c < seasonalMinPerGroup {
			return false
		}
	}

	overall := mean(amounts(series))
	if overall == 0 {
		return false
	}

	var maxDev float64
	for wd, sum := range sums {
		groupMean := sum / float64(counts[wd])
		if dev := math.Abs(groupMean - overall); dev > maxDev {
			maxDev = dev
		}
	}
	return maxDev/math.Abs(overall) > seasonalAmplitudeRatio
}
