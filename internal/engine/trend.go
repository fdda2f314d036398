package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ledgerline/backend/internal/model"
)

// Trend strength tiers: per-bucket slope relative to the series mean.
const (
	trendModerateRatio = 0.01
	trendStrongRatio   = 0.035
	// patternDeviationRatio labels a weekday/month above or below average.
	patternDeviationRatio = 0.1
)

var titleCaser = cases.Title(language.English)

// AnalyzeTrends computes the overall and per-category trend summaries,
// weekday/month spending patterns and prioritized insights for a window.
func AnalyzeTrends(transactions []*model.Transaction, categories []*model.Category, start, end time.Time) *model.TrendAnalysis {
	var expenses []*model.Transaction
	for _, t := range transactions {
		if t.Type == model.TransactionTypeExpense {
			expenses = append(expenses, t)
		}
	}

	daily := AggregateDense(expenses, model.GranularityDay, start, end)
	overall := summarizeTrend(amounts(daily), "overall spending")

	analysis := &model.TrendAnalysis{
		PeriodStart: dayOf(start),
		PeriodEnd:   dayOf(end),
		Overall:     overall,
		Categories:  categoryTrends(expenses, categories, start, end),
		Patterns:    spendingPatterns(daily),
	}
	analysis.Insights = buildInsights(analysis)
	return analysis
}

// summarizeTrend classifies the directional drift of a value series. The
// regression R-squared doubles as the summary confidence.
func summarizeTrend(values []float64, subject string) model.TrendSummary {
	slope, _, rSquared := linearRegression(values)
	m := mean(values)

	direction := model.TrendStable
	strength := model.TrendWeak
	if m != 0 {
		ratio := math.Abs(slope) / math.Abs(m)
		if ratio > trendModerateRatio {
			if slope > 0 {
				direction = model.TrendIncreasing
			} else {
				direction = model.TrendDecreasing
			}
			strength = model.TrendModerate
			if ratio > trendStrongRatio {
				strength = model.TrendStrong
			}
		}
	}

	description := fmt.Sprintf("%s is %s", subject, direction)
	if direction != model.TrendStable {
		description = fmt.Sprintf("%s %s trend in %s", strength, direction, subject)
	}

	return model.TrendSummary{
		Direction:   direction,
		Strength:    strength,
		Confidence:  round2(clamp(rSquared, 0, 1)),
		Description: description,
	}
}

func categoryTrends(expenses []*model.Transaction, categories []*model.Category, start, end time.Time) []model.CategoryTrend {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = DisplayName(c.Name)
	}

	byCategory := make(map[string][]*model.Transaction)
	for _, t := range expenses {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	var out []model.CategoryTrend
	for catID, txns := range byCategory {
		series := AggregateDense(txns, model.GranularityDay, start, end)
		values := amounts(series)

		name := names[catID]
		if name == "" {
			name = "Uncategorized"
		}
		summary := summarizeTrend(values, name)

		var total float64
		for _, t := range txns {
			total += t.Amount
		}

		// One-step-ahead forecast: next day at the fitted line's edge.
		slope, intercept, _ := linearRegression(values)
		forecast := slope*float64(len(values)) + intercept
		if forecast < 0 {
			forecast = 0
		}

		out = append(out, model.CategoryTrend{
			CategoryID:         catID,
			CategoryName:       name,
			Trend:              summary,
			TotalSpent:         round2(total),
			NextPeriodForecast: round2(forecast),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalSpent > out[j].TotalSpent
	})
	return out
}

func spendingPatterns(daily []model.TimeSeriesPoint) model.SpendingPatterns {
	overall := mean(amounts(daily))

	weekdaySums := make(map[time.Weekday]float64)
	weekdayCounts := make(map[time.Weekday]int)
	monthSums := make(map[time.Month]float64)
	monthCounts := make(map[time.Month]int)
	for _, pt := range daily {
		wd, mo := pt.Date.Weekday(), pt.Date.Month()
		weekdaySums[wd] += pt.Amount
		weekdayCounts[wd]++
		monthSums[mo] += pt.Amount
		monthCounts[mo]++
	}

	patterns := model.SpendingPatterns{
		HasSeasonality: DetectSeasonality(daily),
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if weekdayCounts[wd] == 0 {
			continue
		}
		avg := weekdaySums[wd] / float64(weekdayCounts[wd])
		patterns.Weekdays = append(patterns.Weekdays, model.WeekdayPattern{
			Weekday:       wd,
			AverageAmount: round2(avg),
			Trend:         deviationLabel(avg, overall),
		})
	}

	var peakAvg, lowAvg float64
	for mo := time.January; mo <= time.December; mo++ {
		if monthCounts[mo] == 0 {
			continue
		}
		avg := monthSums[mo] / float64(monthCounts[mo])
		patterns.Months = append(patterns.Months, model.MonthPattern{
			Month:         mo,
			AverageAmount: round2(avg),
			Trend:         deviationLabel(avg, overall),
		})
		if patterns.PeakMonth == 0 || avg > peakAvg {
			patterns.PeakMonth = mo
			peakAvg = avg
		}
		if patterns.LowMonth == 0 || avg < lowAvg {
			patterns.LowMonth = mo
			lowAvg = avg
		}
	}
	return patterns
}

func deviationLabel(avg, overall float64) string {
	if overall == 0 {
		return "average"
	}
	switch {
	case avg > overall*(1+patternDeviationRatio):
		return "above_average"
	case avg < overall*(1-patternDeviationRatio):
		return "below_average"
	default:
		return "average"
	}
}

func buildInsights(analysis *model.TrendAnalysis) []model.Insight {
	var insights []model.Insight

	if analysis.Overall.Direction != model.TrendStable {
		priority := model.InsightPriorityMedium
		if analysis.Overall.Strength == model.TrendStrong {
			priority = model.InsightPriorityHigh
		}
		insights = append(insights, model.Insight{
			Priority: priority,
			Message:  analysis.Overall.Description,
		})
	}

	for _, ct := range analysis.Categories {
		if ct.Trend.Direction == model.TrendIncreasing && ct.Trend.Strength != model.TrendWeak {
			insights = append(insights, model.Insight{
				Priority: model.InsightPriorityMedium,
				Message: fmt.Sprintf("%s spending is rising; next period is projected at %.2f",
					ct.CategoryName, ct.NextPeriodForecast),
			})
		}
	}

	if analysis.Patterns.HasSeasonality && analysis.Patterns.PeakMonth != 0 {
		insights = append(insights, model.Insight{
			Priority: model.InsightPriorityLow,
			Message: fmt.Sprintf("spending follows a seasonal pattern, peaking in %s",
				analysis.Patterns.PeakMonth),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insightRank(insights[i].Priority) > insightRank(insights[j].Priority)
	})
	return insights
}

func insightRank(p model.InsightPriority) int {
	switch p {
	case model.InsightPriorityHigh:
		return 3
	case model.InsightPriorityMedium:
		return 2
	default:
		return 1
	}
}

// DisplayName normalizes a raw category name for user-facing output, e.g.
// "dining_out" becomes "Dining Out".
func DisplayName(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	return titleCaser.String(strings.ToLower(cleaned))
}
