package engine

import (
	"testing"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

func TestSummarizeTrend(t *testing.T) {
	t.Run("rising series", func(t *testing.T) {
		values := make([]float64, 30)
		for i := range values {
			values[i] = 10 + 2*float64(i)
		}
		summary := summarizeTrend(values, "groceries")

		if summary.Direction != model.TrendIncreasing {
			t.Errorf("direction = %s, want increasing", summary.Direction)
		}
		if summary.Strength != model.TrendStrong {
			t.Errorf("strength = %s, want strong", summary.Strength)
		}
		if summary.Confidence < 0.95 {
			t.Errorf("confidence = %.2f, want near 1 for a clean ramp", summary.Confidence)
		}
	})

	t.Run("flat series", func(t *testing.T) {
		values := make([]float64, 30)
		for i := range values {
			values[i] = 75
		}
		summary := summarizeTrend(values, "rent")

		if summary.Direction != model.TrendStable {
			t.Errorf("direction = %s, want stable", summary.Direction)
		}
	})

	t.Run("falling series", func(t *testing.T) {
		values := make([]float64, 30)
		for i := range values {
			values[i] = 300 - 5*float64(i)
		}
		summary := summarizeTrend(values, "transport")

		if summary.Direction != model.TrendDecreasing {
			t.Errorf("direction = %s, want decreasing", summary.Direction)
		}
	})
}

func TestAnalyzeTrends(t *testing.T) {
	txns := dailyExpenses(60, func(i int) float64 { return 50 + 3*float64(i) })
	categories := []*model.Category{
		{ID: "groceries", UserID: "user-1", Name: "groceries"},
	}

	analysis := AnalyzeTrends(txns, categories, testDay(0), testDay(59))

	if analysis.Overall.Direction != model.TrendIncreasing {
		t.Errorf("overall direction = %s, want increasing", analysis.Overall.Direction)
	}
	if len(analysis.Categories) != 1 {
		t.Fatalf("got %d category trends, want 1", len(analysis.Categories))
	}
	ct := analysis.Categories[0]
	if ct.CategoryName != "Groceries" {
		t.Errorf("category name = %q, want display-cased %q", ct.CategoryName, "Groceries")
	}
	if ct.NextPeriodForecast <= 0 {
		t.Errorf("next period forecast = %.2f, want positive", ct.NextPeriodForecast)
	}
	if len(analysis.Insights) == 0 {
		t.Error("expected at least one insight for a strong trend")
	}
	if len(analysis.Patterns.Weekdays) != 7 {
		t.Errorf("got %d weekday patterns, want 7", len(analysis.Patterns.Weekdays))
	}
}

func TestSpendingPatternsDeviationLabels(t *testing.T) {
	daily := dailySeries(28, func(i int) float64 {
		if testDay(i).Weekday() == time.Saturday {
			return 200
		}
		return 50
	})

	patterns := spendingPatterns(daily)

	if !patterns.HasSeasonality {
		t.Error("weekend spikes not reported as seasonality")
	}
	for _, wp := range patterns.Weekdays {
		if wp.Weekday == time.Saturday && wp.Trend != "above_average" {
			t.Errorf("saturday labeled %q, want above_average", wp.Trend)
		}
		if wp.Weekday == time.Tuesday && wp.Trend != "below_average" {
			t.Errorf("tuesday labeled %q, want below_average", wp.Trend)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"dining_out", "Dining Out"},
		{"RENT", "Rent"},
		{"pet-care", "Pet Care"},
		{"groceries", "Groceries"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.in); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
