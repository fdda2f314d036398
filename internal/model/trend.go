package model

import "time"

// TrendDirection is the sign of the fitted slope.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendStrength grades the slope magnitude relative to the series mean.
type TrendStrength string

const (
	TrendWeak     TrendStrength = "weak"
	TrendModerate TrendStrength = "moderate"
	TrendStrong   TrendStrength = "strong"
)

// TrendSummary describes the directional drift of a series or category slice.
type TrendSummary struct {
	Direction   TrendDirection `json:"direction"`
	Strength    TrendStrength  `json:"strength"`
	Confidence  float64        `json:"confidence"`
	Description string         `json:"description"`
}

// CategoryTrend pairs a category with its trend and a one-step-ahead forecast.
type CategoryTrend struct {
	CategoryID         string       `json:"category_id"`
	CategoryName       string       `json:"category_name"`
	Trend              TrendSummary `json:"trend"`
	TotalSpent         float64      `json:"total_spent"`
	NextPeriodForecast float64      `json:"next_period_forecast"`
}

// WeekdayPattern is the average spend for one day of the week.
type WeekdayPattern struct {
	Weekday       time.Weekday `json:"weekday"`
	AverageAmount float64      `json:"average_amount"`
	Trend         string       `json:"trend"` // "above_average", "below_average", "average"
}

// MonthPattern is the average spend for one calendar month.
type MonthPattern struct {
	Month         time.Month `json:"month"`
	AverageAmount float64    `json:"average_amount"`
	Trend         string     `json:"trend"`
}

// SpendingPatterns summarizes calendar-position structure in the history.
type SpendingPatterns struct {
	Weekdays       []WeekdayPattern `json:"weekdays"`
	Months         []MonthPattern   `json:"months"`
	HasSeasonality bool             `json:"has_seasonality"`
	PeakMonth      time.Month       `json:"peak_month,omitempty"`
	LowMonth       time.Month       `json:"low_month,omitempty"`
}

// InsightPriority orders textual insights for display.
type InsightPriority string

const (
	InsightPriorityHigh   InsightPriority = "high"
	InsightPriorityMedium InsightPriority = "medium"
	InsightPriorityLow    InsightPriority = "low"
)

// Insight is one human-readable observation about the analyzed window.
type Insight struct {
	Priority InsightPriority `json:"priority"`
	Message  string          `json:"message"`
}

// TrendAnalysis is the full output of the trend analyzer.
type TrendAnalysis struct {
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	Overall     TrendSummary     `json:"overall"`
	Categories  []CategoryTrend  `json:"categories"`
	Patterns    SpendingPatterns `json:"patterns"`
	Insights    []Insight        `json:"insights"`
}
