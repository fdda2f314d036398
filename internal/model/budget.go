package model

import "time"

// BudgetPeriod is the recurrence of a budget's allocation window.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// CategoryAllocation assigns part of a budget to one category.
type CategoryAllocation struct {
	CategoryID string  `json:"category_id"`
	Amount     float64 `json:"amount"`
}

// Budget is a user's allocation plan as supplied by the persistence layer.
type Budget struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	Name        string               `json:"name"`
	Period      BudgetPeriod         `json:"period"`
	StartDate   time.Time            `json:"start_date"`
	EndDate     time.Time            `json:"end_date"`
	Allocations []CategoryAllocation `json:"allocations"`
	IsActive    bool                 `json:"is_active"`
}

// TotalAllocated sums the category allocations.
func (b *Budget) TotalAllocated() float64 {
	var total float64
	for _, a := range b.Allocations {
		total += a.Amount
	}
	return total
}

// BudgetStatus classifies spend relative to allocation.
type BudgetStatus string

const (
	BudgetStatusOver    BudgetStatus = "over"
	BudgetStatusUnder   BudgetStatus = "under"
	BudgetStatusOnTrack BudgetStatus = "on_track"
)

// CategoryPerformance is one category's actual-vs-allocated breakdown.
type CategoryPerformance struct {
	CategoryID            string       `json:"category_id"`
	CategoryName          string       `json:"category_name"`
	Allocated             float64      `json:"allocated"`
	Spent                 float64      `json:"spent"`
	UtilizationPercentage float64      `json:"utilization_percentage"`
	Status                BudgetStatus `json:"status"`
	VarianceAmount        float64      `json:"variance_amount"`     // spent - allocated; negative = under
	VariancePercentage    float64      `json:"variance_percentage"` // variance / allocated * 100
	Favorable             bool         `json:"favorable"`
}

// BudgetProjection extends the trailing run rate to the end of the period.
type BudgetProjection struct {
	DailyRunRate      float64 `json:"daily_run_rate"`
	ProjectedSpend    float64 `json:"projected_spend"`
	ProjectedVariance float64 `json:"projected_variance"`
	DaysRemaining     int     `json:"days_remaining"`
}

// BudgetReport is the full performance/variance/forecast view of one budget.
type BudgetReport struct {
	BudgetID              string                `json:"budget_id"`
	PeriodStart           time.Time             `json:"period_start"`
	PeriodEnd             time.Time             `json:"period_end"`
	TotalAllocated        float64               `json:"total_allocated"`
	TotalSpent            float64               `json:"total_spent"`
	UtilizationPercentage float64               `json:"utilization_percentage"`
	Status                BudgetStatus          `json:"status"`
	VarianceAmount        float64               `json:"variance_amount"`
	VariancePercentage    float64               `json:"variance_percentage"`
	Categories            []CategoryPerformance `json:"categories"`
	Projection            BudgetProjection      `json:"projection"`
}
