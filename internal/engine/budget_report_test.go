package engine

import (
	"testing"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

func TestBuildBudgetReport(t *testing.T) {
	budget := &model.Budget{
		ID:     "budget-1",
		UserID: "user-1",
		Name:   "Monthly essentials",
		Period: model.BudgetPeriodMonthly,
		Allocations: []model.CategoryAllocation{
			{CategoryID: "groceries", Amount: 2500},
			{CategoryID: "transport", Amount: 1500},
		},
		IsActive: true,
	}
	categories := []*model.Category{
		{ID: "groceries", Name: "groceries"},
		{ID: "transport", Name: "transport"},
	}

	periodStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	now := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

	txns := []*model.Transaction{
		{ID: "t1", Amount: 2000, Date: testDay(5), Type: model.TransactionTypeExpense, CategoryID: "groceries"},
		{ID: "t2", Amount: 1000, Date: testDay(10), Type: model.TransactionTypeExpense, CategoryID: "transport"},
		// Income and out-of-period records must be ignored.
		{ID: "t3", Amount: 5000, Date: testDay(12), Type: model.TransactionTypeIncome},
		{ID: "t4", Amount: 900, Date: testDay(45), Type: model.TransactionTypeExpense, CategoryID: "groceries"},
	}

	report := BuildBudgetReport(budget, txns, categories, periodStart, periodEnd, now, DefaultBudgetTolerancePct)

	if report.TotalAllocated != 4000 {
		t.Errorf("total allocated = %.2f, want 4000", report.TotalAllocated)
	}
	if report.TotalSpent != 3000 {
		t.Errorf("total spent = %.2f, want 3000", report.TotalSpent)
	}
	if report.UtilizationPercentage != 75 {
		t.Errorf("utilization = %.2f, want 75", report.UtilizationPercentage)
	}
	if report.Status != model.BudgetStatusUnder {
		t.Errorf("status = %s, want under", report.Status)
	}
	if report.VarianceAmount != -1000 {
		t.Errorf("variance amount = %.2f, want -1000", report.VarianceAmount)
	}
	if report.VariancePercentage != -25 {
		t.Errorf("variance percentage = %.2f, want -25", report.VariancePercentage)
	}

	if len(report.Categories) != 2 {
		t.Fatalf("got %d category rows, want 2", len(report.Categories))
	}
	// Sorted by spend descending.
	if report.Categories[0].CategoryID != "groceries" {
		t.Errorf("first category = %s, want groceries", report.Categories[0].CategoryID)
	}
	groceries := report.Categories[0]
	if groceries.UtilizationPercentage != 80 {
		t.Errorf("groceries utilization = %.2f, want 80", groceries.UtilizationPercentage)
	}
	if !groceries.Favorable {
		t.Error("groceries under allocation must be favorable")
	}
}

func TestBudgetStatus(t *testing.T) {
	cases := []struct {
		name             string
		spent, allocated float64
		want             model.BudgetStatus
	}{
		{"over on any excess", 4001, 4000, model.BudgetStatusOver},
		{"on track inside tolerance", 3900, 4000, model.BudgetStatusOnTrack},
		{"exactly full is on track", 4000, 4000, model.BudgetStatusOnTrack},
		{"under below tolerance band", 3000, 4000, model.BudgetStatusUnder},
		{"zero allocation is on track", 0, 0, model.BudgetStatusOnTrack},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := budgetStatus(tc.spent, tc.allocated, DefaultBudgetTolerancePct); got != tc.want {
				t.Errorf("budgetStatus(%.0f, %.0f) = %s, want %s", tc.spent, tc.allocated, got, tc.want)
			}
		})
	}
}

func TestProjectSpendRunRate(t *testing.T) {
	periodStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)

	// 50/day over the trailing week (Jan 14 through Jan 20).
	var txns []*model.Transaction
	for i := 13; i < 20; i++ {
		txns = append(txns, &model.Transaction{
			ID: string(rune('a' + i)), Amount: 50, Date: testDay(i).Add(time.Hour),
			Type: model.TransactionTypeExpense,
		})
	}

	proj := projectSpend(txns, periodStart, periodEnd, now, 350, 2000)

	if proj.DailyRunRate != 50 {
		t.Errorf("run rate = %.2f, want 50", proj.DailyRunRate)
	}
	if proj.DaysRemaining != 10 {
		t.Errorf("days remaining = %d, want 10", proj.DaysRemaining)
	}
	if proj.ProjectedSpend != 850 {
		t.Errorf("projected spend = %.2f, want 850", proj.ProjectedSpend)
	}
	if proj.ProjectedVariance != -1150 {
		t.Errorf("projected variance = %.2f, want -1150", proj.ProjectedVariance)
	}
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2025, 2, 14, 16, 30, 0, 0, time.UTC)
	start, end := CurrentMonth(now)

	if !start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %s", start)
	}
	if !end.Equal(time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("end = %s", end)
	}
}
