package engine

import (
	"sort"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

// DefaultBudgetTolerancePct is the on_track band under full utilization.
const DefaultBudgetTolerancePct = 5

// runRateWindowDays is the trailing window for the end-of-period projection.
const runRateWindowDays = 7

// BuildBudgetReport computes performance, variance and a run-rate projection
// for one budget over [periodStart, periodEnd]. Transactions outside the
// period or of income type are ignored. Division-by-zero paths degrade to
// zero percentages rather than failing.
func BuildBudgetReport(budget *model.Budget, transactions []*model.Transaction, categories []*model.Category, periodStart, periodEnd, now time.Time, tolerancePct float64) *model.BudgetReport {
	if tolerancePct <= 0 {
		tolerancePct = DefaultBudgetTolerancePct
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = DisplayName(c.Name)
	}

	spentByCategory := make(map[string]float64)
	var totalSpent float64
	for _, t := range transactions {
		if t.Type != model.TransactionTypeExpense {
			continue
		}
		if t.Date.Before(periodStart) || t.Date.After(periodEnd) {
			continue
		}
		spentByCategory[t.CategoryID] += t.Amount
		totalSpent += t.Amount
	}

	report := &model.BudgetReport{
		BudgetID:       budget.ID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		TotalAllocated: round2(budget.TotalAllocated()),
		TotalSpent:     round2(totalSpent),
	}

	for _, alloc := range budget.Allocations {
		spent := spentByCategory[alloc.CategoryID]
		perf := model.CategoryPerformance{
			CategoryID:     alloc.CategoryID,
			CategoryName:   names[alloc.CategoryID],
			Allocated:      round2(alloc.Amount),
			Spent:          round2(spent),
			VarianceAmount: round2(spent - alloc.Amount),
			Favorable:      spent <= alloc.Amount,
		}
		if alloc.Amount > 0 {
			perf.UtilizationPercentage = round2(spent / alloc.Amount * 100)
			perf.VariancePercentage = round2((spent - alloc.Amount) / alloc.Amount * 100)
		}
		perf.Status = budgetStatus(spent, alloc.Amount, tolerancePct)
		report.Categories = append(report.Categories, perf)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].Spent > report.Categories[j].Spent
	})

	allocated := report.TotalAllocated
	if allocated > 0 {
		report.UtilizationPercentage = round2(totalSpent / allocated * 100)
		report.VariancePercentage = round2((totalSpent - allocated) / allocated * 100)
	}
	report.VarianceAmount = round2(totalSpent - allocated)
	report.Status = budgetStatus(totalSpent, allocated, tolerancePct)
	report.Projection = projectSpend(transactions, periodStart, periodEnd, now, totalSpent, allocated)
	return report
}

// budgetStatus is over when spend exceeds allocation, on_track within the
// tolerance band below full utilization, under otherwise.
func budgetStatus(spent, allocated, tolerancePct float64) model.BudgetStatus {
	if spent > allocated {
		return model.BudgetStatusOver
	}
	if allocated == 0 {
		return model.BudgetStatusOnTrack
	}
	utilization := spent / allocated * 100
	if utilization >= 100-tolerancePct {
		return model.BudgetStatusOnTrack
	}
	return model.BudgetStatusUnder
}

// projectSpend extends the trailing run rate to the end of the period.
func projectSpend(transactions []*model.Transaction, periodStart, periodEnd, now time.Time, totalSpent, allocated float64) model.BudgetProjection {
	today := dayOf(now)
	windowStart := today.AddDate(0, 0, -runRateWindowDays)
	if windowStart.Before(periodStart) {
		windowStart = dayOf(periodStart)
	}

	var windowSpent float64
	for _, t := range transactions {
		if t.Type != model.TransactionTypeExpense {
			continue
		}
		if t.Date.Before(windowStart) || t.Date.After(now) {
			continue
		}
		windowSpent += t.Amount
	}

	windowDays := int(today.Sub(windowStart).Hours() / 24)
	if windowDays < 1 {
		windowDays = 1
	}
	runRate := windowSpent / float64(windowDays)

	daysRemaining := int(dayOf(periodEnd).Sub(today).Hours() / 24)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	projected := totalSpent + runRate*float64(daysRemaining)
	return model.BudgetProjection{
		DailyRunRate:      round2(runRate),
		ProjectedSpend:    round2(projected),
		ProjectedVariance: round2(projected - allocated),
		DaysRemaining:     daysRemaining,
	}
}

// CurrentMonth returns the calendar month bounds containing now; the default
// reporting period when a request leaves the range unspecified.
func CurrentMonth(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}
