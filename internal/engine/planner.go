package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/model"
)

// UpdateGoalProgress recomputes a goal's progress snapshot for a new current
// amount. Progress is clamped to [0,100]; status derives from it: completed
// at 100%, in_progress once any amount accrues, not_started otherwise. The
// historical record is never decreased, only this snapshot changes.
func UpdateGoalProgress(goal *model.FinancialGoal, currentAmount float64, now time.Time) error {
	if goal.TargetAmount <= 0 {
		return invalidParameterf("goal target amount must be positive, got %.2f", goal.TargetAmount)
	}
	if currentAmount < 0 {
		return invalidParameterf("goal current amount cannot be negative, got %.2f", currentAmount)
	}

	goal.CurrentAmount = currentAmount
	goal.ProgressPercentage = round2(clamp(currentAmount/goal.TargetAmount*100, 0, 100))

	switch {
	case goal.ProgressPercentage >= 100:
		goal.Status = model.GoalStatusCompleted
	case currentAmount > 0:
		goal.Status = model.GoalStatusInProgress
	default:
		goal.Status = model.GoalStatusNotStarted
	}

	goal.EstimatedCompletionDate = nil
	if goal.Status == model.GoalStatusCompleted {
		d := dayOf(now)
		goal.EstimatedCompletionDate = &d
	} else if goal.MonthlyContribution > 0 {
		remaining := goal.TargetAmount - currentAmount
		months := int(math.Ceil(remaining / goal.MonthlyContribution))
		d := dayOf(now).AddDate(0, months, 0)
		goal.EstimatedCompletionDate = &d
	}

	goal.RiskLevel = goalRiskLevel(goal, now)
	goal.UpdatedAt = now
	return nil
}

// goalRiskLevel compares the estimated completion date with the target date.
func goalRiskLevel(goal *model.FinancialGoal, now time.Time) string {
	if goal.Status == model.GoalStatusCompleted {
		return "low"
	}
	if goal.TargetDate.IsZero() || goal.EstimatedCompletionDate == nil {
		return "medium"
	}
	if !goal.EstimatedCompletionDate.After(goal.TargetDate) {
		return "low"
	}
	// Behind schedule; grade by how far.
	behind := goal.EstimatedCompletionDate.Sub(goal.TargetDate)
	if behind > 180*24*time.Hour {
		return "high"
	}
	return "medium"
}

// ProjectRetirement computes the future value of current savings plus a
// monthly annuity, compounded monthly until retirement age:
//
//	FV = savings*(1+r)^n + contribution*((1+r)^n - 1)/r
//
// Shortfall against the target drives contribution-increase recommendations.
func ProjectRetirement(plan model.RetirementPlan) (*model.RetirementPlan, error) {
	if plan.RetirementAge <= plan.CurrentAge {
		return nil, invalidParameterf("retirement age %d must be greater than current age %d",
			plan.RetirementAge, plan.CurrentAge)
	}
	if plan.CurrentSavings < 0 || plan.MonthlyContribution < 0 {
		return nil, invalidParameterf("savings and contributions cannot be negative")
	}

	months := (plan.RetirementAge - plan.CurrentAge) * 12
	monthlyRate := plan.ExpectedReturnPct / 100 / 12

	var projected float64
	if monthlyRate == 0 {
		projected = plan.CurrentSavings + plan.MonthlyContribution*float64(months)
	} else {
		growth := math.Pow(1+monthlyRate, float64(months))
		projected = plan.CurrentSavings*growth + plan.MonthlyContribution*(growth-1)/monthlyRate
	}

	plan.ProjectedAmount = round2(projected)
	plan.Shortfall = round2(math.Max(0, plan.TargetAmount-projected))
	plan.Recommendations = retirementRecommendations(plan, months, monthlyRate)
	return &plan, nil
}

func retirementRecommendations(plan model.RetirementPlan, months int, monthlyRate float64) []string {
	if plan.Shortfall <= 0 {
		return []string{"projected savings meet the retirement target; maintain current contributions"}
	}

	var recs []string
	recs = append(recs, fmt.Sprintf("projected savings fall %.2f short of the %.2f target", plan.Shortfall, plan.TargetAmount))

	// Extra monthly contribution needed to close the gap by retirement.
	var extra float64
	if monthlyRate == 0 {
		extra = plan.Shortfall / float64(months)
	} else {
		growth := math.Pow(1+monthlyRate, float64(months))
		extra = plan.Shortfall * monthlyRate / (growth - 1)
	}
	recs = append(recs, fmt.Sprintf("increase monthly contributions by %.2f to close the gap", round2(extra)))

	if plan.InflationRatePct > plan.ExpectedReturnPct {
		recs = append(recs, "expected return is below inflation; review the investment allocation")
	}
	return recs
}

// PlanDebtPayoff simulates month-by-month amortization of the debts under the
// given strategy, applying minimum payments to every debt and the extra
// payment to the top-priority one. Every debt's payment must exceed its
// monthly interest or the schedule would never terminate.
func PlanDebtPayoff(debts []model.Debt, strategy model.DebtStrategy, extraPayment float64) (*model.DebtPayoffPlan, error) {
	if len(debts) == 0 {
		return nil, invalidParameterf("at least one debt is required")
	}
	if strategy != model.DebtStrategyAvalanche && strategy != model.DebtStrategySnowball {
		return nil, invalidParameterf("unknown payoff strategy %q", strategy)
	}
	if extraPayment < 0 {
		return nil, invalidParameterf("extra payment cannot be negative")
	}

	ordered := make([]model.Debt, len(debts))
	copy(ordered, debts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if strategy == model.DebtStrategyAvalanche {
			return ordered[i].InterestRate > ordered[j].InterestRate
		}
		return ordered[i].Balance < ordered[j].Balance
	})

	var totalDebt float64
	for i := range ordered {
		d := &ordered[i]
		if d.Balance <= 0 {
			return nil, invalidParameterf("debt %q has non-positive balance %.2f", d.Name, d.Balance)
		}
		if d.InterestRate < 0 {
			return nil, invalidParameterf("debt %q has negative interest rate", d.Name)
		}
		monthlyInterest := d.Balance * d.InterestRate / 100 / 12
		if d.MinimumPayment <= monthlyInterest {
			return nil, invalidParameterf("debt %q: minimum payment %.2f does not cover monthly interest %.2f",
				d.Name, d.MinimumPayment, monthlyInterest)
		}
		d.Priority = i + 1
		totalDebt += d.Balance
	}

	plan := &model.DebtPayoffPlan{
		Strategy:     strategy,
		Debts:        ordered,
		TotalDebt:    round2(totalDebt),
		ExtraPayment: extraPayment,
	}

	balances := make([]float64, len(ordered))
	for i, d := range ordered {
		balances[i] = d.Balance
	}

	for month := 1; ; month++ {
		var monthPayment, monthInterest, monthPrincipal float64
		extraRemaining := extraPayment

		for i := range ordered {
			if balances[i] <= 0 {
				continue
			}
			interest := balances[i] * ordered[i].InterestRate / 100 / 12
			payment := ordered[i].MinimumPayment

			// Debts iterate in priority order, so the first one still open
			// receives the entire extra payment.
			if extraRemaining > 0 {
				payment += extraRemaining
				extraRemaining = 0
			}

			if payment > balances[i]+interest {
				payment = balances[i] + interest
			}
			principal := payment - interest

			balances[i] -= principal
			if balances[i] < 0.005 {
				balances[i] = 0
			}
			monthPayment += payment
			monthInterest += interest
			monthPrincipal += principal
		}

		var remaining float64
		for _, b := range balances {
			remaining += b
		}

		plan.Timeline = append(plan.Timeline, model.DebtTimelineEntry{
			Month:         month,
			RemainingDebt: round2(remaining),
			Payment:       round2(monthPayment),
			Interest:      round2(monthInterest),
			Principal:     round2(monthPrincipal),
		})
		plan.TotalInterestPaid += monthInterest

		if remaining <= 0 {
			plan.MonthsToPayoff = month
			break
		}
	}

	plan.TotalInterestPaid = round2(plan.TotalInterestPaid)
	return plan, nil
}

// BuildRecommendations applies the planning rules to the upstream snapshot.
// A nil or partial snapshot degrades to an empty, valid list.
func BuildRecommendations(snapshot *model.FinancialSnapshot) []model.Recommendation {
	recs := []model.Recommendation{}
	if snapshot == nil {
		return recs
	}

	for _, report := range snapshot.BudgetReports {
		if report == nil {
			continue
		}
		if report.UtilizationPercentage > 100 {
			recs = append(recs, model.Recommendation{
				ID:       uuid.New().String(),
				Type:     model.RecommendationBudget,
				Priority: model.InsightPriorityHigh,
				Title:    "Budget exceeded",
				Description: fmt.Sprintf("spending is at %.0f%% of the budget allocation; review the largest category overruns",
					report.UtilizationPercentage),
			})
		}
	}

	if snapshot.MonthlyIncome > 0 {
		savingsRate := (snapshot.MonthlyIncome - snapshot.MonthlySpent) / snapshot.MonthlyIncome * 100
		if savingsRate < 10 {
			recs = append(recs, model.Recommendation{
				ID:       uuid.New().String(),
				Type:     model.RecommendationSavings,
				Priority: model.InsightPriorityMedium,
				Title:    "Low savings rate",
				Description: fmt.Sprintf("current savings rate is %.1f%% of income; aim for at least 10%%",
					savingsRate),
			})
		}
	}
	return recs
}
