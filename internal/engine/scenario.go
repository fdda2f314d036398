package engine

import (
	"math"
	"sort"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

// scenarioPresets are the fixed assumption sets, in output order.
var scenarioPresets = []struct {
	Type        model.ScenarioType
	Assumptions model.ScenarioAssumptions
}{
	{model.ScenarioOptimistic, model.ScenarioAssumptions{IncomeGrowthPct: 5, ExpenseGrowthPct: 2}},
	{model.ScenarioRealistic, model.ScenarioAssumptions{IncomeGrowthPct: 3, ExpenseGrowthPct: 3}},
	{model.ScenarioPessimistic, model.ScenarioAssumptions{IncomeGrowthPct: 1, ExpenseGrowthPct: 4}},
}

// GenerateScenarios projects the baseline under the three fixed assumption
// sets, compounded annually, one projection row per year. Always exactly
// three scenarios, ordered optimistic, realistic, pessimistic.
func GenerateScenarios(baseline model.FinancialBaseline, years int) ([]model.Scenario, error) {
	if years <= 0 {
		return nil, invalidParameterf("planning horizon must be positive, got %d years", years)
	}

	scenarios := make([]model.Scenario, 0, len(scenarioPresets))
	for _, preset := range scenarioPresets {
		s := model.Scenario{
			Type:        preset.Type,
			Assumptions: preset.Assumptions,
			Projections: make([]model.ScenarioProjection, 0, years),
		}

		netWorth := baseline.NetWorth
		for year := 1; year <= years; year++ {
			income := baseline.AnnualIncome * math.Pow(1+preset.Assumptions.IncomeGrowthPct/100, float64(year))
			expenses := baseline.AnnualExpenses * math.Pow(1+preset.Assumptions.ExpenseGrowthPct/100, float64(year))
			savings := income - expenses
			netWorth += savings

			s.Projections = append(s.Projections, model.ScenarioProjection{
				Period:   year,
				Income:   round2(income),
				Expenses: round2(expenses),
				NetWorth: round2(netWorth),
				Savings:  round2(savings),
			})
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// monthlyScenarios follows the same three-scenario shape over a monthly
// horizon; annual growth is applied as a simple per-month rate.
func monthlyScenarios(baseline model.FinancialBaseline, months int) []model.Scenario {
	monthlyIncome := baseline.AnnualIncome / 12
	monthlyExpenses := baseline.AnnualExpenses / 12

	scenarios := make([]model.Scenario, 0, len(scenarioPresets))
	for _, preset := range scenarioPresets {
		s := model.Scenario{
			Type:        preset.Type,
			Assumptions: preset.Assumptions,
			Projections: make([]model.ScenarioProjection, 0, months),
		}
		netWorth := baseline.NetWorth
		for month := 1; month <= months; month++ {
			growth := float64(month) / 12
			income := monthlyIncome * (1 + preset.Assumptions.IncomeGrowthPct/100*growth)
			expenses := monthlyExpenses * (1 + preset.Assumptions.ExpenseGrowthPct/100*growth)
			savings := income - expenses
			netWorth += savings
			s.Projections = append(s.Projections, model.ScenarioProjection{
				Period:   month,
				Income:   round2(income),
				Expenses: round2(expenses),
				NetWorth: round2(netWorth),
				Savings:  round2(savings),
			})
		}
		scenarios = append(scenarios, s)
	}
	return scenarios
}

// Forecast produces the monthly-horizon three-scenario forecast with
// category-level sub-forecasts and enumerated risk factors.
func Forecast(baseline model.FinancialBaseline, months int, transactions []*model.Transaction, categories []*model.Category, now time.Time) (*model.FinancialForecast, error) {
	if months <= 0 {
		return nil, invalidParameterf("forecast horizon must be positive, got %d months", months)
	}

	return &model.FinancialForecast{
		Months:            months,
		Scenarios:         monthlyScenarios(baseline, months),
		CategoryForecasts: categoryForecasts(transactions, categories, now),
		RiskFactors:       forecastRiskFactors(baseline, transactions),
	}, nil
}

// PredictCashFlow projects per-day income, expense and net flows with 90%
// confidence bands from the trailing daily averages, overlaying known
// recurring transactions on the days they fall due.
func PredictCashFlow(transactions []*model.Transaction, recurring []*model.RecurringTransaction, forecastDays int, now time.Time) *model.CashFlowPrediction {
	if forecastDays <= 0 {
		forecastDays = 30
	}

	var expenseTxns, incomeTxns []*model.Transaction
	for _, t := range transactions {
		if t.Type == model.TransactionTypeIncome {
			incomeTxns = append(incomeTxns, t)
		} else {
			expenseTxns = append(expenseTxns, t)
		}
	}

	expenseDaily := amounts(denseDailyHistory(expenseTxns, now))
	incomeDaily := amounts(denseDailyHistory(incomeTxns, now))

	avgExpense, sdExpense := mean(expenseDaily), stddev(expenseDaily)
	avgIncome, sdIncome := mean(incomeDaily), stddev(incomeDaily)

	recurringExpense, recurringIncome := recurringByDay(recurring, now, forecastDays)

	out := &model.CashFlowPrediction{}
	for i := 1; i <= forecastDays; i++ {
		date := dayOf(now).AddDate(0, 0, i)
		key := date.Format("2006-01-02")

		predictedExpense, expRecurring := avgExpense, false
		if amt, ok := recurringExpense[key]; ok {
			predictedExpense = amt
			expRecurring = true
		}
		predictedIncome, incRecurring := avgIncome, false
		if amt, ok := recurringIncome[key]; ok {
			predictedIncome = amt
			incRecurring = true
		}

		out.ExpenseForecast = append(out.ExpenseForecast, forecastPoint(date, predictedExpense, sdExpense, expRecurring))
		out.IncomeForecast = append(out.IncomeForecast, forecastPoint(date, predictedIncome, sdIncome, incRecurring))
		out.NetForecast = append(out.NetForecast, model.ForecastPoint{
			Date:      date,
			Predicted: round2(predictedIncome - predictedExpense),
		})
	}

	baseline := model.FinancialBaseline{
		AnnualIncome:   avgIncome * 365,
		AnnualExpenses: avgExpense * 365,
	}
	months := forecastDays / 30
	if months < 1 {
		months = 1
	}
	out.Scenarios = monthlyScenarios(baseline, months)
	out.RiskFactors = forecastRiskFactors(baseline, transactions)
	return out
}

// forecastPoint builds a point with a 90% band (1.645 sigma), floored at zero.
func forecastPoint(date time.Time, predicted, sd float64, isRecurring bool) model.ForecastPoint {
	lower := predicted - 1.645*sd
	if lower < 0 {
		lower = 0
	}
	return model.ForecastPoint{
		Date:        date,
		Predicted:   round2(predicted),
		LowerBound:  round2(lower),
		UpperBound:  round2(predicted + 1.645*sd),
		IsRecurring: isRecurring,
	}
}

// recurringByDay projects each active recurring transaction over the forecast
// window and sums amounts per due day.
func recurringByDay(recurring []*model.RecurringTransaction, now time.Time, forecastDays int) (expense, income map[string]float64) {
	expense = make(map[string]float64)
	income = make(map[string]float64)
	forecastEnd := dayOf(now).AddDate(0, 0, forecastDays)

	for _, rt := range recurring {
		if rt.Status != model.RecurringStatusActive {
			continue
		}
		current := now
		if rt.NextOccurrence != nil {
			current = *rt.NextOccurrence
		} else if !rt.StartDate.IsZero() {
			current = rt.StartDate
		}
		for !current.After(forecastEnd) {
			if rt.EndDate != nil && current.After(*rt.EndDate) {
				break
			}
			if current.After(now) {
				key := dayOf(current).Format("2006-01-02")
				if rt.Type == model.TransactionTypeIncome {
					income[key] += rt.Amount
				} else {
					expense[key] += rt.Amount
				}
			}
			current = rt.NextAfter(current)
		}
	}
	return expense, income
}

// categoryForecasts summarizes each category's trailing monthly average and a
// one-step projection from its trend.
func categoryForecasts(transactions []*model.Transaction, categories []*model.Category, now time.Time) []model.CategoryForecast {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	byCategory := make(map[string][]*model.Transaction)
	for _, t := range transactions {
		if t.Type != model.TransactionTypeExpense {
			continue
		}
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	var out []model.CategoryForecast
	for catID, txns := range byCategory {
		series := Aggregate(txns, model.GranularityMonth)
		values := amounts(series)
		avg := mean(values)
		slope, _, _ := linearRegression(values)

		direction := "stable"
		if len(values) >= 2 && avg != 0 {
			switch {
			case slope/math.Abs(avg) > 0.05:
				direction = "increasing"
			case slope/math.Abs(avg) < -0.05:
				direction = "decreasing"
			}
		}

		projected := avg + slope
		if projected < 0 {
			projected = 0
		}
		out = append(out, model.CategoryForecast{
			CategoryID:      catID,
			CategoryName:    names[catID],
			MonthlyAverage:  round2(avg),
			ProjectedAmount: round2(projected),
			TrendDirection:  direction,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].MonthlyAverage > out[j].MonthlyAverage
	})
	return out
}

// forecastRiskFactors enumerates risks over the baseline and history, each
// with a suggested mitigation.
func forecastRiskFactors(baseline model.FinancialBaseline, transactions []*model.Transaction) []model.RiskFactor {
	var risks []model.RiskFactor

	var expenseTxns []*model.Transaction
	for _, t := range transactions {
		if t.Type == model.TransactionTypeExpense {
			expenseTxns = append(expenseTxns, t)
		}
	}
	daily := Aggregate(expenseTxns, model.GranularityDay)
	if cv := coefficientOfVariation(amounts(daily)); cv > highVolatilityCV {
		risks = append(risks, model.RiskFactor{
			Name:       "spending_volatility",
			Level:      "high",
			Impact:     "projections carry wide uncertainty bands",
			Mitigation: "review irregular large purchases and smooth discretionary spending",
		})
	}

	if baseline.AnnualIncome > 0 {
		savingsRate := (baseline.AnnualIncome - baseline.AnnualExpenses) / baseline.AnnualIncome
		if savingsRate < 0.1 {
			risks = append(risks, model.RiskFactor{
				Name:       "low_savings_rate",
				Level:      "medium",
				Impact:     "little buffer against expense growth in the pessimistic path",
				Mitigation: "target a savings rate of at least 10% of income",
			})
		}
	}

	if DistinctDays(transactions) < thinDataDays {
		risks = append(risks, model.RiskFactor{
			Name:       "thin_history",
			Level:      "low",
			Impact:     "baseline averages are estimated from a short window",
			Mitigation: "projections improve as more transaction history accrues",
		})
	}
	return risks
}
