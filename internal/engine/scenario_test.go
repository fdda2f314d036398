package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/ledgerline/backend/internal/model"
)

func TestGenerateScenarios(t *testing.T) {
	baseline := model.FinancialBaseline{
		AnnualIncome:   60000,
		AnnualExpenses: 40000,
		NetWorth:       10000,
	}

	scenarios, err := GenerateScenarios(baseline, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(scenarios))
	}

	wantOrder := []model.ScenarioType{model.ScenarioOptimistic, model.ScenarioRealistic, model.ScenarioPessimistic}
	wantAssumptions := []model.ScenarioAssumptions{
		{IncomeGrowthPct: 5, ExpenseGrowthPct: 2},
		{IncomeGrowthPct: 3, ExpenseGrowthPct: 3},
		{IncomeGrowthPct: 1, ExpenseGrowthPct: 4},
	}
	for i, s := range scenarios {
		if s.Type != wantOrder[i] {
			t.Errorf("scenario %d type = %s, want %s", i, s.Type, wantOrder[i])
		}
		if s.Assumptions != wantAssumptions[i] {
			t.Errorf("scenario %d assumptions = %+v, want %+v", i, s.Assumptions, wantAssumptions[i])
		}
		if len(s.Projections) != 3 {
			t.Errorf("scenario %d has %d projections, want 3", i, len(s.Projections))
		}
	}

	// Optimistic year 1: income compounds at 5%, expenses at 2%.
	y1 := scenarios[0].Projections[0]
	if math.Abs(y1.Income-63000) > 0.01 {
		t.Errorf("optimistic year-1 income = %.2f, want 63000", y1.Income)
	}
	if math.Abs(y1.Expenses-40800) > 0.01 {
		t.Errorf("optimistic year-1 expenses = %.2f, want 40800", y1.Expenses)
	}
	if math.Abs(y1.NetWorth-(10000+63000-40800)) > 0.01 {
		t.Errorf("optimistic year-1 net worth = %.2f", y1.NetWorth)
	}

	// The optimistic path must dominate the pessimistic one by the horizon.
	last := len(scenarios[0].Projections) - 1
	if scenarios[0].Projections[last].NetWorth <= scenarios[2].Projections[last].NetWorth {
		t.Error("optimistic final net worth does not exceed pessimistic")
	}
}

func TestGenerateScenariosInvalidHorizon(t *testing.T) {
	_, err := GenerateScenarios(model.FinancialBaseline{}, 0)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestForecastShape(t *testing.T) {
	baseline := model.FinancialBaseline{AnnualIncome: 50000, AnnualExpenses: 48000}
	txns := dailyExpenses(40, func(int) float64 { return 130 })
	categories := []*model.Category{{ID: "groceries", Name: "groceries"}}

	forecast, err := Forecast(baseline, 6, txns, categories, testDay(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if forecast.Months != 6 {
		t.Errorf("months = %d, want 6", forecast.Months)
	}
	if len(forecast.Scenarios) != 3 {
		t.Errorf("got %d scenarios, want 3", len(forecast.Scenarios))
	}
	for _, s := range forecast.Scenarios {
		if len(s.Projections) != 6 {
			t.Errorf("scenario %s has %d projections, want 6", s.Type, len(s.Projections))
		}
	}
	if len(forecast.CategoryForecasts) != 1 {
		t.Fatalf("got %d category forecasts, want 1", len(forecast.CategoryForecasts))
	}
	if forecast.CategoryForecasts[0].CategoryName != "groceries" {
		t.Errorf("category name = %q", forecast.CategoryForecasts[0].CategoryName)
	}

	// 4% savings rate and a 40-day history must surface both risks.
	names := make(map[string]bool)
	for _, r := range forecast.RiskFactors {
		names[r.Name] = true
	}
	if !names["low_savings_rate"] {
		t.Error("missing low_savings_rate risk")
	}
	if !names["thin_history"] {
		t.Error("missing thin_history risk")
	}
}

func TestPredictCashFlow(t *testing.T) {
	txns := dailyExpenses(60, func(int) float64 { return 50 })
	now := testDay(60)

	due := testDay(65)
	recurring := []*model.RecurringTransaction{
		{
			ID:             "rt-salary",
			UserID:         "user-1",
			Description:    "Salary",
			Amount:         3000,
			Type:           model.TransactionTypeIncome,
			Frequency:      model.FrequencyMonthly,
			Status:         model.RecurringStatusActive,
			NextOccurrence: &due,
		},
	}

	prediction := PredictCashFlow(txns, recurring, 10, now)

	if len(prediction.ExpenseForecast) != 10 {
		t.Fatalf("got %d expense points, want 10", len(prediction.ExpenseForecast))
	}
	if len(prediction.IncomeForecast) != 10 {
		t.Fatalf("got %d income points, want 10", len(prediction.IncomeForecast))
	}

	for _, p := range prediction.ExpenseForecast {
		if math.Abs(p.Predicted-50) > 0.01 {
			t.Errorf("expense on %s = %.2f, want 50", p.Date.Format("2006-01-02"), p.Predicted)
		}
		if p.LowerBound > p.Predicted || p.UpperBound < p.Predicted {
			t.Errorf("bands do not bracket the point: %+v", p)
		}
	}

	// Day 5 carries the recurring salary; every other income day is the
	// historical average of zero.
	salaryDay := prediction.IncomeForecast[4]
	if salaryDay.Predicted != 3000 {
		t.Errorf("salary day predicted = %.2f, want 3000", salaryDay.Predicted)
	}
	if !salaryDay.IsRecurring {
		t.Error("salary day not marked recurring")
	}
	for i, p := range prediction.IncomeForecast {
		if i != 4 && p.Predicted != 0 {
			t.Errorf("income day %d = %.2f, want 0", i+1, p.Predicted)
		}
	}

	if len(prediction.Scenarios) != 3 {
		t.Errorf("got %d scenarios, want 3", len(prediction.Scenarios))
	}
}
