package model

import "time"

// ScenarioType names one of the three fixed assumption presets.
type ScenarioType string

const (
	ScenarioOptimistic  ScenarioType = "optimistic"
	ScenarioRealistic   ScenarioType = "realistic"
	ScenarioPessimistic ScenarioType = "pessimistic"
)

// ScenarioAssumptions are annual growth rates in percent.
type ScenarioAssumptions struct {
	IncomeGrowthPct  float64 `json:"income_growth_pct"`
	ExpenseGrowthPct float64 `json:"expense_growth_pct"`
}

// ScenarioProjection is one compounded period within a scenario.
type ScenarioProjection struct {
	Period   int     `json:"period"` // 1-based year or month index
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	NetWorth float64 `json:"net_worth"`
	Savings  float64 `json:"savings"`
}

// Scenario is one projected path under a fixed assumption set.
type Scenario struct {
	Type        ScenarioType         `json:"type"`
	Assumptions ScenarioAssumptions  `json:"assumptions"`
	Projections []ScenarioProjection `json:"projections"`
}

// FinancialBaseline is the externally supplied income/expense aggregate that
// scenario projections compound from.
type FinancialBaseline struct {
	AnnualIncome   float64 `json:"annual_income"`
	AnnualExpenses float64 `json:"annual_expenses"`
	NetWorth       float64 `json:"net_worth"`
}

// RiskFactor is an enumerated forecast risk with a suggested mitigation.
type RiskFactor struct {
	Name       string `json:"name"`
	Level      string `json:"level"` // "low", "medium", "high"
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

// CategoryForecast is a category-level sub-forecast inside a financial forecast.
type CategoryForecast struct {
	CategoryID      string  `json:"category_id"`
	CategoryName    string  `json:"category_name"`
	MonthlyAverage  float64 `json:"monthly_average"`
	ProjectedAmount float64 `json:"projected_amount"`
	TrendDirection  string  `json:"trend_direction"`
}

// FinancialForecast is the monthly-horizon three-scenario forecast.
type FinancialForecast struct {
	Months            int                `json:"months"`
	Scenarios         []Scenario         `json:"scenarios"`
	CategoryForecasts []CategoryForecast `json:"category_forecasts"`
	RiskFactors       []RiskFactor       `json:"risk_factors"`
}

// ForecastPoint is one day of the cash-flow prediction with a confidence band.
type ForecastPoint struct {
	Date        time.Time `json:"date"`
	Predicted   float64   `json:"predicted"`
	LowerBound  float64   `json:"lower_bound"`
	UpperBound  float64   `json:"upper_bound"`
	IsRecurring bool      `json:"is_recurring"`
}

// CashFlowPrediction is the per-day income/expense/net projection.
type CashFlowPrediction struct {
	IncomeForecast  []ForecastPoint `json:"income_forecast"`
	ExpenseForecast []ForecastPoint `json:"expense_forecast"`
	NetForecast     []ForecastPoint `json:"net_forecast"`
	Scenarios       []Scenario      `json:"scenarios"`
	RiskFactors     []RiskFactor    `json:"risk_factors"`
}
