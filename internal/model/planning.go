package model

import "time"

// GoalStatus is derived from progress, never set directly.
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
)

// FinancialGoal is a savings target tracked by the planner. Created with zero
// progress; mutated only through progress updates.
type FinancialGoal struct {
	ID                      string     `json:"id"`
	UserID                  string     `json:"user_id"`
	Name                    string     `json:"name"`
	TargetAmount            float64    `json:"target_amount"`
	CurrentAmount           float64    `json:"current_amount"`
	MonthlyContribution     float64    `json:"monthly_contribution"`
	TargetDate              time.Time  `json:"target_date"`
	Status                  GoalStatus `json:"status"`
	ProgressPercentage      float64    `json:"progress_percentage"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date,omitempty"`
	RiskLevel               string     `json:"risk_level"` // "low", "medium", "high"
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// RetirementPlan is the input and output of the retirement projection.
type RetirementPlan struct {
	CurrentAge          int      `json:"current_age"`
	RetirementAge       int      `json:"retirement_age"`
	CurrentSavings      float64  `json:"current_savings"`
	MonthlyContribution float64  `json:"monthly_contribution"`
	ExpectedReturnPct   float64  `json:"expected_return_pct"`
	InflationRatePct    float64  `json:"inflation_rate_pct"`
	TargetAmount        float64  `json:"target_amount"`
	ProjectedAmount     float64  `json:"projected_amount"`
	Shortfall           float64  `json:"shortfall"`
	Recommendations     []string `json:"recommendations"`
}

// DebtStrategy orders debts for payoff.
type DebtStrategy string

const (
	DebtStrategyAvalanche DebtStrategy = "avalanche" // highest interest first
	DebtStrategySnowball  DebtStrategy = "snowball"  // smallest balance first
)

// Debt is one liability in a payoff plan.
type Debt struct {
	Name            string  `json:"name"`
	Balance         float64 `json:"balance"`
	InterestRate    float64 `json:"interest_rate"` // annual, percent
	MinimumPayment  float64 `json:"minimum_payment"`
	Priority        int     `json:"priority"`
}

// DebtTimelineEntry is one month of the amortization simulation.
type DebtTimelineEntry struct {
	Month         int     `json:"month"`
	RemainingDebt float64 `json:"remaining_debt"`
	Payment       float64 `json:"payment"`
	Interest      float64 `json:"interest"`
	Principal     float64 `json:"principal"`
}

// DebtPayoffPlan is the simulated payoff schedule for a set of debts.
type DebtPayoffPlan struct {
	Strategy          DebtStrategy        `json:"strategy"`
	Debts             []Debt              `json:"debts"`
	TotalDebt         float64             `json:"total_debt"`
	ExtraPayment      float64             `json:"extra_payment"`
	Timeline          []DebtTimelineEntry `json:"timeline"`
	MonthsToPayoff    int                 `json:"months_to_payoff"`
	TotalInterestPaid float64             `json:"total_interest_paid"`
}

// RecommendationType names the rule that produced a recommendation.
type RecommendationType string

const (
	RecommendationBudget  RecommendationType = "budget"
	RecommendationSavings RecommendationType = "savings"
)

// Recommendation is one rule-based planning suggestion.
type Recommendation struct {
	ID          string             `json:"id"`
	Type        RecommendationType `json:"type"`
	Priority    InsightPriority    `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
}

// FinancialSnapshot is the upstream aggregate the recommendation rules read.
// Any field may be zero when upstream data is missing.
type FinancialSnapshot struct {
	MonthlyIncome float64         `json:"monthly_income"`
	MonthlySpent  float64         `json:"monthly_spent"`
	BudgetReports []*BudgetReport `json:"budget_reports,omitempty"`
}
