package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/backend/internal/engine"
	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/store"
)

// CreateGoal stores a new savings goal with zero progress.
func (s *AnalyticsService) CreateGoal(ctx context.Context, userID, name string, targetAmount, monthlyContribution float64, targetDate time.Time) (*model.FinancialGoal, error) {
	if targetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", engine.ErrInvalidParameter)
	}

	now := s.now()
	goal := &model.FinancialGoal{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Name:                name,
		TargetAmount:        targetAmount,
		MonthlyContribution: monthlyContribution,
		TargetDate:          targetDate,
		Status:              model.GoalStatusNotStarted,
		RiskLevel:           "low",
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("%w: create goal: %v", engine.ErrUpstreamData, err)
	}
	return goal, nil
}

// GetGoal fetches one goal.
func (s *AnalyticsService) GetGoal(ctx context.Context, userID, goalID string) (*model.FinancialGoal, error) {
	goal, err := s.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get goal: %v", engine.ErrUpstreamData, err)
	}
	return goal, nil
}

// ListGoals fetches all goals for a user.
func (s *AnalyticsService) ListGoals(ctx context.Context, userID string) ([]*model.FinancialGoal, error) {
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list goals: %v", engine.ErrUpstreamData, err)
	}
	return goals, nil
}

// UpdateGoalProgress records a new saved amount, re-derives status, progress
// and completion estimate, and persists the result.
func (s *AnalyticsService) UpdateGoalProgress(ctx context.Context, userID, goalID string, currentAmount float64) (*model.FinancialGoal, error) {
	goal, err := s.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get goal: %v", engine.ErrUpstreamData, err)
	}

	if err := engine.UpdateGoalProgress(goal, currentAmount, s.now()); err != nil {
		return nil, err
	}

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("%w: update goal: %v", engine.ErrUpstreamData, err)
	}

	s.log.WithField("goal_id", goalID).WithField("status", goal.Status).Info("goal progress updated")
	return goal, nil
}

// ProjectRetirement runs the compound-growth retirement projection.
func (s *AnalyticsService) ProjectRetirement(ctx context.Context, plan model.RetirementPlan) (*model.RetirementPlan, error) {
	return engine.ProjectRetirement(plan)
}

// PlanDebtPayoff simulates month-by-month payoff under the chosen strategy.
func (s *AnalyticsService) PlanDebtPayoff(ctx context.Context, debts []model.Debt, strategy model.DebtStrategy, extraPayment float64) (*model.DebtPayoffPlan, error) {
	return engine.PlanDebtPayoff(debts, strategy, extraPayment)
}
