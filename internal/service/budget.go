package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgerline/backend/internal/engine"
	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/store"
)

// BudgetReport builds the performance/variance/projection report for one
// budget over the current month.
func (s *AnalyticsService) BudgetReport(ctx context.Context, userID, budgetID string) (*model.BudgetReport, error) {
	budget, err := s.store.GetBudget(ctx, userID, budgetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get budget: %v", engine.ErrUpstreamData, err)
	}

	now := s.now()
	periodStart, periodEnd := engine.CurrentMonth(now)

	txns, err := s.fetchHistory(ctx, userID, &periodStart, &periodEnd, model.TransactionFilter{Type: model.TransactionTypeExpense})
	if err != nil {
		return nil, err
	}

	categories, err := s.fetchCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	return engine.BuildBudgetReport(budget, txns, categories, periodStart, periodEnd, now, engine.DefaultBudgetTolerancePct), nil
}

// ListBudgetReports builds current-month reports for every active budget.
func (s *AnalyticsService) ListBudgetReports(ctx context.Context, userID string) ([]*model.BudgetReport, error) {
	budgets, err := s.store.ListBudgets(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("%w: list budgets: %v", engine.ErrUpstreamData, err)
	}

	now := s.now()
	periodStart, periodEnd := engine.CurrentMonth(now)

	txns, err := s.fetchHistory(ctx, userID, &periodStart, &periodEnd, model.TransactionFilter{Type: model.TransactionTypeExpense})
	if err != nil {
		return nil, err
	}

	categories, err := s.fetchCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	reports := make([]*model.BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		reports = append(reports, engine.BuildBudgetReport(b, txns, categories, periodStart, periodEnd, now, engine.DefaultBudgetTolerancePct))
	}
	return reports, nil
}

// Recommendations runs the rule-based planner over the user's current-month
// snapshot. Missing upstream data degrades to fewer rules, never an error.
func (s *AnalyticsService) Recommendations(ctx context.Context, userID string) ([]model.Recommendation, error) {
	snapshot, err := s.buildSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.BuildRecommendations(snapshot), nil
}

func (s *AnalyticsService) buildSnapshot(ctx context.Context, userID string) (*model.FinancialSnapshot, error) {
	now := s.now()
	periodStart, periodEnd := engine.CurrentMonth(now)

	txns, err := s.fetchHistory(ctx, userID, &periodStart, &periodEnd, model.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	snapshot := &model.FinancialSnapshot{}
	for _, t := range txns {
		switch t.Type {
		case model.TransactionTypeIncome:
			snapshot.MonthlyIncome += t.Amount
		case model.TransactionTypeExpense:
			snapshot.MonthlySpent += t.Amount
		}
	}

	reports, err := s.ListBudgetReports(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("budget reports unavailable for recommendations")
	} else {
		snapshot.BudgetReports = reports
	}
	return snapshot, nil
}
