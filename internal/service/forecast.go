package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ledgerline/backend/internal/engine"
	"github.com/ledgerline/backend/internal/model"
)

// GenerateScenarios projects optimistic/realistic/pessimistic paths over the
// given number of years, compounding annually from the user's baseline.
func (s *AnalyticsService) GenerateScenarios(ctx context.Context, userID string, years int) ([]model.Scenario, error) {
	baseline, _, err := s.computeBaseline(ctx, userID)
	if err != nil {
		return nil, err
	}

	scenarios, err := engine.GenerateScenarios(baseline, years)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"years":   years,
	}).Info("scenarios generated")

	return scenarios, nil
}

// Forecast builds the monthly-horizon three-scenario financial forecast with
// category breakdowns and risk factors.
func (s *AnalyticsService) Forecast(ctx context.Context, userID string, months int) (*model.FinancialForecast, error) {
	baseline, txns, err := s.computeBaseline(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories, err := s.fetchCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	return engine.Forecast(baseline, months, txns, categories, s.now())
}

// PredictCashFlow projects daily income and expense flow, overlaying known
// recurring transactions on their due dates.
func (s *AnalyticsService) PredictCashFlow(ctx context.Context, userID string, forecastDays int) (*model.CashFlowPrediction, error) {
	if forecastDays <= 0 {
		forecastDays = 30
	}

	now := s.now()
	start := now.AddDate(0, -3, 0)
	txns, err := s.fetchHistory(ctx, userID, &start, &now, model.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	recurring, err := s.store.ListRecurringTransactions(ctx, userID, model.RecurringStatusActive)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("listing recurring transactions failed, forecasting without overlay")
		recurring = nil
	}

	return engine.PredictCashFlow(txns, recurring, forecastDays, now), nil
}
