package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ledgerline/backend/internal/engine"
	"github.com/ledgerline/backend/internal/model"
)

// PredictSpending forecasts daily spending for the query window from the
// user's full expense history.
func (s *AnalyticsService) PredictSpending(ctx context.Context, query model.PredictionQuery) (*model.SpendingPrediction, error) {
	filter := query.Filter
	filter.Type = model.TransactionTypeExpense

	history, err := s.fetchHistory(ctx, query.UserID, nil, nil, filter)
	if err != nil {
		return nil, err
	}

	prediction, err := engine.PredictSpending(query, history, s.now())
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     query.UserID,
		"methodology": prediction.Methodology,
		"days":        len(prediction.Predictions),
		"total":       prediction.TotalPredictedAmount,
	}).Info("spending prediction generated")

	return prediction, nil
}

// DetectAnomalies flags unusual expenses in the query window.
func (s *AnalyticsService) DetectAnomalies(ctx context.Context, query model.AnomalyQuery) (*model.AnomalyReport, error) {
	filter := query.Filter
	filter.Type = model.TransactionTypeExpense

	txns, err := s.fetchHistory(ctx, query.UserID, &query.StartDate, &query.EndDate, filter)
	if err != nil {
		return nil, err
	}

	report := engine.DetectAnomalies(query, txns)

	s.log.WithFields(logrus.Fields{
		"user_id":   query.UserID,
		"anomalies": report.TotalAnomalies,
	}).Info("anomaly detection completed")

	return report, nil
}

// AnalyzeTrends summarizes spending direction, category movement, and
// weekday/month patterns over a window.
func (s *AnalyticsService) AnalyzeTrends(ctx context.Context, userID string, start, end time.Time) (*model.TrendAnalysis, error) {
	txns, err := s.fetchHistory(ctx, userID, &start, &end, model.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	categories, err := s.fetchCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	return engine.AnalyzeTrends(txns, categories, start, end), nil
}

// TrainModel builds a model descriptor with retrospective performance.
func (s *AnalyticsService) TrainModel(ctx context.Context, userID, modelType string, parameters map[string]float64) (*model.Model, error) {
	history, err := s.fetchHistory(ctx, userID, nil, nil, model.TransactionFilter{Type: model.TransactionTypeExpense})
	if err != nil {
		return nil, err
	}

	m := engine.TrainModel(userID, modelType, parameters, history, s.now())

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"type":    modelType,
		"status":  m.Status,
	}).Info("model trained")

	return m, nil
}

// DailyAggregates returns the zero-filled daily expense series for a window.
func (s *AnalyticsService) DailyAggregates(ctx context.Context, userID string, start, end time.Time, filter model.TransactionFilter) ([]model.TimeSeriesPoint, error) {
	filter.Type = model.TransactionTypeExpense

	txns, err := s.fetchHistory(ctx, userID, &start, &end, filter)
	if err != nil {
		return nil, err
	}

	return engine.AggregateDense(txns, model.GranularityDay, start, end), nil
}
