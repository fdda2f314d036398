package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ledgerline/backend/internal/engine"
	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/store"
)

// AnalyticsService orchestrates the predictive engine over the persistence
// layer. All statistics live in the engine package; this layer fetches
// history, runs the engine, and logs.
type AnalyticsService struct {
	store store.Store
	log   *logrus.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewAnalyticsService(st store.Store, log *logrus.Logger) *AnalyticsService {
	if log == nil {
		log = logrus.New()
	}
	return &AnalyticsService{
		store: st,
		log:   log,
		now:   time.Now,
	}
}

// fetchHistory loads a user's transactions for a window, wrapping store
// failures so callers can distinguish data-access errors from analysis errors.
func (s *AnalyticsService) fetchHistory(ctx context.Context, userID string, start, end *time.Time, filter model.TransactionFilter) ([]*model.Transaction, error) {
	txns, err := s.store.ListTransactions(ctx, userID, start, end, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", engine.ErrUpstreamData, err)
	}
	return txns, nil
}

func (s *AnalyticsService) fetchCategories(ctx context.Context, userID string) ([]*model.Category, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", engine.ErrUpstreamData, err)
	}
	return categories, nil
}

// baselineWindow is how far back baseline aggregates look.
const baselineWindowMonths = 12

// computeBaseline derives annualized income/expense figures from the trailing
// year of history. Partial histories are scaled up to a full year.
func (s *AnalyticsService) computeBaseline(ctx context.Context, userID string) (model.FinancialBaseline, []*model.Transaction, error) {
	now := s.now()
	start := now.AddDate(0, -baselineWindowMonths, 0)

	txns, err := s.fetchHistory(ctx, userID, &start, &now, model.TransactionFilter{})
	if err != nil {
		return model.FinancialBaseline{}, nil, err
	}

	var income, expenses float64
	var earliest time.Time
	for _, t := range txns {
		switch t.Type {
		case model.TransactionTypeIncome:
			income += t.Amount
		case model.TransactionTypeExpense:
			expenses += t.Amount
		}
		if earliest.IsZero() || t.Date.Before(earliest) {
			earliest = t.Date
		}
	}

	// Scale partial histories to an annual rate.
	if !earliest.IsZero() {
		days := now.Sub(earliest).Hours() / 24
		if days >= 1 && days < 365 {
			factor := 365 / days
			income *= factor
			expenses *= factor
		}
	}

	baseline := model.FinancialBaseline{
		AnnualIncome:   income,
		AnnualExpenses: expenses,
		NetWorth:       income - expenses,
	}
	return baseline, txns, nil
}
