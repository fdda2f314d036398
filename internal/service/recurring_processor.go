package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/backend/internal/model"
)

// RecurringRunSummary reports one sweep of the recurring processor.
type RecurringRunSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Ended     int `json:"ended"`
	Errors    int `json:"errors"`
}

// ProcessRecurringTransactions materializes every due active recurring
// transaction into a concrete transaction and advances its next occurrence.
// Designed to run on a schedule without user authentication.
func (s *AnalyticsService) ProcessRecurringTransactions(ctx context.Context) (*RecurringRunSummary, error) {
	now := s.now()
	summary := &RecurringRunSummary{}

	// Empty userID sweeps all users.
	rts, err := s.store.ListRecurringTransactions(ctx, "", model.RecurringStatusActive)
	if err != nil {
		return nil, errors.Wrap(err, "listing active recurring transactions")
	}

	for _, rt := range rts {
		processed, ended, procErr := s.processOneRecurring(ctx, rt, now)
		switch {
		case procErr != nil:
			s.log.WithError(procErr).WithFields(logrus.Fields{
				"recurring_id": rt.ID,
				"user_id":      rt.UserID,
			}).Error("processing recurring transaction failed")
			summary.Errors++
		case ended:
			summary.Ended++
		case processed:
			summary.Processed++
		default:
			summary.Skipped++
		}
	}

	s.log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
		"ended":     summary.Ended,
		"errors":    summary.Errors,
	}).Info("recurring sweep completed")

	return summary, nil
}

// processOneRecurring handles a single recurring transaction.
// Returns (processed, ended, error).
func (s *AnalyticsService) processOneRecurring(ctx context.Context, rt *model.RecurringTransaction, now time.Time) (bool, bool, error) {
	if rt.NextOccurrence == nil {
		return false, false, errors.Errorf("recurring transaction %s has no next occurrence", rt.ID)
	}

	due := *rt.NextOccurrence

	// Not yet due.
	if due.After(now) {
		return false, false, nil
	}

	// Past end date: mark ended without materializing.
	if rt.EndDate != nil && !rt.EndDate.IsZero() && due.After(*rt.EndDate) {
		rt.Status = model.RecurringStatusEnded
		if err := s.store.UpdateRecurringTransaction(ctx, rt); err != nil {
			return false, false, errors.Wrap(err, "marking recurring transaction ended")
		}
		return false, true, nil
	}

	txn := &model.Transaction{
		ID:          uuid.New().String(),
		UserID:      rt.UserID,
		Amount:      rt.Amount,
		Date:        due,
		Type:        rt.Type,
		CategoryID:  rt.CategoryID,
		Description: rt.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return false, false, errors.Wrap(err, "creating transaction from recurring")
	}

	next := rt.NextAfter(due)
	rt.NextOccurrence = &next
	if rt.EndDate != nil && !rt.EndDate.IsZero() && next.After(*rt.EndDate) {
		rt.Status = model.RecurringStatusEnded
	}
	if err := s.store.UpdateRecurringTransaction(ctx, rt); err != nil {
		return false, false, errors.Wrap(err, "advancing recurring next occurrence")
	}

	return true, false, nil
}
