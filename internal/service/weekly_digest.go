package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/backend/internal/model"
)

// DigestRunSummary reports one run of the weekly digest job.
type DigestRunSummary struct {
	UsersProcessed int `json:"users_processed"`
	DigestsSent    int `json:"digests_sent"`
}

// GenerateWeeklyDigest creates weekly summary notifications. With a userID it
// runs for that single user; empty runs for every user with stored
// transactions, as invoked by the scheduler.
func (s *AnalyticsService) GenerateWeeklyDigest(ctx context.Context, userID string) (*DigestRunSummary, error) {
	now := s.now()
	periodStart := now.AddDate(0, 0, -7)
	summary := &DigestRunSummary{}

	userIDs := []string{userID}
	if userID == "" {
		ids, err := s.store.ListUserIDs(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "enumerating users for weekly digest")
		}
		userIDs = ids
	}

	for _, uid := range userIDs {
		summary.UsersProcessed++
		sent, err := s.generateDigestForUser(ctx, uid, periodStart, now)
		if err != nil {
			s.log.WithError(err).WithField("user_id", uid).Error("weekly digest failed")
			continue
		}
		if sent {
			summary.DigestsSent++
		}
	}

	s.log.WithFields(logrus.Fields{
		"users_processed": summary.UsersProcessed,
		"digests_sent":    summary.DigestsSent,
	}).Info("weekly digest run completed")

	return summary, nil
}

// generateDigestForUser builds and stores one user's digest notification.
// Users with no activity in the period get no digest.
func (s *AnalyticsService) generateDigestForUser(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	txns, err := s.fetchHistory(ctx, userID, &start, &end, model.TransactionFilter{})
	if err != nil {
		return false, err
	}
	if len(txns) == 0 {
		return false, nil
	}

	var totalSpent, totalIncome float64
	categoryTotals := make(map[string]float64)
	for _, t := range txns {
		switch t.Type {
		case model.TransactionTypeExpense:
			totalSpent += t.Amount
			categoryTotals[t.CategoryID] += t.Amount
		case model.TransactionTypeIncome:
			totalIncome += t.Amount
		}
	}

	type categoryAmount struct {
		id     string
		amount float64
	}
	top := make([]categoryAmount, 0, len(categoryTotals))
	for id, amount := range categoryTotals {
		top = append(top, categoryAmount{id, amount})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].amount != top[j].amount {
			return top[i].amount > top[j].amount
		}
		return top[i].id < top[j].id
	})
	if len(top) > 5 {
		top = top[:5]
	}

	body := fmt.Sprintf("You spent $%.2f and earned $%.2f this week.", totalSpent, totalIncome)
	if len(top) > 0 {
		body += fmt.Sprintf(" Top category: %s ($%.2f).", top[0].id, top[0].amount)
	}

	notification := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      "weekly_digest",
		Title:     "Your Weekly Financial Summary",
		Body:      body,
		CreatedAt: end,
	}
	if err := s.store.CreateNotification(ctx, notification); err != nil {
		return false, errors.Wrap(err, "creating digest notification")
	}

	return true, nil
}
