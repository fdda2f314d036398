package service

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/store"
)

// testDay returns midnight UTC n days after the fixed test epoch.
func testDay(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// quietLogger keeps test output free of service logs.
func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestService builds a service over the given store with a frozen clock.
func newTestService(st store.Store, now time.Time) *AnalyticsService {
	svc := NewAnalyticsService(st, quietLogger())
	svc.now = func() time.Time { return now }
	return svc
}

// expensesForUser builds one expense per day for the user starting at
// testDay(0).
func expensesForUser(userID string, days int, amount float64) []*model.Transaction {
	txns := make([]*model.Transaction, 0, days)
	for i := 0; i < days; i++ {
		txns = append(txns, &model.Transaction{
			ID:          fmt.Sprintf("txn-%s-%03d", userID, i),
			UserID:      userID,
			Amount:      amount,
			Date:        testDay(i).Add(12 * time.Hour),
			Type:        model.TransactionTypeExpense,
			CategoryID:  "groceries",
			Description: "Local Market",
		})
	}
	return txns
}
