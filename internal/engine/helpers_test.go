package engine

import (
	"fmt"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

// testDay returns midnight UTC n days after the fixed test epoch.
func testDay(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// dailyExpenses builds one expense per day starting at testDay(0), with the
// amount for day i supplied by the callback.
func dailyExpenses(days int, amount func(i int) float64) []*model.Transaction {
	txns := make([]*model.Transaction, 0, days)
	for i := 0; i < days; i++ {
		txns = append(txns, &model.Transaction{
			ID:          fmt.Sprintf("txn-%03d", i),
			UserID:      "user-1",
			Amount:      amount(i),
			Date:        testDay(i).Add(12 * time.Hour),
			Type:        model.TransactionTypeExpense,
			CategoryID:  "groceries",
			Description: "Local Market",
		})
	}
	return txns
}

// dailySeries builds a gap-free daily series starting at testDay(0).
func dailySeries(days int, amount func(i int) float64) []model.TimeSeriesPoint {
	series := make([]model.TimeSeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		series = append(series, model.TimeSeriesPoint{
			Date:   testDay(i),
			Amount: amount(i),
			Count:  1,
		})
	}
	return series
}
