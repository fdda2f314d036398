package model

import (
	"testing"
	"time"
)

func TestNextAfter(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		frequency Frequency
		want      time.Time
	}{
		{FrequencyDaily, base.AddDate(0, 0, 1)},
		{FrequencyWeekly, base.AddDate(0, 0, 7)},
		{FrequencyFortnightly, base.AddDate(0, 0, 14)},
		{FrequencyMonthly, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)},
		{FrequencyQuarterly, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)},
		{FrequencyAnnually, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			rt := &RecurringTransaction{Frequency: tt.frequency}
			if got := rt.NextAfter(base); !got.Equal(tt.want) {
				t.Errorf("NextAfter = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("unknown frequency jumps past any horizon", func(t *testing.T) {
		rt := &RecurringTransaction{Frequency: "biweekly-ish"}
		if got := rt.NextAfter(base); got.Year() < 2100 {
			t.Errorf("NextAfter = %v, want far future", got)
		}
	})
}

func TestTransactionFilterMatches(t *testing.T) {
	txn := &Transaction{
		Type:       TransactionTypeExpense,
		CategoryID: "groceries",
		AccountID:  "acct-1",
	}

	tests := []struct {
		name   string
		filter TransactionFilter
		want   bool
	}{
		{"empty filter", TransactionFilter{}, true},
		{"matching type", TransactionFilter{Type: TransactionTypeExpense}, true},
		{"wrong type", TransactionFilter{Type: TransactionTypeIncome}, false},
		{"matching category", TransactionFilter{CategoryIDs: []string{"dining", "groceries"}}, true},
		{"wrong category", TransactionFilter{CategoryIDs: []string{"dining"}}, false},
		{"matching account", TransactionFilter{AccountIDs: []string{"acct-1"}}, true},
		{"wrong account", TransactionFilter{AccountIDs: []string{"acct-2"}}, false},
		{"type and category together", TransactionFilter{Type: TransactionTypeExpense, CategoryIDs: []string{"groceries"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(txn); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
