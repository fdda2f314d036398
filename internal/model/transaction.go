package model

import "time"

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction is one historical record as supplied by the persistence layer.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	CategoryID  string          `json:"category_id"`
	AccountID   string          `json:"account_id"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Category labels transactions; parent forms a two-level hierarchy.
type Category struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// TransactionFilter narrows a historical fetch.
type TransactionFilter struct {
	CategoryIDs []string
	AccountIDs  []string
	Type        TransactionType // empty = both
}

// Matches reports whether the transaction passes every populated criterion.
func (f TransactionFilter) Matches(t *Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if len(f.CategoryIDs) > 0 && !containsString(f.CategoryIDs, t.CategoryID) {
		return false
	}
	if len(f.AccountIDs) > 0 && !containsString(f.AccountIDs, t.AccountID) {
		return false
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// TimeSeriesPoint is one aggregation bucket. Immutable once computed and
// recomputed fresh per query, never persisted.
type TimeSeriesPoint struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Count  int       `json:"count"`
}

// Granularity selects the aggregation bucket width.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)
