package model

import "time"

// Frequency is the recurrence interval of a recurring transaction.
type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencyAnnually    Frequency = "annually"
)

// RecurringStatus is the lifecycle state of a recurring transaction.
type RecurringStatus string

const (
	RecurringStatusActive RecurringStatus = "active"
	RecurringStatusPaused RecurringStatus = "paused"
	RecurringStatusEnded  RecurringStatus = "ended"
)

// RecurringTransaction materializes into concrete transactions on a schedule
// and overlays known amounts on cash-flow forecast days.
type RecurringTransaction struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Description    string          `json:"description"`
	Amount         float64         `json:"amount"`
	Type           TransactionType `json:"type"`
	CategoryID     string          `json:"category_id"`
	Frequency      Frequency       `json:"frequency"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	NextOccurrence *time.Time      `json:"next_occurrence,omitempty"`
	Status         RecurringStatus `json:"status"`
}

// NextAfter computes the occurrence that follows the given date.
func (r *RecurringTransaction) NextAfter(current time.Time) time.Time {
	switch r.Frequency {
	case FrequencyDaily:
		return current.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case FrequencyFortnightly:
		return current.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return current.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return current.AddDate(0, 3, 0)
	case FrequencyAnnually:
		return current.AddDate(1, 0, 0)
	default:
		// Unknown frequency: jump far ahead so projection loops terminate.
		return current.AddDate(100, 0, 0)
	}
}

// Notification is a stored message for a user, e.g. the weekly digest.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
