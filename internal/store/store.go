package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ledgerline/backend/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations the analytics service consumes.
// The engine itself never touches storage; all history arrives through these
// narrow fetches.
type Store interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, filter model.TransactionFilter) ([]*model.Transaction, error)

	// Category operations
	ListCategories(ctx context.Context, userID string) ([]*model.Category, error)

	// Budget operations
	GetBudget(ctx context.Context, userID, budgetID string) (*model.Budget, error)
	ListBudgets(ctx context.Context, userID string, includeInactive bool) ([]*model.Budget, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.FinancialGoal) error
	GetGoal(ctx context.Context, userID, goalID string) (*model.FinancialGoal, error)
	UpdateGoal(ctx context.Context, goal *model.FinancialGoal) error
	ListGoals(ctx context.Context, userID string) ([]*model.FinancialGoal, error)

	// Recurring transaction operations
	ListRecurringTransactions(ctx context.Context, userID string, status model.RecurringStatus) ([]*model.RecurringTransaction, error)
	UpdateRecurringTransaction(ctx context.Context, rt *model.RecurringTransaction) error

	// Notification operations
	CreateNotification(ctx context.Context, notification *model.Notification) error

	// ListUserIDs enumerates users with any stored transactions, for
	// scheduled jobs that sweep every account.
	ListUserIDs(ctx context.Context) ([]string, error)
}
