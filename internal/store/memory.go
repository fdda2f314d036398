package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ledgerline/backend/internal/model"
)

// MemoryStore implements Store with in-memory maps. Used for local
// development and tests; safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	transactions  map[string]*model.Transaction
	categories    map[string]*model.Category
	budgets       map[string]*model.Budget
	goals         map[string]*model.FinancialGoal
	recurring     map[string]*model.RecurringTransaction
	notifications map[string]*model.Notification
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions:  make(map[string]*model.Transaction),
		categories:    make(map[string]*model.Category),
		budgets:       make(map[string]*model.Budget),
		goals:         make(map[string]*model.FinancialGoal),
		recurring:     make(map[string]*model.RecurringTransaction),
		notifications: make(map[string]*model.Notification),
	}
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, filter model.TransactionFilter) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Transaction
	for _, txn := range m.transactions {
		if userID != "" && txn.UserID != userID {
			continue
		}
		if startDate != nil && txn.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && txn.Date.After(*endDate) {
			continue
		}
		if !filter.Matches(txn) {
			continue
		}
		result = append(result, txn)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// SeedCategory inserts a category; test and local-dev helper.
func (m *MemoryStore) SeedCategory(category *model.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	m.categories[category.ID] = category
}

func (m *MemoryStore) ListCategories(ctx context.Context, userID string) ([]*model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Category
	for _, c := range m.categories {
		if userID != "" && c.UserID != "" && c.UserID != userID {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SeedBudget inserts a budget; test and local-dev helper.
func (m *MemoryStore) SeedBudget(budget *model.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	m.budgets[budget.ID] = budget
}

func (m *MemoryStore) GetBudget(ctx context.Context, userID, budgetID string) (*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	budget, ok := m.budgets[budgetID]
	if !ok || (userID != "" && budget.UserID != userID) {
		return nil, errors.Wrapf(ErrNotFound, "budget %s", budgetID)
	}
	return budget, nil
}

func (m *MemoryStore) ListBudgets(ctx context.Context, userID string, includeInactive bool) ([]*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Budget
	for _, b := range m.budgets {
		if userID != "" && b.UserID != userID {
			continue
		}
		if !includeInactive && !b.IsActive {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryStore) CreateGoal(ctx context.Context, goal *model.FinancialGoal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	m.goals[goal.ID] = goal
	return nil
}

func (m *MemoryStore) GetGoal(ctx context.Context, userID, goalID string) (*model.FinancialGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	goal, ok := m.goals[goalID]
	if !ok || (userID != "" && goal.UserID != userID) {
		return nil, errors.Wrapf(ErrNotFound, "goal %s", goalID)
	}
	return goal, nil
}

func (m *MemoryStore) UpdateGoal(ctx context.Context, goal *model.FinancialGoal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.goals[goal.ID]; !ok {
		return errors.Wrapf(ErrNotFound, "goal %s", goal.ID)
	}
	m.goals[goal.ID] = goal
	return nil
}

func (m *MemoryStore) ListGoals(ctx context.Context, userID string) ([]*model.FinancialGoal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.FinancialGoal
	for _, g := range m.goals {
		if userID != "" && g.UserID != userID {
			continue
		}
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SeedRecurringTransaction inserts a recurring transaction; test helper.
func (m *MemoryStore) SeedRecurringTransaction(rt *model.RecurringTransaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	m.recurring[rt.ID] = rt
}

func (m *MemoryStore) ListRecurringTransactions(ctx context.Context, userID string, status model.RecurringStatus) ([]*model.RecurringTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.RecurringTransaction
	for _, rt := range m.recurring {
		if userID != "" && rt.UserID != userID {
			continue
		}
		if status != "" && rt.Status != status {
			continue
		}
		result = append(result, rt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryStore) UpdateRecurringTransaction(ctx context.Context, rt *model.RecurringTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recurring[rt.ID]; !ok {
		return errors.Wrapf(ErrNotFound, "recurring transaction %s", rt.ID)
	}
	m.recurring[rt.ID] = rt
	return nil
}

func (m *MemoryStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	m.notifications[notification.ID] = notification
	return nil
}

// Notifications returns all stored notifications for a user; test helper.
func (m *MemoryStore) Notifications(userID string) []*model.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *MemoryStore) ListUserIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, txn := range m.transactions {
		seen[txn.UserID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
