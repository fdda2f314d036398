package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ledgerline/backend/internal/model"
)

// Firestore collection names.
const (
	collectionTransactions  = "transactions"
	collectionCategories    = "categories"
	collectionBudgets       = "budgets"
	collectionGoals         = "goals"
	collectionRecurring     = "recurringTransactions"
	collectionNotifications = "notifications"
)

// FirestoreStore implements Store on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	_, err := s.client.Collection(collectionTransactions).Doc(txn.ID).Set(ctx, txn)
	return errors.Wrap(err, "create transaction")
}

func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string, startDate, endDate *time.Time, filter model.TransactionFilter) ([]*model.Transaction, error) {
	query := s.client.Collection(collectionTransactions).Query.
		Where("UserID", "==", userID)
	if startDate != nil {
		query = query.Where("Date", ">=", *startDate)
	}
	if endDate != nil {
		query = query.Where("Date", "<=", *endDate)
	}
	query = query.OrderBy("Date", firestore.Asc)

	var result []*model.Transaction
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list transactions")
		}
		var txn model.Transaction
		if err := doc.DataTo(&txn); err != nil {
			return nil, errors.Wrap(err, "parse transaction")
		}
		// Category/account/type criteria are applied client-side; the date
		// range already bounds the fetch.
		if !filter.Matches(&txn) {
			continue
		}
		result = append(result, &txn)
	}
	return result, nil
}

func (s *FirestoreStore) ListCategories(ctx context.Context, userID string) ([]*model.Category, error) {
	iter := s.client.Collection(collectionCategories).
		Where("UserID", "in", []string{userID, ""}).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list categories")
		}
		var c model.Category
		if err := doc.DataTo(&c); err != nil {
			return nil, errors.Wrap(err, "parse category")
		}
		result = append(result, &c)
	}
	return result, nil
}

func (s *FirestoreStore) GetBudget(ctx context.Context, userID, budgetID string) (*model.Budget, error) {
	doc, err := s.client.Collection(collectionBudgets).Doc(budgetID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.Wrapf(ErrNotFound, "budget %s", budgetID)
		}
		return nil, errors.Wrap(err, "get budget")
	}
	var budget model.Budget
	if err := doc.DataTo(&budget); err != nil {
		return nil, errors.Wrap(err, "parse budget")
	}
	if userID != "" && budget.UserID != userID {
		return nil, errors.Wrapf(ErrNotFound, "budget %s", budgetID)
	}
	return &budget, nil
}

func (s *FirestoreStore) ListBudgets(ctx context.Context, userID string, includeInactive bool) ([]*model.Budget, error) {
	query := s.client.Collection(collectionBudgets).Query.
		Where("UserID", "==", userID)
	if !includeInactive {
		query = query.Where("IsActive", "==", true)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var result []*model.Budget
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list budgets")
		}
		var b model.Budget
		if err := doc.DataTo(&b); err != nil {
			return nil, errors.Wrap(err, "parse budget")
		}
		result = append(result, &b)
	}
	return result, nil
}

func (s *FirestoreStore) CreateGoal(ctx context.Context, goal *model.FinancialGoal) error {
	_, err := s.client.Collection(collectionGoals).Doc(goal.ID).Set(ctx, goal)
	return errors.Wrap(err, "create goal")
}

func (s *FirestoreStore) GetGoal(ctx context.Context, userID, goalID string) (*model.FinancialGoal, error) {
	doc, err := s.client.Collection(collectionGoals).Doc(goalID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.Wrapf(ErrNotFound, "goal %s", goalID)
		}
		return nil, errors.Wrap(err, "get goal")
	}
	var goal model.FinancialGoal
	if err := doc.DataTo(&goal); err != nil {
		return nil, errors.Wrap(err, "parse goal")
	}
	if userID != "" && goal.UserID != userID {
		return nil, errors.Wrapf(ErrNotFound, "goal %s", goalID)
	}
	return &goal, nil
}

func (s *FirestoreStore) UpdateGoal(ctx context.Context, goal *model.FinancialGoal) error {
	_, err := s.client.Collection(collectionGoals).Doc(goal.ID).Set(ctx, goal)
	return errors.Wrap(err, "update goal")
}

func (s *FirestoreStore) ListGoals(ctx context.Context, userID string) ([]*model.FinancialGoal, error) {
	iter := s.client.Collection(collectionGoals).
		Where("UserID", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.FinancialGoal
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list goals")
		}
		var g model.FinancialGoal
		if err := doc.DataTo(&g); err != nil {
			return nil, errors.Wrap(err, "parse goal")
		}
		result = append(result, &g)
	}
	return result, nil
}

func (s *FirestoreStore) ListRecurringTransactions(ctx context.Context, userID string, recStatus model.RecurringStatus) ([]*model.RecurringTransaction, error) {
	query := s.client.Collection(collectionRecurring).Query
	if userID != "" {
		query = query.Where("UserID", "==", userID)
	}
	if recStatus != "" {
		query = query.Where("Status", "==", string(recStatus))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var result []*model.RecurringTransaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list recurring transactions")
		}
		var rt model.RecurringTransaction
		if err := doc.DataTo(&rt); err != nil {
			return nil, errors.Wrap(err, "parse recurring transaction")
		}
		result = append(result, &rt)
	}
	return result, nil
}

func (s *FirestoreStore) UpdateRecurringTransaction(ctx context.Context, rt *model.RecurringTransaction) error {
	_, err := s.client.Collection(collectionRecurring).Doc(rt.ID).Set(ctx, rt)
	return errors.Wrap(err, "update recurring transaction")
}

func (s *FirestoreStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	_, err := s.client.Collection(collectionNotifications).Doc(notification.ID).Set(ctx, notification)
	return errors.Wrap(err, "create notification")
}

// ListUserIDs sweeps the transactions collection for distinct user IDs.
// Firestore has no distinct query, so scheduled jobs pay a full scan of the
// UserID field.
func (s *FirestoreStore) ListUserIDs(ctx context.Context) ([]string, error) {
	iter := s.client.Collection(collectionTransactions).
		Select("UserID").
		Documents(ctx)
	defer iter.Stop()

	seen := make(map[string]struct{})
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "list user ids")
		}
		if userID, ok := doc.Data()["UserID"].(string); ok && userID != "" {
			seen[userID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids, nil
}
