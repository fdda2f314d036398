package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/backend/internal/model"
	"github.com/ledgerline/backend/internal/store"
)

func seedMonthlyBudget(memStore *store.MemoryStore, id, userID string) {
	memStore.SeedBudget(&model.Budget{
		ID:        id,
		UserID:    userID,
		Name:      "Monthly essentials",
		Period:    model.BudgetPeriodMonthly,
		StartDate: testDay(0),
		EndDate:   testDay(365),
		Allocations: []model.CategoryAllocation{
			{CategoryID: "groceries", Amount: 600},
			{CategoryID: "dining", Amount: 200},
		},
		IsActive: true,
	})
}

func TestBudgetReportService(t *testing.T) {
	ctx := context.Background()
	// 2025-01-16; the report covers January.
	now := testDay(15)

	memStore := store.NewMemoryStore()
	svc := newTestService(memStore, now)

	seedMonthlyBudget(memStore, "budget-1", "user-1")
	memStore.SeedCategory(&model.Category{ID: "groceries", Name: "groceries", UserID: "user-1"})
	memStore.SeedCategory(&model.Category{ID: "dining", Name: "dining", UserID: "user-1"})

	seedTransaction(t, memStore, "g1", "user-1", 300, testDay(5).Add(12*time.Hour), model.TransactionTypeExpense, "groceries")
	seedTransaction(t, memStore, "d1", "user-1", 100, testDay(8).Add(12*time.Hour), model.TransactionTypeExpense, "dining")
	// Income and out-of-month spend stay out of the report.
	seedTransaction(t, memStore, "pay", "user-1", 4000, testDay(3), model.TransactionTypeIncome, "")
	seedTransaction(t, memStore, "feb", "user-1", 999, testDay(40), model.TransactionTypeExpense, "groceries")

	t.Run("single budget report", func(t *testing.T) {
		report, err := svc.BudgetReport(ctx, "user-1", "budget-1")
		require.NoError(t, err)

		assert.Equal(t, "budget-1", report.BudgetID)
		assert.Equal(t, 800.0, report.TotalAllocated)
		assert.Equal(t, 400.0, report.TotalSpent)
		assert.InDelta(t, 50, report.UtilizationPercentage, 0.01)
		require.Len(t, report.Categories, 2)
		assert.Equal(t, "groceries", report.Categories[0].CategoryID)
	})

	t.Run("unknown budget is not found", func(t *testing.T) {
		_, err := svc.BudgetReport(ctx, "user-1", "missing")
		assert.True(t, errors.Is(err, store.ErrNotFound), "err = %v", err)
	})

	t.Run("active budgets listed", func(t *testing.T) {
		reports, err := svc.ListBudgetReports(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "budget-1", reports[0].BudgetID)
	})
}

func TestRecommendationsSnapshot(t *testing.T) {
	ctx := context.Background()
	now := testDay(15)

	memStore := store.NewMemoryStore()
	svc := newTestService(memStore, now)

	seedMonthlyBudget(memStore, "budget-1", "user-1")
	// Overspend the whole allocation and save almost nothing.
	seedTransaction(t, memStore, "g1", "user-1", 900, testDay(5), model.TransactionTypeExpense, "groceries")
	seedTransaction(t, memStore, "d1", "user-1", 60, testDay(6), model.TransactionTypeExpense, "dining")
	seedTransaction(t, memStore, "pay", "user-1", 1000, testDay(3), model.TransactionTypeIncome, "")

	recommendations, err := svc.Recommendations(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, recommendations)
	assert.Equal(t, model.RecommendationBudget, recommendations[0].Type)
}
