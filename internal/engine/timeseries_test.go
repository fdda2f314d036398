package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

func TestAggregateDeterministicUnderShuffle(t *testing.T) {
	txns := dailyExpenses(30, func(i int) float64 { return float64(10 + i) })
	// Two transactions on the same day exercise in-bucket summing.
	txns = append(txns, &model.Transaction{
		ID:     "txn-extra",
		Amount: 5,
		Date:   testDay(3).Add(20 * time.Hour),
		Type:   model.TransactionTypeExpense,
	})

	baseline := Aggregate(txns, model.GranularityDay)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]*model.Transaction, len(txns))
		copy(shuffled, txns)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Aggregate(shuffled, model.GranularityDay)
		if len(got) != len(baseline) {
			t.Fatalf("trial %d: got %d buckets, want %d", trial, len(got), len(baseline))
		}
		for k := range got {
			if got[k] != baseline[k] {
				t.Errorf("trial %d: bucket %d = %+v, want %+v", trial, k, got[k], baseline[k])
			}
		}
	}

	day3 := baseline[3]
	if day3.Amount != 18 || day3.Count != 2 {
		t.Errorf("day 3 bucket = %+v, want amount 18 count 2", day3)
	}
}

func TestAggregateDenseZeroFills(t *testing.T) {
	txns := []*model.Transaction{
		{ID: "a", Amount: 100, Date: testDay(0), Type: model.TransactionTypeExpense},
		{ID: "b", Amount: 50, Date: testDay(4), Type: model.TransactionTypeExpense},
	}

	series := AggregateDense(txns, model.GranularityDay, testDay(0), testDay(4))
	if len(series) != 5 {
		t.Fatalf("got %d points, want 5", len(series))
	}
	for i := 1; i <= 3; i++ {
		if series[i].Amount != 0 || series[i].Count != 0 {
			t.Errorf("gap day %d = %+v, want zero bucket", i, series[i])
		}
	}
	if series[0].Amount != 100 || series[4].Amount != 50 {
		t.Errorf("edge buckets = %v / %v, want 100 / 50", series[0].Amount, series[4].Amount)
	}
}

func TestBucketStartWeekIsSunday(t *testing.T) {
	// 2025-01-01 is a Wednesday; its week bucket starts Sunday 2024-12-29.
	got := bucketStart(testDay(0), model.GranularityWeek)
	want := time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("week bucket = %s, want %s", got, want)
	}
	if got.Weekday() != time.Sunday {
		t.Errorf("week bucket starts on %s, want Sunday", got.Weekday())
	}
}

func TestBucketStartMonth(t *testing.T) {
	got := bucketStart(testDay(20), model.GranularityMonth)
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("month bucket = %s, want %s", got, want)
	}
}

func TestDistinctDays(t *testing.T) {
	txns := dailyExpenses(10, func(int) float64 { return 1 })
	// A second transaction on an existing day must not add a new day.
	txns = append(txns, &model.Transaction{ID: "dup", Date: testDay(2).Add(time.Hour)})

	if got := DistinctDays(txns); got != 10 {
		t.Errorf("DistinctDays = %d, want 10", got)
	}
}
