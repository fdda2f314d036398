package engine

import (
	"sort"
	"time"

	"github.com/ledgerline/backend/internal/model"
)

// Aggregate groups transactions into buckets of the given granularity, summing
// amounts and counting records. Buckets with no transactions are omitted; use
// AggregateDense when the consumer needs zero-filled gaps. The result is
// sorted by date and deterministic regardless of input order.
func Aggregate(transactions []*model.Transaction, granularity model.Granularity) []model.TimeSeriesPoint {
	buckets := make(map[time.Time]*model.TimeSeriesPoint)
	for _, t := range transactions {
		key := bucketStart(t.Date, granularity)
		pt, ok := buckets[key]
		if !ok {
			pt = &model.TimeSeriesPoint{Date: key}
			buckets[key] = pt
		}
		pt.Amount += t.Amount
		pt.Count++
	}

	series := make([]model.TimeSeriesPoint, 0, len(buckets))
	for _, pt := range buckets {
		series = append(series, *pt)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// AggregateDense aggregates over [start, end] and synthesizes zero buckets for
// every period with no transactions, so consumers get a gap-free series.
func AggregateDense(transactions []*model.Transaction, granularity model.Granularity, start, end time.Time) []model.TimeSeriesPoint {
	sparse := Aggregate(transactions, granularity)
	byDate := make(map[time.Time]model.TimeSeriesPoint, len(sparse))
	for _, pt := range sparse {
		byDate[pt.Date] = pt
	}

	var series []model.TimeSeriesPoint
	for d := bucketStart(start, granularity); !d.After(end); d = nextBucket(d, granularity) {
		if pt, ok := byDate[d]; ok {
			series = append(series, pt)
		} else {
			series = append(series, model.TimeSeriesPoint{Date: d})
		}
	}
	return series
}

// bucketStart truncates a timestamp to its bucket's first instant in UTC.
func bucketStart(t time.Time, granularity model.Granularity) time.Time {
	t = t.UTC()
	switch granularity {
	case model.GranularityWeek:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -int(day.Weekday())) // Sunday
	case model.GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func nextBucket(t time.Time, granularity model.Granularity) time.Time {
	switch granularity {
	case model.GranularityWeek:
		return t.AddDate(0, 0, 7)
	case model.GranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// DistinctDays counts unique calendar days across the transactions.
func DistinctDays(transactions []*model.Transaction) int {
	days := make(map[time.Time]struct{})
	for _, t := range transactions {
		days[bucketStart(t.Date, model.GranularityDay)] = struct{}{}
	}
	return len(days)
}

// amounts extracts the Amount column from a series.
func amounts(series []model.TimeSeriesPoint) []float64 {
	values := make([]float64, len(series))
	for i, pt := range series {
		values[i] = pt.Amount
	}
	return values
}
