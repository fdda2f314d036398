package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/ledgerline/backend/internal/model"
)

func TestPredictSpendingConstantHistory(t *testing.T) {
	history := dailyExpenses(60, func(int) float64 { return 100 })
	now := testDay(60)

	query := model.PredictionQuery{
		UserID:    "user-1",
		StartDate: testDay(60),
		EndDate:   testDay(66),
	}

	prediction, err := PredictSpending(query, history, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prediction.Predictions) != 7 {
		t.Fatalf("got %d prediction points, want 7", len(prediction.Predictions))
	}
	if prediction.Methodology != model.MethodologyLinearRegression {
		t.Errorf("methodology = %s, want linear_regression", prediction.Methodology)
	}

	var sum float64
	for _, p := range prediction.Predictions {
		if math.Abs(p.PredictedAmount-100) > 0.01 {
			t.Errorf("prediction for %s = %.2f, want 100", p.Date.Format("2006-01-02"), p.PredictedAmount)
		}
		if p.Confidence < 0.05 || p.Confidence > 0.95 {
			t.Errorf("confidence %.3f outside [0.05, 0.95]", p.Confidence)
		}
		sum += p.PredictedAmount
	}
	if math.Abs(prediction.TotalPredictedAmount-sum) > 0.01 {
		t.Errorf("total %.2f does not equal sum of points %.2f", prediction.TotalPredictedAmount, sum)
	}
	if math.Abs(prediction.TotalPredictedAmount-700) > 0.5 {
		t.Errorf("total = %.2f, want ~700", prediction.TotalPredictedAmount)
	}
	if prediction.Confidence != model.ConfidenceHigh {
		t.Errorf("confidence bucket = %s, want high for a perfectly flat history", prediction.Confidence)
	}
}

func TestPredictSpendingInsufficientHistory(t *testing.T) {
	history := dailyExpenses(29, func(int) float64 { return 100 })

	_, err := PredictSpending(model.PredictionQuery{
		StartDate: testDay(30),
		EndDate:   testDay(36),
	}, history, testDay(29))

	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestPredictSpendingInvalidWindow(t *testing.T) {
	history := dailyExpenses(60, func(int) float64 { return 100 })

	_, err := PredictSpending(model.PredictionQuery{
		StartDate: testDay(70),
		EndDate:   testDay(65),
	}, history, testDay(60))

	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestPredictSpendingNeverNegative(t *testing.T) {
	// Steeply declining history drives the fitted line below zero inside the
	// forecast window; points must floor at zero.
	history := dailyExpenses(40, func(i int) float64 {
		v := 400 - 10*float64(i)
		if v < 0 {
			v = 0
		}
		return v
	})

	prediction, err := PredictSpending(model.PredictionQuery{
		StartDate: testDay(40),
		EndDate:   testDay(69),
	}, history, testDay(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, p := range prediction.Predictions {
		if p.PredictedAmount < 0 {
			t.Errorf("prediction for %s is negative: %.2f", p.Date.Format("2006-01-02"), p.PredictedAmount)
		}
	}
}

func TestTrainModel(t *testing.T) {
	t.Run("unknown type errors", func(t *testing.T) {
		m := TrainModel("user-1", "quantum_annealing", nil, nil, testDay(0))
		if m.Status != model.ModelStatusError {
			t.Errorf("status = %s, want error", m.Status)
		}
	})

	t.Run("short history stays training", func(t *testing.T) {
		history := dailyExpenses(10, func(int) float64 { return 50 })
		m := TrainModel("user-1", string(model.MethodologyLinearRegression), nil, history, testDay(10))
		if m.Status != model.ModelStatusTraining {
			t.Errorf("status = %s, want training", m.Status)
		}
	})

	t.Run("full history is ready with performance", func(t *testing.T) {
		history := dailyExpenses(60, func(int) float64 { return 50 })
		m := TrainModel("user-1", string(model.MethodologyLinearRegression), map[string]float64{"window": 14}, history, testDay(60))

		if m.Status != model.ModelStatusReady {
			t.Fatalf("status = %s, want ready", m.Status)
		}
		if m.Algorithm != string(model.MethodologyLinearRegression) {
			t.Errorf("algorithm = %s", m.Algorithm)
		}
		// A flat series is explained perfectly.
		if m.Performance.Accuracy < 0.99 {
			t.Errorf("accuracy = %.3f, want ~1 for a flat series", m.Performance.Accuracy)
		}
		if m.Performance.F1Score > m.Performance.Accuracy {
			t.Errorf("f1 %.3f exceeds accuracy %.3f", m.Performance.F1Score, m.Performance.Accuracy)
		}
	})

	t.Run("seasonal model scores its own pattern", func(t *testing.T) {
		history := dailyExpenses(35, weekendSpikeAmount)
		m := TrainModel("user-1", string(model.MethodologySeasonalDecomposition), nil, history, testDay(35))

		if m.Status != model.ModelStatusReady {
			t.Fatalf("status = %s, want ready", m.Status)
		}
		if m.Performance.Accuracy < 0.99 {
			t.Errorf("accuracy = %.3f, want ~1 for an exactly weekly history", m.Performance.Accuracy)
		}
	})
}

func TestRetrospectiveFitFlatSeries(t *testing.T) {
	series := dailySeries(30, func(int) float64 { return 100 })
	fit := retrospectiveFit(fitLinear(series), series)

	if fit.RSquared != 1 {
		t.Errorf("r-squared = %.3f, want 1 for a constant series", fit.RSquared)
	}
	if fit.MAPE > 0.001 {
		t.Errorf("mape = %.4f, want ~0", fit.MAPE)
	}
	if fit.WindowDays != 30 {
		t.Errorf("window days = %d, want 30", fit.WindowDays)
	}
}

// weekendSpikeAmount is 200 on Saturdays and 50 otherwise; testDay(0) is a
// Wednesday, so Saturdays fall on i%7 == 3.
func weekendSpikeAmount(i int) float64 {
	if i%7 == 3 {
		return 200
	}
	return 50
}

func TestRetrospectiveFitSeasonalSeries(t *testing.T) {
	// The weekday factors explain this series exactly, so the replay must
	// score it near-perfectly on the series' own calendar dates.
	series := dailySeries(35, weekendSpikeAmount)
	fit := retrospectiveFit(fitSeasonal(series), series)

	if fit.RSquared < 0.99 {
		t.Errorf("r-squared = %.3f, want ~1 for an exactly weekly series", fit.RSquared)
	}
	if fit.MAPE > 0.01 {
		t.Errorf("mape = %.4f, want ~0", fit.MAPE)
	}
}

func TestRetrospectiveFitTrendingSeries(t *testing.T) {
	// The anchored trailing-window line runs through a clean ramp exactly.
	series := dailySeries(40, func(i int) float64 { return 400 - 10*float64(i) })
	fit := retrospectiveFit(fitTimeSeries(series), series)

	if fit.RSquared < 0.99 {
		t.Errorf("r-squared = %.3f, want ~1 for a clean ramp", fit.RSquared)
	}
	if math.Abs(fit.MeanError) > 0.5 {
		t.Errorf("mean error = %.3f, want ~0", fit.MeanError)
	}
}

func TestPredictSpendingSeasonalHistory(t *testing.T) {
	history := dailyExpenses(35, weekendSpikeAmount)

	prediction, err := PredictSpending(model.PredictionQuery{
		UserID:    "user-1",
		StartDate: testDay(35),
		EndDate:   testDay(41),
	}, history, testDay(35))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prediction.Methodology != model.MethodologySeasonalDecomposition {
		t.Fatalf("methodology = %s, want seasonal_decomposition", prediction.Methodology)
	}
	if prediction.Accuracy.RSquared < 0.99 {
		t.Errorf("accuracy r-squared = %.3f, want ~1 for an exactly weekly history", prediction.Accuracy.RSquared)
	}
	if prediction.Accuracy.MAPE > 0.01 {
		t.Errorf("accuracy mape = %.4f, want ~0", prediction.Accuracy.MAPE)
	}
	if prediction.Confidence != model.ConfidenceHigh {
		t.Errorf("confidence bucket = %s, want high when the pattern is fully explained", prediction.Confidence)
	}

	for _, p := range prediction.Predictions {
		want := weekendSpikeAmount(int(p.Date.Sub(testDay(0)).Hours() / 24))
		if math.Abs(p.PredictedAmount-want) > 1 {
			t.Errorf("prediction for %s (%s) = %.2f, want %.0f",
				p.Date.Format("2006-01-02"), p.Date.Weekday(), p.PredictedAmount, want)
		}
	}
}

func TestBucketConfidence(t *testing.T) {
	cases := []struct {
		avg  float64
		want model.ConfidenceLevel
	}{
		{0.9, model.ConfidenceHigh},
		{0.7, model.ConfidenceHigh},
		{0.5, model.ConfidenceMedium},
		{0.45, model.ConfidenceMedium},
		{0.2, model.ConfidenceLow},
	}
	for _, tc := range cases {
		if got := bucketConfidence(tc.avg); got != tc.want {
			t.Errorf("bucketConfidence(%.2f) = %s, want %s", tc.avg, got, tc.want)
		}
	}
}
