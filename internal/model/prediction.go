package model

import "time"

// Methodology names the forecasting strategy selected for a prediction.
type Methodology string

const (
	MethodologyLinearRegression      Methodology = "linear_regression"
	MethodologyTimeSeries            Methodology = "time_series"
	MethodologySeasonalDecomposition Methodology = "seasonal_decomposition"
	MethodologyHybrid                Methodology = "hybrid"
)

// ConfidenceLevel buckets a numeric confidence for display.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// PredictionFactor describes one contributor to a point estimate.
type PredictionFactor struct {
	Factor string  `json:"factor"`
	Impact float64 `json:"impact"`
	Weight float64 `json:"weight"`
}

// PredictionPoint is the forecast for a single future day.
type PredictionPoint struct {
	Date            time.Time          `json:"date"`
	PredictedAmount float64            `json:"predicted_amount"`
	Confidence      float64            `json:"confidence"` // [0,1]
	Factors         []PredictionFactor `json:"factors,omitempty"`
}

// AccuracyMetrics reports retrospective fit quality over the trailing window.
// There is no held-out test set, so this measures how well the chosen model
// explains the history it was fitted on.
type AccuracyMetrics struct {
	RSquared   float64 `json:"r_squared"`
	MAPE       float64 `json:"mape"`
	MeanError  float64 `json:"mean_error"`
	WindowDays int     `json:"window_days"`
}

// SpendingPrediction is the full forecast for a requested future window.
type SpendingPrediction struct {
	PeriodStart            time.Time         `json:"period_start"`
	PeriodEnd              time.Time         `json:"period_end"`
	Predictions            []PredictionPoint `json:"predictions"`
	TotalPredictedAmount   float64           `json:"total_predicted_amount"`
	AverageDailyPrediction float64           `json:"average_daily_prediction"`
	Confidence             ConfidenceLevel   `json:"confidence"`
	Methodology            Methodology       `json:"methodology"`
	Accuracy               AccuracyMetrics   `json:"accuracy"`
	RiskFactors            []string          `json:"risk_factors"`
}

// PredictionQuery carries the parameters for a spending forecast request.
type PredictionQuery struct {
	UserID    string            `json:"user_id"`
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	Filter    TransactionFilter `json:"-"`
}

// ModelStatus reports whether a model descriptor is usable.
type ModelStatus string

const (
	ModelStatusReady    ModelStatus = "ready"
	ModelStatusTraining ModelStatus = "training"
	ModelStatusError    ModelStatus = "error"
)

// ModelPerformance is a retrospective fit summary, not a held-out score.
type ModelPerformance struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
}

// Model is a predictive-model descriptor: configuration plus retrospective
// performance. It is not a persisted trained artifact.
type Model struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Algorithm   string             `json:"algorithm"`
	Parameters  map[string]float64 `json:"parameters,omitempty"`
	Performance ModelPerformance   `json:"performance"`
	Status      ModelStatus        `json:"status"`
	LastTrained time.Time          `json:"last_trained"`
}
