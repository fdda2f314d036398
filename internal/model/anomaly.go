package model

import "time"

// AnomalySeverity grades how far an outlier sits beyond the detection threshold.
type AnomalySeverity string

const (
	AnomalySeverityLow      AnomalySeverity = "low"
	AnomalySeverityMedium   AnomalySeverity = "medium"
	AnomalySeverityHigh     AnomalySeverity = "high"
	AnomalySeverityCritical AnomalySeverity = "critical"
)

// AnomalyType names the rule that flagged a transaction.
type AnomalyType string

const (
	AnomalyTypeAmountOutlier AnomalyType = "amount_outlier"
	AnomalyTypeNewMerchant   AnomalyType = "new_merchant"
)

// Anomaly is one flagged transaction. Ephemeral, recomputed per request.
type Anomaly struct {
	ID                  string          `json:"id"`
	TransactionID       string          `json:"transaction_id"`
	Type                AnomalyType     `json:"type"`
	Severity            AnomalySeverity `json:"severity"`
	Date                time.Time       `json:"date"`
	CategoryID          string          `json:"category_id"`
	ExpectedValue       float64         `json:"expected_value"`
	ActualValue         float64         `json:"actual_value"`
	Deviation           float64         `json:"deviation"`
	DeviationPercentage float64         `json:"deviation_percentage"`
	Confidence          float64         `json:"confidence"`
	Explanation         string          `json:"explanation"`
}

// AnomalyReport aggregates the anomalies found in a window.
type AnomalyReport struct {
	Anomalies           []Anomaly               `json:"anomalies"`
	TotalAnomalies      int                     `json:"total_anomalies"`
	CountBySeverity     map[AnomalySeverity]int `json:"count_by_severity"`
	AnomalousSpendTotal float64                 `json:"anomalous_spend_total"`
	TopCategoryID       string                  `json:"top_category_id,omitempty"`
	DetectionAccuracy   float64                 `json:"detection_accuracy"`
}

// AnomalyQuery carries the parameters for anomaly detection.
type AnomalyQuery struct {
	UserID    string            `json:"user_id"`
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	Filter    TransactionFilter `json:"-"`
	// Sensitivity in [0,1]; 0.5 keeps the default 2.5 z threshold.
	Sensitivity float64 `json:"sensitivity"`
}
