package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DetectionMethodStatistical is the detection method recorded on flags
// produced by the statistical scorer.
const DetectionMethodStatistical = "statistical_analysis"

// AnomalyFeatures is the audit trail of inputs that produced a score.
// It is a fixed record rather than an open map so the payload schema
// stays explicit and reproducible.
type AnomalyFeatures struct {
	AmountScore         float64 `json:"amount_score"`
	FrequencyScore      float64 `json:"frequency_score"`
	TimeScore           float64 `json:"time_score"`
	TransactionCount24h int     `json:"transaction_count_24h"`
	AmountMean          float64 `json:"amount_mean"`
	AmountStdDev        float64 `json:"amount_stddev"`
	TransactionHour     int     `json:"transaction_hour"`
}

// Value implements driver.Valuer so features persist as a JSON column.
func (f AnomalyFeatures) Value() (driver.Value, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (f *AnomalyFeatures) Scan(value any) error {
	if value == nil {
		*f = AnomalyFeatures{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for AnomalyFeatures", value)
	}

	return json.Unmarshal(data, f)
}

// AnomalyFlag is the scoring verdict for exactly one transaction.
// The score, verdict, and features are written once by the detection
// pipeline; the review fields are the only columns the review workflow
// may change afterwards.
type AnomalyFlag struct {
	Base
	TransactionID    string          `gorm:"type:uuid;not null;uniqueIndex" json:"transaction_id"`
	AnomalyScore     float64         `gorm:"not null" json:"anomaly_score"`
	IsAnomaly        bool            `gorm:"not null;index" json:"is_anomaly"`
	DetectionMethod  string          `gorm:"not null" json:"detection_method"`
	FeaturesAnalyzed AnomalyFeatures `gorm:"type:jsonb" json:"features_analyzed"`
	Reviewed         bool            `gorm:"not null;default:false;index" json:"reviewed"`
	ReviewerComments *string         `json:"reviewer_comments,omitempty"`
	ReviewedAt       *time.Time      `json:"reviewed_at,omitempty"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
}
