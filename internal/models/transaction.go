package models

// Transaction represents a financial event submitted by the storefront.
// Records are immutable once persisted; downstream review state lives on
// the associated AnomalyFlag.
type Transaction struct {
	Base
	UserID          string  `gorm:"not null;index:idx_transactions_user_created" json:"user_id"`
	Amount          float64 `gorm:"not null" json:"amount"`
	Currency        string  `gorm:"not null;default:SAR" json:"currency"`
	TransactionType string  `gorm:"not null" json:"transaction_type"`
	Metadata        JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	IPAddress       string  `json:"ip_address,omitempty"`
	UserAgent       string  `json:"user_agent,omitempty"`
}
