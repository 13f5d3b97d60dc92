package model

import "time"

// TransactionDetail links one contract to one transfer, stored in the
// transaction_details table. Append-only, one row per contract in the
// transfer.
type TransactionDetail struct {
	ID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TransactionID string    `gorm:"type:uuid;not null"                             json:"transaction_id"`
	ContractID    string    `gorm:"type:uuid;not null"                             json:"contract_id"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Contract *Contract `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
}

// TableName sets the table name.
func (TransactionDetail) TableName() string { return "transaction_details" }
