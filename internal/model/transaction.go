package model

import "time"

// Transaction type codes. The Arabic labels shown on receipts and reports
// live in TransactionTypeLabels.
const (
	TransactionTypeReceive = "receive" // استلام من الأرشيف
	TransactionTypeDeliver = "deliver" // تسليم إلى الأرشيف
)

// TransactionTypeLabels maps type codes to their Arabic display labels.
var TransactionTypeLabels = map[string]string{
	TransactionTypeReceive: "استلام من الأرشيف",
	TransactionTypeDeliver: "تسليم إلى الأرشيف",
}

// ValidTransactionType reports whether t is a known type code.
func ValidTransactionType(t string) bool {
	_, ok := TransactionTypeLabels[t]
	return ok
}

// Transaction is one recorded hand-off of documents, stored in the transactions table.
// Rows are append-only: the application never updates or deletes them.
type Transaction struct {
	ID              string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TransactionType string    `gorm:"type:varchar(20);not null"                      json:"transaction_type"`
	FromEmployeeID  string    `gorm:"type:uuid;not null"                             json:"from_employee_id"`
	ToEmployeeID    string    `gorm:"type:uuid;not null"                             json:"to_employee_id"`
	ReceiptNumber   string    `gorm:"type:varchar(50);not null"                      json:"receipt_number"`
	Notes           *string   `gorm:"type:text"                                      json:"notes,omitempty"`
	TransactionDate time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"transaction_date"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	FromEmployee *Employee           `gorm:"foreignKey:FromEmployeeID;references:ID" json:"from_employee,omitempty"`
	ToEmployee   *Employee           `gorm:"foreignKey:ToEmployeeID;references:ID"   json:"to_employee,omitempty"`
	Details      []TransactionDetail `gorm:"foreignKey:TransactionID;references:ID"  json:"details,omitempty"`
}

// TableName sets the table name.
func (Transaction) TableName() string { return "transactions" }

// DocumentCount is the number of contracts attached to this transfer.
func (t *Transaction) DocumentCount() int {
	return len(t.Details)
}
