package dto

// ── Transaction requests ──

// CreateTransactionRequest records a document transfer between two employees.
// Contract numbers are raw user input; the service normalizes and validates them.
type CreateTransactionRequest struct {
	TransactionType string   `json:"transaction_type" binding:"required"`
	FromEmployeeID  string   `json:"from_employee_id" binding:"required,uuid"`
	ToEmployeeID    string   `json:"to_employee_id"   binding:"required,uuid"`
	ContractNumbers []string `json:"contract_numbers" binding:"required"`
	Notes           string   `json:"notes"            binding:"omitempty,max=1000"`
}

// ListTransactionsRequest filters the transfer log.
type ListTransactionsRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=today week month all"`
	Type   string `form:"type"   binding:"omitempty,oneof=receive deliver"`
	Limit  int    `form:"limit"  binding:"omitempty,min=1,max=500"`
}

// RecentTransactionsRequest limits the recent-activity feed.
type RecentTransactionsRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ── Transaction responses ──

// TransactionResponse is the full view of a recorded transfer.
type TransactionResponse struct {
	ID              string                      `json:"id"`
	TransactionType string                      `json:"transaction_type"`
	TypeLabel       string                      `json:"type_label"`
	FromEmployee    *EmployeeResponse           `json:"from_employee,omitempty"`
	ToEmployee      *EmployeeResponse           `json:"to_employee,omitempty"`
	ReceiptNumber   string                      `json:"receipt_number"`
	Notes           string                      `json:"notes,omitempty"`
	TransactionDate string                      `json:"transaction_date"`
	Details         []TransactionDetailResponse `json:"details,omitempty"`
	DocumentCount   int                         `json:"document_count"`
	CreatedAt       string                      `json:"created_at"`
}

// TransactionSummary is the compact view used in lists and search results.
type TransactionSummary struct {
	ID              string `json:"id"`
	TransactionType string `json:"transaction_type"`
	TypeLabel       string `json:"type_label"`
	FromEmployee    string `json:"from_employee"`
	ToEmployee      string `json:"to_employee"`
	ReceiptNumber   string `json:"receipt_number"`
	TransactionDate string `json:"transaction_date"`
	DocumentCount   int    `json:"document_count"`
}

// TransactionDetailResponse links a transfer to one contract.
type TransactionDetailResponse struct {
	ID             string `json:"id"`
	ContractID     string `json:"contract_id"`
	ContractNumber string `json:"contract_number"`
}

// CreateTransactionResponse is the receipt payload returned after recording.
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Receipt     ReceiptResponse     `json:"receipt"`
}

// ReceiptResponse carries the printable receipt fields.
type ReceiptResponse struct {
	ReceiptNumber   string   `json:"receipt_number"`
	TypeLabel       string   `json:"type_label"`
	FromEmployee    string   `json:"from_employee"`
	ToEmployee      string   `json:"to_employee"`
	ContractNumbers []string `json:"contract_numbers"`
	DocumentCount   int      `json:"document_count"`
	TransactionDate string   `json:"transaction_date"`
	Notes           string   `json:"notes,omitempty"`
}
