package dto

// ── Contract requests ──

// SearchContractRequest looks a contract up by its number.
type SearchContractRequest struct {
	Number string `form:"number" binding:"required"`
}

// ListContractsRequest lists contracts with pagination.
type ListContractsRequest struct {
	PaginationRequest
}

// ── Contract responses ──

// ContractResponse is the public view of a contract and its custody state.
type ContractResponse struct {
	ID             string            `json:"id"`
	ContractNumber string            `json:"contract_number"`
	Status         string            `json:"status"`
	CurrentHolder  *EmployeeResponse `json:"current_holder,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

// ContractSearchResponse pairs a contract with its latest transfer.
type ContractSearchResponse struct {
	Contract     ContractResponse    `json:"contract"`
	LastTransfer *TransactionSummary `json:"last_transfer,omitempty"`
}
