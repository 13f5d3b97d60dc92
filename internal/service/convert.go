package service

import (
	"time"

	"github.com/EngOsamaQazan/Archeef/internal/dto"
	"github.com/EngOsamaQazan/Archeef/internal/model"
)

// ── Model → DTO mapping ──

func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

func toContractResponse(c *model.Contract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		Status:         c.Status,
		CurrentHolder:  toEmployeeResponse(c.CurrentHolder),
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      c.UpdatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponse(t *model.Transaction) dto.TransactionResponse {
	details := make([]dto.TransactionDetailResponse, 0, len(t.Details))
	for _, d := range t.Details {
		dr := dto.TransactionDetailResponse{
			ID:         d.ID,
			ContractID: d.ContractID,
		}
		if d.Contract != nil {
			dr.ContractNumber = d.Contract.ContractNumber
		}
		details = append(details, dr)
	}

	notes := ""
	if t.Notes != nil {
		notes = *t.Notes
	}

	return dto.TransactionResponse{
		ID:              t.ID,
		TransactionType: t.TransactionType,
		TypeLabel:       model.TransactionTypeLabels[t.TransactionType],
		FromEmployee:    toEmployeeResponse(t.FromEmployee),
		ToEmployee:      toEmployeeResponse(t.ToEmployee),
		ReceiptNumber:   t.ReceiptNumber,
		Notes:           notes,
		TransactionDate: t.TransactionDate.Format(time.RFC3339),
		Details:         details,
		DocumentCount:   t.DocumentCount(),
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionSummary(t *model.Transaction) dto.TransactionSummary {
	summary := dto.TransactionSummary{
		ID:              t.ID,
		TransactionType: t.TransactionType,
		TypeLabel:       model.TransactionTypeLabels[t.TransactionType],
		ReceiptNumber:   t.ReceiptNumber,
		TransactionDate: t.TransactionDate.Format(time.RFC3339),
		DocumentCount:   t.DocumentCount(),
	}
	if t.FromEmployee != nil {
		summary.FromEmployee = t.FromEmployee.Name
	}
	if t.ToEmployee != nil {
		summary.ToEmployee = t.ToEmployee.Name
	}
	return summary
}
