package dto

// ── Employee requests ──

// CreateEmployeeRequest registers a new employee.
type CreateEmployeeRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=255"`
	Department string `json:"department" binding:"required,oneof=مكتب أرشيف"`
}

// ── Employee responses ──

// EmployeeResponse is the public view of an employee.
type EmployeeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}
