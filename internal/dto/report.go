package dto

// ── Report requests ──

// ReportRequest selects the aggregation window.
type ReportRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=today week month all"`
}

// ExportRequest selects the export format.
type ExportRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=today week month all"`
	Format string `form:"format" binding:"omitempty,oneof=json csv"`
}

// ── Report responses ──

// ReportResponse is the activity report aggregate.
type ReportResponse struct {
	Period         string                    `json:"period"`
	Total          int                       `json:"total"`
	TotalContracts int                       `json:"total_contracts"`
	ByType         map[string]int            `json:"by_type"`
	ByEmployee     map[string]DirectionCount `json:"by_employee"`
	ByDepartment   map[string]DirectionCount `json:"by_department"`
	ByDay          []DayCount                `json:"by_day"`
	GeneratedAt    string                    `json:"generated_at"`
}

// DirectionCount splits an employee's or department's activity by direction.
type DirectionCount struct {
	Sent     int `json:"sent"`
	Received int `json:"received"`
}

// DayCount is the per-day, per-type series entry. Day is dd/mm/yyyy.
type DayCount struct {
	Day     string `json:"day"`
	Receive int    `json:"receive"`
	Deliver int    `json:"deliver"`
}

// DashboardResponse is the landing-page counter set. Counters degrade to
// zero when a source query fails rather than failing the whole page.
type DashboardResponse struct {
	TotalTransactions int                  `json:"total_transactions"`
	TodayTransactions int                  `json:"today_transactions"`
	TotalContracts    int                  `json:"total_contracts"`
	TotalEmployees    int                  `json:"total_employees"`
	RecentActivity    []TransactionSummary `json:"recent_activity"`
}
