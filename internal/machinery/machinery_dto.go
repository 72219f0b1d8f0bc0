package machinery

type CreateMachineRequest struct {
	Patente string `json:"patente" binding:"required"`
	Brand   string `json:"brand" binding:"required,max=80"`
	Model   string `json:"model" binding:"required,max=80"`
	Year    int    `json:"year" binding:"omitempty,min=1950,max=2100"`
}

type UpdateMachineRequest struct {
	Brand *string `json:"brand" binding:"omitempty,max=80"`
	Model *string `json:"model" binding:"omitempty,max=80"`
	Year  *int    `json:"year" binding:"omitempty,min=1950,max=2100"`
}

type MachineResponse struct {
	ID      string `json:"id"`
	Patente string `json:"patente"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    int    `json:"year,omitempty"`
}

type CreateReportRequest struct {
	MachineID  string  `json:"machine_id" binding:"required,uuid"`
	ClientID   string  `json:"client_id" binding:"required,uuid"`
	WorkDate   string  `json:"work_date" binding:"required"`
	Hours      float64 `json:"hours" binding:"required"`
	HourlyRate int64   `json:"hourly_rate" binding:"required"`
	Detail     string  `json:"detail"`
}

type ReportResponse struct {
	ID         string  `json:"id"`
	MachineID  string  `json:"machine_id"`
	ClientID   string  `json:"client_id"`
	WorkDate   string  `json:"work_date"`
	Hours      float64 `json:"hours"`
	HourlyRate int64   `json:"hourly_rate"`
	Total      int64   `json:"total"`
	Detail     string  `json:"detail,omitempty"`
}

// ClientMonthlyTotal aggregates one client's rental activity in a month.
type ClientMonthlyTotal struct {
	ClientID    string  `json:"client_id"`
	ReportCount int     `json:"report_count"`
	TotalHours  float64 `json:"total_hours"`
	TotalValue  int64   `json:"total_value"`
}
