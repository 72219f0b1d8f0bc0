package leave

type CreateLeaveRequest struct {
	WorkerID  string `json:"worker_id" binding:"required,uuid"`
	Type      string `json:"type" binding:"required,oneof=LICENCIA PERMISO_ADMINISTRATIVO"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	WorkerID        string  `json:"worker_id"`
	Type            string  `json:"type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       *string `json:"created_by,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// SweepResult reports how many approved leaves the daily sweep closed.
type SweepResult struct {
	Completed int `json:"completed"`
}
