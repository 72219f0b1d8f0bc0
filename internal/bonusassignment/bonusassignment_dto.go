package bonusassignment

type CreateAssignmentRequest struct {
	EmploymentFileID string `json:"employment_file_id" binding:"required,uuid"`
	BonusID          string `json:"bonus_id" binding:"required,uuid"`
	Observations     string `json:"observations"`
}

// UpdateAssignmentRequest proposes a (possibly different, possibly edited)
// catalog bonus for an existing assignment. The diff engine decides what the
// change implies.
type UpdateAssignmentRequest struct {
	BonusID      string  `json:"bonus_id" binding:"required,uuid"`
	Active       *bool   `json:"active"`
	Observations *string `json:"observations"`
}

type AssignmentResponse struct {
	ID               string  `json:"id"`
	EmploymentFileID string  `json:"employment_file_id"`
	BonusID          string  `json:"bonus_id"`
	BonusName        string  `json:"bonus_name,omitempty"`
	AssignedAt       string  `json:"assigned_at"`
	EndDate          *string `json:"end_date"`
	Active           bool    `json:"active"`
	Observations     string  `json:"observations,omitempty"`
	DiffReason       string  `json:"diff_reason,omitempty"`
}

type SweepResult struct {
	Deactivated int `json:"deactivated"`
}
