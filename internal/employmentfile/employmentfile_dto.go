package employmentfile

type SearchEmploymentFilesRequest struct {
	WorkerID              string   `form:"worker_id"`
	Rut                   string   `form:"rut"`
	Status                string   `form:"status"`
	Statuses              []string `form:"statuses"`
	Position              string   `form:"position"`
	Department            string   `form:"department"`
	ContractType          string   `form:"contract_type"`
	ScheduleType          string   `form:"schedule_type"`
	SalaryMin             *int64   `form:"salary_min"`
	SalaryMax             *int64   `form:"salary_max"`
	UnemploymentInsurance *bool    `form:"unemployment_insurance"`
	StartFrom             string   `form:"start_from"`
	StartTo               string   `form:"start_to"`
	EndFrom               string   `form:"end_from"`
	EndTo                 string   `form:"end_to"`
	IncludeOpenEnded      bool     `form:"include_open_ended"`
}

// UpdateEmploymentFileRequest uses pointers so callers can send only the
// fields they want changed. The worker reference and the bonus assignment
// collection are deliberately absent: they are protected fields and cannot be
// modified through this endpoint. The contract start date may be set once on
// a file that has none yet, never changed afterwards.
type UpdateEmploymentFileRequest struct {
	Position              *string `json:"position"`
	Department            *string `json:"department"`
	ContractType          *string `json:"contract_type"`
	ScheduleType          *string `json:"schedule_type"`
	BaseSalary            *int64  `json:"base_salary"`
	ContractStartDate     *string `json:"contract_start_date"`
	ContractEndDate       *string `json:"contract_end_date"`
	Afp                   *string `json:"afp"`
	HealthInsurer         *string `json:"health_insurer"`
	UnemploymentInsurance *bool   `json:"unemployment_insurance"`
	Observations          string  `json:"observations"`
}

type EmploymentFileResponse struct {
	ID                    string  `json:"id"`
	WorkerID              string  `json:"worker_id"`
	Position              string  `json:"position"`
	Department            string  `json:"department"`
	ContractType          string  `json:"contract_type"`
	ScheduleType          string  `json:"schedule_type"`
	BaseSalary            int64   `json:"base_salary"`
	ContractStartDate     *string `json:"contract_start_date"`
	ContractEndDate       *string `json:"contract_end_date"`
	Afp                   string  `json:"afp"`
	HealthInsurer         string  `json:"health_insurer"`
	UnemploymentInsurance bool    `json:"unemployment_insurance"`
	ContractDocument      string  `json:"contract_document,omitempty"`
	Status                string  `json:"status"`
	DisengagementReason   string  `json:"disengagement_reason,omitempty"`
}
