package payroll

import "time"

// BonusLine is one active bonus contributing to the calculation.
type BonusLine struct {
	BonusID   string `json:"bonus_id"`
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	Imponible bool   `json:"imponible"`
}

// SalaryBreakdown is the full monthly calculation for one employment file.
// Amounts are Chilean pesos.
type SalaryBreakdown struct {
	EmploymentFileID string `json:"employment_file_id"`
	WorkerID         string `json:"worker_id"`

	BaseSalary        int64       `json:"base_salary"`
	Bonuses           []BonusLine `json:"bonuses"`
	TaxableBonuses    int64       `json:"taxable_bonuses"`
	NonTaxableBonuses int64       `json:"non_taxable_bonuses"`
	TaxableBase       int64       `json:"taxable_base"`
	GrossPay          int64       `json:"gross_pay"`

	AfpProvider           string  `json:"afp_provider"`
	AfpRate               float64 `json:"afp_rate"`
	AfpDeduction          int64   `json:"afp_deduction"`
	HealthInsurer         string  `json:"health_insurer"`
	HealthRate            float64 `json:"health_rate"`
	HealthDeduction       int64   `json:"health_deduction"`
	UnemploymentRate      float64 `json:"unemployment_rate"`
	UnemploymentDeduction int64   `json:"unemployment_deduction"`
	TotalDeductions       int64   `json:"total_deductions"`

	NetPay     int64     `json:"net_pay"`
	ComputedAt time.Time `json:"computed_at"`
}
