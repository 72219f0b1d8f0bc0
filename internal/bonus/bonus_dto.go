package bonus

type CreateBonusRequest struct {
	Name           string `json:"name" binding:"required"`
	Amount         int64  `json:"amount" binding:"required"`
	Imponible      *bool  `json:"imponible" binding:"required"`
	Temporality    string `json:"temporality" binding:"required,oneof=permanente puntual recurrente"`
	DurationMonths *int   `json:"duration_months"`
}

type UpdateBonusRequest struct {
	Name           *string `json:"name"`
	Amount         *int64  `json:"amount"`
	Imponible      *bool   `json:"imponible"`
	Temporality    *string `json:"temporality"`
	DurationMonths *int    `json:"duration_months"`
}

type BonusResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Amount         int64  `json:"amount"`
	Imponible      bool   `json:"imponible"`
	Temporality    string `json:"temporality"`
	DurationMonths *int   `json:"duration_months,omitempty"`
}
