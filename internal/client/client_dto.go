package client

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=150"`
	Rut     string `json:"rut" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=255"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=150"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Address *string `json:"address" binding:"omitempty,max=255"`
}

type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Rut     string `json:"rut"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
