package user

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	WorkerID  string `json:"worker_id,omitempty"`
	Name      string `json:"name"`
	Rut       string `json:"rut,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
