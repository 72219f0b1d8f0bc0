package worker

type RegisterWorkerRequest struct {
	Rut             string `json:"rut" binding:"required"`
	FirstNames      string `json:"first_names" binding:"required"`
	PaternalSurname string `json:"paternal_surname" binding:"required"`
	MaternalSurname string `json:"maternal_surname"`

	BirthDate string `json:"birth_date"`

	PersonalEmail string `json:"personal_email" binding:"required"`
	Phone         string `json:"phone" binding:"required"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	Address  string `json:"address"`
	HireDate string `json:"hire_date"`
}

type UpdateWorkerRequest struct {
	FirstNames      *string `json:"first_names"`
	PaternalSurname *string `json:"paternal_surname"`
	MaternalSurname *string `json:"maternal_surname"`

	PersonalEmail *string `json:"personal_email"`
	Phone         *string `json:"phone"`

	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`

	Address *string `json:"address"`
}

type DisengageWorkerRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ReactivateWorkerRequest struct {
	FirstNames      string `json:"first_names" binding:"required"`
	PaternalSurname string `json:"paternal_surname" binding:"required"`
	MaternalSurname string `json:"maternal_surname"`
	PersonalEmail   string `json:"personal_email" binding:"required"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
}

type WorkerResponse struct {
	ID              string `json:"id"`
	Rut             string `json:"rut"`
	FirstNames      string `json:"first_names"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname,omitempty"`

	BirthDate string `json:"birth_date,omitempty"`

	PersonalEmail string `json:"personal_email"`
	Phone         string `json:"phone"`

	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`

	Address  string `json:"address,omitempty"`
	HireDate string `json:"hire_date"`
	InSystem bool   `json:"in_system"`
}

// RegisterWorkerResult carries what HR needs to hand over to the new hire.
// The temporary password appears only here, never in logs or storage.
type RegisterWorkerResult struct {
	Worker            WorkerResponse `json:"worker"`
	CorporateEmail    string         `json:"corporate_email"`
	TemporaryPassword string         `json:"temporary_password"`
	Warnings          []string       `json:"warnings,omitempty"`
}

type UpdateWorkerResult struct {
	Worker         WorkerResponse `json:"worker"`
	CorporateEmail string         `json:"corporate_email,omitempty"`
	EmailChanged   bool           `json:"email_changed"`
	Warnings       []string       `json:"warnings,omitempty"`
}

type ReactivateWorkerResult struct {
	Worker            WorkerResponse `json:"worker"`
	CorporateEmail    string         `json:"corporate_email"`
	TemporaryPassword string         `json:"temporary_password"`
	CredentialsSent   bool           `json:"credentials_sent"`
}
