package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin   = "SuperAdministrador"
	RoleAdmin        = "Administrador"
	RoleHR           = "RecursosHumanos"
	RoleGerencia     = "Gerencia"
	RoleVentas       = "Ventas"
	RoleArriendo     = "Arriendo"
	RoleFinanzas     = "Finanzas"
	RoleMecanico     = "Mecánico"
	RoleMantenciones = "Mantenciones de Maquinaria"
	RoleUsuario      = "Usuario"
)

const (
	AccountActive   = "Activa"
	AccountInactive = "Inactiva"
)

// assignableRoles is the whitelist a user admin may hand out.
// SuperAdministrador is seeded, never assigned through the API.
var assignableRoles = map[string]bool{
	RoleAdmin:        true,
	RoleHR:           true,
	RoleGerencia:     true,
	RoleVentas:       true,
	RoleArriendo:     true,
	RoleFinanzas:     true,
	RoleMecanico:     true,
	RoleMantenciones: true,
	RoleUsuario:      true,
}

func AssignableRole(role string) bool {
	return assignableRoles[role]
}

// User is a login identity. Accounts are system-generated at worker
// registration; only the seeded SuperAdministrador has no worker link.
type User struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkerID *uuid.UUID `gorm:"column:worker_id;type:uuid;uniqueIndex"`
	Name     string     `gorm:"column:name;type:varchar(255);not null"`
	Rut      string     `gorm:"column:rut;type:varchar(20);index"`
	Email    string     `gorm:"column:email;type:varchar(120);not null;uniqueIndex"`
	Password string     `gorm:"column:password;type:text;not null"`
	Role     string     `gorm:"column:role;type:varchar(50);not null;default:Usuario"`
	Status   string     `gorm:"column:status;type:varchar(20);not null;default:Activa"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
