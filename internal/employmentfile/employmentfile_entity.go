package employmentfile

import (
	"time"

	"github.com/google/uuid"
)

// Contract types recognized by Chilean labor law as the company uses them.
const (
	ContractIndefinite = "Indefinido"
	ContractFixedTerm  = "Plazo Fijo"
	ContractPerProject = "Por Obra"
	ContractPartTime   = "Part-Time"
)

var ContractTypes = []string{
	ContractIndefinite,
	ContractFixedTerm,
	ContractPerProject,
	ContractPartTime,
}

var ScheduleTypes = []string{"Diurno", "Nocturno", "Rotativo", "Part-Time"}

var AfpProviders = []string{
	"Capital", "Cuprum", "Habitat", "Modelo", "PlanVital", "ProVida", "Uno",
}

var HealthInsurers = []string{"FONASA", "ISAPRE"}

// Placeholder values given to a freshly provisioned file, before HR fills in
// the real contract data. Search treats them as the "sin cargo / sin área"
// special case.
const (
	PlaceholderPosition   = "Sin cargo"
	PlaceholderDepartment = "Sin área"
)

// EmploymentFile is the authoritative current employment state of exactly
// one worker. Its history lives in employment_history_entries.
type EmploymentFile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Position     string `gorm:"type:varchar(100);not null;default:'Sin cargo'"`
	Department   string `gorm:"type:varchar(100);not null;default:'Sin área'"`
	ContractType string `gorm:"type:varchar(30);not null;default:'Indefinido'"`
	ScheduleType string `gorm:"type:varchar(30);not null;default:'Diurno'"`
	BaseSalary   int64  `gorm:"not null;default:0"`

	// ContractStartDate is immutable once set; enforced at the update layer.
	ContractStartDate *time.Time `gorm:"type:date"`
	ContractEndDate   *time.Time `gorm:"type:date"`

	Afp                   string `gorm:"type:varchar(30);not null;default:'Modelo'"`
	HealthInsurer         string `gorm:"type:varchar(30);not null;default:'FONASA'"`
	UnemploymentInsurance bool   `gorm:"not null;default:false"`

	// Stored filename of the uploaded contract PDF, opaque to this package.
	ContractDocument string `gorm:"type:varchar(255)"`

	Status              Status `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	DisengagementReason string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmploymentFile) TableName() string {
	return "employment_files"
}

func validContractType(v string) bool  { return contains(ContractTypes, v) }
func validScheduleType(v string) bool  { return contains(ScheduleTypes, v) }
func validAfp(v string) bool           { return contains(AfpProviders, v) }
func validHealthInsurer(v string) bool { return contains(HealthInsurers, v) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
