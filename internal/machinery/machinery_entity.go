package machinery

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Machine is a rentable unit of heavy machinery. Patente is the Chilean
// vehicle plate in canonical form (uppercase, no separators).
type Machine struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Patente string    `gorm:"type:varchar(10);not null;uniqueIndex"`
	Brand   string    `gorm:"type:varchar(80);not null"`
	Model   string    `gorm:"type:varchar(80);not null"`
	Year    int       `gorm:"type:int"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Machine) TableName() string {
	return "machines"
}

// RentalReport is one day of machinery work billed to a client. Rows are
// immutable after creation; a wrong entry is soft deleted and re-entered.
type RentalReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MachineID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index:idx_rental_reports_client_date"`

	WorkDate   time.Time `gorm:"not null;index:idx_rental_reports_client_date"`
	Hours      float64   `gorm:"type:numeric(6,2);not null"`
	HourlyRate int64     `gorm:"not null"`
	Total      int64     `gorm:"not null"`
	Detail     string    `gorm:"type:text"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (RentalReport) TableName() string {
	return "rental_reports"
}
