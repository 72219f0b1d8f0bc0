package worker

import (
	"time"

	"github.com/google/uuid"
)

// Worker is a person employed by the company. Rows are never hard-deleted:
// disengagement flips InSystem to false and the record stays for
// reactivation and history.
type Worker struct {
	ID  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Rut string    `gorm:"type:varchar(20);not null;uniqueIndex"`

	FirstNames      string `gorm:"type:varchar(100);not null"`
	PaternalSurname string `gorm:"type:varchar(100);not null"`
	MaternalSurname string `gorm:"type:varchar(100)"`

	BirthDate *time.Time `gorm:"type:date"`

	PersonalEmail string `gorm:"type:varchar(120);not null"`
	Phone         string `gorm:"type:varchar(30);not null"`

	EmergencyContactName  string `gorm:"type:varchar(150)"`
	EmergencyContactPhone string `gorm:"type:varchar(30)"`

	Address string `gorm:"type:varchar(255)"`

	HireDate time.Time `gorm:"type:date;not null"`

	// InSystem is false once the worker is disengaged.
	InSystem bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Worker) TableName() string {
	return "workers"
}

func (w Worker) FullName() string {
	name := w.FirstNames + " " + w.PaternalSurname
	if w.MaternalSurname != "" {
		name += " " + w.MaternalSurname
	}
	return name
}
