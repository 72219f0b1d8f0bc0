package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer of the company, referenced by machinery rental
// reports. RUT is stored in canonical dotted form.
type Client struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"type:varchar(150);not null"`
	Rut     string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email   string    `gorm:"type:varchar(255)"`
	Phone   string    `gorm:"type:varchar(20)"`
	Address string    `gorm:"type:varchar(255)"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}
