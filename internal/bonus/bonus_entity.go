package bonus

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bonus is a catalog definition of a compensation addition. Assignments to
// employment files reference these rows; deleting a definition with active
// assignments is refused.
type Bonus struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount int64     `gorm:"not null"`
	// Imponible: whether the amount counts toward the taxable base.
	Imponible   bool   `gorm:"not null;default:true"`
	Temporality string `gorm:"type:varchar(20);not null"`
	// DurationMonths is meaningful only for puntual/recurrente bonuses.
	DurationMonths *int `gorm:"type:int"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Bonus) TableName() string {
	return "bonuses"
}
