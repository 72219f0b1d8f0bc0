package bonusassignment

import (
	"time"

	"github.com/HikkizZ/Project-GPS-2025-sub001/internal/bonus"

	"github.com/google/uuid"
)

// Assignment links one employment file to one catalog bonus. At most one
// active assignment may exist per (file, bonus) pair; rows are deactivated,
// never deleted.
type Assignment struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmploymentFileID uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_file;index:uniq_active_assignment_pair,unique,where:active,priority:1"`
	BonusID          uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_bonus;index:uniq_active_assignment_pair,priority:2"`

	AssignedAt time.Time  `gorm:"type:date;not null"`
	EndDate    *time.Time `gorm:"type:date"`

	Active       bool   `gorm:"not null;default:true;index:idx_assignments_active"`
	Observations string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Bonus *bonus.Bonus `gorm:"foreignKey:BonusID"`
}

func (Assignment) TableName() string {
	return "bonus_assignments"
}
