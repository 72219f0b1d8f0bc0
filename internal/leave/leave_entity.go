package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeLicense     = "LICENCIA"
	TypeAdminPermit = "PERMISO_ADMINISTRATIVO"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCompleted = "COMPLETED"
)

// LeaveRequest is a medical license or administrative permit for one worker.
// An APPROVED request keeps the employment file in the matching leave status
// until the period lapses and the sweep marks the request COMPLETED.
type LeaveRequest struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_worker_dates"`

	Type      string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"not null;index:idx_leave_requests_worker_dates"`
	EndDate   time.Time `gorm:"not null;index:idx_leave_requests_worker_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
