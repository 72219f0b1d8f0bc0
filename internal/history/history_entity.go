package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry kinds, one per state-affecting mutation.
const (
	KindRegistration       = "REGISTRATION"
	KindPersonalDataUpdate = "PERSONAL_DATA_UPDATE"
	KindFileUpdate         = "FILE_UPDATE"
	KindDisengagement      = "DISENGAGEMENT"
	KindReactivation       = "REACTIVATION"
	KindLeaveStart         = "LEAVE_START"
	KindLeaveEnd           = "LEAVE_END"
)

// Entry is an append-only snapshot of a worker's employment file at the
// moment of a mutation. Rows are never updated or deleted.
type Entry struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkerID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_history_worker"`
	ActorUserID  *uuid.UUID `gorm:"type:uuid"`
	Kind         string     `gorm:"type:varchar(30);not null"`
	Observations string     `gorm:"type:text"`

	// Employment file snapshot at the time of the mutation.
	Position              string `gorm:"type:varchar(100)"`
	Department            string `gorm:"type:varchar(100)"`
	ContractType          string `gorm:"type:varchar(30)"`
	ScheduleType          string `gorm:"type:varchar(30)"`
	BaseSalary            int64
	ContractStartDate     *time.Time `gorm:"type:date"`
	ContractEndDate       *time.Time `gorm:"type:date"`
	Afp                   string     `gorm:"type:varchar(30)"`
	HealthInsurer         string     `gorm:"type:varchar(30)"`
	UnemploymentInsurance bool
	FileStatus            string `gorm:"type:varchar(20)"`

	CreatedAt time.Time
}

func (Entry) TableName() string {
	return "employment_history_entries"
}
