package identity

import (
	"time"

	"github.com/google/uuid"
)

// IssuedIdentity is one row of the corporate email ledger. Every email the
// company ever handed out stays recorded here, so allocation never depends
// on scanning history text. Suffix 0 is the bare base ("ana.soto"); suffix
// N > 0 renders as "ana.sotoN".
type IssuedIdentity struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Email    string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	Base     string    `gorm:"type:varchar(80);not null;index:idx_issued_identities_base"`
	Suffix   int       `gorm:"not null"`

	CreatedAt time.Time
}

func (IssuedIdentity) TableName() string {
	return "issued_identities"
}
