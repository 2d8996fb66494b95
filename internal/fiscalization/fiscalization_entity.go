package fiscalization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OutcomeApproved     = "APPROVED"
	OutcomePendingFixes = "PENDING_FIXES"
	OutcomeRejected     = "REJECTED"
)

// Visit records one inspection visit to a job site.
type Visit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;index"`
	VisitDate time.Time `gorm:"type:date;not null"`
	Inspector string    `gorm:"type:varchar(255);not null"`
	Outcome   string    `gorm:"type:varchar(20);not null"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Visit) TableName() string {
	return "fiscalization_visits"
}
