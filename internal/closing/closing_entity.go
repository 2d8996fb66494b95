package closing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusClosed = "CLOSED"
	StatusPaid   = "PAID"
)

// WeeklyClosing freezes one worker's week: distinct worked days, summed
// hours, the payable value and the idle/rework day counts.
type WeeklyClosing struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkerID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_closing_worker_period"`
	StartDate  time.Time       `gorm:"type:date;not null;uniqueIndex:uq_closing_worker_period"`
	EndDate    time.Time       `gorm:"type:date;not null;uniqueIndex:uq_closing_worker_period"`
	TotalDays  int             `gorm:"not null"`
	TotalHours decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	TotalValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IdleDays   int             `gorm:"not null"`
	ReworkDays int             `gorm:"not null"`
	Status     string          `gorm:"type:varchar(10);not null"`
	PayDate    *time.Time      `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (WeeklyClosing) TableName() string {
	return "weekly_closings"
}
