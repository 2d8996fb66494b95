package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	WeatherSun      = "SUN"
	WeatherRain     = "RAIN"
	WeatherOvercast = "OVERCAST"
)

// Timesheet is one work record. A worker can have several rows on the same
// date, split across jobs or stages; the day-rate normalizer guarantees only
// one of them carries the day's pay.
type Timesheet struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkerID     uuid.UUID       `gorm:"type:uuid;not null;index:ix_timesheet_worker_date"`
	JobID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	StageID      *uuid.UUID      `gorm:"type:uuid"`
	Date         time.Time       `gorm:"type:date;not null;index:ix_timesheet_worker_date"`
	Hours        decimal.Decimal `gorm:"type:numeric(4,1);not null"`
	Weather      string          `gorm:"type:varchar(10);not null"`
	Idle         bool            `gorm:"not null;default:false"`
	IdleNote     string          `gorm:"type:text"`
	Rework       bool            `gorm:"not null;default:false"`
	ReworkNote   string          `gorm:"type:text"`
	AreaExecuted decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DayRate      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	BatchID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}
