package batch

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	UnitBlocks  = "blocks"
	UnitM2      = "m2"
	UnitPercent = "percent"
	UnitUnits   = "units"
)

// BatchEntry is one collective production record: a roster of workers, the
// day's field totals, and the shared conditions under which they worked.
type BatchEntry struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	StageID     *uuid.UUID `gorm:"type:uuid"`
	Date        time.Time  `gorm:"type:date;not null"`
	TotalOutput *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Unit        *string    `gorm:"type:varchar(10)"`
	Weather     string     `gorm:"type:varchar(10);not null"`
	Idle        bool       `gorm:"not null;default:false"`
	IdleNote    string     `gorm:"type:text"`
	Rework      bool       `gorm:"not null;default:false"`
	ReworkNote  string     `gorm:"type:text"`
	CreatedBy   string     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time

	Roster []BatchWorker `gorm:"foreignKey:BatchID"`
}

func (BatchEntry) TableName() string {
	return "batch_entries"
}

type BatchWorker struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BatchID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_batch_worker"`
	WorkerID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_batch_worker"`
	Hours    decimal.Decimal `gorm:"type:numeric(4,1);not null"`
}

func (BatchWorker) TableName() string {
	return "batch_workers"
}
