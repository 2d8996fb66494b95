package indicator

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IndicatorRecord accumulates one mason's production of one indicator on one
// day at one job. Batch emission adds into the same bucket instead of
// creating parallel rows.
type IndicatorRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkerID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_indicator_bucket"`
	Date      time.Time       `gorm:"type:date;not null;uniqueIndex:uq_indicator_bucket"`
	JobID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_indicator_bucket"`
	Indicator string          `gorm:"type:varchar(40);not null;uniqueIndex:uq_indicator_bucket"`
	Qty       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StageID   *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (IndicatorRecord) TableName() string {
	return "indicator_records"
}
