package worker

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Worker struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string          `gorm:"type:varchar(255);not null"`
	TaxID     string          `gorm:"column:tax_id;type:varchar(14);uniqueIndex:uq_worker_tax_id;not null"`
	Role      string          `gorm:"type:varchar(20);not null"`
	DailyRate decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Worker) TableName() string {
	return "workers"
}
