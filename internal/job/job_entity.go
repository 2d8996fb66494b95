package job

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPlanning   = "PLANNING"
	StatusInProgress = "IN_PROGRESS"
	StatusPaused     = "PAUSED"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

type Job struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string          `gorm:"type:varchar(255);not null"`
	ClientID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartDate         time.Time       `gorm:"type:date;not null"`
	PlannedEndDate    *time.Time      `gorm:"type:date"`
	Status            string          `gorm:"type:varchar(20);not null;default:'PLANNING';index"`
	CompletionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`

	Stages []Stage    `gorm:"foreignKey:JobID"`
	Client *ClientRef `gorm:"foreignKey:ClientID;references:ID"`
}

func (Job) TableName() string {
	return "jobs"
}

type Stage struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_stage_job_number"`
	StageNumber int             `gorm:"not null;uniqueIndex:uq_stage_job_number"`
	Weight      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	StartDate   *time.Time      `gorm:"type:date"`
	EndDate     *time.Time      `gorm:"type:date"`
	Completed   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Detail *StageDetail `gorm:"foreignKey:StageID"`
}

func (Stage) TableName() string {
	return "stages"
}

// StageDetail holds the stage-number-specific production fields. One row per
// stage; only the columns allowed for that stage number are ever set.
type StageDetail struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_stage_detail_stage"`

	AlicercePercentual  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Parede7FiadasBlocos *decimal.Decimal `gorm:"type:decimal(12,2)"`
	RespaldoPercentual  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	LajePercentual      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PlatibandaBlocos    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CoberturaPercentual *decimal.Decimal `gorm:"type:decimal(12,2)"`
	RebocoExternoM2     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	RebocoInternoM2     *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StageDetail) TableName() string {
	return "stage_details"
}

// StageHistoryEntry is the append-only log a stage accumulates: completions,
// reopenings, and the audit strings the batch splitter writes.
type StageHistoryEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StageID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Entry     string    `gorm:"type:text;not null"`
	CreatedBy string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

func (StageHistoryEntry) TableName() string {
	return "stage_history_entries"
}

type ClientRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (ClientRef) TableName() string {
	return "clients"
}
