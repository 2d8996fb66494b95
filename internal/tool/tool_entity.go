package tool

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location types a tool quantity can sit at. LOST still counts toward the
// tool's total; DISCARD removes units from the total instead.
const (
	LocationWarehouse   = "WAREHOUSE"
	LocationJob         = "JOB"
	LocationMaintenance = "MAINTENANCE"
	LocationLost        = "LOST"
)

// Ledger move kinds.
const (
	MoveIn              = "IN"
	MoveToJob           = "TO_JOB"
	MoveBetween         = "BETWEEN"
	MoveToWarehouse     = "TO_WAREHOUSE"
	MoveToMaintenance   = "TO_MAINTENANCE"
	MoveFromMaintenance = "FROM_MAINTENANCE"
	MoveLoss            = "LOSS"
	MoveDiscard         = "DISCARD"
)

type ToolModel struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Code      string           `gorm:"type:varchar(20);not null;uniqueIndex:uq_tool_code"`
	Name      string           `gorm:"type:varchar(255);not null"`
	Category  string           `gorm:"type:varchar(100)"`
	TotalQty  int              `gorm:"not null;default:0"`
	UnitValue *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Active    bool             `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Locations []ToolLocation `gorm:"foreignKey:ToolID"`
}

func (ToolModel) TableName() string {
	return "tool_models"
}

// ToolLocation rows are transient: created on demand, deleted when qty
// reaches zero.
type ToolLocation struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ToolID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	LocationType string     `gorm:"type:varchar(20);not null"`
	JobID        *uuid.UUID `gorm:"type:uuid"`
	Qty          int        `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ToolLocation) TableName() string {
	return "tool_locations"
}

type LedgerMove struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ToolID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Qty         int        `gorm:"not null"`
	Kind        string     `gorm:"type:varchar(20);not null"`
	SourceType  *string    `gorm:"type:varchar(20)"`
	SourceJobID *uuid.UUID `gorm:"type:uuid"`
	DestType    *string    `gorm:"type:varchar(20)"`
	DestJobID   *uuid.UUID `gorm:"type:uuid"`
	Responsible string     `gorm:"type:varchar(255)"`
	Note        string     `gorm:"type:text"`
	CreatedAt   time.Time
}

func (LedgerMove) TableName() string {
	return "ledger_moves"
}
