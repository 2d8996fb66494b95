package batch

type RosterEntryRequest struct {
	WorkerID string `json:"worker_id" binding:"required,uuid"`
	Hours    string `json:"hours" binding:"required"`
}

type RegisterBatchRequest struct {
	JobID       string               `json:"job_id" binding:"required,uuid"`
	StageNumber *int                 `json:"stage_number" binding:"omitempty,min=1,max=5"`
	Date        string               `json:"date" binding:"required"`
	Fields      map[string]string    `json:"fields"`
	Weather     string               `json:"weather" binding:"required,oneof=SUN RAIN OVERCAST"`
	Idle        bool                 `json:"idle"`
	IdleNote    string               `json:"idle_note"`
	Rework      bool                 `json:"rework"`
	ReworkNote  string               `json:"rework_note"`
	Roster      []RosterEntryRequest `json:"roster" binding:"required,min=1,dive"`
}

type ShareEntry struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	Indicator  string `json:"indicator"`
	Share      string `json:"share"`
}

type RegisterBatchResponse struct {
	BatchID      string            `json:"batch_id"`
	JobID        string            `json:"job_id"`
	Date         string            `json:"date"`
	UnitTotals   map[string]string `json:"unit_totals"`
	AreaExecuted string            `json:"area_executed"`
	Timesheets   int               `json:"timesheets"`
	Masons       int               `json:"masons"`
	Shares       []ShareEntry      `json:"shares"`
}

type RosterEntryResponse struct {
	WorkerID string `json:"worker_id"`
	Hours    string `json:"hours"`
}

type BatchResponse struct {
	ID         string                `json:"id"`
	JobID      string                `json:"job_id"`
	StageID    *string               `json:"stage_id,omitempty"`
	Date       string                `json:"date"`
	Unit       *string               `json:"unit,omitempty"`
	Weather    string                `json:"weather"`
	Idle       bool                  `json:"idle"`
	Rework     bool                  `json:"rework"`
	CreatedBy  string                `json:"created_by,omitempty"`
	Roster     []RosterEntryResponse `json:"roster"`
}
