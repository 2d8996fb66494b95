package timesheet

type CreateTimesheetRequest struct {
	WorkerID     string  `json:"worker_id" binding:"required,uuid"`
	JobID        string  `json:"job_id" binding:"required,uuid"`
	StageID      *string `json:"stage_id" binding:"omitempty,uuid"`
	Date         string  `json:"date" binding:"required"`
	Hours        string  `json:"hours" binding:"required"`
	Weather      string  `json:"weather" binding:"required,oneof=SUN RAIN OVERCAST"`
	Idle         bool    `json:"idle"`
	IdleNote     string  `json:"idle_note"`
	Rework       bool    `json:"rework"`
	ReworkNote   string  `json:"rework_note"`
	AreaExecuted *string `json:"area_executed"`
}

type UpdateTimesheetRequest struct {
	JobID        string  `json:"job_id" binding:"required,uuid"`
	StageID      *string `json:"stage_id" binding:"omitempty,uuid"`
	Date         string  `json:"date" binding:"required"`
	Hours        string  `json:"hours" binding:"required"`
	Weather      string  `json:"weather" binding:"required,oneof=SUN RAIN OVERCAST"`
	Idle         bool    `json:"idle"`
	IdleNote     string  `json:"idle_note"`
	Rework       bool    `json:"rework"`
	ReworkNote   string  `json:"rework_note"`
	AreaExecuted *string `json:"area_executed"`
}

type TimesheetResponse struct {
	ID           string  `json:"id"`
	WorkerID     string  `json:"worker_id"`
	JobID        string  `json:"job_id"`
	StageID      *string `json:"stage_id,omitempty"`
	Date         string  `json:"date"`
	Hours        string  `json:"hours"`
	Weather      string  `json:"weather"`
	Idle         bool    `json:"idle"`
	IdleNote     string  `json:"idle_note,omitempty"`
	Rework       bool    `json:"rework"`
	ReworkNote   string  `json:"rework_note,omitempty"`
	AreaExecuted string  `json:"area_executed"`
	DayRate      string  `json:"day_rate"`
	BatchID      *string `json:"batch_id,omitempty"`
}
