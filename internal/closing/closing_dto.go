package closing

type CloseWeekRequest struct {
	WorkerID  string `json:"worker_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
}

type MarkAsPaidRequest struct {
	PayDate string `json:"pay_date" binding:"required"`
}

type ClosingResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalDays  int     `json:"total_days"`
	TotalHours string  `json:"total_hours"`
	TotalValue string  `json:"total_value"`
	IdleDays   int     `json:"idle_days"`
	ReworkDays int     `json:"rework_days"`
	Status     string  `json:"status"`
	PayDate    *string `json:"pay_date,omitempty"`
}
