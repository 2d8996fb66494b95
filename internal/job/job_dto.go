package job

type CreateJobRequest struct {
	Name           string  `json:"name" binding:"required"`
	ClientID       string  `json:"client_id" binding:"required,uuid"`
	StartDate      string  `json:"start_date" binding:"required"`
	PlannedEndDate *string `json:"planned_end_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PLANNING IN_PROGRESS PAUSED COMPLETED CANCELLED"`
}

type CompleteStageRequest struct {
	EndDate string `json:"end_date" binding:"required"`
}

type UpsertStageDetailRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

type StageResponse struct {
	ID          string            `json:"id"`
	StageNumber int               `json:"stage_number"`
	Weight      string            `json:"weight"`
	StartDate   *string           `json:"start_date,omitempty"`
	EndDate     *string           `json:"end_date,omitempty"`
	Completed   bool              `json:"completed"`
	Fields      map[string]string `json:"fields,omitempty"`
}

type JobResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	ClientID          string          `json:"client_id"`
	ClientName        string          `json:"client_name,omitempty"`
	StartDate         string          `json:"start_date"`
	PlannedEndDate    *string         `json:"planned_end_date,omitempty"`
	Status            string          `json:"status"`
	CompletionPercent string          `json:"completion_percent"`
	Stages            []StageResponse `json:"stages,omitempty"`
}

type StageHistoryResponse struct {
	ID        string `json:"id"`
	Entry     string `json:"entry"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at"`
}
