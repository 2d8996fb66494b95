package worker

type CreateWorkerRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	TaxID     string `json:"tax_id" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=MASON HELPER"`
	DailyRate string `json:"daily_rate" binding:"required"`
}

type UpdateWorkerRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=MASON HELPER"`
	DailyRate string `json:"daily_rate" binding:"required"`
	Active    *bool  `json:"active"`
}

type WorkerResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	TaxID     string `json:"tax_id"`
	Role      string `json:"role"`
	DailyRate string `json:"daily_rate"`
	Active    bool   `json:"active"`
}
