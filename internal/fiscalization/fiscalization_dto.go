package fiscalization

type CreateVisitRequest struct {
	JobID     string `json:"job_id" binding:"required,uuid"`
	VisitDate string `json:"visit_date" binding:"required"`
	Inspector string `json:"inspector" binding:"required"`
	Outcome   string `json:"outcome" binding:"required,oneof=APPROVED PENDING_FIXES REJECTED"`
	Notes     string `json:"notes"`
}

type UpdateVisitRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=APPROVED PENDING_FIXES REJECTED"`
	Notes   string `json:"notes"`
}

type VisitResponse struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	VisitDate string `json:"visit_date"`
	Inspector string `json:"inspector"`
	Outcome   string `json:"outcome"`
	Notes     string `json:"notes,omitempty"`
}
