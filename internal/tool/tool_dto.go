package tool

type CreateToolRequest struct {
	Code      string  `json:"code"`
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category"`
	UnitValue *string `json:"unit_value"`
}

type UpdateToolRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category"`
	UnitValue *string `json:"unit_value"`
	Active    *bool   `json:"active"`
}

type ToolResponse struct {
	ID        string  `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	TotalQty  int     `json:"total_qty"`
	UnitValue *string `json:"unit_value,omitempty"`
	Active    bool    `json:"active"`
}

type MoveRequest struct {
	Qty         int     `json:"qty" binding:"required"`
	Kind        string  `json:"kind" binding:"required"`
	SourceType  string  `json:"source_type"`
	SourceJobID *string `json:"source_job_id"`
	DestJobID   *string `json:"dest_job_id"`
	Responsible string  `json:"responsible" binding:"required"`
	Note        string  `json:"note"`
}

type MoveResponse struct {
	ID          string  `json:"id"`
	ToolID      string  `json:"tool_id"`
	Qty         int     `json:"qty"`
	Kind        string  `json:"kind"`
	SourceType  *string `json:"source_type,omitempty"`
	SourceJobID *string `json:"source_job_id,omitempty"`
	DestType    *string `json:"dest_type,omitempty"`
	DestJobID   *string `json:"dest_job_id,omitempty"`
	Responsible string  `json:"responsible"`
	Note        string  `json:"note,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type JobQty struct {
	JobID string `json:"job_id"`
	Qty   int    `json:"qty"`
}

type DistributionResponse struct {
	ToolID      string   `json:"tool_id"`
	Warehouse   int      `json:"warehouse"`
	PerJob      []JobQty `json:"per_job"`
	Maintenance int      `json:"maintenance"`
	Lost        int      `json:"lost"`
	Total       int      `json:"total"`
}

type ConsistencyResponse struct {
	ToolID       string `json:"tool_id"`
	Ok           bool   `json:"ok"`
	TotalQty     int    `json:"total_qty"`
	LocationsSum int    `json:"locations_sum"`
	Message      string `json:"message,omitempty"`
}
