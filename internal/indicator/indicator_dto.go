package indicator

type RankingEntry struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	Total      string `json:"total"`
	Days       int    `json:"days"`
	AvgPerDay  string `json:"avg_per_day"`
}

type RankingResponse struct {
	Indicator string         `json:"indicator"`
	Ranking   []RankingEntry `json:"ranking"`
	Best      []RankingEntry `json:"best"`
	Worst     []RankingEntry `json:"worst"`
}

type FirstCompletionEntry struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	FirstDate  string `json:"first_date"`
	DaysAfter  int    `json:"days_after"`
}

type FirstCompletionResponse struct {
	Indicator string                 `json:"indicator"`
	Ranking   []FirstCompletionEntry `json:"ranking"`
}

type StageDurationEntry struct {
	StageNumber int    `json:"stage_number"`
	Jobs        int    `json:"jobs"`
	AvgDays     string `json:"avg_days"`
}

type IndicatorSummary struct {
	Indicator string  `json:"indicator"`
	Total     string  `json:"total"`
	Days      int     `json:"days"`
	AvgPerDay string  `json:"avg_per_day"`
	Position  int     `json:"position"`
	FirstDate *string `json:"first_date,omitempty"`
	DaysAfter *int    `json:"days_after,omitempty"`
}

type WorkerSummaryResponse struct {
	WorkerID   string             `json:"worker_id"`
	WorkerName string             `json:"worker_name"`
	TotalDays  int                `json:"total_days"`
	TotalHours string             `json:"total_hours"`
	Jobs       int                `json:"jobs"`
	Indicators []IndicatorSummary `json:"indicators"`
}

type CrossAverageEntry struct {
	WorkerID    string `json:"worker_id"`
	WorkerName  string `json:"worker_name"`
	TotalQty    string `json:"total_qty"`
	Days        int    `json:"days"`
	AvgProducao string `json:"avg_producao"`
	TotalHours  string `json:"total_hours"`
	IdleRows    int    `json:"idle_rows"`
	ReworkRows  int    `json:"rework_rows"`
}

// CrossAveragesResponse mixes indicators measured in different units into one
// per-worker number. It is a coarse ranking signal, not a physical quantity;
// the warning travels with the payload.
type CrossAveragesResponse struct {
	Warning string              `json:"warning"`
	Ranking []CrossAverageEntry `json:"ranking"`
}
