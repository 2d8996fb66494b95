package report

import "github.com/vendas-sistemas/perroni-sub000/internal/indicator"

type DashboardResponse struct {
	Jobs          JobCounts `json:"jobs"`
	ActiveWorkers int       `json:"active_workers"`
	MonthCost     string    `json:"month_cost"`
	MonthHours    string    `json:"month_hours"`
	IdleRows      int       `json:"idle_rows"`
	ReworkRows    int       `json:"rework_rows"`
}

type JobCounts struct {
	Total      int `json:"total"`
	Planning   int `json:"planning"`
	InProgress int `json:"in_progress"`
	Paused     int `json:"paused"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

type RankingsResponse struct {
	ByIndicator     []indicator.RankingResponse         `json:"by_indicator"`
	FirstCompletion []indicator.FirstCompletionResponse `json:"first_completion"`
	StageDurations  []indicator.StageDurationEntry      `json:"stage_durations"`
}

type WeekBucket struct {
	Week    string `json:"week"`
	Days    int    `json:"days"`
	Hours   string `json:"hours"`
	DayRate string `json:"day_rate"`
}

type WorkerProfileResponse struct {
	Summary indicator.WorkerSummaryResponse `json:"summary"`
	Weeks   []WeekBucket                    `json:"weeks"`
}

type JobCostLine struct {
	Key     string `json:"key"`
	Name    string `json:"name,omitempty"`
	Rows    int    `json:"rows"`
	Hours   string `json:"hours"`
	DayRate string `json:"day_rate"`
}

type JobCostResponse struct {
	JobID     string        `json:"job_id"`
	Total     JobCostLine   `json:"total"`
	PerWorker []JobCostLine `json:"per_worker"`
	PerRole   []JobCostLine `json:"per_role"`
	PerStage  []JobCostLine `json:"per_stage"`
}
