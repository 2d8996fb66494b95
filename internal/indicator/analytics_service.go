package indicator

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const crossAveragesWarning = "avg_producao soma indicadores de unidades diferentes; usar apenas como ranking aproximado"

//go:generate mockgen -source=analytics_service.go -destination=mock/analytics_service_mock.go -package=mock
type AnalyticsService interface {
	RankingByIndicator(ctx context.Context, code string, f Filter, top, bottom int) (RankingResponse, error)
	RankingFirstCompletion(ctx context.Context, code string, f Filter, top int) (FirstCompletionResponse, error)
	StageDurationAverage(ctx context.Context, f Filter) ([]StageDurationEntry, error)
	WorkerSummary(ctx context.Context, workerID string, f Filter) (WorkerSummaryResponse, error)
	CrossIndicatorAverages(ctx context.Context, f Filter) (CrossAveragesResponse, error)
}

type analyticsService struct {
	repo Repository
}

func NewAnalyticsService(repo Repository) AnalyticsService {
	return &analyticsService{repo: repo}
}

// workerAgg is one worker's accumulated qty and distinct days.
type workerAgg struct {
	workerID   uuid.UUID
	workerName string
	total      decimal.Decimal
	days       map[string]bool
	firstDate  time.Time
}

// aggregate groups rows per worker. Averages are computed here, in Go, as
// total over distinct days; a store-level AVG over rows would weight days by
// their row count and produce a different number.
func aggregate(rows []Row) []*workerAgg {
	byWorker := map[uuid.UUID]*workerAgg{}
	var order []uuid.UUID
	for _, row := range rows {
		agg, ok := byWorker[row.WorkerID]
		if !ok {
			agg = &workerAgg{
				workerID:   row.WorkerID,
				workerName: row.WorkerName,
				total:      decimal.Zero,
				days:       map[string]bool{},
				firstDate:  row.Date,
			}
			byWorker[row.WorkerID] = agg
			order = append(order, row.WorkerID)
		}
		agg.total = agg.total.Add(row.Qty)
		agg.days[row.Date.Format("2006-01-02")] = true
		if row.Date.Before(agg.firstDate) {
			agg.firstDate = row.Date
		}
	}

	out := make([]*workerAgg, len(order))
	for i, id := range order {
		out[i] = byWorker[id]
	}
	return out
}

func (a *workerAgg) avgPerDay() decimal.Decimal {
	if len(a.days) == 0 {
		return decimal.Zero
	}
	return a.total.Div(decimal.NewFromInt(int64(len(a.days))))
}

func (s *analyticsService) RankingByIndicator(ctx context.Context, code string, f Filter, top, bottom int) (RankingResponse, error) {
	rows, err := s.repo.MasonRecords(ctx, code, f)
	if err != nil {
		return RankingResponse{}, err
	}

	aggs := aggregate(rows)
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].avgPerDay().GreaterThan(aggs[j].avgPerDay())
	})

	ranking := make([]RankingEntry, len(aggs))
	for i, agg := range aggs {
		ranking[i] = RankingEntry{
			WorkerID:   agg.workerID.String(),
			WorkerName: agg.workerName,
			Total:      agg.total.StringFixed(2),
			Days:       len(agg.days),
			AvgPerDay:  agg.avgPerDay().Round(2).StringFixed(2),
		}
	}

	resp := RankingResponse{
		Indicator: code,
		Ranking:   ranking,
		Best:      headOf(ranking, top),
		Worst:     tailOf(ranking, bottom),
	}
	return resp, nil
}

func (s *analyticsService) RankingFirstCompletion(ctx context.Context, code string, f Filter, top int) (FirstCompletionResponse, error) {
	resp := FirstCompletionResponse{Indicator: code, Ranking: []FirstCompletionEntry{}}
	if !strings.HasSuffix(code, "_conclusao") {
		return resp, nil
	}

	rows, err := s.repo.MasonRecords(ctx, code, f)
	if err != nil {
		return FirstCompletionResponse{}, err
	}

	aggs := aggregate(rows)
	if len(aggs) == 0 {
		return resp, nil
	}

	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].firstDate.Before(aggs[j].firstDate)
	})

	globalFirst := aggs[0].firstDate
	for _, agg := range aggs {
		resp.Ranking = append(resp.Ranking, FirstCompletionEntry{
			WorkerID:   agg.workerID.String(),
			WorkerName: agg.workerName,
			FirstDate:  agg.firstDate.Format("2006-01-02"),
			DaysAfter:  int(agg.firstDate.Sub(globalFirst).Hours() / 24),
		})
	}
	if top > 0 && len(resp.Ranking) > top {
		resp.Ranking = resp.Ranking[:top]
	}
	return resp, nil
}

func (s *analyticsService) StageDurationAverage(ctx context.Context, f Filter) ([]StageDurationEntry, error) {
	rows, err := s.repo.OpenStageWorkDays(ctx, f)
	if err != nil {
		return nil, err
	}

	// distinct dates per (stage, job), then mean across jobs per stage
	days := map[int]map[uuid.UUID]int{}
	for _, row := range rows {
		if days[row.StageNumber] == nil {
			days[row.StageNumber] = map[uuid.UUID]int{}
		}
		days[row.StageNumber][row.JobID]++
	}

	out := []StageDurationEntry{}
	for n := 1; n <= config.StageCount; n++ {
		jobs := days[n]
		if len(jobs) == 0 {
			continue
		}
		total := 0
		for _, count := range jobs {
			total += count
		}
		avg := decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(len(jobs))))
		out = append(out, StageDurationEntry{
			StageNumber: n,
			Jobs:        len(jobs),
			AvgDays:     avg.Round(2).StringFixed(2),
		})
	}
	return out, nil
}

func (s *analyticsService) WorkerSummary(ctx context.Context, workerID string, f Filter) (WorkerSummaryResponse, error) {
	// the resume counts all of the worker's rows; role only matters for the
	// indicator sections below
	sheets, err := s.repo.WorkerTimesheets(ctx, workerID, f)
	if err != nil {
		return WorkerSummaryResponse{}, err
	}

	resp := WorkerSummaryResponse{
		WorkerID:   workerID,
		TotalHours: "0.0",
		Indicators: []IndicatorSummary{},
	}

	days := map[string]bool{}
	jobs := map[uuid.UUID]bool{}
	hours := decimal.Zero
	for _, row := range sheets {
		resp.WorkerName = row.WorkerName
		days[row.Date.Format("2006-01-02")] = true
		jobs[row.JobID] = true
		hours = hours.Add(row.Hours)
	}
	resp.TotalDays = len(days)
	resp.Jobs = len(jobs)
	resp.TotalHours = hours.StringFixed(1)

	for _, code := range config.IndicatorCodes {
		ranking, err := s.RankingByIndicator(ctx, code, f, 0, 0)
		if err != nil {
			return WorkerSummaryResponse{}, err
		}

		var entry *RankingEntry
		position := 0
		for i := range ranking.Ranking {
			if ranking.Ranking[i].WorkerID == workerID {
				entry = &ranking.Ranking[i]
				position = i + 1
				break
			}
		}
		if entry == nil {
			continue
		}
		if resp.WorkerName == "" {
			resp.WorkerName = entry.WorkerName
		}

		summary := IndicatorSummary{
			Indicator: code,
			Total:     entry.Total,
			Days:      entry.Days,
			AvgPerDay: entry.AvgPerDay,
			Position:  position,
		}

		if strings.HasSuffix(code, "_conclusao") {
			firsts, err := s.RankingFirstCompletion(ctx, code, f, 0)
			if err != nil {
				return WorkerSummaryResponse{}, err
			}
			for _, fc := range firsts.Ranking {
				if fc.WorkerID == workerID {
					firstDate := fc.FirstDate
					daysAfter := fc.DaysAfter
					summary.FirstDate = &firstDate
					summary.DaysAfter = &daysAfter
					break
				}
			}
		}

		resp.Indicators = append(resp.Indicators, summary)
	}

	return resp, nil
}

func (s *analyticsService) CrossIndicatorAverages(ctx context.Context, f Filter) (CrossAveragesResponse, error) {
	rows, err := s.repo.MasonRecordsAllIndicators(ctx, f)
	if err != nil {
		return CrossAveragesResponse{}, err
	}

	sheets, err := s.repo.MasonTimesheets(ctx, f)
	if err != nil {
		return CrossAveragesResponse{}, err
	}

	type tsAgg struct {
		hours  decimal.Decimal
		idle   int
		rework int
	}
	byWorkerTS := map[uuid.UUID]*tsAgg{}
	for _, row := range sheets {
		agg, ok := byWorkerTS[row.WorkerID]
		if !ok {
			agg = &tsAgg{hours: decimal.Zero}
			byWorkerTS[row.WorkerID] = agg
		}
		agg.hours = agg.hours.Add(row.Hours)
		if row.Idle {
			agg.idle++
		}
		if row.Rework {
			agg.rework++
		}
	}

	aggs := aggregate(rows)
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].avgPerDay().GreaterThan(aggs[j].avgPerDay())
	})

	resp := CrossAveragesResponse{
		Warning: crossAveragesWarning,
		Ranking: []CrossAverageEntry{},
	}
	for _, agg := range aggs {
		entry := CrossAverageEntry{
			WorkerID:    agg.workerID.String(),
			WorkerName:  agg.workerName,
			TotalQty:    agg.total.StringFixed(2),
			Days:        len(agg.days),
			AvgProducao: agg.avgPerDay().Round(2).StringFixed(2),
			TotalHours:  "0.0",
		}
		if ts, ok := byWorkerTS[agg.workerID]; ok {
			entry.TotalHours = ts.hours.StringFixed(1)
			entry.IdleRows = ts.idle
			entry.ReworkRows = ts.rework
		}
		resp.Ranking = append(resp.Ranking, entry)
	}
	return resp, nil
}

func headOf(entries []RankingEntry, n int) []RankingEntry {
	if n <= 0 || len(entries) == 0 {
		return []RankingEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

func tailOf(entries []RankingEntry, n int) []RankingEntry {
	if n <= 0 || len(entries) == 0 {
		return []RankingEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[len(entries)-n:]
}
