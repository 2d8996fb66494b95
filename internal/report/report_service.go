package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/config"
	"github.com/vendas-sistemas/perroni-sub000/internal/indicator"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DashboardCacheKey is the redis key the consumer invalidates when a closing
// changes state.
const DashboardCacheKey = "report:dashboard"

const dashboardCacheTTL = 5 * time.Minute

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context) (DashboardResponse, error)
	Rankings(ctx context.Context, f indicator.Filter) (RankingsResponse, error)
	WorkerProfile(ctx context.Context, workerID string, weeks int) (WorkerProfileResponse, error)
	JobCost(ctx context.Context, jobID string, from, to *time.Time) (JobCostResponse, error)
}

type service struct {
	repo      Repository
	analytics indicator.AnalyticsService
	rdb       *redis.Client
	logger    *zap.Logger
	group     singleflight.Group
}

func NewService(repo Repository, analytics indicator.AnalyticsService, rdb *redis.Client, logger *zap.Logger) Service {
	return &service{repo: repo, analytics: analytics, rdb: rdb, logger: logger}
}

// Dashboard serves from redis when possible; cache misses collapse into one
// rebuild via singleflight.
func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DashboardCacheKey).Bytes()
		if err == nil {
			var resp DashboardResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.group.Do(DashboardCacheKey, func() (any, error) {
		return s.buildDashboard(ctx)
	})
	if err != nil {
		return DashboardResponse{}, err
	}
	resp := v.(DashboardResponse)

	if s.rdb != nil {
		payload, err := json.Marshal(resp)
		if err == nil {
			if err := s.rdb.Set(ctx, DashboardCacheKey, payload, dashboardCacheTTL).Err(); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) buildDashboard(ctx context.Context) (DashboardResponse, error) {
	statusCounts, err := s.repo.JobStatusCounts(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	workers, err := s.repo.ActiveWorkerCount(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.TimesheetRowsInRange(ctx, monthStart, now)
	if err != nil {
		return DashboardResponse{}, err
	}

	cost := decimal.Zero
	hours := decimal.Zero
	idle, rework := 0, 0
	for _, row := range rows {
		cost = cost.Add(row.DayRate)
		hours = hours.Add(row.Hours)
		if row.Idle {
			idle++
		}
		if row.Rework {
			rework++
		}
	}

	total := 0
	for _, count := range statusCounts {
		total += count
	}

	return DashboardResponse{
		Jobs: JobCounts{
			Total:      total,
			Planning:   statusCounts["PLANNING"],
			InProgress: statusCounts["IN_PROGRESS"],
			Paused:     statusCounts["PAUSED"],
			Completed:  statusCounts["COMPLETED"],
			Cancelled:  statusCounts["CANCELLED"],
		},
		ActiveWorkers: workers,
		MonthCost:     cost.StringFixed(2),
		MonthHours:    hours.StringFixed(1),
		IdleRows:      idle,
		ReworkRows:    rework,
	}, nil
}

func (s *service) Rankings(ctx context.Context, f indicator.Filter) (RankingsResponse, error) {
	resp := RankingsResponse{
		ByIndicator:     []indicator.RankingResponse{},
		FirstCompletion: []indicator.FirstCompletionResponse{},
		StageDurations:  []indicator.StageDurationEntry{},
	}

	for _, code := range config.IndicatorCodes {
		ranking, err := s.analytics.RankingByIndicator(ctx, code, f, 5, 5)
		if err != nil {
			return RankingsResponse{}, err
		}
		resp.ByIndicator = append(resp.ByIndicator, ranking)
	}

	for _, code := range config.CompletionIndicators {
		firsts, err := s.analytics.RankingFirstCompletion(ctx, code, f, 10)
		if err != nil {
			return RankingsResponse{}, err
		}
		resp.FirstCompletion = append(resp.FirstCompletion, firsts)
	}

	durations, err := s.analytics.StageDurationAverage(ctx, f)
	if err != nil {
		return RankingsResponse{}, err
	}
	resp.StageDurations = durations

	return resp, nil
}

func (s *service) WorkerProfile(ctx context.Context, workerID string, weeks int) (WorkerProfileResponse, error) {
	if weeks <= 0 {
		weeks = 8
	}

	summary, err := s.analytics.WorkerSummary(ctx, workerID, indicator.Filter{})
	if err != nil {
		return WorkerProfileResponse{}, err
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7*weeks)
	rows, err := s.repo.WorkerTimesheetRows(ctx, workerID, from, now)
	if err != nil {
		return WorkerProfileResponse{}, err
	}

	type weekAgg struct {
		days    map[string]bool
		hours   decimal.Decimal
		dayRate decimal.Decimal
	}
	byWeek := map[string]*weekAgg{}
	for _, row := range rows {
		year, week := row.Date.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		agg, ok := byWeek[key]
		if !ok {
			agg = &weekAgg{days: map[string]bool{}, hours: decimal.Zero, dayRate: decimal.Zero}
			byWeek[key] = agg
		}
		agg.days[row.Date.Format("2006-01-02")] = true
		agg.hours = agg.hours.Add(row.Hours)
		agg.dayRate = agg.dayRate.Add(row.DayRate)
	}

	keys := make([]string, 0, len(byWeek))
	for key := range byWeek {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	buckets := make([]WeekBucket, 0, len(keys))
	for _, key := range keys {
		agg := byWeek[key]
		buckets = append(buckets, WeekBucket{
			Week:    key,
			Days:    len(agg.days),
			Hours:   agg.hours.StringFixed(1),
			DayRate: agg.dayRate.StringFixed(2),
		})
	}

	return WorkerProfileResponse{Summary: summary, Weeks: buckets}, nil
}

func (s *service) JobCost(ctx context.Context, jobID string, from, to *time.Time) (JobCostResponse, error) {
	rows, err := s.repo.JobTimesheetRows(ctx, jobID, from, to)
	if err != nil {
		return JobCostResponse{}, err
	}

	type agg struct {
		name    string
		rows    int
		hours   decimal.Decimal
		dayRate decimal.Decimal
	}
	newAgg := func(name string) *agg {
		return &agg{name: name, hours: decimal.Zero, dayRate: decimal.Zero}
	}
	accumulate := func(m map[string]*agg, key, name string, row CostRow) {
		a, ok := m[key]
		if !ok {
			a = newAgg(name)
			m[key] = a
		}
		a.rows++
		a.hours = a.hours.Add(row.Hours)
		a.dayRate = a.dayRate.Add(row.DayRate)
	}

	total := newAgg("")
	perWorker := map[string]*agg{}
	perRole := map[string]*agg{}
	perStage := map[string]*agg{}
	for _, row := range rows {
		total.rows++
		total.hours = total.hours.Add(row.Hours)
		total.dayRate = total.dayRate.Add(row.DayRate)

		accumulate(perWorker, row.WorkerID.String(), row.WorkerName, row)
		accumulate(perRole, row.Role, row.Role, row)
		stageKey := "none"
		if row.StageNumber != nil {
			stageKey = strconv.Itoa(*row.StageNumber)
		}
		accumulate(perStage, stageKey, stageKey, row)
	}

	toLines := func(m map[string]*agg) []JobCostLine {
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		lines := make([]JobCostLine, 0, len(keys))
		for _, key := range keys {
			a := m[key]
			lines = append(lines, JobCostLine{
				Key:     key,
				Name:    a.name,
				Rows:    a.rows,
				Hours:   a.hours.StringFixed(1),
				DayRate: a.dayRate.StringFixed(2),
			})
		}
		return lines
	}

	return JobCostResponse{
		JobID: jobID,
		Total: JobCostLine{
			Key:     "total",
			Rows:    total.rows,
			Hours:   total.hours.StringFixed(1),
			DayRate: total.dayRate.StringFixed(2),
		},
		PerWorker: toLines(perWorker),
		PerRole:   toLines(perRole),
		PerStage:  toLines(perStage),
	}, nil
}
