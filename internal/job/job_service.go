package job

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/config"
	joberrors "github.com/vendas-sistemas/perroni-sub000/internal/job/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=job_service.go -destination=mock/job_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	GetAll(ctx context.Context, status string) ([]JobResponse, error)
	GetByID(ctx context.Context, id string) (JobResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (JobResponse, error)
	CompleteStage(ctx context.Context, jobID string, stageNumber int, req CompleteStageRequest) (JobResponse, error)
	ReopenStage(ctx context.Context, jobID string, stageNumber int) (JobResponse, error)
	UpsertStageDetail(ctx context.Context, jobID string, stageNumber int, req UpsertStageDetailRequest) (StageResponse, error)
	GetStageHistory(ctx context.Context, jobID string, stageNumber int) ([]StageHistoryResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

// allowedTransitions encodes the job status machine. COMPLETED and CANCELLED
// are terminal.
var allowedTransitions = map[string][]string{
	StatusPlanning:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusPaused, StatusCompleted, StatusCancelled},
	StatusPaused:     {StatusInProgress, StatusCancelled},
}

func (s *service) Create(ctx context.Context, req CreateJobRequest) (JobResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return JobResponse{}, err
	}

	var plannedEnd *time.Time
	if req.PlannedEndDate != nil && *req.PlannedEndDate != "" {
		d, err := parseDate(*req.PlannedEndDate)
		if err != nil {
			return JobResponse{}, err
		}
		plannedEnd = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ClientExists(ctx, req.ClientID)
	if err != nil {
		return JobResponse{}, err
	}
	if !exists {
		return JobResponse{}, joberrors.ErrClientNotFound
	}

	j := &Job{
		ID:                uuid.New(),
		Name:              req.Name,
		ClientID:          uuid.MustParse(req.ClientID),
		StartDate:         startDate,
		PlannedEndDate:    plannedEnd,
		Status:            StatusPlanning,
		CompletionPercent: decimal.Zero,
	}

	if err := qtx.CreateJob(ctx, j); err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	// every job carries the five fixed stages from day one
	stages := make([]Stage, 0, config.StageCount)
	for n := 1; n <= config.StageCount; n++ {
		weight, _ := config.StageWeight(n)
		stages = append(stages, Stage{
			ID:          uuid.New(),
			JobID:       j.ID,
			StageNumber: n,
			Weight:      weight,
		})
	}
	if err := qtx.CreateStages(ctx, stages); err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return JobResponse{}, err
	}

	j.Stages = stages
	return mapToResponse(*j), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]JobResponse, error) {
	if status != "" && !validStatus(status) {
		return nil, joberrors.ErrInvalidStatus
	}

	rows, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	resp := make([]JobResponse, len(rows))
	for i, j := range rows {
		resp[i] = mapToResponse(j)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (JobResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return JobResponse{}, joberrors.ErrInvalidJobID
	}

	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*j), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (JobResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	j, err := qtx.FindByID(ctx, id)
	if err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	if !transitionAllowed(j.Status, req.Status) {
		return JobResponse{}, joberrors.ErrInvalidStatusTransition
	}

	j.Status = req.Status
	if err := qtx.UpdateJob(ctx, j); err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return JobResponse{}, err
	}

	return mapToResponse(*j), nil
}

func (s *service) CompleteStage(ctx context.Context, jobID string, stageNumber int, req CompleteStageRequest) (JobResponse, error) {
	if stageNumber < 1 || stageNumber > config.StageCount {
		return JobResponse{}, joberrors.ErrInvalidStageNumber
	}

	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return JobResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	stage, err := qtx.FindStage(ctx, jobID, stageNumber)
	if err != nil {
		return JobResponse{}, mapStageLookupError(err)
	}
	if stage.Completed {
		return JobResponse{}, joberrors.ErrStageAlreadyCompleted
	}

	stage.Completed = true
	stage.EndDate = &endDate
	if stage.StartDate == nil {
		stage.StartDate = &endDate
	}
	if err := qtx.UpdateStage(ctx, stage); err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	if err := qtx.AppendStageHistory(ctx, &StageHistoryEntry{
		ID:      uuid.New(),
		StageID: stage.ID,
		Entry:   fmt.Sprintf("Etapa %d concluída em %s", stageNumber, endDate.Format("2006-01-02")),
	}); err != nil {
		return JobResponse{}, err
	}

	j, err := s.recomputeCompletion(ctx, qtx, jobID)
	if err != nil {
		return JobResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobResponse{}, err
	}

	return mapToResponse(*j), nil
}

func (s *service) ReopenStage(ctx context.Context, jobID string, stageNumber int) (JobResponse, error) {
	if stageNumber < 1 || stageNumber > config.StageCount {
		return JobResponse{}, joberrors.ErrInvalidStageNumber
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	stage, err := qtx.FindStage(ctx, jobID, stageNumber)
	if err != nil {
		return JobResponse{}, mapStageLookupError(err)
	}

	stage.Completed = false
	stage.EndDate = nil
	if err := qtx.UpdateStage(ctx, stage); err != nil {
		return JobResponse{}, mapRepositoryError(err)
	}

	if err := qtx.AppendStageHistory(ctx, &StageHistoryEntry{
		ID:      uuid.New(),
		StageID: stage.ID,
		Entry:   fmt.Sprintf("Etapa %d reaberta", stageNumber),
	}); err != nil {
		return JobResponse{}, err
	}

	j, err := s.recomputeCompletion(ctx, qtx, jobID)
	if err != nil {
		return JobResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobResponse{}, err
	}

	return mapToResponse(*j), nil
}

func (s *service) UpsertStageDetail(ctx context.Context, jobID string, stageNumber int, req UpsertStageDetailRequest) (StageResponse, error) {
	if stageNumber < 1 || stageNumber > config.StageCount {
		return StageResponse{}, joberrors.ErrInvalidStageNumber
	}

	values := make(map[string]decimal.Decimal, len(req.Fields))
	for field, raw := range req.Fields {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return StageResponse{}, joberrors.ErrNegativeFieldValue
		}
		values[field] = v
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StageResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	stage, err := qtx.FindStage(ctx, jobID, stageNumber)
	if err != nil {
		return StageResponse{}, mapStageLookupError(err)
	}

	detail, err := qtx.FindStageDetail(ctx, stage.ID)
	if err != nil {
		return StageResponse{}, err
	}
	if detail == nil {
		detail = &StageDetail{ID: uuid.New(), StageID: stage.ID}
	}

	if err := applyFieldValues(detail, stageNumber, values); err != nil {
		return StageResponse{}, err
	}

	if err := qtx.SaveStageDetail(ctx, detail); err != nil {
		return StageResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return StageResponse{}, err
	}

	stage.Detail = detail
	return mapStageToResponse(*stage), nil
}

func (s *service) GetStageHistory(ctx context.Context, jobID string, stageNumber int) ([]StageHistoryResponse, error) {
	stage, err := s.repo.FindStage(ctx, jobID, stageNumber)
	if err != nil {
		return nil, mapStageLookupError(err)
	}

	rows, err := s.repo.ListStageHistory(ctx, stage.ID.String())
	if err != nil {
		return nil, err
	}

	resp := make([]StageHistoryResponse, len(rows))
	for i, e := range rows {
		resp[i] = StageHistoryResponse{
			ID:        e.ID.String(),
			Entry:     e.Entry,
			CreatedBy: e.CreatedBy,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// recomputeCompletion sets the job's completion percent to the weight of the
// highest-numbered completed stage. The weights are cumulative milestones,
// not additive shares.
func (s *service) recomputeCompletion(ctx context.Context, qtx Repository, jobID string) (*Job, error) {
	stages, err := qtx.FindStagesByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	completion := decimal.Zero
	for _, st := range stages {
		if st.Completed && st.Weight.GreaterThan(completion) {
			completion = st.Weight
		}
	}

	j, err := qtx.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	j.CompletionPercent = completion
	if err := qtx.UpdateJob(ctx, j); err != nil {
		return nil, mapRepositoryError(err)
	}
	return j, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func validStatus(status string) bool {
	switch status {
	case StatusPlanning, StatusInProgress, StatusPaused, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, joberrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(j Job) JobResponse {
	resp := JobResponse{
		ID:                j.ID.String(),
		Name:              j.Name,
		ClientID:          j.ClientID.String(),
		StartDate:         j.StartDate.Format("2006-01-02"),
		Status:            j.Status,
		CompletionPercent: j.CompletionPercent.StringFixed(2),
	}
	if j.Client != nil {
		resp.ClientName = j.Client.Name
	}
	if j.PlannedEndDate != nil {
		v := j.PlannedEndDate.Format("2006-01-02")
		resp.PlannedEndDate = &v
	}
	for _, st := range j.Stages {
		resp.Stages = append(resp.Stages, mapStageToResponse(st))
	}
	return resp
}

func mapStageToResponse(st Stage) StageResponse {
	resp := StageResponse{
		ID:          st.ID.String(),
		StageNumber: st.StageNumber,
		Weight:      st.Weight.StringFixed(2),
		Completed:   st.Completed,
	}
	if st.StartDate != nil {
		v := st.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	if st.EndDate != nil {
		v := st.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	if st.Detail != nil {
		resp.Fields = detailFieldValues(st.StageNumber, *st.Detail)
	}
	return resp
}

func detailFieldValues(stageNumber int, d StageDetail) map[string]string {
	get := map[string]*decimal.Decimal{
		"alicerce_percentual":   d.AlicercePercentual,
		"parede_7fiadas_blocos": d.Parede7FiadasBlocos,
		"respaldo_percentual":   d.RespaldoPercentual,
		"laje_percentual":       d.LajePercentual,
		"platibanda_blocos":     d.PlatibandaBlocos,
		"cobertura_percentual":  d.CoberturaPercentual,
		"reboco_externo_m2":     d.RebocoExternoM2,
		"reboco_interno_m2":     d.RebocoInternoM2,
	}

	out := map[string]string{}
	for _, field := range FieldsForStage(stageNumber) {
		if v := get[field]; v != nil {
			out[field] = v.StringFixed(2)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
