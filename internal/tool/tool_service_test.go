package tool_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/vendas-sistemas/perroni-sub000/internal/tool"
	toolerrors "github.com/vendas-sistemas/perroni-sub000/internal/tool/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeToolRepository struct {
	withTxFn        func(tx *sql.Tx) tool.Repository
	createToolFn    func(ctx context.Context, t *tool.ToolModel) error
	findToolByIDFn  func(ctx context.Context, id string) (*tool.ToolModel, error)
	findAllToolsFn  func(ctx context.Context, activeOnly bool) ([]tool.ToolModel, error)
	updateToolFn    func(ctx context.Context, t *tool.ToolModel) error
	acquireLockFn   func(ctx context.Context, toolID uuid.UUID) error
	locationQtyFn   func(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID) (int, error)
	decrementFn     func(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error
	incrementFn     func(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error
	addToTotalFn    func(ctx context.Context, toolID uuid.UUID, delta int) error
	totalQtyFn      func(ctx context.Context, toolID uuid.UUID) (int, error)
	sumLocationsFn  func(ctx context.Context, toolID uuid.UUID) (int, error)
	createMoveFn    func(ctx context.Context, m *tool.LedgerMove) error
	listLocationsFn func(ctx context.Context, toolID string) ([]tool.ToolLocation, error)
	listMovesFn     func(ctx context.Context, toolID string, limit int) ([]tool.LedgerMove, error)
}

func (f *fakeToolRepository) WithTx(tx *sql.Tx) tool.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeToolRepository) CreateTool(ctx context.Context, t *tool.ToolModel) error {
	if f.createToolFn != nil {
		return f.createToolFn(ctx, t)
	}
	return nil
}

func (f *fakeToolRepository) FindToolByID(ctx context.Context, id string) (*tool.ToolModel, error) {
	if f.findToolByIDFn != nil {
		return f.findToolByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeToolRepository) FindAllTools(ctx context.Context, activeOnly bool) ([]tool.ToolModel, error) {
	if f.findAllToolsFn != nil {
		return f.findAllToolsFn(ctx, activeOnly)
	}
	return nil, nil
}

func (f *fakeToolRepository) UpdateTool(ctx context.Context, t *tool.ToolModel) error {
	if f.updateToolFn != nil {
		return f.updateToolFn(ctx, t)
	}
	return nil
}

func (f *fakeToolRepository) AcquireToolLock(ctx context.Context, toolID uuid.UUID) error {
	if f.acquireLockFn != nil {
		return f.acquireLockFn(ctx, toolID)
	}
	return nil
}

func (f *fakeToolRepository) LocationQty(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID) (int, error) {
	if f.locationQtyFn != nil {
		return f.locationQtyFn(ctx, toolID, locationType, jobID)
	}
	return 0, nil
}

func (f *fakeToolRepository) DecrementLocation(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error {
	if f.decrementFn != nil {
		return f.decrementFn(ctx, toolID, locationType, jobID, qty)
	}
	return nil
}

func (f *fakeToolRepository) IncrementLocation(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error {
	if f.incrementFn != nil {
		return f.incrementFn(ctx, toolID, locationType, jobID, qty)
	}
	return nil
}

func (f *fakeToolRepository) AddToTotal(ctx context.Context, toolID uuid.UUID, delta int) error {
	if f.addToTotalFn != nil {
		return f.addToTotalFn(ctx, toolID, delta)
	}
	return nil
}

func (f *fakeToolRepository) TotalQty(ctx context.Context, toolID uuid.UUID) (int, error) {
	if f.totalQtyFn != nil {
		return f.totalQtyFn(ctx, toolID)
	}
	return 0, nil
}

func (f *fakeToolRepository) SumLocations(ctx context.Context, toolID uuid.UUID) (int, error) {
	if f.sumLocationsFn != nil {
		return f.sumLocationsFn(ctx, toolID)
	}
	return 0, nil
}

func (f *fakeToolRepository) CreateMove(ctx context.Context, m *tool.LedgerMove) error {
	if f.createMoveFn != nil {
		return f.createMoveFn(ctx, m)
	}
	return nil
}

func (f *fakeToolRepository) ListLocations(ctx context.Context, toolID string) ([]tool.ToolLocation, error) {
	if f.listLocationsFn != nil {
		return f.listLocationsFn(ctx, toolID)
	}
	return nil, nil
}

func (f *fakeToolRepository) ListMoves(ctx context.Context, toolID string, limit int) ([]tool.LedgerMove, error) {
	if f.listMovesFn != nil {
		return f.listMovesFn(ctx, toolID, limit)
	}
	return nil, nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

// memoryLedger backs the fake repo with real quantity state so moves can be
// checked end to end.
type memoryLedger struct {
	total     int
	locations map[string]int
}

func locKey(locationType string, jobID *uuid.UUID) string {
	if jobID == nil {
		return locationType
	}
	return locationType + ":" + jobID.String()
}

func (l *memoryLedger) bind(repo *fakeToolRepository) {
	repo.locationQtyFn = func(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID) (int, error) {
		return l.locations[locKey(locationType, jobID)], nil
	}
	repo.decrementFn = func(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error {
		key := locKey(locationType, jobID)
		l.locations[key] -= qty
		if l.locations[key] <= 0 {
			delete(l.locations, key)
		}
		return nil
	}
	repo.incrementFn = func(ctx context.Context, toolID uuid.UUID, locationType string, jobID *uuid.UUID, qty int) error {
		l.locations[locKey(locationType, jobID)] += qty
		return nil
	}
	repo.addToTotalFn = func(ctx context.Context, toolID uuid.UUID, delta int) error {
		l.total += delta
		return nil
	}
	repo.totalQtyFn = func(ctx context.Context, toolID uuid.UUID) (int, error) {
		return l.total, nil
	}
	repo.sumLocationsFn = func(ctx context.Context, toolID uuid.UUID) (int, error) {
		sum := 0
		for _, qty := range l.locations {
			sum += qty
		}
		return sum, nil
	}
}

type toolServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service tool.Service
	repo    *fakeToolRepository
	counter *fakeCounterRepository
	ledger  *memoryLedger
}

func setupToolServiceTest(t *testing.T) *toolServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeToolRepository{}
	ledger := &memoryLedger{locations: map[string]int{}}
	ledger.bind(repo)
	counterRepo := &fakeCounterRepository{}
	svc := tool.NewService(db, repo, counterRepo)

	return &toolServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, counter: counterRepo, ledger: ledger}
}

func expectMoveTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestToolService_Create_GeneratesCode(t *testing.T) {
	ctx := context.Background()

	deps := setupToolServiceTest(t)
	defer deps.db.Close()

	deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
		assert.Equal(t, "tool_code", counterType)
		return 7, nil
	}
	deps.repo.createToolFn = func(ctx context.Context, m *tool.ToolModel) error {
		assert.Equal(t, "FER-0007", m.Code)
		assert.True(t, m.Active)
		return nil
	}

	unitValue := "150.005"
	resp, err := deps.service.Create(ctx, tool.CreateToolRequest{
		Name:      "Betoneira 400L",
		Category:  "EQUIPAMENTO",
		UnitValue: &unitValue,
	})

	assert.NoError(t, err)
	assert.Equal(t, "FER-0007", resp.Code)
	if assert.NotNil(t, resp.UnitValue) {
		assert.Equal(t, "150.01", *resp.UnitValue)
	}
}

func TestToolService_ApplyMove_Kinds(t *testing.T) {
	ctx := context.Background()
	toolID := uuid.New()
	jobA := uuid.New().String()
	jobB := uuid.New().String()

	t.Run("IN adds to warehouse and total", func(t *testing.T) {
		deps := setupToolServiceTest(t)
		defer deps.db.Close()

		expectMoveTx(t, deps.sqlMock, true)
		resp, err := deps.service.ApplyMove(ctx, toolID.String(), tool.MoveRequest{
			Qty: 5, Kind: tool.MoveIn, Responsible: "Almoxarife",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, deps.ledger.total)
		assert.Equal(t, 5, deps.ledger.locations[tool.LocationWarehouse])
		assert.Nil(t, resp.SourceType)
		if assert.NotNil(t, resp.DestType) {
			assert.Equal(t, tool.LocationWarehouse, *resp.DestType)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("TO_JOB keeps the total", func(t *testing.T) {
		deps := setupToolServiceTest(t)
		defer deps.db.Close()
		deps.ledger.total = 10
		deps.ledger.locations[tool.LocationWarehouse] = 10

		expectMoveTx(t, deps.sqlMock, true)
		_, err := deps.service.ApplyMove(ctx, toolID.String(), tool.MoveRequest{
			Qty: 3, Kind: tool.MoveToJob, DestJobID: &jobA, Responsible: "Encarregado",
		})

		assert.NoError(t, err)
		assert.Equal(t, 10, deps.ledger.total)
		assert.Equal(t, 7, deps.ledger.locations[tool.LocationWarehouse])
		assert.Equal(t, 3, deps.ledger.locations["JOB:"+jobA])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("BETWEEN moves job to job", func(t *testing.T) {
		deps := setupToolServiceTest(t)
		defer deps.db.Close()
		deps.ledger.total = 4
		deps.ledger.locations["JOB:"+jobA] = 4

		expectMoveTx(t, deps.sqlMock, true)
		_, err := deps.service.ApplyMove(ctx, toolID.String(), tool.MoveRequest{
			Qty: 4, Kind: tool.MoveBetween, SourceJobID: &jobA, DestJobID: &jobB, Responsible: "Encarregado",
		})

		assert.NoError(t, err)
		assert.Zero(t, deps.ledger.locations["JOB:"+jobA])
		assert.Equal(t, 4, deps.ledger.locations["JOB:"+jobB])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("LOSS keeps the total", func(t *testing.T) {
		deps := setupToolServiceTest(t)
		defer deps.db.Close()
		deps.ledger.total = 6
		deps.ledger.locations["JOB:"+jobA] = 6

		expectMoveTx(t, deps.sqlMock, true)
		_, err := deps.service.ApplyMove(ctx, toolID.String(), tool.MoveRequest{
			Qty: 2, Kind: tool.MoveLoss, SourceJobID: &jobA, Responsible: "Encarregado",
		})

		assert.NoError(t, err)
		assert.Equal(t, 6, deps.ledger.total)
		assert.Equal(t, 2, deps.ledger.locations[tool.LocationLost])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("DISCARD shrinks the total", func(t *testing.T) {
		deps := setupToolServiceTest(t)
		defer deps.db.Close()
		deps.ledger.total = 6
		deps.ledger.locations[tool.LocationWarehouse] = 6

		expectMoveTx(t, deps.sqlMock, true)
		_, err := deps.service.ApplyMove(ctx, toolID.String(), tool.MoveRequest{
			Qty: 2, Kind: tool.MoveDiscard, Responsible: "Almoxarife",
		})

		assert.NoError(t, err)
		assert.Equal(t, 4, deps.ledger.total)
		assert.Equal(t, 4, deps.ledger.locations[tool.LocationWarehouse])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("round trip restores quantities", func(t *testing.T) {
		deps := setupToolServiceTest(t)
		defer deps.db.Close()
		deps.ledger.total = 8
		deps.ledger.locations[tool.LocationWarehouse] = 8

		expectMoveTx(t, deps.sqlMock, true)
		_, err := deps.service.ApplyMove(ctx, toolID.String(), tool.MoveRequest{
			Qty: 5, Kind: tool.MoveToJob, DestJobID: &jobA, Responsible: "Encarregado",
		})
		assert.NoError(t, err)

		expectMoveTx(t, deps.sqlMock, true)
		_, err = deps.service.ApplyMove(ctx, toolID.String(), tool.MoveRequest{
			Qty: 5, Kind: tool.MoveToWarehouse, SourceJobID: &jobA, Responsible: "Encarregado",
		})
		assert.NoError(t, err)

		assert.Equal(t, 8, deps.ledger.total)
		assert.Equal(t, 8, deps.ledger.locations[tool.LocationWarehouse])
		assert.Zero(t, deps.ledger.locations["JOB:"+jobA])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestToolService_ApplyMove_Validation(t *testing.T) {
	ctx := context.Background()
	toolID := uuid.New().String()
	jobA := uuid.New().String()

	deps := setupToolServiceTest(t)
	defer deps.db.Close()

	// rejected before any transaction starts
	_, err := deps.service.ApplyMove(ctx, toolID, tool.MoveRequest{Qty: 0, Kind: tool.MoveIn, Responsible: "x"})
	assert.ErrorIs(t, err, toolerrors.ErrInvalidQty)

	_, err = deps.service.ApplyMove(ctx, toolID, tool.MoveRequest{Qty: 1, Kind: "TELEPORT", Responsible: "x"})
	assert.ErrorIs(t, err, toolerrors.ErrInvalidKind)

	_, err = deps.service.ApplyMove(ctx, toolID, tool.MoveRequest{Qty: 1, Kind: tool.MoveToJob, Responsible: "x"})
	assert.ErrorIs(t, err, toolerrors.ErrMissingEndpoint)

	_, err = deps.service.ApplyMove(ctx, toolID, tool.MoveRequest{
		Qty: 1, Kind: tool.MoveBetween, SourceJobID: &jobA, DestJobID: &jobA, Responsible: "x",
	})
	assert.ErrorIs(t, err, toolerrors.ErrSameEndpoint)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestToolService_ApplyMove_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	toolID := uuid.New().String()
	jobA := uuid.New().String()

	deps := setupToolServiceTest(t)
	defer deps.db.Close()
	deps.ledger.total = 2
	deps.ledger.locations[tool.LocationWarehouse] = 2

	expectMoveTx(t, deps.sqlMock, false)
	_, err := deps.service.ApplyMove(ctx, toolID, tool.MoveRequest{
		Qty: 3, Kind: tool.MoveToJob, DestJobID: &jobA, Responsible: "Encarregado",
	})

	assert.ErrorIs(t, err, toolerrors.ErrInsufficientStock)
	assert.Equal(t, 2, deps.ledger.locations[tool.LocationWarehouse])
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestToolService_ApplyMove_UnknownTool(t *testing.T) {
	ctx := context.Background()

	deps := setupToolServiceTest(t)
	defer deps.db.Close()
	deps.repo.totalQtyFn = func(ctx context.Context, toolID uuid.UUID) (int, error) {
		return 0, sql.ErrNoRows
	}

	expectMoveTx(t, deps.sqlMock, false)
	_, err := deps.service.ApplyMove(ctx, uuid.New().String(), tool.MoveRequest{
		Qty: 1, Kind: tool.MoveIn, Responsible: "Almoxarife",
	})

	assert.ErrorIs(t, err, toolerrors.ErrToolNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestToolService_ApplyMove_InconsistentLedgerAborts(t *testing.T) {
	ctx := context.Background()

	deps := setupToolServiceTest(t)
	defer deps.db.Close()
	deps.ledger.total = 5
	deps.ledger.locations[tool.LocationWarehouse] = 5
	deps.repo.sumLocationsFn = func(ctx context.Context, toolID uuid.UUID) (int, error) {
		return 99, nil
	}

	expectMoveTx(t, deps.sqlMock, false)
	_, err := deps.service.ApplyMove(ctx, uuid.New().String(), tool.MoveRequest{
		Qty: 1, Kind: tool.MoveIn, Responsible: "Almoxarife",
	})

	assert.ErrorIs(t, err, toolerrors.ErrLedgerInconsistent)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestToolService_Distribution(t *testing.T) {
	ctx := context.Background()
	toolID := uuid.New()
	jobA := uuid.New()

	deps := setupToolServiceTest(t)
	defer deps.db.Close()

	deps.repo.findToolByIDFn = func(ctx context.Context, id string) (*tool.ToolModel, error) {
		return &tool.ToolModel{ID: toolID, Code: "FER-0001", Name: "Furadeira", TotalQty: 10, Active: true}, nil
	}
	deps.repo.listLocationsFn = func(ctx context.Context, id string) ([]tool.ToolLocation, error) {
		return []tool.ToolLocation{
			{ToolID: toolID, LocationType: tool.LocationWarehouse, Qty: 4},
			{ToolID: toolID, LocationType: tool.LocationJob, JobID: &jobA, Qty: 3},
			{ToolID: toolID, LocationType: tool.LocationMaintenance, Qty: 2},
			{ToolID: toolID, LocationType: tool.LocationLost, Qty: 1},
		}, nil
	}

	resp, err := deps.service.Distribution(ctx, toolID.String())

	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Warehouse)
	assert.Equal(t, 2, resp.Maintenance)
	assert.Equal(t, 1, resp.Lost)
	assert.Equal(t, 10, resp.Total)
	if assert.Len(t, resp.PerJob, 1) {
		assert.Equal(t, jobA.String(), resp.PerJob[0].JobID)
		assert.Equal(t, 3, resp.PerJob[0].Qty)
	}
}

func TestToolService_VerifyConsistency(t *testing.T) {
	ctx := context.Background()
	toolID := uuid.New()

	deps := setupToolServiceTest(t)
	defer deps.db.Close()
	deps.ledger.total = 7
	deps.ledger.locations[tool.LocationWarehouse] = 5

	resp, err := deps.service.VerifyConsistency(ctx, toolID.String())

	assert.NoError(t, err)
	assert.False(t, resp.Ok)
	assert.Equal(t, 7, resp.TotalQty)
	assert.Equal(t, 5, resp.LocationsSum)
	assert.NotEmpty(t, resp.Message)
}
