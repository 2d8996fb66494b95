package timesheet_test

import (
	"testing"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/timesheet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDay_EmptyBucket(t *testing.T) {
	changes := timesheet.NormalizeDay(nil, decimal.NewFromInt(180))
	assert.Nil(t, changes)
}

func TestNormalizeDay_SingleRowGetsBaseRate(t *testing.T) {
	base := decimal.RequireFromString("180.00")
	row := timesheet.DayRow{ID: uuid.New(), CreatedAt: time.Now(), DayRate: decimal.Zero}

	changes := timesheet.NormalizeDay([]timesheet.DayRow{row}, base)

	if assert.Len(t, changes, 1) {
		assert.Equal(t, row.ID, changes[0].ID)
		assert.True(t, changes[0].DayRate.Equal(base))
	}
}

func TestNormalizeDay_EarliestRowIsPrincipal(t *testing.T) {
	base := decimal.RequireFromString("200.00")
	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	first := timesheet.DayRow{ID: uuid.New(), CreatedAt: t0, DayRate: base}
	second := timesheet.DayRow{ID: uuid.New(), CreatedAt: t0.Add(time.Hour), DayRate: base}
	third := timesheet.DayRow{ID: uuid.New(), CreatedAt: t0.Add(2 * time.Hour), DayRate: decimal.Zero}

	// input order must not matter
	changes := timesheet.NormalizeDay([]timesheet.DayRow{third, second, first}, base)

	if assert.Len(t, changes, 1) {
		assert.Equal(t, second.ID, changes[0].ID)
		assert.True(t, changes[0].DayRate.IsZero())
	}
}

func TestNormalizeDay_TieBrokenByID(t *testing.T) {
	base := decimal.RequireFromString("150.00")
	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	a := timesheet.DayRow{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), CreatedAt: t0}
	b := timesheet.DayRow{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), CreatedAt: t0}

	changes := timesheet.NormalizeDay([]timesheet.DayRow{b, a}, base)

	if assert.Len(t, changes, 1) {
		assert.Equal(t, a.ID, changes[0].ID)
		assert.True(t, changes[0].DayRate.Equal(base))
	}
}

func TestNormalizeDay_AlreadyNormalizedYieldsNothing(t *testing.T) {
	base := decimal.RequireFromString("180.00")
	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	rows := []timesheet.DayRow{
		{ID: uuid.New(), CreatedAt: t0, DayRate: base},
		{ID: uuid.New(), CreatedAt: t0.Add(time.Hour), DayRate: decimal.Zero},
	}

	assert.Empty(t, timesheet.NormalizeDay(rows, base))
}

func TestNormalizeDay_SumEqualsBase(t *testing.T) {
	base := decimal.RequireFromString("210.50")
	t0 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	rows := []timesheet.DayRow{
		{ID: uuid.New(), CreatedAt: t0, DayRate: decimal.RequireFromString("50.00")},
		{ID: uuid.New(), CreatedAt: t0.Add(time.Minute), DayRate: decimal.RequireFromString("50.00")},
		{ID: uuid.New(), CreatedAt: t0.Add(2 * time.Minute), DayRate: decimal.RequireFromString("50.00")},
	}

	changes := timesheet.NormalizeDay(rows, base)

	rates := map[uuid.UUID]decimal.Decimal{}
	for _, row := range rows {
		rates[row.ID] = row.DayRate
	}
	for _, c := range changes {
		rates[c.ID] = c.DayRate
	}
	sum := decimal.Zero
	for _, r := range rates {
		sum = sum.Add(r)
	}
	assert.True(t, sum.Equal(base), "bucket should pay exactly one day-rate, got %s", sum)
}
