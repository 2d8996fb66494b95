package timesheet

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayRow is the projection of a timesheet row the normalizer needs.
type DayRow struct {
	ID        uuid.UUID
	CreatedAt time.Time
	DayRate   decimal.Decimal
}

// DayRateChange is one correction the normalizer wants applied.
type DayRateChange struct {
	ID      uuid.UUID
	DayRate decimal.Decimal
}

// NormalizeDay picks the principal row for one (worker, date) bucket and
// returns the rate corrections needed so exactly one row carries the base
// day-rate and every other row carries zero. The principal is the earliest
// row by creation time, ties broken by id.
//
// A worker earns one day-rate per calendar day no matter how many rows the
// day splits into. The sum of day-rates over a bucket is therefore either 0
// (empty bucket) or the worker's base rate.
func NormalizeDay(rows []DayRow, base decimal.Decimal) []DayRateChange {
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]DayRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	var changes []DayRateChange
	if !sorted[0].DayRate.Equal(base) {
		changes = append(changes, DayRateChange{ID: sorted[0].ID, DayRate: base})
	}
	for _, row := range sorted[1:] {
		if !row.DayRate.IsZero() {
			changes = append(changes, DayRateChange{ID: row.ID, DayRate: decimal.Zero})
		}
	}
	return changes
}
