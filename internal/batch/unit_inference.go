package batch

import "strings"

// InferUnit derives a field's unit from its name suffix. Totals are grouped
// by the inferred unit and never summed across units.
func InferUnit(field string) string {
	switch {
	case strings.HasSuffix(field, "_m2"):
		return UnitM2
	case strings.HasSuffix(field, "_percentual"):
		return UnitPercent
	case strings.HasSuffix(field, "_blocos"), strings.HasSuffix(field, "_fiadas"):
		return UnitBlocks
	}
	return UnitUnits
}
