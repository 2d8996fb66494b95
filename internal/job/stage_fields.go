package job

import (
	"strings"

	joberrors "github.com/vendas-sistemas/perroni-sub000/internal/job/errors"

	"github.com/shopspring/decimal"
)

// stageFields lists the production fields each stage number accepts.
var stageFields = map[int][]string{
	1: {"alicerce_percentual", "parede_7fiadas_blocos"},
	2: {"respaldo_percentual", "laje_percentual", "platibanda_blocos"},
	3: {"cobertura_percentual"},
	4: {"reboco_externo_m2"},
	5: {"reboco_interno_m2"},
}

// FieldsForStage returns the production field names a stage number accepts.
func FieldsForStage(stageNumber int) []string {
	return stageFields[stageNumber]
}

func fieldAllowed(stageNumber int, field string) bool {
	for _, f := range stageFields[stageNumber] {
		if f == field {
			return true
		}
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// applyFieldValues validates and writes field values onto a stage detail row.
// Percentage fields must stay within [0,100]; everything else only needs to
// be non-negative.
func applyFieldValues(d *StageDetail, stageNumber int, values map[string]decimal.Decimal) error {
	for field, v := range values {
		if !fieldAllowed(stageNumber, field) {
			return joberrors.ErrFieldNotAllowedForStage
		}
		if v.IsNegative() {
			return joberrors.ErrNegativeFieldValue
		}
		if strings.HasSuffix(field, "_percentual") && v.GreaterThan(hundred) {
			return joberrors.ErrPercentOutOfRange
		}

		v := v.Round(2)
		switch field {
		case "alicerce_percentual":
			d.AlicercePercentual = &v
		case "parede_7fiadas_blocos":
			d.Parede7FiadasBlocos = &v
		case "respaldo_percentual":
			d.RespaldoPercentual = &v
		case "laje_percentual":
			d.LajePercentual = &v
		case "platibanda_blocos":
			d.PlatibandaBlocos = &v
		case "cobertura_percentual":
			d.CoberturaPercentual = &v
		case "reboco_externo_m2":
			d.RebocoExternoM2 = &v
		case "reboco_interno_m2":
			d.RebocoInternoM2 = &v
		}
	}
	return nil
}
