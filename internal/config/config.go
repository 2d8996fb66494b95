package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Worker roles. Only masons accumulate production indicators.
const (
	RoleMason  = "MASON"
	RoleHelper = "HELPER"
)

// The eight production indicator codes tracked per mason per day.
const (
	IndicatorAlicerce      = "alicerce_percentual"
	IndicatorParede7Fiadas = "parede_7fiadas"
	IndicatorRespaldo      = "respaldo_conclusao"
	IndicatorLaje          = "laje_conclusao"
	IndicatorPlatibanda    = "platibanda"
	IndicatorCobertura     = "cobertura_conclusao"
	IndicatorRebocoExterno = "reboco_externo"
	IndicatorRebocoInterno = "reboco_interno"
)

// IndicatorCodes in presentation order.
var IndicatorCodes = []string{
	IndicatorAlicerce,
	IndicatorParede7Fiadas,
	IndicatorRespaldo,
	IndicatorLaje,
	IndicatorPlatibanda,
	IndicatorCobertura,
	IndicatorRebocoExterno,
	IndicatorRebocoInterno,
}

// CompletionIndicators are the milestone indicators ranked by first completion date.
var CompletionIndicators = []string{
	IndicatorRespaldo,
	IndicatorLaje,
	IndicatorCobertura,
}

// stageWeights maps stage number to the cumulative completion percentage the
// job reaches when that stage is done. Fixed by the engineering department.
var stageWeights = map[int]decimal.Decimal{
	1: decimal.NewFromFloat(29.9),
	2: decimal.NewFromFloat(45.0),
	3: decimal.NewFromFloat(70.0),
	4: decimal.NewFromFloat(84.0),
	5: decimal.NewFromFloat(95.0),
}

const StageCount = 5

// StageWeight returns the fixed completion weight for a stage number.
func StageWeight(number int) (decimal.Decimal, bool) {
	w, ok := stageWeights[number]
	return w, ok
}

// defaultIndicatorFieldMap maps stage-detail field names (and accepted
// aliases) onto indicator codes. Must stay injective onto IndicatorCodes.
var defaultIndicatorFieldMap = map[string]string{
	"alicerce_percentual":   IndicatorAlicerce,
	"parede_7fiadas_blocos": IndicatorParede7Fiadas,
	"parede_7fiadas":        IndicatorParede7Fiadas,
	"respaldo_percentual":   IndicatorRespaldo,
	"respaldo_conclusao":    IndicatorRespaldo,
	"laje_percentual":       IndicatorLaje,
	"laje_conclusao":        IndicatorLaje,
	"platibanda_blocos":     IndicatorPlatibanda,
	"platibanda":            IndicatorPlatibanda,
	"cobertura_percentual":  IndicatorCobertura,
	"cobertura_conclusao":   IndicatorCobertura,
	"reboco_externo_m2":     IndicatorRebocoExterno,
	"reboco_interno_m2":     IndicatorRebocoInterno,
}

var indicatorFieldMap = defaultIndicatorFieldMap

// Load reads optional engine overrides from the environment. Called once from
// the mains before any module is wired.
func Load() error {
	if raw := os.Getenv("INDICATOR_FIELD_MAP"); raw != "" {
		m := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return fmt.Errorf("parse INDICATOR_FIELD_MAP: %w", err)
		}
		if err := validateFieldMap(m); err != nil {
			return err
		}
		indicatorFieldMap = m
	}
	return nil
}

func validateFieldMap(m map[string]string) error {
	known := map[string]bool{}
	for _, code := range IndicatorCodes {
		known[code] = true
	}
	for field, code := range m {
		if !known[code] {
			return fmt.Errorf("indicator field map: field %q targets unknown indicator %q", field, code)
		}
	}
	return nil
}

// IndicatorForField resolves a stage-detail field name to its indicator code.
func IndicatorForField(field string) (string, bool) {
	code, ok := indicatorFieldMap[field]
	return code, ok
}

// ValidRole reports whether the given role belongs to the fixed role set.
func ValidRole(role string) bool {
	return role == RoleMason || role == RoleHelper
}
