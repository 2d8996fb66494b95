package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageWeight(t *testing.T) {
	weights := map[int]string{
		1: "29.9",
		2: "45",
		3: "70",
		4: "84",
		5: "95",
	}
	for number, want := range weights {
		w, ok := StageWeight(number)
		assert.True(t, ok)
		assert.Equal(t, want, w.String())
	}

	_, ok := StageWeight(6)
	assert.False(t, ok)
	_, ok = StageWeight(0)
	assert.False(t, ok)
}

func TestIndicatorForField(t *testing.T) {
	code, ok := IndicatorForField("reboco_externo_m2")
	assert.True(t, ok)
	assert.Equal(t, IndicatorRebocoExterno, code)

	// aliases land on the same indicator
	long, _ := IndicatorForField("parede_7fiadas_blocos")
	short, _ := IndicatorForField("parede_7fiadas")
	assert.Equal(t, long, short)

	_, ok = IndicatorForField("piscina_m2")
	assert.False(t, ok)
}

func TestLoad_FieldMapOverride(t *testing.T) {
	t.Cleanup(func() { indicatorFieldMap = defaultIndicatorFieldMap })

	t.Run("valid override replaces the map", func(t *testing.T) {
		t.Setenv("INDICATOR_FIELD_MAP", `{"laje_m3": "laje_conclusao"}`)

		assert.NoError(t, Load())

		code, ok := IndicatorForField("laje_m3")
		assert.True(t, ok)
		assert.Equal(t, IndicatorLaje, code)

		_, ok = IndicatorForField("reboco_externo_m2")
		assert.False(t, ok)
	})

	t.Run("unknown target indicator is rejected", func(t *testing.T) {
		t.Setenv("INDICATOR_FIELD_MAP", `{"laje_m3": "piscina"}`)

		assert.Error(t, Load())
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		t.Setenv("INDICATOR_FIELD_MAP", `{"laje_m3": `)

		assert.Error(t, Load())
	})

	t.Run("empty env keeps the defaults", func(t *testing.T) {
		indicatorFieldMap = defaultIndicatorFieldMap
		t.Setenv("INDICATOR_FIELD_MAP", "")

		assert.NoError(t, Load())

		_, ok := IndicatorForField("cobertura_percentual")
		assert.True(t, ok)
	})
}

func TestCompletionIndicatorsAreTracked(t *testing.T) {
	tracked := map[string]bool{}
	for _, code := range IndicatorCodes {
		tracked[code] = true
	}
	for _, code := range CompletionIndicators {
		assert.True(t, tracked[code], code)
	}
}
