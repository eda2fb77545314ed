package rows

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSeed = time.UnixMilli(1700000000000)

func TestNormalize(t *testing.T) {
	t.Run("coerces values and synthesizes distinct ids", func(t *testing.T) {
		got := Normalize([]map[string]any{
			{"label": "A", "value": "5"},
			{"label": "B", "value": "x"},
		}, testSeed)

		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].Label)
		assert.Equal(t, 5.0, got[0].Value)
		assert.Equal(t, "B", got[1].Label)
		assert.Equal(t, 0.0, got[1].Value)
		assert.NotEmpty(t, got[0].ID)
		assert.NotEmpty(t, got[1].ID)
		assert.NotEqual(t, got[0].ID, got[1].ID)
		assert.Equal(t, "1700000000000-0", got[0].ID)
		assert.Equal(t, "1700000000000-1", got[1].ID)
	})

	t.Run("keeps existing ids", func(t *testing.T) {
		got := Normalize([]map[string]any{
			{"id": "keep", "label": "A", "value": 1},
			{"id": float64(3), "label": "B", "value": 2},
			{"id": "", "label": "C", "value": 3},
		}, testSeed)

		assert.Equal(t, "keep", got[0].ID)
		assert.Equal(t, "3", got[1].ID)
		assert.Equal(t, "1700000000000-2", got[2].ID)
	})

	t.Run("nil entry becomes an empty row", func(t *testing.T) {
		got := Normalize([]map[string]any{nil}, testSeed)
		require.Len(t, got, 1)
		assert.Equal(t, Row{ID: "1700000000000-0"}, got[0])
	})

	t.Run("labels are NFC normalized", func(t *testing.T) {
		got := Normalize([]map[string]any{{"label": "e\u0301"}}, testSeed)
		assert.Equal(t, "\u00e9", got[0].Label)
	})

	t.Run("non-string labels are stringified", func(t *testing.T) {
		got := Normalize([]map[string]any{{"label": float64(12.5)}, {"label": true}}, testSeed)
		assert.Equal(t, "12.5", got[0].Label)
		assert.Equal(t, "true", got[1].Label)
	})
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"nil", nil, 0},
		{"true", true, 1},
		{"false", false, 0},
		{"float", 2.5, 2.5},
		{"int", 7, 7},
		{"uint8", uint8(9), 9},
		{"json number", json.Number("42"), 42},
		{"numeric string", " 3.25 ", 3.25},
		{"empty string", "", 0},
		{"exponent", "1e3", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.input))
		})
	}

	for _, bad := range []any{"x", "Infinity", "NaN", "-inf", []int{1}, map[string]any{}} {
		assert.True(t, math.IsNaN(ToNumber(bad)), "%#v", bad)
		assert.Equal(t, 0.0, Number(bad), "%#v", bad)
	}
}

func TestSanitize(t *testing.T) {
	in := []Row{{Label: "A", Value: math.Inf(1)}, {ID: "b", Label: "B", Value: 2}}
	got := Sanitize(in, testSeed)

	assert.Equal(t, []Row{
		{ID: "1700000000000-0", Label: "A", Value: 0},
		{ID: "b", Label: "B", Value: 2},
	}, got)
	assert.Empty(t, in[0].ID, "input must not be mutated")
}

func TestPreview(t *testing.T) {
	var rs []Row
	for i := 0; i < 8; i++ {
		rs = append(rs, Row{ID: SynthesizeID(testSeed, i), Label: "r", Value: float64(i)})
	}

	p := Preview(rs)
	require.Len(t, p, PreviewSize)
	assert.Equal(t, rs[:PreviewSize], p)

	p[0].Label = "mutated"
	assert.Equal(t, "r", rs[0].Label)

	assert.Len(t, Preview(rs[:2]), 2)
	assert.NotNil(t, Preview(nil))
}

func TestChartData(t *testing.T) {
	got := ChartData([]Row{{Label: "", Value: math.NaN()}, {Label: "x", Value: 4}})
	assert.Equal(t, []Row{{Label: "", Value: 0}, {Label: "x", Value: 4}}, got)
}

func TestRow_HasLabel(t *testing.T) {
	assert.True(t, Row{Label: "a"}.HasLabel())
	assert.False(t, Row{Label: ""}.HasLabel())
	assert.False(t, Row{Label: "  \t"}.HasLabel())
}
