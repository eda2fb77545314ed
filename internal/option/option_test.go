package option

import (
	"math"
	"testing"

	"github.com/joeycumines/chartview/internal/rows"
	"github.com/joeycumines/chartview/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []rows.Row{
	{ID: "1", Label: "A", Value: 10},
	{ID: "2", Label: "B", Value: 5.5},
}

func firstSeries(t *testing.T, tree Tree) Tree {
	t.Helper()
	series, ok := tree["series"].([]any)
	require.True(t, ok, "series missing")
	require.Len(t, series, 1)
	s, ok := series[0].(Tree)
	require.True(t, ok)
	return s
}

func TestBuild_BaseLayerDefaults(t *testing.T) {
	tree := Build(schema.ChartLine, map[string]any{}, nil)

	assert.Equal(t, Tree{"show": true, "text": "", "left": "left"}, tree["title"])
	assert.Equal(t, Tree{"trigger": TriggerAxis}, tree["tooltip"])
	assert.Equal(t, Tree{"show": true, "orient": "horizontal", "left": "center", "top": "top"}, tree["legend"])
	assert.Equal(t, "#ffffff", tree["backgroundColor"])
}

func TestBuild_BaseLayerFromConfig(t *testing.T) {
	config := schema.Default().Defaults(schema.ChartPie)
	config[schema.FieldShowTitle] = false
	config[schema.FieldTitle] = "Quality"
	config[schema.FieldTitlePosition] = "center"
	config[schema.FieldBackgroundColor] = "#000000"
	config[schema.FieldShowLegend] = false

	tree := Build(schema.ChartPie, config, sample)
	assert.Equal(t, Tree{"show": false, "text": "Quality", "left": "center"}, tree["title"])
	assert.Equal(t, Tree{"trigger": TriggerItem}, tree["tooltip"])
	assert.Equal(t, false, tree["legend"].(Tree)["show"])
	assert.Equal(t, "#000000", tree["backgroundColor"])
}

func TestBuild_LegendPlacement(t *testing.T) {
	tests := []struct {
		position string
		orient   string
		left     string
		top      string
	}{
		{"top", "horizontal", "center", "top"},
		{"bottom", "horizontal", "center", "bottom"},
		{"left", "vertical", "left", "middle"},
		{"right", "vertical", "right", "middle"},
		{"", "horizontal", "center", "top"},
		{"diagonal", "horizontal", "center", "top"},
	}
	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			tree := Build(schema.ChartLine, map[string]any{schema.FieldLegendPosition: tt.position}, nil)
			legend := tree["legend"].(Tree)
			assert.Equal(t, tt.orient, legend["orient"])
			assert.Equal(t, tt.left, legend["left"])
			assert.Equal(t, tt.top, legend["top"])
		})
	}
}

func TestBuild_Line(t *testing.T) {
	config := schema.Default().Defaults(schema.ChartLine)
	config[schema.FieldXAxisLabel] = "Item"
	config[schema.FieldYAxisLabel] = "Score"
	config[schema.FieldSmooth] = true

	tree := Build(schema.ChartLine, config, sample)

	assert.Equal(t, Tree{
		"type":        "category",
		"name":        "Item",
		"boundaryGap": false,
		"data":        []any{"A", "B"},
	}, tree["xAxis"])
	assert.Equal(t, Tree{"type": "value", "name": "Score"}, tree["yAxis"])

	s := firstSeries(t, tree)
	assert.Equal(t, "line", s["type"])
	assert.Equal(t, "Score", s["name"])
	assert.Equal(t, []any{[]any{"A", 10.0}, []any{"B", 5.5}}, s["data"])
	assert.Equal(t, true, s["smooth"])
	assert.Equal(t, Tree{"width": 2.0, "color": "#5470c6"}, s["lineStyle"])
	assert.Equal(t, true, s["showSymbol"])
	assert.Equal(t, 4.0, s["symbolSize"])
	assert.NotContains(t, s, "areaStyle")
}

func TestBuild_LineArea(t *testing.T) {
	config := schema.Default().Defaults(schema.ChartLine)
	config[schema.FieldShowArea] = true
	config[schema.FieldAreaOpacity] = 0.6
	config[schema.FieldShowDataPoints] = false

	s := firstSeries(t, Build(schema.ChartLine, config, sample))
	assert.Equal(t, Tree{"opacity": 0.6}, s["areaStyle"])
	assert.Equal(t, false, s["showSymbol"])
}

func TestBuild_Pie(t *testing.T) {
	config := schema.Default().Defaults(schema.ChartPie)
	config[schema.FieldInnerRadius] = 40.0
	config[schema.FieldOuterRadius] = 75.5
	config[schema.FieldRoseType] = "area"
	config[schema.FieldBorderRadius] = 6.0

	tree := Build(schema.ChartPie, config, sample)
	assert.NotContains(t, tree, "xAxis")

	s := firstSeries(t, tree)
	assert.Equal(t, "pie", s["type"])
	assert.Equal(t, []any{"40%", "75.5%"}, s["radius"])
	assert.Equal(t, "area", s["roseType"])
	assert.Equal(t, []any{
		Tree{"name": "A", "value": 10.0},
		Tree{"name": "B", "value": 5.5},
	}, s["data"])
	assert.Equal(t, 6.0, s["itemStyle"].(Tree)["borderRadius"])

	config[schema.FieldRoseType] = "none"
	s = firstSeries(t, Build(schema.ChartPie, config, sample))
	assert.Equal(t, false, s["roseType"])
}

func TestBuild_PieNamePercentLabel(t *testing.T) {
	config := schema.Default().Defaults(schema.ChartPie)
	config[schema.FieldLabelFormatter] = schema.FormatNamePercent

	label := firstSeries(t, Build(schema.ChartPie, config, sample))["label"].(Tree)
	formatter := label["formatter"].(string)
	assert.Equal(t, "{b}: {d}%", formatter)
	assert.Contains(t, formatter, "{b}")
	assert.Contains(t, formatter, "{d}")
	assert.NotContains(t, formatter, "{c}")
}

func TestLabelTemplate(t *testing.T) {
	assert.Equal(t, "{b}", LabelTemplate(schema.FormatName))
	assert.Equal(t, "{c}", LabelTemplate(schema.FormatValue))
	assert.Equal(t, "{d}%", LabelTemplate(schema.FormatPercent))
	assert.Equal(t, "{b}: {c}", LabelTemplate(schema.FormatNameValue))
	assert.Equal(t, "{b}: {d}%", LabelTemplate(schema.FormatNamePercent))
	assert.Equal(t, "{b}", LabelTemplate("bogus"))
}

func TestBuild_UnknownChartType(t *testing.T) {
	tree := Build("radar", map[string]any{schema.FieldTitle: "T"}, sample)
	assert.ElementsMatch(t, []string{"title", "tooltip", "legend", "backgroundColor"}, keys(tree))
	assert.False(t, Supported("radar"))
	assert.True(t, Supported(schema.ChartPie))
}

func TestBuild_DoesNotMutateInputs(t *testing.T) {
	config := schema.Default().Defaults(schema.ChartLine)
	config[schema.FieldShowArea] = true
	before := make(map[string]any, len(config))
	for k, v := range config {
		before[k] = v
	}
	data := rows.Clone(sample)

	tree := Build(schema.ChartLine, config, data)
	tree["title"].(Tree)["text"] = "changed"
	firstSeries(t, tree)["data"].([]any)[0] = nil

	assert.Equal(t, before, config)
	assert.Equal(t, sample, data)
}

func TestBuild_NonFiniteValues(t *testing.T) {
	s := firstSeries(t, Build(schema.ChartPie, nil, []rows.Row{{Label: "A", Value: math.Inf(1)}}))
	assert.Equal(t, []any{Tree{"name": "A", "value": 0.0}}, s["data"])
}

func TestSize(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]any
		want   Dimensions
	}{
		{"empty", nil, Dimensions{600, 400}},
		{"numbers", map[string]any{schema.FieldChartWidth: 800.0, schema.FieldChartHeight: 300}, Dimensions{800, 300}},
		{"strings", map[string]any{schema.FieldChartWidth: "720", schema.FieldChartHeight: "abc"}, Dimensions{720, 400}},
		{"zero", map[string]any{schema.FieldChartWidth: 0.0, schema.FieldChartHeight: ""}, Dimensions{600, 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Size(tt.config))
		})
	}
}

func keys(tree Tree) []string {
	out := make([]string, 0, len(tree))
	for k := range tree {
		out = append(out, k)
	}
	return out
}
