package schema

import "github.com/joeycumines/chartview/internal/rows"

// ChartLine is the line chart type key.
const ChartLine = "line"

// Line chart field keys.
const (
	FieldSmooth         = "smooth"
	FieldShowArea       = "showArea"
	FieldAreaOpacity    = "areaOpacity"
	FieldLineWidth      = "lineWidth"
	FieldLineColor      = "lineColor"
	FieldShowDataPoints = "showDataPoints"
	FieldPointSize      = "pointSize"
	FieldXAxisLabel     = "xAxisLabel"
	FieldYAxisLabel     = "yAxisLabel"
)

func lineDefinition() Definition {
	return Definition{
		ChartType: ChartType{Type: ChartLine, Label: "Line chart", Icon: "TrendCharts"},
		Groups: []FieldGroup{
			{
				Group:      "lineStyle",
				GroupLabel: "Line style",
				Fields: []FieldSpec{
					{Field: FieldSmooth, Label: "Smooth curve", Type: TypeSwitch, Default: false},
					{Field: FieldLineWidth, Label: "Line width", Type: TypeSlider, Default: 2.0, Min: num(1), Max: num(10), Step: num(1)},
					{Field: FieldLineColor, Label: "Line color", Type: TypeColor, Default: "#5470c6"},
				},
			},
			{
				Group:      "area",
				GroupLabel: "Area fill",
				Fields: []FieldSpec{
					{Field: FieldShowArea, Label: "Show area", Type: TypeSwitch, Default: false},
					{
						Field:    FieldAreaOpacity,
						Label:    "Area opacity",
						Type:     TypeSlider,
						Default:  0.3,
						Min:      num(0),
						Max:      num(1),
						Step:     num(0.1),
						ShowWhen: When(FieldShowArea),
					},
				},
			},
			{
				Group:      "points",
				GroupLabel: "Data points",
				Fields: []FieldSpec{
					{Field: FieldShowDataPoints, Label: "Show data points", Type: TypeSwitch, Default: true},
					{
						Field:    FieldPointSize,
						Label:    "Point size",
						Type:     TypeSlider,
						Default:  4.0,
						Min:      num(2),
						Max:      num(12),
						Step:     num(1),
						ShowWhen: When(FieldShowDataPoints),
					},
				},
			},
			{
				Group:      "axis",
				GroupLabel: "Axes",
				Collapsed:  true,
				Fields: []FieldSpec{
					{Field: FieldXAxisLabel, Label: "X axis label", Type: TypeInput, Default: "", Placeholder: "Enter an X axis label"},
					{Field: FieldYAxisLabel, Label: "Y axis label", Type: TypeInput, Default: "", Placeholder: "Enter a Y axis label"},
				},
			},
		},
		Sample: []rows.Row{
			{ID: "1", Label: "Ward rounds", Value: 92.4},
			{ID: "2", Label: "Medication checks", Value: 88.6},
			{ID: "3", Label: "Pressure ulcer prevention", Value: 84.2},
			{ID: "4", Label: "Fall prevention", Value: 80.1},
			{ID: "5", Label: "Post-op assessment", Value: 76.9},
		},
	}
}
