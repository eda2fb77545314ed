package schema

import "github.com/joeycumines/chartview/internal/rows"

// ChartPie is the pie chart type key.
const ChartPie = "pie"

// Pie chart field keys.
const (
	FieldRoseType       = "roseType"
	FieldInnerRadius    = "innerRadius"
	FieldOuterRadius    = "outerRadius"
	FieldShowLabel      = "showLabel"
	FieldLabelPosition  = "labelPosition"
	FieldLabelFormatter = "labelFormatter"
	FieldBorderRadius   = "borderRadius"
	FieldBorderWidth    = "borderWidth"
)

// Label formatter modes accepted by FieldLabelFormatter.
const (
	FormatName        = "name"
	FormatValue       = "value"
	FormatPercent     = "percent"
	FormatNameValue   = "name-value"
	FormatNamePercent = "name-percent"
)

func pieDefinition() Definition {
	return Definition{
		ChartType: ChartType{Type: ChartPie, Label: "Pie chart", Icon: "PieChart"},
		Groups: []FieldGroup{
			{
				Group:      "pieStyle",
				GroupLabel: "Pie style",
				Fields: []FieldSpec{
					{
						Field:   FieldRoseType,
						Label:   "Rose mode",
						Type:    TypeSelect,
						Default: "none",
						Options: []Option{
							{Label: "Off", Value: "none"},
							{Label: "Radius", Value: "radius"},
							{Label: "Area", Value: "area"},
						},
					},
					{Field: FieldInnerRadius, Label: "Inner radius (%)", Type: TypeSlider, Default: 0.0, Min: num(0), Max: num(80), Step: num(5)},
					{Field: FieldOuterRadius, Label: "Outer radius (%)", Type: TypeSlider, Default: 70.0, Min: num(30), Max: num(90), Step: num(5)},
				},
			},
			{
				Group:      "pieLabel",
				GroupLabel: "Labels",
				Fields: []FieldSpec{
					{Field: FieldShowLabel, Label: "Show labels", Type: TypeSwitch, Default: true},
					{
						Field:   FieldLabelPosition,
						Label:   "Label position",
						Type:    TypeSelect,
						Default: "outside",
						Options: []Option{
							{Label: "Outside", Value: "outside"},
							{Label: "Inside", Value: "inside"},
							{Label: "Center", Value: "center"},
						},
						ShowWhen: When(FieldShowLabel),
					},
					{
						Field:   FieldLabelFormatter,
						Label:   "Label format",
						Type:    TypeSelect,
						Default: FormatName,
						Options: []Option{
							{Label: "Name", Value: FormatName},
							{Label: "Value", Value: FormatValue},
							{Label: "Percent", Value: FormatPercent},
							{Label: "Name and value", Value: FormatNameValue},
							{Label: "Name and percent", Value: FormatNamePercent},
						},
						ShowWhen: When(FieldShowLabel),
					},
				},
			},
			{
				Group:      "pieBorder",
				GroupLabel: "Borders",
				Collapsed:  true,
				Fields: []FieldSpec{
					{Field: FieldBorderRadius, Label: "Slice corner radius", Type: TypeSlider, Default: 0.0, Min: num(0), Max: num(20), Step: num(1)},
					{Field: FieldBorderWidth, Label: "Slice gap", Type: TypeSlider, Default: 0.0, Min: num(0), Max: num(10), Step: num(1)},
				},
			},
		},
		Sample: []rows.Row{
			{ID: "1", Label: "Medical quality", Value: 38},
			{ID: "2", Label: "Nursing satisfaction", Value: 26},
			{ID: "3", Label: "Service efficiency", Value: 18},
			{ID: "4", Label: "Risk control", Value: 12},
			{ID: "5", Label: "Patient feedback", Value: 6},
		},
	}
}
