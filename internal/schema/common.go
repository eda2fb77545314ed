package schema

// Shared field keys read by the option builder's base layer.
const (
	FieldTitle           = "title"
	FieldShowTitle       = "showTitle"
	FieldTitlePosition   = "titlePosition"
	FieldBackgroundColor = "backgroundColor"
	FieldShowLegend      = "showLegend"
	FieldLegendPosition  = "legendPosition"
	FieldChartWidth      = "chartWidth"
	FieldChartHeight     = "chartHeight"
)

// Action field keys.
const (
	ActionEditData    = "editData"
	ActionResetConfig = "resetConfig"
	ActionResetData   = "resetData"
)

func sharedGroups() []FieldGroup {
	return []FieldGroup{
		{
			Group:      "basic",
			GroupLabel: "Basic",
			Fields: []FieldSpec{
				{
					Field:       FieldTitle,
					Label:       "Chart title",
					Type:        TypeInput,
					Default:     "Untitled chart",
					Placeholder: "Enter a chart title",
				},
				{
					Field:   FieldShowTitle,
					Label:   "Show title",
					Type:    TypeSwitch,
					Default: true,
				},
				{
					Field:   FieldTitlePosition,
					Label:   "Title alignment",
					Type:    TypeSelect,
					Default: "left",
					Options: []Option{
						{Label: "Left", Value: "left"},
						{Label: "Center", Value: "center"},
						{Label: "Right", Value: "right"},
					},
					ShowWhen: When(FieldShowTitle),
				},
				{
					Field:   FieldBackgroundColor,
					Label:   "Background color",
					Type:    TypeColor,
					Default: "#ffffff",
				},
			},
		},
		{
			Group:      "legend",
			GroupLabel: "Legend",
			Fields: []FieldSpec{
				{
					Field:   FieldShowLegend,
					Label:   "Show legend",
					Type:    TypeSwitch,
					Default: true,
				},
				{
					Field:   FieldLegendPosition,
					Label:   "Legend position",
					Type:    TypeSelect,
					Default: "top",
					Options: []Option{
						{Label: "Top", Value: "top"},
						{Label: "Bottom", Value: "bottom"},
						{Label: "Left", Value: "left"},
						{Label: "Right", Value: "right"},
					},
					ShowWhen: When(FieldShowLegend),
				},
			},
		},
		{
			Group:      "size",
			GroupLabel: "Size",
			Collapsed:  true,
			Fields: []FieldSpec{
				{
					Field:   FieldChartWidth,
					Label:   "Width (px)",
					Type:    TypeSlider,
					Default: 600.0,
					Min:     num(300),
					Max:     num(1200),
					Step:    num(10),
				},
				{
					Field:   FieldChartHeight,
					Label:   "Height (px)",
					Type:    TypeSlider,
					Default: 400.0,
					Min:     num(200),
					Max:     num(900),
					Step:    num(10),
				},
			},
		},
		{
			Group:      "actions",
			GroupLabel: "Actions",
			Fields: []FieldSpec{
				{Field: ActionEditData, Label: "Edit data", Type: TypeAction},
				{Field: ActionResetConfig, Label: "Reset configuration", Type: TypeAction},
				{Field: ActionResetData, Label: "Reset data", Type: TypeAction},
			},
		},
	}
}
