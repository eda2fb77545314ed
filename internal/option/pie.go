package option

import (
	"strconv"

	"github.com/joeycumines/chartview/internal/rows"
	"github.com/joeycumines/chartview/internal/schema"
)

const (
	defaultInnerRadius   = 0
	defaultOuterRadius   = 70
	defaultLabelPosition = "outside"
)

// labelTemplates maps label formatter modes to ECharts string templates:
// {b} is the slice name, {c} its value and {d} its percentage.
var labelTemplates = map[string]string{
	schema.FormatName:        "{b}",
	schema.FormatValue:       "{c}",
	schema.FormatPercent:     "{d}%",
	schema.FormatNameValue:   "{b}: {c}",
	schema.FormatNamePercent: "{b}: {d}%",
}

// LabelTemplate returns the label template of a formatter mode. Unknown
// modes fall back to the name-only template.
func LabelTemplate(mode string) string {
	if t, ok := labelTemplates[mode]; ok {
		return t
	}
	return labelTemplates[schema.FormatName]
}

func buildPie(config map[string]any, data []rows.Row) Tree {
	items := make([]any, len(data))
	for i, r := range data {
		items[i] = Tree{"name": r.Label, "value": r.Value}
	}

	series := Tree{
		"type": "pie",
		"name": stringOr(config, schema.FieldTitle, ""),
		"radius": []any{
			percent(number(config, schema.FieldInnerRadius, defaultInnerRadius)),
			percent(number(config, schema.FieldOuterRadius, defaultOuterRadius)),
		},
		"roseType": roseType(config),
		"label": Tree{
			"show":      notFalse(config, schema.FieldShowLabel),
			"position":  stringOr(config, schema.FieldLabelPosition, defaultLabelPosition),
			"formatter": LabelTemplate(stringOr(config, schema.FieldLabelFormatter, schema.FormatName)),
		},
		"itemStyle": Tree{
			"borderRadius": number(config, schema.FieldBorderRadius, 0),
			"borderWidth":  number(config, schema.FieldBorderWidth, 0),
			"borderColor":  stringOr(config, schema.FieldBackgroundColor, DefaultBackgroundColor),
		},
		"data": items,
	}
	return Tree{"series": []any{series}}
}

// roseType is false unless a rose mode is selected.
func roseType(config map[string]any) any {
	switch mode := stringOr(config, schema.FieldRoseType, ""); mode {
	case "radius", "area":
		return mode
	default:
		return false
	}
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
