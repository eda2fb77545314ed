package option

import (
	"github.com/joeycumines/chartview/internal/rows"
	"github.com/joeycumines/chartview/internal/schema"
)

const (
	defaultLineWidth   = 2
	defaultLineColor   = "#5470c6"
	defaultPointSize   = 4
	defaultAreaOpacity = 0.3
)

func buildLine(config map[string]any, data []rows.Row) Tree {
	categories := make([]any, len(data))
	pairs := make([]any, len(data))
	for i, r := range data {
		categories[i] = r.Label
		pairs[i] = []any{r.Label, r.Value}
	}

	color := stringOr(config, schema.FieldLineColor, defaultLineColor)
	series := Tree{
		"type":   "line",
		"name":   stringOr(config, schema.FieldYAxisLabel, stringOr(config, schema.FieldTitle, "")),
		"data":   pairs,
		"smooth": truthy(config, schema.FieldSmooth),
		"lineStyle": Tree{
			"width": number(config, schema.FieldLineWidth, defaultLineWidth),
			"color": color,
		},
		"itemStyle":  Tree{"color": color},
		"showSymbol": notFalse(config, schema.FieldShowDataPoints),
		"symbolSize": number(config, schema.FieldPointSize, defaultPointSize),
	}
	if truthy(config, schema.FieldShowArea) {
		series["areaStyle"] = Tree{
			"opacity": number(config, schema.FieldAreaOpacity, defaultAreaOpacity),
		}
	}

	return Tree{
		"xAxis": Tree{
			"type":        "category",
			"name":        stringOr(config, schema.FieldXAxisLabel, ""),
			"boundaryGap": false,
			"data":        categories,
		},
		"yAxis": Tree{
			"type": "value",
			"name": stringOr(config, schema.FieldYAxisLabel, ""),
		},
		"series": []any{series},
	}
}
