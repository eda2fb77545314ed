// Package option folds a chart configuration and its rows into a
// renderer-ready option tree, shaped for ECharts.
package option

import (
	"maps"

	"github.com/joeycumines/chartview/internal/rows"
	"github.com/joeycumines/chartview/internal/schema"
)

// Tree is a renderer option tree. Nested values are Tree, []any, string,
// bool or float64.
type Tree = map[string]any

// Tooltip trigger modes.
const (
	TriggerAxis = "axis"
	TriggerItem = "item"
)

// Fallbacks applied when the configuration lacks a usable value.
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultTitlePosition   = "left"
	DefaultWidth           = 600
	DefaultHeight          = 400
)

// TypeBuilder produces the chart-specific part of an option tree.
type TypeBuilder func(config map[string]any, data []rows.Row) Tree

type layer struct {
	trigger string
	build   TypeBuilder
}

// layers holds the chart-specific builders. Category-less charts use the
// item tooltip trigger.
var layers = map[string]layer{
	schema.ChartLine: {trigger: TriggerAxis, build: buildLine},
	schema.ChartPie:  {trigger: TriggerItem, build: buildPie},
}

// Build returns the option tree for chartType. The base layer is always
// present; an unknown chart type contributes no chart-specific keys. Build
// neither retains nor mutates its inputs.
func Build(chartType string, config map[string]any, data []rows.Row) Tree {
	l, ok := layers[chartType]
	if !ok {
		l.trigger = TriggerAxis
	}
	out := base(config, l.trigger)
	if l.build != nil {
		maps.Copy(out, l.build(config, rows.ChartData(data)))
	}
	return out
}

// Supported reports whether chartType has a chart-specific builder.
func Supported(chartType string) bool {
	_, ok := layers[chartType]
	return ok
}

func base(config map[string]any, trigger string) Tree {
	position := stringOr(config, schema.FieldLegendPosition, "")
	vertical := position == "left" || position == "right"

	orient := "horizontal"
	if vertical {
		orient = "vertical"
	}
	left := "center"
	if vertical {
		left = position
	}
	top := "top"
	switch {
	case position == "bottom":
		top = "bottom"
	case vertical:
		top = "middle"
	}

	return Tree{
		"title": Tree{
			"show": notFalse(config, schema.FieldShowTitle),
			"text": stringOr(config, schema.FieldTitle, ""),
			"left": stringOr(config, schema.FieldTitlePosition, DefaultTitlePosition),
		},
		"tooltip": Tree{
			"trigger": trigger,
		},
		"legend": Tree{
			"show":   notFalse(config, schema.FieldShowLegend),
			"orient": orient,
			"left":   left,
			"top":    top,
		},
		"backgroundColor": stringOr(config, schema.FieldBackgroundColor, DefaultBackgroundColor),
	}
}

// Dimensions is the rendered chart size in pixels.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size derives the chart size from the configuration, falling back to
// 600x400 for zero or unusable values.
func Size(config map[string]any) Dimensions {
	return Dimensions{
		Width:  numberOr(config, schema.FieldChartWidth, DefaultWidth),
		Height: numberOr(config, schema.FieldChartHeight, DefaultHeight),
	}
}
