package chartview

import (
	"github.com/joeycumines/chartview/internal/option"
	"github.com/joeycumines/chartview/internal/rows"
	"github.com/joeycumines/chartview/internal/schema"
)

type (
	// ChartType describes a selectable chart kind.
	ChartType = schema.ChartType
	// FieldGroup is a named, collapsible cluster of fields.
	FieldGroup = schema.FieldGroup
	// FieldSpec declares a single configurable setting.
	FieldSpec = schema.FieldSpec
	// FieldType is the rendering hint of a field.
	FieldType = schema.FieldType
	// Row is a labeled data point.
	Row = rows.Row
	// Option is a renderer option tree.
	Option = option.Tree
	// Size is the rendered chart size in pixels.
	Size = option.Dimensions
)

// PreviewSize is the number of rows returned by DataPreview.
const PreviewSize = rows.PreviewSize

// Built-in chart types.
const (
	ChartLine = schema.ChartLine
	ChartPie  = schema.ChartPie
)
