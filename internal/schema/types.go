// Package schema declares the configurable fields of every chart type: the
// shared groups all charts carry, the chart-specific groups, their defaults,
// their visibility rules, and the sample rows a fresh chart starts with.
package schema

// FieldType is the rendering hint for a field. The presentation layer maps
// each type to a concrete input widget.
type FieldType string

const (
	TypeInput  FieldType = "input"
	TypeSwitch FieldType = "switch"
	TypeSlider FieldType = "slider"
	TypeSelect FieldType = "select"
	TypeColor  FieldType = "color"
	// TypeAction fields trigger behavior and carry no value. They are never
	// default-filled or reset.
	TypeAction FieldType = "action"
)

// ChartTypeKey is the reserved configuration key recording which chart
// type's schema the configuration was last synchronized against.
const ChartTypeKey = "chartType"

// Option is one choice of a select field.
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// FieldSpec declares a single configurable setting.
type FieldSpec struct {
	// Field is the configuration key.
	Field string `json:"field"`
	// Label is an opaque display string.
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Default any       `json:"default,omitempty"`
	// Min, Max and Step bound slider fields.
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	// ShowWhen, when set, decides visibility against the live configuration.
	ShowWhen Predicate `json:"-"`
}

// IsAction reports whether the field is an action (valueless) field.
func (f FieldSpec) IsAction() bool {
	return f.Type == TypeAction
}

// Visible evaluates the field's visibility against config. Fields without a
// ShowWhen predicate are always visible.
func (f FieldSpec) Visible(config map[string]any) bool {
	ok, _ := f.Visibility(config)
	return ok
}

// Visibility is Visible with the predicate's evaluation error, if any. A
// field whose predicate fails is hidden.
func (f FieldSpec) Visibility(config map[string]any) (bool, error) {
	switch p := f.ShowWhen.(type) {
	case nil:
		return true, nil
	case checker:
		return p.Check(config)
	default:
		return p.Eval(config), nil
	}
}

// FieldGroup is a named, collapsible cluster of fields.
type FieldGroup struct {
	Group      string      `json:"group"`
	GroupLabel string      `json:"groupLabel"`
	Collapsed  bool        `json:"collapsed"`
	Fields     []FieldSpec `json:"fields"`
}

// ChartType identifies a selectable chart kind.
type ChartType struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

func num(v float64) *float64 {
	return &v
}
