package schema

import (
	"fmt"
	"sync"

	"github.com/joeycumines/chartview/internal/rows"
)

// Definition bundles everything registered for one chart type.
type Definition struct {
	ChartType
	// Groups are the chart-specific groups, listed after the shared groups.
	Groups []FieldGroup
	// Sample is the default data a fresh chart of this type starts with.
	Sample []rows.Row
}

// Registry is an immutable index of chart schemas. All methods are safe for
// concurrent use, and all returned slices are copies.
type Registry struct {
	types    []ChartType
	shared   []FieldGroup
	specific map[string][]FieldGroup
	samples  map[string][]rows.Row
}

// NewRegistry builds a registry from the shared groups and per-type
// definitions. A later definition for the same type replaces the earlier one
// but keeps its position in ChartTypes.
func NewRegistry(shared []FieldGroup, defs ...Definition) *Registry {
	r := &Registry{
		shared:   copyGroups(shared),
		specific: make(map[string][]FieldGroup, len(defs)),
		samples:  make(map[string][]rows.Row, len(defs)),
	}
	for _, def := range defs {
		if _, ok := r.specific[def.Type]; !ok {
			r.types = append(r.types, def.ChartType)
		} else {
			for i := range r.types {
				if r.types[i].Type == def.Type {
					r.types[i] = def.ChartType
				}
			}
		}
		groups := copyGroups(def.Groups)
		if groups == nil {
			groups = []FieldGroup{}
		}
		r.specific[def.Type] = groups
		r.samples[def.Type] = rows.Clone(def.Sample)
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(sharedGroups(), lineDefinition(), pieDefinition())
})

// Default returns the process-wide registry holding the built-in chart types.
func Default() *Registry {
	return defaultRegistry()
}

// ChartTypes returns the registered chart type descriptors in registration
// order.
func (r *Registry) ChartTypes() []ChartType {
	out := make([]ChartType, len(r.types))
	copy(out, r.types)
	return out
}

// Has reports whether chartType is registered.
func (r *Registry) Has(chartType string) bool {
	_, ok := r.specific[chartType]
	return ok
}

// GroupsFor returns the shared groups followed by the chart-specific groups.
// An unknown chart type yields an empty list.
func (r *Registry) GroupsFor(chartType string) []FieldGroup {
	specific, ok := r.specific[chartType]
	if !ok {
		return []FieldGroup{}
	}
	out := make([]FieldGroup, 0, len(r.shared)+len(specific))
	out = append(out, copyGroups(r.shared)...)
	out = append(out, copyGroups(specific)...)
	return out
}

// FlattenedFields returns every field of chartType in group order, then
// in-group order. Duplicate keys are kept; consumers applying defaults in
// order get last-write-wins resolution.
func (r *Registry) FlattenedFields(chartType string) []FieldSpec {
	var out []FieldSpec
	for _, g := range r.GroupsFor(chartType) {
		out = append(out, g.Fields...)
	}
	if out == nil {
		out = []FieldSpec{}
	}
	return out
}

// Field looks up the effective declaration of key for chartType, honoring
// last-write-wins.
func (r *Registry) Field(chartType, key string) (FieldSpec, bool) {
	var (
		found FieldSpec
		ok    bool
	)
	for _, f := range r.FlattenedFields(chartType) {
		if f.Field == key {
			found, ok = f, true
		}
	}
	return found, ok
}

// Defaults returns the default value of every non-action field of chartType.
func (r *Registry) Defaults(chartType string) map[string]any {
	out := make(map[string]any)
	for _, f := range r.FlattenedFields(chartType) {
		if f.IsAction() {
			continue
		}
		out[f.Field] = f.Default
	}
	return out
}

// DefaultRows returns a copy of the sample rows for chartType. An unknown
// chart type yields an empty list.
func (r *Registry) DefaultRows(chartType string) []rows.Row {
	return rows.Clone(r.samples[chartType])
}

// Validate reports schema declarations that break registry invariants:
// duplicate group keys and duplicate field keys within a chart type.
func (r *Registry) Validate() []error {
	var errs []error
	for _, t := range r.types {
		groups := make(map[string]bool)
		fields := make(map[string]bool)
		for _, g := range r.GroupsFor(t.Type) {
			if groups[g.Group] {
				errs = append(errs, fmt.Errorf("chart type %q: duplicate group %q", t.Type, g.Group))
			}
			groups[g.Group] = true
			for _, f := range g.Fields {
				if fields[f.Field] {
					errs = append(errs, fmt.Errorf("chart type %q: duplicate field %q", t.Type, f.Field))
				}
				fields[f.Field] = true
			}
		}
	}
	return errs
}

func copyGroups(groups []FieldGroup) []FieldGroup {
	if groups == nil {
		return nil
	}
	out := make([]FieldGroup, len(groups))
	for i, g := range groups {
		g.Fields = append([]FieldSpec(nil), g.Fields...)
		out[i] = g
	}
	return out
}
