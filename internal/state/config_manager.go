// Package state owns the live, mutable chart state: the configuration
// object with its collapsed-groups map, and the data rows. Both managers are
// single-owner and not safe for concurrent use; callers serialize access.
package state

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/joeycumines/chartview/internal/schema"
	"github.com/joeycumines/chartview/internal/storage"
)

// ChangeKind identifies the entry point that mutated the configuration.
type ChangeKind int

const (
	// ChangeSwitch follows a chart type selection (including startup).
	ChangeSwitch ChangeKind = iota
	// ChangeSet follows a single or multi-field edit.
	ChangeSet
	// ChangeRestore follows a full snapshot restore.
	ChangeRestore
	// ChangeReset follows ResetConfig or RestoreDefaults. It is never auto-persisted.
	ChangeReset
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSwitch:
		return "switch"
	case ChangeSet:
		return "set"
	case ChangeRestore:
		return "restore"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes one notification.
type Change struct {
	Kind      ChangeKind
	ChartType string
	// Keys lists the edited keys, for ChangeSet only.
	Keys []string
}

// Listener is invoked synchronously after every mutation.
type Listener func(Change)

// ConfigManager owns the live configuration object and the collapsed-groups
// map. Every mutation notifies listeners exactly once; the built-in
// auto-persist listener writes the configuration, minus the chartType key,
// under the current chart type.
type ConfigManager struct {
	registry *schema.Registry
	store    *storage.Store
	logger   *slog.Logger

	chartType string
	config    map[string]any
	collapsed map[string]bool

	listeners  map[int]Listener
	nextListID int
}

// NewConfigManager creates a manager seeded with a copy of initial. No chart
// type is selected until SwitchChartType is called. A nil store persists
// nothing; a nil logger selects slog.Default.
func NewConfigManager(registry *schema.Registry, store *storage.Store, logger *slog.Logger, initial map[string]any) *ConfigManager {
	if registry == nil {
		registry = schema.Default()
	}
	if store == nil {
		store = storage.Unavailable()
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &ConfigManager{
		registry:   registry,
		store:      store,
		logger:     logger,
		config:     cloneMap(initial),
		collapsed:  make(map[string]bool),
		listeners:  make(map[int]Listener),
		nextListID: 1,
	}
	delete(m.config, schema.ChartTypeKey)
	m.AddListener(m.autoPersist)
	return m
}

// AddListener registers fn and returns its id. Listeners run in id order.
func (m *ConfigManager) AddListener(fn Listener) int {
	id := m.nextListID
	m.nextListID++
	m.listeners[id] = fn
	return id
}

// notifyListeners calls listeners in registration order.
func (m *ConfigManager) notifyListeners(c Change) {
	ids := slices.Sorted(maps.Keys(m.listeners))
	for _, id := range ids {
		if fn, ok := m.listeners[id]; ok {
			fn(c)
		}
	}
}

func (m *ConfigManager) autoPersist(c Change) {
	if c.Kind == ChangeReset || m.chartType == "" {
		return
	}
	m.store.SaveConfig(m.chartType, m.snapshot())
}

// snapshot returns the persisted form of the live object.
func (m *ConfigManager) snapshot() map[string]any {
	out := cloneMap(m.config)
	delete(out, schema.ChartTypeKey)
	return out
}

// SwitchChartType synchronizes the live configuration against chartType:
// it records the type, fills in missing defaults, restores the persisted
// snapshot over them, then seeds collapse state for groups not yet seen.
func (m *ConfigManager) SwitchChartType(chartType string) {
	m.chartType = chartType
	m.config[schema.ChartTypeKey] = chartType
	m.fillDefaults(chartType)
	if persisted, ok := m.store.LoadConfig(chartType); ok {
		m.applySnapshot(persisted)
	}
	m.syncCollapsed(chartType)
	m.notifyListeners(Change{Kind: ChangeSwitch, ChartType: chartType})
}

// fillDefaults sets every absent non-action field to its effective default.
// A key declared twice takes the later declaration's default. Present keys
// are never touched, whichever chart type put them there.
func (m *ConfigManager) fillDefaults(chartType string) {
	for k, v := range m.registry.Defaults(chartType) {
		if _, ok := m.config[k]; !ok {
			m.config[k] = cloneValue(v)
		}
	}
}

// applySnapshot overwrites the live object with every key of snapshot except
// chartType. Keys unknown to the current schema are kept.
func (m *ConfigManager) applySnapshot(snapshot map[string]any) {
	for k, v := range snapshot {
		if k == schema.ChartTypeKey {
			continue
		}
		m.config[k] = cloneValue(v)
	}
}

func (m *ConfigManager) syncCollapsed(chartType string) {
	for _, g := range m.registry.GroupsFor(chartType) {
		if _, ok := m.collapsed[g.Group]; !ok {
			m.collapsed[g.Group] = g.Collapsed
		}
	}
}

// Set assigns a single field. The reserved chartType key cannot be set this
// way and is ignored.
func (m *ConfigManager) Set(key string, value any) {
	m.SetMany(map[string]any{key: value})
}

// SetMany assigns several fields as one edit, issuing a single notification.
func (m *ConfigManager) SetMany(values map[string]any) {
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if k == schema.ChartTypeKey {
			m.logger.Debug("[Config] ignoring edit of reserved key", "key", k)
			continue
		}
		m.config[k] = cloneValue(v)
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return
	}
	slices.Sort(keys)
	m.notifyListeners(Change{Kind: ChangeSet, ChartType: m.chartType, Keys: keys})
}

// Restore applies a full snapshot over the live object, the same way a
// persisted snapshot is applied on a chart type switch.
func (m *ConfigManager) Restore(snapshot map[string]any) {
	m.applySnapshot(snapshot)
	m.notifyListeners(Change{Kind: ChangeRestore, ChartType: m.chartType})
}

// ResetConfig clears the persisted configuration of chartType, then
// restores its defaults.
func (m *ConfigManager) ResetConfig(chartType string) {
	m.store.ClearConfig(chartType)
	m.RestoreDefaults(chartType)
}

// RestoreDefaults sets every tracked non-action field of chartType back to
// its effective default, leaving persisted state alone. Untracked keys stay
// absent. The reset itself is not persisted.
func (m *ConfigManager) RestoreDefaults(chartType string) {
	for k, v := range m.registry.Defaults(chartType) {
		if _, ok := m.config[k]; ok {
			m.config[k] = cloneValue(v)
		}
	}
	m.notifyListeners(Change{Kind: ChangeReset, ChartType: chartType})
}

// ToggleGroup flips the collapse state of a known group. Unknown keys are
// ignored.
func (m *ConfigManager) ToggleGroup(key string) {
	if v, ok := m.collapsed[key]; ok {
		m.collapsed[key] = !v
	}
}

// VisibleFields filters the fields of group against the live configuration.
// It is evaluated on every call.
func (m *ConfigManager) VisibleFields(group schema.FieldGroup) []schema.FieldSpec {
	view := m.Config()
	out := make([]schema.FieldSpec, 0, len(group.Fields))
	for _, f := range group.Fields {
		visible, err := f.Visibility(view)
		if err != nil {
			m.logger.Warn("[Schema] visibility evaluation failed",
				"chartType", m.chartType,
				"field", f.Field,
				"error", err)
		}
		if visible {
			out = append(out, f)
		}
	}
	return out
}

// Group returns the group of the current chart type named key.
func (m *ConfigManager) Group(key string) (schema.FieldGroup, bool) {
	for _, g := range m.Groups() {
		if g.Group == key {
			return g, true
		}
	}
	return schema.FieldGroup{}, false
}

// Groups returns the field groups of the current chart type.
func (m *ConfigManager) Groups() []schema.FieldGroup {
	return m.registry.GroupsFor(m.chartType)
}

// ChartType returns the currently selected chart type.
func (m *ConfigManager) ChartType() string {
	return m.chartType
}

// Config returns a deep copy of the live configuration object.
func (m *ConfigManager) Config() map[string]any {
	return cloneMap(m.config)
}

// Get returns a copy of one configuration value.
func (m *ConfigManager) Get(key string) (any, bool) {
	v, ok := m.config[key]
	return cloneValue(v), ok
}

// CollapsedGroups returns a copy of the collapsed-groups map.
func (m *ConfigManager) CollapsedGroups() map[string]bool {
	return maps.Clone(m.collapsed)
}
