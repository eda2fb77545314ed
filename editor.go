package chartview

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/joeycumines/chartview/internal/option"
	"github.com/joeycumines/chartview/internal/schema"
	"github.com/joeycumines/chartview/internal/state"
	"github.com/joeycumines/chartview/internal/storage"
)

// Editor is the surface a presentation shell binds to. All methods are safe
// for concurrent use; each runs to completion before the next starts, so a
// chart type switch is never interleaved with an edit.
type Editor struct {
	mu       sync.Mutex
	id       string
	logger   *slog.Logger
	registry *schema.Registry
	store    *storage.Store
	config   *state.ConfigManager
	data     *state.DataManager
}

// New creates an Editor and selects opts.ChartType. The only errors are
// construction failures, such as an unknown backend name or a storage
// directory locked by another process.
func New(opts Options) (*Editor, error) {
	opts = opts.withDefaults()

	logger, err := opts.logger()
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	logger = logger.With("editor", id)
	for _, w := range opts.Warnings {
		logger.Warn("[Config] " + w)
	}
	for _, err := range opts.Registry.Validate() {
		logger.Warn("[Schema] invalid chart schema", "error", err)
	}

	backend, err := opts.openBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to open storage backend %q: %w", opts.Backend, err)
	}
	store := storage.NewStore(backend, logger)
	if !store.Available() {
		logger.Debug("[Storage] no storage backend available, state will not persist", "backend", opts.Backend)
	}

	e := &Editor{
		id:       id,
		logger:   logger,
		registry: opts.Registry,
		store:    store,
		config:   state.NewConfigManager(opts.Registry, store, logger, opts.InitialConfig),
		data:     state.NewDataManager(opts.Registry, store),
	}
	e.switchChartType(opts.ChartType)
	return e, nil
}

// ID identifies the editor in log records.
func (e *Editor) ID() string {
	return e.id
}

func (e *Editor) switchChartType(chartType string) {
	switch {
	case !e.registry.Has(chartType):
		e.logger.Warn("[Schema] unknown chart type selected", "chartType", chartType)
	case !option.Supported(chartType):
		e.logger.Warn("[Schema] chart type has no option builder", "chartType", chartType)
	}
	e.config.SwitchChartType(chartType)
	e.data.SwitchChartType(chartType)
}

// ChartType returns the selected chart type.
func (e *Editor) ChartType() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.ChartType()
}

// SelectChartType switches to chartType. Selecting the current chart type
// is a no-op.
func (e *Editor) SelectChartType(chartType string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if chartType == e.config.ChartType() {
		return
	}
	e.switchChartType(chartType)
}

// ChartTypes returns the selectable chart types.
func (e *Editor) ChartTypes() []ChartType {
	return e.registry.ChartTypes()
}

// ChartConfig returns a copy of the live configuration object.
func (e *Editor) ChartConfig() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.Config()
}

// SetField assigns one configuration field and persists the configuration.
func (e *Editor) SetField(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Set(key, value)
}

// SetFields assigns several configuration fields as one edit.
func (e *Editor) SetFields(values map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.SetMany(values)
}

// RestoreConfig applies snapshot over the live configuration.
func (e *Editor) RestoreConfig(snapshot map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Restore(snapshot)
}

// ConfigGroups returns the field groups of the selected chart type.
func (e *Editor) ConfigGroups() []FieldGroup {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.Groups()
}

// CollapsedGroups returns the collapse state of every group seen so far.
func (e *Editor) CollapsedGroups() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.CollapsedGroups()
}

// ToggleGroup flips the collapse state of a group.
func (e *Editor) ToggleGroup(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.ToggleGroup(key)
}

// VisibleFields returns the fields of the named group that are visible
// under the live configuration. An unknown group has no fields.
func (e *Editor) VisibleFields(groupKey string) []FieldSpec {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.config.Group(groupKey)
	if !ok {
		return []FieldSpec{}
	}
	return e.config.VisibleFields(g)
}

// ResetConfig discards the persisted configuration of chartType and resets
// tracked fields to their defaults.
func (e *Editor) ResetConfig(chartType string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.ResetConfig(chartType)
}

// DataRows returns a copy of the live rows.
func (e *Editor) DataRows() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.Rows()
}

// DataPreview returns the first few live rows.
func (e *Editor) DataPreview() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.Preview()
}

// ChartData returns the rows as fed to the option builder.
func (e *Editor) ChartData() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.ChartData()
}

// OpenDataEditor marks the row editor as visible.
func (e *Editor) OpenDataEditor() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data.OpenDataEditor()
}

// CloseDataEditor marks the row editor as hidden.
func (e *Editor) CloseDataEditor() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data.CloseDataEditor()
}

// DataEditorVisible reports whether the row editor is open.
func (e *Editor) DataEditorVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.DataEditorVisible()
}

// HandleDataSave replaces the live rows with the normalized candidates,
// typically produced by a row editor, and persists them.
func (e *Editor) HandleDataSave(candidates []map[string]any) []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.HandleDataSave(candidates)
}

// SaveRows is the typed counterpart of HandleDataSave.
func (e *Editor) SaveRows(rs []Row) []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.SaveRows(rs)
}

// ResetData discards the persisted rows of chartType and restores its
// sample rows.
func (e *Editor) ResetData(chartType string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data.ResetData(chartType)
}

// ResetAll discards both persisted artifacts of chartType and resets the
// configuration and rows.
func (e *Editor) ResetAll(chartType string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.ClearAll(chartType)
	e.config.RestoreDefaults(chartType)
	e.data.RestoreSample(chartType)
}

// RunAction performs the behavior bound to an action field of the selected
// chart type. It reports false for fields that are not actions.
func (e *Editor) RunAction(field string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	chartType := e.config.ChartType()
	spec, ok := e.registry.Field(chartType, field)
	if !ok || !spec.IsAction() {
		return false
	}
	switch field {
	case schema.ActionEditData:
		e.data.OpenDataEditor()
	case schema.ActionResetConfig:
		e.config.ResetConfig(chartType)
	case schema.ActionResetData:
		e.data.ResetData(chartType)
	default:
		return false
	}
	return true
}

// ChartOption builds the option tree for the selected chart type from the
// live configuration and rows.
func (e *Editor) ChartOption() Option {
	e.mu.Lock()
	defer e.mu.Unlock()
	return option.Build(e.config.ChartType(), e.config.Config(), e.data.ChartData())
}

// ChartSize derives the chart size from the live configuration.
func (e *Editor) ChartSize() Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return option.Size(e.config.Config())
}

// Close releases the storage backend.
func (e *Editor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Close()
}
