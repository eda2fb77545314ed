package state

import (
	"time"

	"github.com/joeycumines/chartview/internal/rows"
	"github.com/joeycumines/chartview/internal/schema"
	"github.com/joeycumines/chartview/internal/storage"
)

// DataManager owns the live row sequence of the current chart type.
type DataManager struct {
	registry *schema.Registry
	store    *storage.Store
	now      func() time.Time

	chartType     string
	rows          []rows.Row
	editorVisible bool
}

// NewDataManager creates a manager with no rows. A nil store persists
// nothing.
func NewDataManager(registry *schema.Registry, store *storage.Store) *DataManager {
	if registry == nil {
		registry = schema.Default()
	}
	if store == nil {
		store = storage.Unavailable()
	}
	return &DataManager{
		registry: registry,
		store:    store,
		now:      time.Now,
		rows:     []rows.Row{},
	}
}

// SwitchChartType adopts the persisted rows of chartType when there are
// any, otherwise a fresh copy of its sample rows. Nothing is cached across
// chart types.
func (m *DataManager) SwitchChartType(chartType string) {
	m.chartType = chartType
	if stored := m.store.LoadRows(chartType); len(stored) > 0 {
		m.rows = stored
		return
	}
	m.rows = m.registry.DefaultRows(chartType)
}

// HandleDataSave normalizes candidates, replaces the live rows with the
// result and persists them. It is the single mutation entry point for row
// edits and returns a copy of the new rows.
func (m *DataManager) HandleDataSave(candidates []map[string]any) []rows.Row {
	return m.replace(rows.Normalize(candidates, m.now()))
}

// SaveRows is the typed counterpart of HandleDataSave.
func (m *DataManager) SaveRows(rs []rows.Row) []rows.Row {
	return m.replace(rows.Sanitize(rs, m.now()))
}

func (m *DataManager) replace(rs []rows.Row) []rows.Row {
	m.rows = rs
	if m.chartType != "" {
		m.store.PersistRows(m.chartType, rs)
	}
	return rows.Clone(rs)
}

// ResetData clears the persisted rows of chartType and adopts its sample
// rows.
func (m *DataManager) ResetData(chartType string) {
	m.store.ClearRows(chartType)
	m.RestoreSample(chartType)
}

// RestoreSample adopts the sample rows of chartType without touching
// persisted state.
func (m *DataManager) RestoreSample(chartType string) {
	m.rows = m.registry.DefaultRows(chartType)
}

// ChartType returns the chart type the rows belong to.
func (m *DataManager) ChartType() string {
	return m.chartType
}

// Rows returns a copy of the live rows.
func (m *DataManager) Rows() []rows.Row {
	return rows.Clone(m.rows)
}

// ChartData returns the projection consumed by the option builder.
func (m *DataManager) ChartData() []rows.Row {
	return rows.ChartData(m.rows)
}

// Preview returns the leading rows shown next to the chart.
func (m *DataManager) Preview() []rows.Row {
	return rows.Preview(m.rows)
}

// OpenDataEditor marks the row editor as visible.
func (m *DataManager) OpenDataEditor() {
	m.editorVisible = true
}

// CloseDataEditor marks the row editor as hidden.
func (m *DataManager) CloseDataEditor() {
	m.editorVisible = false
}

// DataEditorVisible reports whether the row editor is open.
func (m *DataManager) DataEditorVisible() bool {
	return m.editorVisible
}
