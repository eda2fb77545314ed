package storage

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/joeycumines/chartview/internal/rows"
)

// KeyPrefix namespaces every document written by Store.
const KeyPrefix = "chart-view"

// Kind identifies one of the two artifacts persisted per chart type.
type Kind string

const (
	KindData   Kind = "data"
	KindConfig Kind = "config"
)

// Key returns the storage key of an artifact, e.g. "chart-view:config:line".
func Key(kind Kind, chartType string) string {
	return KeyPrefix + ":" + string(kind) + ":" + chartType
}

// Store persists configuration snapshots and data rows per chart type.
// Every operation is best-effort: failures are logged as warnings and
// otherwise behave like a cache miss or a dropped write. A Store without a
// backend is valid and persists nothing.
type Store struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore wraps backend, which may be nil. A nil logger selects slog.Default.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Unavailable returns a Store that persists nothing.
func Unavailable() *Store {
	return NewStore(nil, nil)
}

// Available reports whether the store has a backend.
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

// LoadConfig returns the persisted configuration snapshot for chartType. It
// reports false when nothing is stored or the stored document is not a JSON
// object.
func (s *Store) LoadConfig(chartType string) (map[string]any, bool) {
	raw, ok := s.read(KindConfig, chartType)
	if !ok {
		return nil, false
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		s.warn("failed to load persisted config", KindConfig, chartType, err)
		return nil, false
	}
	obj, isObject := parsed.(map[string]any)
	if !isObject {
		s.warn("failed to load persisted config", KindConfig, chartType, errors.New("document is not an object"))
		return nil, false
	}
	return obj, true
}

// SaveConfig persists a configuration snapshot for chartType.
func (s *Store) SaveConfig(chartType string, config map[string]any) {
	if config == nil {
		config = map[string]any{}
	}
	s.write(KindConfig, chartType, config)
}

// ClearConfig removes the persisted configuration for chartType.
func (s *Store) ClearConfig(chartType string) {
	s.remove(KindConfig, chartType)
}

// LoadRows returns the persisted rows for chartType, normalized, with
// unlabeled rows dropped. It returns an empty list when nothing usable is
// stored.
func (s *Store) LoadRows(chartType string) []rows.Row {
	raw, ok := s.read(KindData, chartType)
	if !ok {
		return []rows.Row{}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		s.warn("failed to load persisted rows", KindData, chartType, err)
		return []rows.Row{}
	}
	list, isArray := parsed.([]any)
	if !isArray {
		s.warn("failed to load persisted rows", KindData, chartType, errors.New("document is not an array"))
		return []rows.Row{}
	}

	candidates := make([]map[string]any, len(list))
	for i, item := range list {
		candidates[i], _ = item.(map[string]any)
	}

	out := make([]rows.Row, 0, len(candidates))
	for _, r := range rows.Normalize(candidates, s.now()) {
		if r.HasLabel() {
			out = append(out, r)
		}
	}
	return out
}

// PersistRows persists rows for chartType.
func (s *Store) PersistRows(chartType string, rs []rows.Row) {
	s.write(KindData, chartType, rows.Clone(rs))
}

// ClearRows removes the persisted rows for chartType.
func (s *Store) ClearRows(chartType string) {
	s.remove(KindData, chartType)
}

// ClearAll removes both persisted artifacts of chartType.
func (s *Store) ClearAll(chartType string) {
	s.ClearConfig(chartType)
	s.ClearRows(chartType)
}

// Close releases the backend.
func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	return s.backend.Close()
}

func (s *Store) read(kind Kind, chartType string) ([]byte, bool) {
	if !s.Available() {
		return nil, false
	}
	raw, err := s.backend.Get(Key(kind, chartType))
	if err != nil {
		s.warn("failed to read persisted document", kind, chartType, err)
		return nil, false
	}
	if len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

func (s *Store) write(kind Kind, chartType string, v any) {
	if !s.Available() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.warn("failed to encode document", kind, chartType, err)
		return
	}
	if err := s.backend.Set(Key(kind, chartType), data); err != nil {
		s.warn("failed to save persisted document", kind, chartType, err)
	}
}

func (s *Store) remove(kind Kind, chartType string) {
	if !s.Available() {
		return
	}
	if err := s.backend.Delete(Key(kind, chartType)); err != nil {
		s.warn("failed to clear persisted document", kind, chartType, err)
	}
}

func (s *Store) warn(msg string, kind Kind, chartType string, err error) {
	s.logger.Warn("[Storage] "+msg,
		"key", Key(kind, chartType),
		"chartType", chartType,
		"error", err)
}
