// Package rows defines the labeled numeric data points that feed a chart's
// series, and the normalization every candidate row sequence goes through
// before it becomes live state.
package rows

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// PreviewSize is the number of leading rows exposed by Preview.
const PreviewSize = 5

// Row is a single labeled data point.
type Row struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Candidate keys recognised by Normalize.
const (
	KeyID    = "id"
	KeyLabel = "label"
	KeyValue = "value"
)

// Normalize converts an arbitrary candidate sequence (typically decoded JSON,
// or the output of an external row editor) into rows. Missing ids are
// synthesized from seed plus the row's position, values are coerced to
// numbers (0 on failure) and labels are NFC-normalized strings.
// Nil entries are treated as empty candidates, never dropped.
func Normalize(items []map[string]any, seed time.Time) []Row {
	out := make([]Row, len(items))
	for i, item := range items {
		id, ok := toID(item[KeyID])
		if !ok {
			id = SynthesizeID(seed, i)
		}
		out[i] = Row{
			ID:    id,
			Label: ToLabel(item[KeyLabel]),
			Value: Number(item[KeyValue]),
		}
	}
	return out
}

// Sanitize is the typed counterpart of Normalize: it fills empty ids and
// normalizes labels, returning a new slice.
func Sanitize(rs []Row, seed time.Time) []Row {
	out := make([]Row, len(rs))
	for i, r := range rs {
		if r.ID == "" {
			r.ID = SynthesizeID(seed, i)
		}
		r.Label = norm.NFC.String(r.Label)
		r.Value = finiteOrZero(r.Value)
		out[i] = r
	}
	return out
}

// SynthesizeID returns the id assigned to the row at index when none was
// supplied. Rows created in the same batch share seed and differ by index.
func SynthesizeID(seed time.Time, index int) string {
	return strconv.FormatInt(seed.UnixMilli(), 10) + "-" + strconv.Itoa(index)
}

// Clone returns a copy of rs. A nil input yields an empty, non-nil slice.
func Clone(rs []Row) []Row {
	out := make([]Row, len(rs))
	copy(out, rs)
	return out
}

// Preview returns a copy of at most PreviewSize leading rows.
func Preview(rs []Row) []Row {
	if len(rs) > PreviewSize {
		rs = rs[:PreviewSize]
	}
	return Clone(rs)
}

// ChartData is the projection consumed by option builders. Values are
// guaranteed finite.
func ChartData(rs []Row) []Row {
	out := make([]Row, len(rs))
	for i, r := range rs {
		out[i] = Row{ID: r.ID, Label: r.Label, Value: finiteOrZero(r.Value)}
	}
	return out
}

// HasLabel reports whether the row carries a non-blank label.
func (r Row) HasLabel() bool {
	return strings.TrimSpace(r.Label) != ""
}

// ToLabel converts a candidate label to its string form.
func ToLabel(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return norm.NFC.String(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return norm.NFC.String(fmt.Sprint(v))
	}
}

func toID(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		s := fmt.Sprint(v)
		return s, s != ""
	}
}
