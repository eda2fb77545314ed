package option

import (
	"github.com/joeycumines/chartview/internal/rows"
	"github.com/joeycumines/chartview/internal/schema"
)

// stringOr returns config[key] when it is a non-empty string.
func stringOr(config map[string]any, key, fallback string) string {
	if s, ok := config[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// numberOr coerces config[key], treating zero and failures as absent.
func numberOr(config map[string]any, key string, fallback float64) float64 {
	if n := rows.Number(config[key]); n != 0 {
		return n
	}
	return fallback
}

// number coerces config[key], keeping zero.
func number(config map[string]any, key string, fallback float64) float64 {
	v, ok := config[key]
	if !ok || v == nil {
		return fallback
	}
	return rows.Number(v)
}

// notFalse is true unless config[key] is exactly false.
func notFalse(config map[string]any, key string) bool {
	b, ok := config[key].(bool)
	return !ok || b
}

// truthy reports whether config[key] is set to a truthy value.
func truthy(config map[string]any, key string) bool {
	return schema.Truthy(config[key])
}
