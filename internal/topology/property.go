package topology

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Path is a field path relative to a node's raw manifest
type Path []string

// P builds a Path from its fields
func P(fields ...string) Path {
	return fields
}

// Paths is shorthand for a candidate list
func Paths(paths ...Path) []Path {
	return paths
}

// lookup walks obj along path. Missing keys, nil values and non-map
// intermediates all report not found.
func lookup(obj map[string]any, path Path) (any, bool) {
	if obj == nil || len(path) == 0 {
		return nil, false
	}
	v, found, err := unstructured.NestedFieldNoCopy(obj, path...)
	if err != nil || !found {
		return nil, false
	}
	return v, defined(v)
}

// defined reports whether a looked-up value carries something to show
func defined(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case map[string]any:
		return len(t) > 0
	case map[string]string:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}
	return true
}

// firstDefined returns the first candidate path holding a defined value
func firstDefined(obj map[string]any, candidates []Path) (any, bool) {
	for _, path := range candidates {
		if v, ok := lookup(obj, path); ok {
			return v, true
		}
	}
	return nil, false
}

// rawString reads a raw manifest field as a display string ("" if absent)
func rawString(node *GraphNode, fields ...string) string {
	v, ok := lookup(node.Specs.Raw, P(fields...))
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// FormatValue flattens a manifest value into a single display string.
// Maps become sorted k=v pairs and slices are joined element-wise, both with ",".
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]string:
		keys := sortedKeys(t)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+t[k])
		}
		return strings.Join(parts, ",")
	case map[string]any:
		keys := sortedKeys(t)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+FormatValue(t[k]))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := FormatValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// Extract returns a property row for the first candidate path with a defined
// value under specs.raw. When none match it returns a row with the fallback,
// or nil when no fallback was given.
func Extract(node *GraphNode, candidates []Path, labelKey string, fallback ...string) *DisplayRecord {
	if node == nil {
		return nil
	}
	if v, ok := firstDefined(node.Specs.Raw, candidates); ok {
		return &DisplayRecord{Type: RecordProperty, LabelKey: labelKey, Value: FormatValue(v)}
	}
	if len(fallback) == 0 {
		return nil
	}
	return &DisplayRecord{Type: RecordProperty, LabelKey: labelKey, Value: fallback[0]}
}

// ExtractRequired is Extract for fields whose absence is a failure: the
// fallback row carries a failed status.
func ExtractRequired(node *GraphNode, candidates []Path, labelKey, fallback string) *DisplayRecord {
	if node == nil {
		return nil
	}
	rec := Extract(node, candidates, labelKey)
	if rec != nil {
		return rec
	}
	return &DisplayRecord{Type: RecordProperty, LabelKey: labelKey, Value: fallback, Status: StatusFailed}
}

// stringMap converts a manifest map into string values, skipping nested values
func stringMap(v any) map[string]string {
	out := map[string]string{}
	switch t := v.(type) {
	case map[string]string:
		for k, val := range t {
			out[k] = val
		}
	case map[string]any:
		for k, val := range t {
			if s, ok := val.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}

// sortedStrings returns a sorted copy
func sortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
