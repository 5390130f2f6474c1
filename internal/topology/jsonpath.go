package topology

import (
	"strings"

	"k8s.io/client-go/util/jsonpath"
)

// EvaluateJSONPath runs a JSONPath expression against a manifest map and
// returns the first match as a display string.
//
// Handles the forms used by the console:
// - Simple field access: .status.phase
// - Filtered arrays: .status.conditions[?(@.type=="ManagedClusterConditionAvailable")].status
//
// Returns "" when the expression is invalid, the field is missing or the
// object is nil.
func EvaluateJSONPath(obj map[string]any, expr string) string {
	if expr == "" || obj == nil {
		return ""
	}

	// client-go's parser wants the template braces
	if !strings.HasPrefix(expr, "{") {
		expr = "{" + expr + "}"
	}

	jp := jsonpath.New("detail")
	jp.AllowMissingKeys(true)
	if err := jp.Parse(expr); err != nil {
		return ""
	}

	results, err := jp.FindResults(obj)
	if err != nil || len(results) == 0 || len(results[0]) == 0 {
		return ""
	}

	first := results[0][0]
	if !first.IsValid() || !first.CanInterface() {
		return ""
	}
	return FormatValue(first.Interface())
}

// EvaluateJSONPathOrDefault is EvaluateJSONPath with a fallback for empty results
func EvaluateJSONPathOrDefault(obj map[string]any, expr, defaultValue string) string {
	if result := EvaluateJSONPath(obj, expr); result != "" {
		return result
	}
	return defaultValue
}
