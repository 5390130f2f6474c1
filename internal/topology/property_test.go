package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawNode(nodeType string, raw map[string]any) *GraphNode {
	return &GraphNode{ID: "member--" + nodeType, Name: "web", Type: nodeType, Specs: Specs{Raw: raw}}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "abc", "abc"},
		{"int", 3, "3"},
		{"int64", int64(42), "42"},
		{"float without decimals", float64(3), "3"},
		{"float with decimals", 1.5, "1.5"},
		{"bool", true, "true"},
		{"nil", nil, ""},
		{"string map sorted", map[string]string{"tier": "web", "app": "shop"}, "app=shop,tier=web"},
		{"any map sorted", map[string]any{"b": 2, "a": "x"}, "a=x,b=2"},
		{"slice of strings", []string{"ReadWriteOnce", "ReadOnlyMany"}, "ReadWriteOnce,ReadOnlyMany"},
		{
			name: "slice of maps",
			value: []any{
				map[string]any{"port": 80, "protocol": "TCP"},
				map[string]any{"port": 443, "protocol": "TCP"},
			},
			expected: "port=80,protocol=TCP,port=443,protocol=TCP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value))
		})
	}
}

func TestExtract(t *testing.T) {
	node := rawNode("deployment", map[string]any{
		"spec": map[string]any{
			"replicas": 0,
			"channel":  "",
			"selector": map[string]any{
				"app": "web",
			},
			"template": "not-a-map",
		},
	})

	t.Run("zero is defined", func(t *testing.T) {
		rec := Extract(node, Paths(P("spec", "replicas")), "raw.spec.replicas")
		require.NotNil(t, rec)
		assert.Equal(t, RecordProperty, rec.Type)
		assert.Equal(t, "raw.spec.replicas", rec.LabelKey)
		assert.Equal(t, "0", rec.Value)
	})

	t.Run("empty string is absent", func(t *testing.T) {
		assert.Nil(t, Extract(node, Paths(P("spec", "channel")), "raw.spec.channel"))
	})

	t.Run("falls through candidates in order", func(t *testing.T) {
		rec := Extract(node, Paths(P("spec", "selector", "matchLabels"), P("spec", "selector")), "raw.spec.selector")
		require.NotNil(t, rec)
		assert.Equal(t, "app=web", rec.Value)
	})

	t.Run("non-map intermediate is absent", func(t *testing.T) {
		assert.Nil(t, Extract(node, Paths(P("spec", "template", "spec")), "x"))
	})

	t.Run("fallback", func(t *testing.T) {
		rec := Extract(node, Paths(P("metadata", "labels")), "raw.spec.metadata.label", "No labels")
		require.NotNil(t, rec)
		assert.Equal(t, "No labels", rec.Value)
		assert.Empty(t, rec.Status)
	})

	t.Run("required fallback is a failure", func(t *testing.T) {
		rec := ExtractRequired(node, Paths(P("spec", "missing")), "k", "missing value")
		require.NotNil(t, rec)
		assert.Equal(t, StatusFailed, rec.Status)
		assert.Equal(t, "missing value", rec.Value)
	})

	t.Run("nil node and nil raw", func(t *testing.T) {
		assert.Nil(t, Extract(nil, Paths(P("spec")), "k", "fallback"))
		assert.Nil(t, Extract(&GraphNode{}, Paths(P("spec")), "k"))
	})
}

func TestAddProperty(t *testing.T) {
	records := AddProperty(nil, nil)
	assert.Empty(t, records)

	records = AddProperty(records, &DisplayRecord{Type: RecordProperty, LabelKey: "k", Value: "v"})
	assert.Len(t, records, 1)
}

func TestEvaluateJSONPath(t *testing.T) {
	cluster := map[string]any{
		"metadata": map[string]any{"name": "east"},
		"status": map[string]any{
			"conditions": []any{
				map[string]any{"type": "HubAcceptedManagedCluster", "status": "True"},
				map[string]any{"type": "ManagedClusterConditionAvailable", "status": "False"},
			},
			"capacity": map[string]any{"cpu": 8},
		},
	}

	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		{"simple field", ".metadata.name", "east"},
		{"braced", "{.metadata.name}", "east"},
		{"filtered array", clusterConditionAvailable, "False"},
		{"integer", ".status.capacity.cpu", "8"},
		{"missing field", ".status.capacity.memory", ""},
		{"invalid expression", ".status[", ""},
		{"empty expression", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateJSONPath(cluster, tt.expr))
		})
	}

	assert.Equal(t, "n/a", EvaluateJSONPathOrDefault(cluster, ".spec.missing", "n/a"))
	assert.Equal(t, "", EvaluateJSONPath(nil, ".metadata.name"))
}
