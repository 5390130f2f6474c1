package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintYAML(t *testing.T) {
	tests := []struct {
		name    string
		obj     map[string]any
		want    []string
		wantErr string
	}{
		{
			name: "typed manifest",
			obj: map[string]any{
				"apiVersion": "v1",
				"kind":       "Service",
				"metadata":   map[string]any{"name": "web", "namespace": "shop"},
				"spec":       map[string]any{"ports": []any{map[string]any{"port": int64(80)}}},
			},
			want: []string{"apiVersion: v1", "kind: Service", "  name: web", "  - port: 80"},
		},
		{
			name: "no kind falls back to plain yaml",
			obj:  map[string]any{"metadata": map[string]any{"name": "shop-chart"}},
			want: []string{"metadata:", "  name: shop-chart"},
		},
		{
			name:    "nil manifest",
			wantErr: "no manifest to print",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PrintYAML(tt.obj)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestPrintYAML_DoesNotMutateInput(t *testing.T) {
	obj := map[string]any{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata":   map[string]any{"name": "web"},
	}

	_, err := PrintYAML(obj)
	require.NoError(t, err)
	assert.Equal(t, "apps/v1", obj["apiVersion"])
	assert.Equal(t, "Deployment", obj["kind"])
	assert.Len(t, obj, 3)
}
