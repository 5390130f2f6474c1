package k8s

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/apptopo/internal/topology"
)

const graphYAML = `
nodes:
  - id: application--demo
    name: demo
    namespace: demo
    type: application
    specs:
      isDesign: true
      raw:
        apiVersion: app.k8s.io/v1beta1
        kind: Application
        metadata:
          name: demo
          namespace: demo
  - id: member--deployment--api
    name: api
    namespace: demo
    type: deployment
    labels:
      - name: app
        value: api
    specs:
      raw:
        apiVersion: apps/v1
        kind: Deployment
        metadata:
          name: api
          namespace: demo
      deploymentModel:
        api-east:
          - name: api
            namespace: demo-east
            cluster: east
links:
  - from: application--demo
    to: member--deployment--api
    type: contains
`

func TestParseGraph(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantErr   string
	}{
		{name: "yaml document", input: graphYAML, wantNodes: 2},
		{
			name:      "json document",
			input:     `{"nodes":[{"id":"a","type":"pod","specs":{}}],"links":[]}`,
			wantNodes: 1,
		},
		{
			name:      "dangling link is kept",
			input:     `{"nodes":[{"id":"a","type":"pod","specs":{}}],"links":[{"from":"a","to":"b"}]}`,
			wantNodes: 1,
		},
		{
			name:    "missing id",
			input:   `{"nodes":[{"type":"pod","specs":{}}]}`,
			wantErr: "nodes[0] has no id",
		},
		{
			name:    "duplicate id",
			input:   `{"nodes":[{"id":"a","type":"pod","specs":{}},{"id":"a","type":"pod","specs":{}}]}`,
			wantErr: `duplicate node id "a"`,
		},
		{
			name:    "not a graph",
			input:   `nodes: [`,
			wantErr: "parsing graph",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph, err := ParseGraph([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, graph.Nodes, tt.wantNodes)
		})
	}
}

func TestParseGraph_Models(t *testing.T) {
	graph, err := ParseGraph([]byte(graphYAML))
	require.NoError(t, err)

	deployment := graph.Nodes[1]
	model := deployment.Specs.Model("deployment")
	require.Contains(t, model, "api-east")
	assert.Equal(t, "east", model["api-east"][0].Cluster())
	assert.Equal(t, []topology.Label{{Name: "app", Value: "api"}}, deployment.Labels)
}

func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileRepository(t *testing.T) {
	path := writeGraphFile(t, graphYAML)
	repo := NewFileRepository(path)
	defer repo.Close()

	assert.Equal(t, "file "+path, repo.Describe())

	graph, err := repo.GetTopology(context.Background())
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 2)
	assert.Len(t, graph.Links, 1)

	out, err := repo.GetResourceYAML(context.Background(), topology.LinkData{
		Kind: "Deployment", Name: "api", Namespace: "demo",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "kind: Deployment")
	assert.Contains(t, out, "name: api")

	_, err = repo.GetResourceYAML(context.Background(), topology.LinkData{Kind: "Service", Name: "api"})
	assert.ErrorContains(t, err, "not found in graph")
}

func TestFileRepository_Reloads(t *testing.T) {
	path := writeGraphFile(t, `{"nodes":[{"id":"a","type":"pod","specs":{}}]}`)
	repo := NewFileRepository(path)

	graph, err := repo.GetTopology(context.Background())
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 1)

	require.NoError(t, os.WriteFile(path, []byte(graphYAML), 0o644))
	graph, err = repo.GetTopology(context.Background())
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 2)
}

func TestFileRepository_MissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := repo.GetTopology(context.Background())
	assert.ErrorContains(t, err, "reading graph file")
}

func TestGraphRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDummyRepository().GetTopology(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindManifest(t *testing.T) {
	graph := SampleGraph()

	tests := []struct {
		name   string
		ref    topology.LinkData
		wantOK bool
	}{
		{"by kind and name", topology.LinkData{Kind: "Route", Name: "web"}, true},
		{"matching namespace", topology.LinkData{Kind: "Route", Name: "web", Namespace: "shop"}, true},
		{"other namespace", topology.LinkData{Kind: "Route", Name: "web", Namespace: "prod"}, false},
		{"unknown kind", topology.LinkData{Kind: "ConfigMap", Name: "web"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest, ok := FindManifest(graph, tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.ref.Kind, manifest["kind"])
			}
		})
	}
}

func TestFilterOptions_SampleGraph(t *testing.T) {
	msg := FilterOptions(SampleGraph())

	require.Len(t, msg.Clusters, 2)
	assert.Equal(t, "east", msg.Clusters[0].ClusterName)
	assert.Equal(t, "eu-west-1", msg.Clusters[0].Labels["region"])
	assert.Equal(t, "west", msg.Clusters[1].ClusterName)

	require.Len(t, msg.Namespaces, 1)
	assert.Equal(t, "shop", msg.Namespaces[0].Name)

	assert.Equal(t, []string{
		"application", "subscription", "placements", "cluster", "deployment",
		"service", "route", "ingress", "persistentvolumeclaim", "package",
	}, msg.Types)
	assert.NotEmpty(t, msg.Labels)
}

func TestSampleGraph_BuildsDetails(t *testing.T) {
	graph := SampleGraph()
	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		t.Run(node.ID, func(t *testing.T) {
			records := topology.BuildDetails(node, nil, nil)
			assert.NotEmpty(t, records)
		})
	}
}

func TestDummyRepository_GetResourceYAML(t *testing.T) {
	repo := NewDummyRepository()
	assert.Equal(t, "sample", repo.Describe())

	out, err := repo.GetResourceYAML(context.Background(), topology.LinkData{
		Kind: "Deployment", Name: "web", Namespace: "shop", Cluster: "east",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "apiVersion: apps/v1")
	assert.Contains(t, out, "replicas: 3")
}
