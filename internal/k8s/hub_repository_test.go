package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/renato0307/apptopo/internal/topology"
)

func hubObject(gvk schema.GroupVersionKind, namespace, name string, labels map[string]any, fields map[string]any) *unstructured.Unstructured {
	metadata := map[string]any{"name": name}
	if namespace != "" {
		metadata["namespace"] = namespace
	}
	if labels != nil {
		metadata["labels"] = labels
	}
	obj := map[string]any{
		"apiVersion": gvk.GroupVersion().String(),
		"kind":       gvk.Kind,
		"metadata":   metadata,
	}
	for k, v := range fields {
		obj[k] = v
	}
	return &unstructured.Unstructured{Object: obj}
}

func newFakeHub(t *testing.T, objs ...client.Object) *HubRepository {
	t.Helper()

	s := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(s))

	mapper := meta.NewDefaultRESTMapper(nil)
	mapper.Add(ApplicationGVK, meta.RESTScopeNamespace)
	mapper.Add(SubscriptionGVK, meta.RESTScopeNamespace)
	mapper.Add(PlacementRuleGVK, meta.RESTScopeNamespace)
	mapper.Add(ManagedClusterGVK, meta.RESTScopeRoot)
	mapper.Add(corev1.SchemeGroupVersion.WithKind("Namespace"), meta.RESTScopeRoot)

	c := fake.NewClientBuilder().
		WithScheme(s).
		WithRESTMapper(mapper).
		WithObjects(objs...).
		Build()
	return NewHubRepositoryWithClient(c, "shop", "shop", "test-hub")
}

func shopHubObjects() []client.Object {
	app := hubObject(ApplicationGVK, "shop", "shop", nil, map[string]any{
		"spec": map[string]any{
			"selector": map[string]any{"matchLabels": map[string]any{"app": "shop"}},
		},
	})
	sub := hubObject(SubscriptionGVK, "shop", "shop-sub", map[string]any{"app": "shop"}, map[string]any{
		"spec": map[string]any{
			"channel": "shop/ch",
			"placement": map[string]any{
				"placementRef": map[string]any{"kind": "PlacementRule", "name": "shop-rule"},
			},
		},
		"status": map[string]any{
			"statuses": map[string]any{
				"east": map[string]any{"packages": map[string]any{
					"web": map[string]any{"phase": "Subscribed"},
				}},
				"west": map[string]any{"packages": map[string]any{
					"db":  map[string]any{"phase": "Failed"},
					"web": map[string]any{"phase": "Subscribed"},
				}},
			},
		},
	})
	other := hubObject(SubscriptionGVK, "shop", "other-sub", map[string]any{"app": "other"}, nil)
	rule := hubObject(PlacementRuleGVK, "shop", "shop-rule", nil, map[string]any{
		"status": map[string]any{
			"decisions": []any{
				map[string]any{"clusterName": "east", "clusterNamespace": "east"},
				map[string]any{"clusterName": "west", "clusterNamespace": "west"},
			},
		},
	})
	east := hubObject(ManagedClusterGVK, "", "east", map[string]any{"env": "prod"}, nil)
	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "shop"}}

	return []client.Object{app, sub, other, rule, east, ns}
}

func nodeIDs(graph topology.Graph) []string {
	ids := make([]string, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestHubRepository_GetTopology(t *testing.T) {
	repo := newFakeHub(t, shopHubObjects()...)

	graph, err := repo.GetTopology(context.Background())

	// cluster west has no ManagedCluster object
	require.Error(t, err)
	assert.Contains(t, err.Error(), "managed cluster west")

	assert.Equal(t, []string{
		"application--shop",
		"member--subscription--shop--shop-sub",
		"member--rules--shop--shop-rule",
		"member--clusters--east,west",
	}, nodeIDs(graph))
	assert.Len(t, graph.Links, 3)

	app := graph.Nodes[0]
	assert.Equal(t, []string{"shop/ch//shop/shop-sub"}, app.Specs.Channels)
	require.NotNil(t, app.Specs.IsDesign)
	assert.True(t, *app.Specs.IsDesign)

	sub := graph.Nodes[1]
	assert.Equal(t, []topology.Label{{Name: "app", Value: "shop"}}, sub.Labels)
	assert.Equal(t, []string{"shop-rule"}, sub.Specs.Placements)
	model := sub.Specs.Model("subscription")
	require.Len(t, model, 2)
	assert.Equal(t, "Subscribed", model["shop-sub-east"][0].Status())
	assert.Equal(t, "Failed", model["shop-sub-west"][0].Status())

	cluster := graph.Nodes[3]
	assert.Equal(t, []string{"east", "west"}, cluster.Specs.ClustersNames)
	assert.Len(t, cluster.Specs.Clusters, 1)
}

func TestHubRepository_GetTopology_MissingApplication(t *testing.T) {
	repo := newFakeHub(t)

	graph, err := repo.GetTopology(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get application shop/shop")
	assert.Empty(t, graph.Nodes)
}

func TestHubRepository_GetFilterOptions(t *testing.T) {
	repo := newFakeHub(t, shopHubObjects()...)

	msg, err := repo.GetFilterOptions(context.Background())

	// the partial topology error is passed through
	assert.Error(t, err)
	require.Len(t, msg.Clusters, 1)
	assert.Equal(t, "east", msg.Clusters[0].ClusterName)
	assert.Equal(t, map[string]string{"env": "prod"}, msg.Clusters[0].Labels)
	require.Len(t, msg.Namespaces, 1)
	assert.Equal(t, "shop", msg.Namespaces[0].Name)
	assert.Contains(t, msg.Types, topology.TypePlacements)
}

func TestHubRepository_GetResourceYAML(t *testing.T) {
	repo := newFakeHub(t, shopHubObjects()...)

	tests := []struct {
		name    string
		ref     topology.LinkData
		want    []string
		wantErr string
	}{
		{
			name: "hub object",
			ref: topology.LinkData{
				Kind: "PlacementRule", APIVersion: "apps.open-cluster-management.io/v1",
				Name: "shop-rule", Namespace: "shop", Cluster: HubCluster,
			},
			want: []string{"kind: PlacementRule", "name: shop-rule"},
		},
		{
			name: "managed cluster object",
			ref: topology.LinkData{
				Kind: "Deployment", APIVersion: "apps/v1",
				Name: "web", Namespace: "shop", Cluster: "east",
			},
			wantErr: "not reachable from the hub",
		},
		{
			name: "not found",
			ref: topology.LinkData{
				Kind: "PlacementRule", APIVersion: "apps.open-cluster-management.io/v1",
				Name: "missing", Namespace: "shop",
			},
			wantErr: "failed to get PlacementRule missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := repo.GetResourceYAML(context.Background(), tt.ref)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestHubRepository_Describe(t *testing.T) {
	repo := newFakeHub(t)
	assert.Equal(t, "hub test-hub app shop/shop", repo.Describe())
}

func TestClusterPhase(t *testing.T) {
	tests := []struct {
		name  string
		entry map[string]any
		want  string
	}{
		{"plain phase", map[string]any{"phase": "Propagated"}, "Propagated"},
		{"first package", map[string]any{"packages": map[string]any{
			"a": map[string]any{"phase": "Subscribed"},
			"b": map[string]any{"phase": "Deployed"},
		}}, "Subscribed"},
		{"failure wins", map[string]any{"packages": map[string]any{
			"a": map[string]any{"phase": "Subscribed"},
			"b": map[string]any{"phase": "PropagationFailed"},
		}}, "PropagationFailed"},
		{"empty", map[string]any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clusterPhase(tt.entry))
		})
	}
}
