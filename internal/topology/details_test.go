package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRecord(records []DisplayRecord, labelKey string) *DisplayRecord {
	for i := range records {
		if records[i].LabelKey == labelKey {
			return &records[i]
		}
	}
	return nil
}

func indexOf(records []DisplayRecord, labelKey string) int {
	for i := range records {
		if records[i].LabelKey == labelKey {
			return i
		}
	}
	return -1
}

func boolPtr(b bool) *bool { return &b }

func TestBuildDetails_NilNode(t *testing.T) {
	records := BuildDetails(nil, nil, nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestBuildDetails_Deployment(t *testing.T) {
	node := &GraphNode{
		ID:          "member--deployment--web",
		Name:        "web",
		Type:        "deployment",
		ClusterName: "east",
		Specs: Specs{
			Raw: map[string]any{
				"apiVersion": "apps/v1",
				"kind":       "Deployment",
				"metadata":   map[string]any{"name": "web", "namespace": "shop"},
				"spec":       map[string]any{"replicas": 3},
			},
		},
	}

	records := BuildDetails(node, nil, ActiveFilters{})

	replicas := findRecord(records, "raw.spec.replicas")
	require.NotNil(t, replicas)
	assert.Equal(t, "3", replicas.Value)

	assert.Nil(t, findRecord(records, "raw.spec.metadata.label"))

	kind := findRecord(records, "resource.type")
	require.NotNil(t, kind)
	assert.Equal(t, "Deployment", kind.Value)

	ns := findRecord(records, "resource.namespace")
	require.NotNil(t, ns)
	assert.Equal(t, "shop", ns.Value)

	last := records[len(records)-1]
	assert.Equal(t, RecordLabel, last.Type)
	assert.Equal(t, "resource.labels", last.LabelKey)

	// no pods and no model records
	nopods := findRecord(records, "resource.deploy.nopods")
	require.NotNil(t, nopods)
	assert.Equal(t, StatusWarning, nopods.Status)
}

func TestBuildDetails_Order(t *testing.T) {
	node := &GraphNode{
		ID:   "member--deployment--web",
		Type: "deployment",
		Specs: Specs{Raw: map[string]any{
			"apiVersion": "apps/v1",
			"spec": map[string]any{
				"replicas": 2,
				"selector": map[string]any{"matchLabels": map[string]any{"app": "web"}},
			},
		}},
	}

	records := BuildDetails(node, nil, nil)

	assert.Equal(t, RecordSpacer, records[0].Type)
	assert.Equal(t, "prop.details.section", records[1].LabelKey)
	assert.Equal(t, RecordSpacer, records[2].Type)

	order := []string{
		"resource.type",
		"resource.api.version",
		"resource.namespace",
		"raw.spec.replicas",
		"raw.spec.selector",
		"resource.deploy.pods.statuses",
		"resource.labels",
	}
	prev := -1
	for _, key := range order {
		idx := indexOf(records, key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, prev, key)
		prev = idx
	}
	assert.Equal(t, "app=web", findRecord(records, "raw.spec.selector").Value)
}

func TestBuildDetails_Cluster(t *testing.T) {
	node := &GraphNode{
		ID:   "member--clusters--east",
		Type: TypeCluster,
		Specs: Specs{
			ClustersNames: []string{"east"},
			Clusters: []map[string]any{{
				"metadata": map[string]any{"name": "east"},
				"status": map[string]any{
					"conditions": []any{
						map[string]any{"type": "ManagedClusterConditionAvailable", "status": "True"},
					},
				},
			}},
		},
	}

	records := BuildDetails(node, nil, nil)

	section := indexOf(records, "prop.details.section.cluster")
	status := indexOf(records, "resource.status")
	require.GreaterOrEqual(t, section, 0)
	require.Greater(t, status, section)
	assert.Equal(t, StatusHealthy, records[status].Status)

	last := records[len(records)-1]
	assert.Equal(t, "resource.labels", last.LabelKey)
	assert.Nil(t, findRecord(records, "prop.details.section"))
}

func TestBuildDetails_Labels(t *testing.T) {
	node := &GraphNode{
		ID:     "c1",
		Type:   TypeCluster,
		Labels: []Label{{Name: "env", Value: "prod"}, {Name: "region", Value: "eu"}},
	}

	records := BuildDetails(node, nil, nil)

	require.GreaterOrEqual(t, len(records), 3)
	tail := records[len(records)-3:]
	assert.Equal(t, "resource.labels", tail[0].LabelKey)
	assert.Equal(t, DisplayRecord{Type: RecordSnippet, Value: "env = prod", Indent: true}, tail[1])
	assert.Equal(t, DisplayRecord{Type: RecordSnippet, Value: "region = eu", Indent: true}, tail[2])
}

func TestBuildDetails_Placement(t *testing.T) {
	node := &GraphNode{
		ID:    "p1",
		Type:  TypePlacement,
		Specs: Specs{Placements: []string{"east", "west"}},
	}

	records := BuildDetails(node, nil, nil)

	idx := indexOf(records, "resource.placement")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, DisplayRecord{Type: RecordSnippet, Value: "east"}, records[idx+1])
	assert.Equal(t, DisplayRecord{Type: RecordSnippet, Value: "west"}, records[idx+2])
}

func TestBuildDetails_Package(t *testing.T) {
	node := rawNode(TypePackage, map[string]any{"metadata": map[string]any{"name": "nginx-chart"}})

	records := BuildDetails(node, nil, nil)

	name := findRecord(records, "resource.name")
	require.NotNil(t, name)
	assert.Equal(t, "nginx-chart", name.Value)
	msg := findRecord(records, "resource.message")
	require.NotNil(t, msg)
	assert.Equal(t, helmNoDataMessage, msg.Value)
	assert.Nil(t, findRecord(records, "resource.type"))
}

func TestBuildDetails_ObservedLabels(t *testing.T) {
	node := &GraphNode{
		ID:   "d1",
		Type: "deployment",
		Specs: Specs{
			IsDesign: boolPtr(false),
			Models: map[string]map[string][]Instance{
				"deploymentModel": {
					"web-east": {{"label": "app=web; tier=front", "cluster": "east"}},
				},
			},
		},
	}

	rec := findRecord(BuildDetails(node, nil, nil), "raw.spec.metadata.label")
	require.NotNil(t, rec)
	assert.Equal(t, "app=web,tier=front", rec.Value)

	node.Specs.Models = nil
	rec = findRecord(BuildDetails(node, nil, nil), "raw.spec.metadata.label")
	require.NotNil(t, rec)
	assert.Equal(t, "No labels", rec.Value)

	node.Specs.IsDesign = boolPtr(true)
	node.Specs.Raw = map[string]any{"metadata": map[string]any{"labels": map[string]any{"app": "web"}}}
	rec = findRecord(BuildDetails(node, nil, nil), "raw.spec.metadata.label")
	require.NotNil(t, rec)
	assert.Equal(t, "app=web", rec.Value)
}

func TestBuildDetails_Placements(t *testing.T) {
	node := rawNode(TypePlacements, map[string]any{
		"spec": map[string]any{
			"clusterSelector": map[string]any{"matchLabels": map[string]any{"env": "prod"}},
			"clusterReplicas": 2,
		},
		"status": map[string]any{
			"decisions": []any{
				map[string]any{"clusterName": "east"},
				map[string]any{"clusterName": "west"},
			},
		},
	})

	records := BuildDetails(node, nil, nil)

	assert.Equal(t, "2", findRecord(records, "raw.status.decisionCls").Value)
	assert.Equal(t, "env=prod", findRecord(records, "raw.spec.clusterSelector").Value)
	placed := findRecord(records, "resource.rule.placed")
	require.NotNil(t, placed)
	assert.Equal(t, "east,west", placed.Value)
}

func TestBuildDetails_DeployableLinks(t *testing.T) {
	node := &GraphNode{
		ID:   "application--shop",
		Type: TypeApplication,
		Specs: Specs{
			IsDesign: boolPtr(true),
			Raw: map[string]any{
				"apiVersion": "argoproj.io/v1alpha1",
				"kind":       "Application",
				"metadata": map[string]any{
					"name":      "shop",
					"namespace": "argocd",
					"ownerReferences": []any{
						map[string]any{"kind": "ApplicationSet", "name": "shop-set", "apiVersion": "argoproj.io/v1alpha1"},
					},
				},
			},
		},
	}

	records := BuildDetails(node, nil, nil)

	require.Equal(t, RecordLink, records[0].Type)
	assert.Equal(t, "ApplicationSet", records[0].Link.Data.Kind)
	assert.Equal(t, "shop-set", records[0].Link.Data.Name)
	require.Equal(t, RecordLink, records[1].Type)
	assert.Equal(t, ActionShowYAML, records[1].Link.Data.Action)
	assert.Equal(t, "shop", records[1].Link.Data.Name)
	assert.Equal(t, localCluster, records[1].Link.Data.Cluster)
}

func TestBuildDetails_Idempotent(t *testing.T) {
	node := &GraphNode{
		ID:   "member--deployment--web--clusters--east,west",
		Type: "deployment",
		Specs: Specs{
			Raw: map[string]any{
				"metadata": map[string]any{
					"namespace":   "shop",
					"annotations": map[string]any{AnnotationGitBranch: "main"},
				},
				"spec": map[string]any{"replicas": 3},
			},
			PodStatusMap: map[string]PodStatus{"east": {Ready: 3, Desired: 3}},
			Models: map[string]map[string][]Instance{
				"podModel": {
					"web-1": {{"name": "web-1", "cluster": "east", "namespace": "shop", "status": "Running"}},
					"web-2": {{"name": "web-2", "cluster": "west", "namespace": "shop", "status": "CrashLoopBackOff"}},
				},
			},
		},
	}
	filters := ActiveFilters{FilterNamespace: {{Label: "shop"}}}

	first := BuildDetails(node, nil, filters)
	second := BuildDetails(node, nil, filters)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"replicas": 3}, node.Specs.Raw["spec"])
}

func TestKindName(t *testing.T) {
	tests := map[string]string{
		"deployment":            "Deployment",
		"deploymentconfig":      "DeploymentConfig",
		"imagestream":           "ImageStream",
		"serviceaccount":        "ServiceAccount",
		"replicationcontroller": "ReplicationController",
		"channel":               "Channel",
		"":                      "",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, KindName(in), in)
	}
}

func TestBuildDetails_LayoutType(t *testing.T) {
	node := &GraphNode{ID: "x", Type: "deployment", Layout: Layout{Type: "helmrelease"}}
	assert.Equal(t, "Helmrelease", findRecord(BuildDetails(node, nil, nil), "resource.type").Value)
}

func TestBuildDetails_NoConsecutiveSpacers(t *testing.T) {
	subscription := rawNode(TypeSubscription, map[string]any{
		"metadata": map[string]any{"name": "shop-sub", "namespace": "shop"},
	})
	subscription.Specs.Models = map[string]map[string][]Instance{
		"subscriptionModel": {
			"sub-east": {{"cluster": "east", "namespace": "shop", "status": "Subscribed"}},
			"sub-west": {{"cluster": "west", "namespace": "shop", "status": "Failed"}},
		},
	}

	deployment := rawNode("deployment", map[string]any{
		"metadata": map[string]any{"name": "web", "namespace": "shop"},
		"spec":     map[string]any{"replicas": 2},
	})
	deployment.Specs.PodStatusMap = map[string]PodStatus{"east": {Ready: 1, Desired: 2}}
	deployment.Specs.Models = map[string]map[string][]Instance{
		"deploymentModel": {"web-east": {{"cluster": "east", "namespace": "shop"}}},
		"podModel":        {"web-1": {{"name": "web-1", "cluster": "east", "namespace": "shop", "status": "Running"}}},
	}

	ingress := rawNode(TypeIngress, map[string]any{
		"kind": "Ingress",
		"spec": map[string]any{"rules": []any{map[string]any{"host": "shop.example.com"}}},
	})

	cluster := &GraphNode{
		ID:     "member--clusters--east",
		Type:   TypeCluster,
		Labels: []Label{{Name: "env", Value: "prod"}},
		Specs: Specs{
			ClustersNames: []string{"east"},
			Clusters:      []map[string]any{{"metadata": map[string]any{"name": "east"}}},
		},
	}

	tests := []struct {
		name string
		node *GraphNode
	}{
		{"deployment", deployment},
		{"configmap", rawNode("configmap", map[string]any{"metadata": map[string]any{"name": "cfg"}})},
		{"subscription", subscription},
		{"ingress", ingress},
		{"route", rawNode(TypeRoute, map[string]any{"spec": map[string]any{"host": "shop.apps.example.com"}})},
		{"cluster", cluster},
		{"package", rawNode(TypePackage, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := BuildDetails(tt.node, nil, nil)
			require.NotEmpty(t, records)
			for i := 1; i < len(records); i++ {
				assert.False(t, records[i].Type == RecordSpacer && records[i-1].Type == RecordSpacer,
					"spacers at %d and %d", i-1, i)
			}
		})
	}
}
