package k8s

import (
	"github.com/renato0307/apptopo/internal/topology"
)

// NewDummyRepository serves a built-in two-cluster sample application
func NewDummyRepository() *GraphRepository {
	return &GraphRepository{
		load:        func() (topology.Graph, error) { return SampleGraph(), nil },
		description: "sample",
	}
}

func boolPtr(b bool) *bool { return &b }

// SampleGraph is the "shop" application deployed on clusters east and west
func SampleGraph() topology.Graph {
	const (
		ns       = "shop"
		clusters = "--clusters--east,west--"
	)

	app := topology.GraphNode{
		ID:        "application--shop",
		Name:      "shop",
		Namespace: ns,
		Type:      topology.TypeApplication,
		Labels:    []topology.Label{{Name: "app", Value: "shop"}},
		Specs: topology.Specs{
			IsDesign: boolPtr(true),
			Pulse:    topology.PulseYellow,
			Channels: []string{"shop/shop-channel//shop/shop-subscription"},
			Raw: map[string]any{
				"apiVersion": "app.k8s.io/v1beta1",
				"kind":       "Application",
				"metadata":   map[string]any{"name": "shop", "namespace": ns},
				"spec": map[string]any{
					"componentKinds": []any{
						map[string]any{"group": "apps.open-cluster-management.io", "kind": "Subscription"},
					},
					"selector": map[string]any{
						"matchExpressions": []any{
							map[string]any{"key": "app", "operator": "In", "values": []any{"shop"}},
						},
					},
				},
			},
			Models: map[string]map[string][]topology.Instance{
				"subscriptionModel": {
					"shop-subscription-east": {{"name": "shop-subscription", "namespace": ns, "cluster": "east", "status": "Subscribed"}},
					"shop-subscription-west": {{"name": "shop-subscription", "namespace": ns, "cluster": "west", "status": "Subscribed"}},
				},
			},
		},
	}

	subscription := topology.GraphNode{
		ID:        "member--subscription--shop--shop-subscription",
		Name:      "shop-subscription",
		Namespace: ns,
		Type:      topology.TypeSubscription,
		Labels:    []topology.Label{{Name: "app", Value: "shop"}},
		Specs: topology.Specs{
			IsDesign: boolPtr(true),
			Pulse:    topology.PulseGreen,
			Raw: map[string]any{
				"apiVersion": "apps.open-cluster-management.io/v1",
				"kind":       "Subscription",
				"metadata": map[string]any{
					"name":      "shop-subscription",
					"namespace": ns,
					"labels":    map[string]any{"app": "shop"},
					"annotations": map[string]any{
						topology.AnnotationGitBranch:     "main",
						topology.AnnotationGithubBranch:  "legacy",
						topology.AnnotationGitPath:       "deploy/shop",
						topology.AnnotationReconcileRate: "medium",
					},
				},
				"spec": map[string]any{
					"channel": "shop/shop-channel",
					"placement": map[string]any{
						"placementRef": map[string]any{"kind": "PlacementRule", "name": "shop-placement"},
					},
				},
			},
			Models: map[string]map[string][]topology.Instance{
				"subscriptionModel": {
					"shop-subscription-east": {{"name": "shop-subscription", "namespace": ns, "cluster": "east", "status": "Subscribed"}},
					"shop-subscription-west": {{"name": "shop-subscription", "namespace": ns, "cluster": "west", "status": "Subscribed"}},
				},
			},
		},
	}

	rule := topology.GraphNode{
		ID:        "member--rules--shop--shop-placement",
		Name:      "shop-placement",
		Namespace: ns,
		Type:      topology.TypePlacements,
		Specs: topology.Specs{
			IsDesign: boolPtr(true),
			Raw: map[string]any{
				"apiVersion": "apps.open-cluster-management.io/v1",
				"kind":       "PlacementRule",
				"metadata":   map[string]any{"name": "shop-placement", "namespace": ns},
				"spec": map[string]any{
					"clusterSelector": map[string]any{"matchLabels": map[string]any{"env": "prod"}},
					"clusterReplicas": int64(2),
				},
				"status": map[string]any{
					"decisions": []any{
						map[string]any{"clusterName": "east", "clusterNamespace": "east"},
						map[string]any{"clusterName": "west", "clusterNamespace": "west"},
					},
				},
			},
		},
	}

	cluster := topology.GraphNode{
		ID:   "member--clusters--east,west",
		Name: "2 clusters",
		Type: topology.TypeCluster,
		Specs: topology.Specs{
			ClustersNames: []string{"east", "west"},
			Clusters: []map[string]any{
				sampleCluster("east", "True", "eu-west-1", "https://console-openshift-console.apps.east.example.com"),
				sampleCluster("west", "False", "us-west-2", ""),
			},
		},
	}

	deployment := topology.GraphNode{
		ID:          "member--deployment--web" + clusters,
		Name:        "web",
		Namespace:   ns,
		Type:        "deployment",
		ClusterName: "east,west",
		Labels:      []topology.Label{{Name: "app", Value: "web"}, {Name: "tier", Value: "front"}},
		Specs: topology.Specs{
			IsDesign:      boolPtr(false),
			Pulse:         topology.PulseYellow,
			ClustersNames: []string{"east", "west"},
			Raw: map[string]any{
				"apiVersion": "apps/v1",
				"kind":       "Deployment",
				"metadata": map[string]any{
					"name":      "web",
					"namespace": ns,
					"labels":    map[string]any{"app": "web", "tier": "front"},
				},
				"spec": map[string]any{
					"replicas": int64(3),
					"selector": map[string]any{"matchLabels": map[string]any{"app": "web"}},
				},
			},
			PodStatusMap: map[string]topology.PodStatus{
				"east": {Available: 3, Current: 3, Desired: 3, Ready: 3},
				"west": {Available: 1, Current: 3, Desired: 3, Ready: 1},
			},
			Models: map[string]map[string][]topology.Instance{
				"deploymentModel": {
					"web-east": {{"name": "web", "namespace": ns, "cluster": "east", "label": "app=web; tier=front", "ready": int64(3), "desired": int64(3)}},
					"web-west": {{"name": "web", "namespace": ns, "cluster": "west", "label": "app=web; tier=front", "ready": int64(1), "desired": int64(3)}},
				},
				"podModel": {
					"web-7d9f-a1": {samplePod("web-7d9f-a1", "east", "Running", 0, "10.0.1.4", "10.128.2.17")},
					"web-7d9f-b2": {samplePod("web-7d9f-b2", "east", "Running", 1, "10.0.1.5", "10.128.3.9")},
					"web-7d9f-c3": {samplePod("web-7d9f-c3", "east", "Running", 0, "10.0.1.6", "10.128.4.2")},
					"web-7d9f-d4": {samplePod("web-7d9f-d4", "west", "Running", 0, "10.1.1.4", "10.129.2.11")},
					"web-7d9f-e5": {samplePod("web-7d9f-e5", "west", "CrashLoopBackOff", 14, "10.1.1.5", "10.129.2.12")},
					"web-7d9f-f6": {samplePod("web-7d9f-f6", "west", "Pending", 0, "", "")},
				},
			},
		},
	}

	service := topology.GraphNode{
		ID:        "member--service--web" + clusters,
		Name:      "web",
		Namespace: ns,
		Type:      "service",
		Specs: topology.Specs{
			ClustersNames: []string{"east", "west"},
			Raw: map[string]any{
				"apiVersion": "v1",
				"kind":       "Service",
				"metadata":   map[string]any{"name": "web", "namespace": ns},
				"spec": map[string]any{
					"selector": map[string]any{"app": "web"},
					"ports": []any{
						map[string]any{"port": int64(80), "targetPort": int64(8080), "protocol": "TCP"},
					},
				},
			},
			Models: map[string]map[string][]topology.Instance{
				"serviceModel": {
					"web-east": {{"name": "web", "namespace": ns, "cluster": "east"}},
				},
			},
		},
	}

	route := topology.GraphNode{
		ID:        "member--route--web" + clusters,
		Name:      "web",
		Namespace: ns,
		Type:      topology.TypeRoute,
		Specs: topology.Specs{
			ClustersNames: []string{"east", "west"},
			Raw: map[string]any{
				"apiVersion": "route.openshift.io/v1",
				"kind":       "Route",
				"metadata":   map[string]any{"name": "web", "namespace": ns},
				"spec": map[string]any{
					"host": "shop.apps.east.example.com",
					"to":   map[string]any{"kind": "Service", "name": "web"},
					"tls":  map[string]any{"termination": "edge"},
				},
			},
			Models: map[string]map[string][]topology.Instance{
				"routeModel": {
					"web-east": {{"name": "web", "namespace": ns, "cluster": "east", "host": "shop.apps.east.example.com"}},
					"web-west": {{"name": "web", "namespace": ns, "cluster": "west", "host": "shop.apps.west.example.com"}},
				},
			},
		},
	}

	ingress := topology.GraphNode{
		ID:        "member--ingress--web" + clusters,
		Name:      "web",
		Namespace: ns,
		Type:      topology.TypeIngress,
		Specs: topology.Specs{
			ClustersNames: []string{"east", "west"},
			Raw: map[string]any{
				"apiVersion": "networking.k8s.io/v1",
				"kind":       "Ingress",
				"metadata":   map[string]any{"name": "web", "namespace": ns},
				"spec": map[string]any{
					"rules": []any{
						map[string]any{
							"host": "shop.example.com",
							"http": map[string]any{"paths": []any{
								map[string]any{
									"path": "/",
									"backend": map[string]any{"service": map[string]any{
										"name": "web",
										"port": map[string]any{"number": int64(80)},
									}},
								},
							}},
						},
					},
				},
			},
		},
	}

	claim := topology.GraphNode{
		ID:        "member--persistentvolumeclaim--data" + clusters,
		Name:      "data",
		Namespace: ns,
		Type:      "persistentvolumeclaim",
		Specs: topology.Specs{
			Pulse:         topology.PulseOrange,
			ClustersNames: []string{"east", "west"},
			Raw: map[string]any{
				"apiVersion": "v1",
				"kind":       "PersistentVolumeClaim",
				"metadata":   map[string]any{"name": "data", "namespace": ns},
				"spec": map[string]any{
					"accessModes": []any{"ReadWriteOnce"},
				},
			},
		},
	}

	chart := topology.GraphNode{
		ID:   "member--package--shop-chart",
		Name: "shop-chart",
		Type: topology.TypePackage,
		Specs: topology.Specs{
			Raw: map[string]any{
				"metadata": map[string]any{"name": "shop-chart"},
			},
		},
	}

	return topology.Graph{
		Nodes: []topology.GraphNode{app, subscription, rule, cluster, deployment, service, route, ingress, claim, chart},
		Links: []topology.Link{
			{From: app.ID, To: subscription.ID, Type: "contains"},
			{From: subscription.ID, To: rule.ID, Type: "uses"},
			{From: rule.ID, To: cluster.ID, Type: "deploys to"},
			{From: cluster.ID, To: deployment.ID, Type: "deploys"},
			{From: cluster.ID, To: service.ID, Type: "deploys"},
			{From: cluster.ID, To: route.ID, Type: "deploys"},
			{From: cluster.ID, To: ingress.ID, Type: "deploys"},
			{From: cluster.ID, To: claim.ID, Type: "deploys"},
			{From: subscription.ID, To: chart.ID, Type: "contains"},
		},
	}
}

func sampleCluster(name, available, region, console string) map[string]any {
	status := map[string]any{
		"conditions": []any{
			map[string]any{"type": "ManagedClusterConditionAvailable", "status": available},
		},
		"capacity": map[string]any{"cpu": "24", "memory": "96Gi"},
	}
	if console != "" {
		status["clusterClaims"] = []any{
			map[string]any{"name": "consoleurl.cluster.open-cluster-management.io", "value": console},
		}
	}
	return map[string]any{
		"apiVersion": "cluster.open-cluster-management.io/v1",
		"kind":       "ManagedCluster",
		"metadata": map[string]any{
			"name":   name,
			"labels": map[string]any{"env": "prod", "region": region},
		},
		"status": status,
	}
}

func samplePod(name, cluster, status string, restarts int64, hostIP, podIP string) topology.Instance {
	pod := topology.Instance{
		"name":      name,
		"namespace": "shop",
		"cluster":   cluster,
		"status":    status,
		"restarts":  restarts,
		"label":     "app=web; tier=front",
	}
	if hostIP != "" {
		pod["hostIP"] = hostIP
		pod["podIP"] = podIP
		pod["startedAt"] = "2026-10-18T08:12:00Z"
	}
	return pod
}
