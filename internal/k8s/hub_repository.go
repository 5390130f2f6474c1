package k8s

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/renato0307/apptopo/internal/logging"
	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/viewstate"
)

// HubOptions selects the hub and the application to read from it
type HubOptions struct {
	Kubeconfig string
	Context    string
	Namespace  string
	Name       string
}

// HubRepository builds the application topology from the hub's
// Application, Subscription, PlacementRule and ManagedCluster objects
type HubRepository struct {
	client      client.Client
	namespace   string
	name        string
	description string
	log         *logging.Logger
}

// NewHubRepository connects to the hub selected by opts
func NewHubRepository(opts HubOptions) (*HubRepository, error) {
	cfg, err := RESTConfig(opts.Kubeconfig, opts.Context)
	if err != nil {
		return nil, err
	}

	c, err := client.New(cfg, client.Options{Scheme: scheme.Scheme})
	if err != nil {
		return nil, fmt.Errorf("error creating hub client: %w", err)
	}

	contextName, err := CurrentContext(opts.Kubeconfig, opts.Context)
	if err != nil {
		contextName = cfg.Host
	}
	return NewHubRepositoryWithClient(c, opts.Namespace, opts.Name, contextName), nil
}

// NewHubRepositoryWithClient wraps an existing client
func NewHubRepositoryWithClient(c client.Client, namespace, name, contextName string) *HubRepository {
	return &HubRepository{
		client:      c,
		namespace:   namespace,
		name:        name,
		description: fmt.Sprintf("hub %s app %s/%s", contextName, namespace, name),
		log:         logging.Component("hub").With("application", namespace+"/"+name),
	}
}

func newObject(gvk schema.GroupVersionKind) *unstructured.Unstructured {
	u := &unstructured.Unstructured{}
	u.SetGroupVersionKind(gvk)
	return u
}

func newList(gvk schema.GroupVersionKind) *unstructured.UnstructuredList {
	l := &unstructured.UnstructuredList{}
	l.SetGroupVersionKind(gvk.GroupVersion().WithKind(gvk.Kind + "List"))
	return l
}

// GetTopology walks Application -> Subscriptions -> PlacementRules ->
// ManagedClusters. Failures below the application are collected and
// returned together with the partial graph.
func (r *HubRepository) GetTopology(ctx context.Context) (topology.Graph, error) {
	timer := logging.Start("hub topology")
	graph := topology.Graph{Nodes: []topology.GraphNode{}, Links: []topology.Link{}}
	defer func() { logging.EndWithCount(timer, len(graph.Nodes)) }()

	app := newObject(ApplicationGVK)
	if err := r.client.Get(ctx, client.ObjectKey{Namespace: r.namespace, Name: r.name}, app); err != nil {
		return graph, fmt.Errorf("failed to get application %s/%s: %w", r.namespace, r.name, err)
	}

	appNode := objectNode("application--"+r.name, topology.TypeApplication, app)
	appNode.Specs.IsDesign = boolPtr(true)

	var errs []error
	subs, err := r.subscriptions(ctx, app)
	if err != nil {
		errs = append(errs, err)
	}

	var (
		subNodes    []topology.GraphNode
		ruleNodes   []topology.GraphNode
		links       []topology.Link
		seenRules   = map[string]string{}
		ruleTargets = map[string][]string{}
	)
	appModel := map[string][]topology.Instance{}

	for i := range subs {
		sub := &subs[i]
		node := objectNode(
			fmt.Sprintf("member--subscription--%s--%s", sub.GetNamespace(), sub.GetName()),
			topology.TypeSubscription, sub)
		node.Specs.IsDesign = boolPtr(true)

		model := subscriptionInstances(sub)
		if len(model) > 0 {
			node.Specs.Models = map[string]map[string][]topology.Instance{"subscriptionModel": model}
			for k, v := range model {
				appModel[k] = v
			}
		}

		channel, _, _ := unstructured.NestedString(sub.Object, "spec", "channel")
		if channel != "" {
			appNode.Specs.Channels = append(appNode.Specs.Channels,
				fmt.Sprintf("%s//%s/%s", channel, sub.GetNamespace(), sub.GetName()))
		}

		links = append(links, topology.Link{From: appNode.ID, To: node.ID, Type: "contains"})

		ruleName, _, _ := unstructured.NestedString(sub.Object, "spec", "placement", "placementRef", "name")
		if ruleName == "" {
			subNodes = append(subNodes, node)
			continue
		}
		key := sub.GetNamespace() + "/" + ruleName
		ruleID, ok := seenRules[key]
		if !ok {
			ruleNode, clusters, err := r.placementRule(ctx, sub.GetNamespace(), ruleName)
			if err != nil {
				errs = append(errs, err)
				subNodes = append(subNodes, node)
				continue
			}
			ruleID = ruleNode.ID
			seenRules[key] = ruleID
			ruleTargets[ruleID] = clusters
			ruleNodes = append(ruleNodes, ruleNode)
		}
		node.Specs.Placements = append(node.Specs.Placements, ruleName)
		subNodes = append(subNodes, node)
		links = append(links, topology.Link{From: node.ID, To: ruleID, Type: "uses"})
	}

	if len(appModel) > 0 {
		appNode.Specs.Models = map[string]map[string][]topology.Instance{"subscriptionModel": appModel}
	}

	graph.Nodes = append(graph.Nodes, appNode)
	graph.Nodes = append(graph.Nodes, subNodes...)
	graph.Nodes = append(graph.Nodes, ruleNodes...)

	clusterNode, err := r.clusterNode(ctx, ruleTargets)
	if err != nil {
		errs = append(errs, err)
	}
	if clusterNode != nil {
		graph.Nodes = append(graph.Nodes, *clusterNode)
		for _, rule := range ruleNodes {
			links = append(links, topology.Link{From: rule.ID, To: clusterNode.ID, Type: "deploys to"})
		}
	}
	graph.Links = links

	if len(errs) > 0 {
		err := errors.Join(errs...)
		r.log.Warn("partial topology", "nodes", len(graph.Nodes), "error", err)
		return graph, err
	}
	return graph, nil
}

// subscriptions lists the subscriptions matched by the application selector
func (r *HubRepository) subscriptions(ctx context.Context, app *unstructured.Unstructured) ([]unstructured.Unstructured, error) {
	selector := labels.Everything()
	if raw, ok, _ := unstructured.NestedMap(app.Object, "spec", "selector"); ok {
		var ls metav1.LabelSelector
		if err := runtime.DefaultUnstructuredConverter.FromUnstructured(raw, &ls); err != nil {
			return nil, fmt.Errorf("invalid application selector: %w", err)
		}
		s, err := metav1.LabelSelectorAsSelector(&ls)
		if err != nil {
			return nil, fmt.Errorf("invalid application selector: %w", err)
		}
		selector = s
	}

	list := newList(SubscriptionGVK)
	if err := r.client.List(ctx, list,
		client.InNamespace(app.GetNamespace()),
		client.MatchingLabelsSelector{Selector: selector},
	); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	items := list.Items
	sort.Slice(items, func(i, j int) bool { return items[i].GetName() < items[j].GetName() })
	return items, nil
}

// subscriptionInstances turns status.statuses into per-cluster instances.
// Each cluster entry reports package phases; a failed package wins.
func subscriptionInstances(sub *unstructured.Unstructured) map[string][]topology.Instance {
	statuses, ok, _ := unstructured.NestedMap(sub.Object, "status", "statuses")
	if !ok {
		return nil
	}

	model := map[string][]topology.Instance{}
	clusters := make([]string, 0, len(statuses))
	for cluster := range statuses {
		clusters = append(clusters, cluster)
	}
	sort.Strings(clusters)

	for _, cluster := range clusters {
		entry, _ := statuses[cluster].(map[string]any)
		phase := clusterPhase(entry)
		inst := topology.Instance{
			"name":      sub.GetName(),
			"namespace": sub.GetNamespace(),
			"cluster":   cluster,
		}
		if phase != "" {
			inst["status"] = phase
		}
		model[sub.GetName()+"-"+cluster] = []topology.Instance{inst}
	}
	return model
}

func clusterPhase(entry map[string]any) string {
	packages, ok, _ := unstructured.NestedMap(entry, "packages")
	if !ok {
		phase, _, _ := unstructured.NestedString(entry, "phase")
		return phase
	}
	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)

	phase := ""
	for _, name := range names {
		pkg, _ := packages[name].(map[string]any)
		p, _, _ := unstructured.NestedString(pkg, "phase")
		if strings.Contains(p, "Fail") {
			return p
		}
		if phase == "" {
			phase = p
		}
	}
	return phase
}

// placementRule reads a rule and returns its node plus the decided clusters
func (r *HubRepository) placementRule(ctx context.Context, namespace, name string) (topology.GraphNode, []string, error) {
	rule := newObject(PlacementRuleGVK)
	if err := r.client.Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, rule); err != nil {
		return topology.GraphNode{}, nil, fmt.Errorf("failed to get placement rule %s/%s: %w", namespace, name, err)
	}

	node := objectNode(fmt.Sprintf("member--rules--%s--%s", namespace, name), topology.TypePlacements, rule)
	node.Specs.IsDesign = boolPtr(true)

	decisions, _, _ := unstructured.NestedSlice(rule.Object, "status", "decisions")
	var clusters []string
	for _, d := range decisions {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if cluster, _, _ := unstructured.NestedString(m, "clusterName"); cluster != "" {
			clusters = append(clusters, cluster)
		}
	}
	return node, clusters, nil
}

// clusterNode merges every rule's decisions into one cluster node
func (r *HubRepository) clusterNode(ctx context.Context, ruleTargets map[string][]string) (*topology.GraphNode, error) {
	seen := map[string]bool{}
	var names []string
	for _, clusters := range ruleTargets {
		for _, c := range clusters {
			if !seen[c] {
				seen[c] = true
				names = append(names, c)
			}
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)

	node := &topology.GraphNode{
		ID:   "member--clusters--" + strings.Join(names, ","),
		Name: strings.Join(names, ", "),
		Type: topology.TypeCluster,
		Specs: topology.Specs{
			ClustersNames: names,
		},
	}

	var errs []error
	for _, name := range names {
		mc := newObject(ManagedClusterGVK)
		if err := r.client.Get(ctx, client.ObjectKey{Name: name}, mc); err != nil {
			errs = append(errs, fmt.Errorf("failed to get managed cluster %s: %w", name, err))
			continue
		}
		node.Specs.Clusters = append(node.Specs.Clusters, mc.Object)
	}
	return node, errors.Join(errs...)
}

func objectNode(id, nodeType string, obj *unstructured.Unstructured) topology.GraphNode {
	node := topology.GraphNode{
		ID:        id,
		Name:      obj.GetName(),
		Namespace: obj.GetNamespace(),
		Type:      nodeType,
		Specs:     topology.Specs{Raw: obj.Object},
	}
	objLabels := obj.GetLabels()
	keys := make([]string, 0, len(objLabels))
	for k := range objLabels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		node.Labels = append(node.Labels, topology.Label{Name: k, Value: objLabels[k]})
	}
	return node
}

// GetFilterOptions lists managed clusters and namespaces from the hub and
// takes labels and types from the current topology
func (r *HubRepository) GetFilterOptions(ctx context.Context) (viewstate.FiltersSuccessMsg, error) {
	var errs []error

	graph, err := r.GetTopology(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	msg := FilterOptions(graph)

	clusters := newList(ManagedClusterGVK)
	if err := r.client.List(ctx, clusters); err != nil {
		errs = append(errs, fmt.Errorf("failed to list managed clusters: %w", err))
	} else {
		msg.Clusters = msg.Clusters[:0]
		for _, mc := range clusters.Items {
			msg.Clusters = append(msg.Clusters, viewstate.ClusterInfo{ClusterName: mc.GetName(), Labels: mc.GetLabels()})
		}
	}

	var namespaces corev1.NamespaceList
	if err := r.client.List(ctx, &namespaces); err != nil {
		errs = append(errs, fmt.Errorf("failed to list namespaces: %w", err))
	} else {
		msg.Namespaces = msg.Namespaces[:0]
		for _, ns := range namespaces.Items {
			msg.Namespaces = append(msg.Namespaces, viewstate.NamespaceInfo{Name: ns.Name})
		}
	}

	return msg, errors.Join(errs...)
}

// GetResourceYAML fetches a hub object. Objects on managed clusters are not
// reachable through the hub API.
func (r *HubRepository) GetResourceYAML(ctx context.Context, ref topology.LinkData) (string, error) {
	if ref.Cluster != "" && ref.Cluster != HubCluster {
		return "", fmt.Errorf("%s %s lives on managed cluster %s and is not reachable from the hub", ref.Kind, ref.Name, ref.Cluster)
	}
	gv, err := schema.ParseGroupVersion(ref.APIVersion)
	if err != nil {
		return "", fmt.Errorf("invalid apiVersion %q: %w", ref.APIVersion, err)
	}

	obj := newObject(gv.WithKind(ref.Kind))
	if err := r.client.Get(ctx, client.ObjectKey{Namespace: ref.Namespace, Name: ref.Name}, obj); err != nil {
		return "", fmt.Errorf("failed to get %s %s: %w", ref.Kind, ref.Name, err)
	}
	unstructured.RemoveNestedField(obj.Object, "metadata", "managedFields")
	return PrintYAML(obj.Object)
}

func (r *HubRepository) Describe() string { return r.description }

func (r *HubRepository) Close() {}
