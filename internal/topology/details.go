package topology

import (
	"strconv"
	"strings"
)

// Camel-case fragments capitalised by KindName
var kindFragments = []string{"stream", "channel", "source", "definition", "config", "account", "controller"}

// KindName turns a lowercase node type into its Kubernetes kind spelling,
// e.g. deploymentconfig -> DeploymentConfig
func KindName(kind string) string {
	if kind == "" {
		return ""
	}
	name := strings.ToUpper(kind[:1]) + kind[1:]
	for _, frag := range kindFragments {
		name = strings.ReplaceAll(name, frag, strings.ToUpper(frag[:1])+frag[1:])
	}
	return name
}

// Types whose design-time manifest can be opened as YAML
var deployableTypes = map[string]bool{
	TypeApplication:  true,
	TypeSubscription: true,
	TypePlacements:   true,
	TypePlacement:    true,
}

// BuildDetails derives the ordered details panel for a node. updated is the
// refreshed snapshot of the same node, if any. A nil node yields no records.
// Inputs are never modified.
func BuildDetails(node, updated *GraphNode, filters ActiveFilters) []DisplayRecord {
	if node == nil {
		return []DisplayRecord{}
	}

	b := &builder{}
	argoApplicationSetLink(b, node)
	deployableYAMLLink(b, node)

	b.spacer()
	if node.Type == TypeCluster {
		b.label("prop.details.section.cluster")
	} else {
		b.label("prop.details.section")
	}
	b.spacer()

	switch node.Type {
	case TypeCluster:
		b.extend(ClusterStatus(node))
	case TypePlacement:
		b.label("resource.placement")
		for _, placement := range node.Specs.Placements {
			b.snippet(placement, false)
		}
	case TypePackage:
		b.property("resource.name", rawString(node, "metadata", "name"))
		b.records = append(b.records, DisplayRecord{
			Type:     RecordProperty,
			LabelKey: "resource.message",
			Value:    helmNoDataMessage,
			Status:   StatusNotApplicable,
		})
	default:
		k8sDetails(b, node, updated, filters)
	}

	b.spacer()
	b.label("resource.labels")
	for _, l := range node.Labels {
		b.snippet(l.Name+" = "+l.Value, true)
	}
	return b.records
}

const helmNoDataMessage = "There is not enough information in the subscription to retrieve deployed objects data."

// k8sDetails is the generic path shared by every Kubernetes kind
func k8sDetails(b *builder, node, updated *GraphNode, filters ActiveFilters) {
	kind := KindName(node.Layout.Type)
	if kind == "" {
		kind = KindName(node.Type)
	}
	b.records = append(b.records, DisplayRecord{Type: RecordProperty, LabelKey: "resource.type", Value: kind})
	b.property("resource.api.version", rawString(node, "apiVersion"))
	b.property("resource.cluster", node.ClusterName)
	b.records = append(b.records, DisplayRecord{Type: RecordProperty, LabelKey: "resource.namespace", Value: resourceNamespace(node)})

	b.add(Extract(node, Paths(P("spec", "chartName")), "raw.spec.chart.name"))
	b.add(Extract(node, Paths(P("spec", "releaseName")), "raw.spec.release.name"))
	b.add(Extract(node, Paths(P("spec", "version")), "raw.spec.version"))
	b.add(resourceLabels(node))
	b.add(Extract(node, Paths(P("spec", "replicas")), "raw.spec.replicas"))
	b.add(Extract(node, Paths(P("spec", "selector", "matchLabels"), P("spec", "selector")), "raw.spec.selector"))
	b.add(Extract(node, Paths(P("spec", "ports")), "raw.spec.ports"))
	b.add(Extract(node, Paths(P("spec", "channel")), "raw.spec.channel"))
	b.add(Extract(node, Paths(P("spec", "installPlanApproval")), "raw.spec.installPlanApproval"))
	b.add(Extract(node, Paths(P("spec", "source")), "raw.spec.source"))
	b.add(Extract(node, Paths(P("status", "health", "status")), "raw.status.health.status"))
	b.add(Extract(node, Paths(P("spec", "sourceNamespace")), "raw.spec.sourceNamespace"))
	b.add(Extract(node, Paths(P("spec", "startingCSV")), "raw.spec.startingCSV"))
	b.add(Extract(node, Paths(P("spec", "packageFilter", "filterRef")), "raw.spec.packageFilter"))
	b.add(Extract(node, Paths(P("spec", "placement", "placementRef")), "raw.spec.placementRef"))

	annotations := ResolveAnnotations(nodeAnnotations(node))
	b.property("spec.subscr.annotations.gitBranch", deref(annotations.Branch))
	b.property("spec.subscr.annotations.gitPath", deref(annotations.Path))
	b.property("spec.subscr.annotations.gitTag", deref(annotations.Tag))
	b.property("spec.subscr.annotations.gitCommit", deref(annotations.Commit))
	b.property("spec.subscr.annotations.reconcileRate", deref(annotations.ReconcileRate))

	b.add(Extract(node, Paths(P("spec", "clusterSelector", "matchLabels")), "raw.spec.clusterSelector"))
	b.add(Extract(node, Paths(P("spec", "clusterConditions")), "raw.spec.clusterConditions"))
	b.add(Extract(node, Paths(P("spec", "clusterLabels", "matchLabels")), "raw.spec.clusterLabels"))
	b.add(Extract(node, Paths(P("spec", "clusterReplicas")), "raw.spec.clusterReplicas"))
	if node.Type == TypePlacements {
		v, _ := lookup(node.Specs.Raw, P("status", "decisions"))
		decisions, _ := v.([]any)
		b.records = append(b.records, DisplayRecord{
			Type:     RecordProperty,
			LabelKey: "raw.status.decisionCls",
			Value:    strconv.Itoa(len(decisions)),
		})
	}
	b.add(Extract(node, Paths(P("spec", "to")), "raw.spec.to"))
	b.add(Extract(node, Paths(P("spec", "host")), "raw.spec.host"))
	b.add(Extract(node, Paths(P("spec", "accessModes")), "raw.spec.accessmode"))

	b.spacer()
	b.extend(RouteLocation(node))
	b.extend(IngressInfo(node))
	b.extend(ApplicationDeployStatus(node))
	b.extend(SubscriptionDeployStatus(node, filters))
	b.extend(PlacementRuleDeployStatus(node))
	b.extend(ResourceDeployStatus(node))
	b.extend(PodDeployStatus(node, updated, filters))
}

// resourceLabels picks observed labels for deployed nodes and manifest labels otherwise
func resourceLabels(node *GraphNode) *DisplayRecord {
	const key = "raw.spec.metadata.label"
	if node.Specs.IsDesign == nil || *node.Specs.IsDesign {
		return Extract(node, Paths(P("metadata", "labels")), key)
	}

	labels := "No labels"
	if inst, ok := firstModelInstance(node); ok {
		if l := inst.Label(); l != "" {
			labels = strings.ReplaceAll(l, "; ", ",")
		}
	}
	return &DisplayRecord{Type: RecordProperty, LabelKey: key, Value: labels}
}

// firstModelInstance is the first instance under the first (sorted) model key
func firstModelInstance(node *GraphNode) (Instance, bool) {
	model := node.Specs.Model(node.Type)
	for _, key := range sortedKeys(model) {
		if len(model[key]) > 0 {
			return model[key][0], true
		}
		return nil, false
	}
	return nil, false
}

// argoApplicationSetLink links an Argo application to its owning ApplicationSet
func argoApplicationSetLink(b *builder, node *GraphNode) {
	if node.Type != TypeApplication || !strings.HasPrefix(rawString(node, "apiVersion"), "argoproj.io/") {
		return
	}
	v, _ := lookup(node.Specs.Raw, P("metadata", "ownerReferences"))
	owners, _ := v.([]any)
	for _, o := range owners {
		owner, ok := o.(map[string]any)
		if !ok || FormatValue(owner["kind"]) != "ApplicationSet" {
			continue
		}
		name := FormatValue(owner["name"])
		b.link(LinkValue{
			Label: "ApplicationSet " + name,
			ID:    node.ID + "-appset",
			Data: LinkData{
				Action:     ActionShowYAML,
				Cluster:    node.ClusterName,
				Name:       name,
				Namespace:  rawString(node, "metadata", "namespace"),
				Kind:       "ApplicationSet",
				APIVersion: FormatValue(owner["apiVersion"]),
			},
		}, false)
		return
	}
}

// deployableYAMLLink opens the design manifest of hub-side resources
func deployableYAMLLink(b *builder, node *GraphNode) {
	if !deployableTypes[node.Type] || node.Specs.IsDesign == nil || !*node.Specs.IsDesign {
		return
	}
	name := rawString(node, "metadata", "name")
	if name == "" {
		return
	}
	cluster := node.ClusterName
	if cluster == "" {
		cluster = localCluster
	}
	b.link(LinkValue{
		Label: "View resource YAML",
		ID:    node.ID + "-yaml",
		Data: LinkData{
			Action:     ActionShowYAML,
			Cluster:    cluster,
			Name:       name,
			Namespace:  rawString(node, "metadata", "namespace"),
			Kind:       rawString(node, "kind"),
			APIVersion: rawString(node, "apiVersion"),
		},
	}, false)
}
