package topology

import (
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
)

// Kinds whose health is measured by the pods they create
var podProducers = map[string]bool{
	"deployment":            true,
	"deploymentconfig":      true,
	"statefulset":           true,
	"daemonset":             true,
	"replicaset":            true,
	"replicationcontroller": true,
	"job":                   true,
	TypePod:                 true,
}

// Types handled by their own classifier or branch
var ownStatusTypes = map[string]bool{
	TypeApplication:  true,
	TypeSubscription: true,
	TypePlacements:   true,
	TypePlacement:    true,
	TypeCluster:      true,
	TypePackage:      true,
}

// Pod statuses reported as failures
var podFailures = map[string]bool{
	string(corev1.PodFailed): true,
	"Error":                  true,
	"CrashLoopBackOff":       true,
	"ImagePullBackOff":       true,
	"ErrImagePull":           true,
	"RunContainerError":      true,
	"Terminating":            true,
}

const (
	localCluster  = "local-cluster"
	clustersToken = "--clusters--"

	clusterConditionAvailable = `.status.conditions[?(@.type=="ManagedClusterConditionAvailable")].status`
	clusterConsoleClaim       = `.status.clusterClaims[?(@.name=="consoleurl.cluster.open-cluster-management.io")].value`

	valueUnknown     = "unknown"
	valueDeployed    = "deployed"
	valueNotDeployed = "not deployed"
)

// IsPodProducer reports whether a node type creates pods
func IsPodProducer(nodeType string) bool {
	return podProducers[nodeType]
}

// podStatus classifies a pod status string
func podStatus(status string) Status {
	switch {
	case status == "":
		return StatusNotApplicable
	case status == string(corev1.PodRunning), status == string(corev1.PodSucceeded):
		return StatusHealthy
	case podFailures[status]:
		return StatusFailed
	case status == string(corev1.PodPending), status == "ContainerCreating":
		return StatusPending
	}
	return StatusWarning
}

// subscriptionStatus classifies a subscription phase
func subscriptionStatus(status string) (string, Status) {
	switch {
	case status == "":
		return valueUnknown, StatusWarning
	case strings.Contains(status, "Fail"):
		return status, StatusFailed
	case status == "Propagated", status == "Subscribed":
		return status, StatusHealthy
	}
	return status, StatusWarning
}

// TargetClusters lists the clusters a node is expected on: specs.clustersNames,
// else the --clusters-- segment of the node id, else clusterName.
func TargetClusters(node *GraphNode) []string {
	if len(node.Specs.ClustersNames) > 0 {
		return node.Specs.ClustersNames
	}
	if _, rest, found := strings.Cut(node.ID, clustersToken); found {
		segment, _, _ := strings.Cut(rest, "--")
		var clusters []string
		for _, c := range strings.Split(segment, ",") {
			if c = strings.TrimSpace(c); c != "" {
				clusters = append(clusters, c)
			}
		}
		if len(clusters) > 0 {
			return clusters
		}
	}
	if node.ClusterName != "" {
		return []string{node.ClusterName}
	}
	return nil
}

// instancesByCluster groups kind-model instances by cluster
func instancesByCluster(instances []Instance) map[string][]Instance {
	out := map[string][]Instance{}
	for _, inst := range instances {
		out[inst.Cluster()] = append(out[inst.Cluster()], inst)
	}
	return out
}

// ApplicationDeployStatus checks the selector, channels and deployables of an application
func ApplicationDeployStatus(node *GraphNode) []DisplayRecord {
	if node == nil || node.Type != TypeApplication {
		return nil
	}
	b := &builder{}
	b.spacer()
	b.add(ExtractRequired(node,
		Paths(P("spec", "selector")),
		"spec.selector.matchExpressions",
		"This application has no subscription match selector (spec.selector.matchExpressions)"))

	if len(node.Specs.Channels) == 0 {
		b.status("resource.app.channels", "No subscription channels found for this application", StatusFailed)
	} else {
		b.status("resource.app.channels", strings.Join(node.Specs.Channels, ","), StatusHealthy)
	}

	failed := strings.Contains(rawString(node, "status"), "Fail")
	for _, inst := range modelInstances(node, TypeSubscription) {
		if strings.Contains(inst.Status(), "Fail") {
			failed = true
			break
		}
	}
	if failed {
		b.status("resource.app.deployables", "One or more deployables failed to deploy", StatusFailed)
	} else {
		b.status("resource.app.deployables", "No deployable failures", StatusHealthy)
	}
	return b.records
}

// SubscriptionDeployStatus lists per-cluster subscription phases that match the active filters
func SubscriptionDeployStatus(node *GraphNode, filters ActiveFilters) []DisplayRecord {
	if node == nil || node.Type != TypeSubscription {
		return nil
	}
	b := &builder{}
	b.spacer()
	b.label("resource.deploy.statuses")

	instances := modelInstances(node, TypeSubscription)
	if len(instances) == 0 {
		b.status("resource.subscription.nodeployed", "This subscription is not deployed on any cluster", StatusFailed)
		return b.records
	}

	remote := 0
	for _, inst := range instances {
		if inst.Cluster() != localCluster {
			remote++
		}
	}
	if remote == 0 {
		b.status("spec.deploy.not.deployed", "This subscription only runs on the hub cluster", StatusWarning)
	}

	for _, inst := range instances {
		if !filters.Matches(inst) {
			continue
		}
		b.property("resource.cluster", inst.Cluster())
		value, status := subscriptionStatus(inst.Status())
		b.status("resource.status", value, status)
		b.spacer()
	}
	return b.records
}

// PlacementRuleDeployStatus reports placement decisions and failing conditions
func PlacementRuleDeployStatus(node *GraphNode) []DisplayRecord {
	if node == nil || node.Type != TypePlacements {
		return nil
	}
	b := &builder{}
	b.spacer()

	decisions, _ := lookup(node.Specs.Raw, P("status", "decisions"))
	list, _ := decisions.([]any)
	if len(list) == 0 {
		b.status("resource.rule.clusters.error", "No clusters were selected by this placement rule", StatusFailed)
	} else {
		var clusters []string
		for _, d := range list {
			if m, ok := d.(map[string]any); ok {
				if name := FormatValue(m["clusterName"]); name != "" {
					clusters = append(clusters, name)
				}
			}
		}
		b.status("resource.rule.placed", strings.Join(clusters, ","), StatusHealthy)
	}

	conditions, _ := lookup(node.Specs.Raw, P("status", "conditions"))
	conds, _ := conditions.([]any)
	for _, c := range conds {
		m, ok := c.(map[string]any)
		if !ok || FormatValue(m["status"]) != "False" {
			continue
		}
		text := FormatValue(m["message"])
		if reason := FormatValue(m["reason"]); reason != "" {
			if text == "" {
				text = reason
			} else {
				text = reason + ": " + text
			}
		}
		b.statusValue(FormatValue(m["type"]), text, StatusWarning)
	}
	return b.records
}

// ResourceDeployStatus shows whether a generic resource exists on each target
// cluster. Pod producers only get a warning when nothing at all was observed.
func ResourceDeployStatus(node *GraphNode) []DisplayRecord {
	if node == nil || ownStatusTypes[node.Type] {
		return nil
	}
	b := &builder{}
	instances := modelInstances(node, node.Type)

	if IsPodProducer(node.Type) {
		if len(instances) == 0 && len(modelInstances(node, TypePod)) == 0 {
			b.spacer()
			b.status("resource.deploy.nopods", "No pods were created by this resource", StatusWarning)
		}
		return b.records
	}

	byCluster := instancesByCluster(instances)
	clusters := TargetClusters(node)
	if len(clusters) == 0 {
		clusters = sortedKeys(byCluster)
	}
	if len(clusters) == 0 {
		return nil
	}

	b.spacer()
	b.label("resource.deploy.statuses")
	for _, cluster := range clusters {
		found := byCluster[cluster]
		if len(found) == 0 {
			b.statusValue(cluster, valueNotDeployed, StatusPending)
			continue
		}
		b.statusValue(cluster, valueDeployed, StatusHealthy)
		for _, inst := range found {
			b.link(yamlLink(node, inst, cluster), true)
		}
	}
	return b.records
}

func yamlLink(node *GraphNode, inst Instance, cluster string) LinkValue {
	name := inst.Name()
	if name == "" {
		name = node.Name
	}
	namespace := inst.Namespace()
	if namespace == "" {
		namespace = rawString(node, "metadata", "namespace")
	}
	return LinkValue{
		Label: "View resource YAML",
		ID:    node.ID + "-" + cluster,
		Data: LinkData{
			Action:     ActionShowYAML,
			Cluster:    cluster,
			Name:       name,
			Namespace:  namespace,
			Kind:       rawString(node, "kind"),
			APIVersion: rawString(node, "apiVersion"),
		},
	}
}

// PodDeployStatus reports ready/desired counts per cluster and the matching
// pods. Pod counts come from updated when given.
func PodDeployStatus(node, updated *GraphNode, filters ActiveFilters) []DisplayRecord {
	if node == nil || !IsPodProducer(node.Type) {
		return nil
	}
	src := node
	if updated != nil {
		src = updated
	}

	b := &builder{}
	b.spacer()
	b.label("resource.deploy.pods.statuses")

	podMap := src.Specs.PodStatusMap
	clusters := TargetClusters(node)
	if len(clusters) == 0 {
		clusters = sortedKeys(podMap)
	}
	for _, cluster := range clusters {
		ps, ok := podMap[cluster]
		if !ok {
			b.statusValue(cluster, valueNotDeployed, StatusPending)
			continue
		}
		b.statusValue(cluster, fmt.Sprintf("%d/%d", ps.Ready, ps.Desired), readiness(ps))
	}

	for _, pod := range modelInstances(src, TypePod) {
		if !filters.Matches(pod) {
			continue
		}
		b.spacer()
		b.heading(pod.Name())
		b.property("resource.clustername", pod.Cluster())
		b.property("resource.namespace", pod.Namespace())
		status := pod.Status()
		if status == "" {
			status = valueUnknown
		}
		b.status("resource.status", status, podStatus(pod.Status()))
		b.property("resource.restarts", pod.String("restarts"))
		b.property("resource.hostip", pod.String("hostIP"))
		b.property("resource.podip", pod.String("podIP"))
		b.property("resource.started", pod.String("startedAt"))
		b.link(LinkValue{
			Label: "View pod log",
			ID:    node.ID + "-" + pod.Name() + "-log",
			Data: LinkData{
				Action:    ActionShowPodLog,
				Cluster:   pod.Cluster(),
				Name:      pod.Name(),
				Namespace: pod.Namespace(),
				Kind:      "Pod",
			},
		}, true)
	}
	return b.records
}

func readiness(ps PodStatus) Status {
	switch {
	case ps.Ready >= ps.Desired:
		return StatusHealthy
	case ps.Ready == 0:
		return StatusFailed
	}
	return StatusWarning
}

// ClusterStatus describes every managed cluster attached to a cluster node
func ClusterStatus(node *GraphNode) []DisplayRecord {
	if node == nil {
		return nil
	}
	b := &builder{}

	clusters := append([]map[string]any(nil), node.Specs.Clusters...)
	sort.SliceStable(clusters, func(i, j int) bool {
		return EvaluateJSONPath(clusters[i], ".metadata.name") < EvaluateJSONPath(clusters[j], ".metadata.name")
	})

	seen := map[string]bool{}
	for _, c := range clusters {
		name := EvaluateJSONPath(c, ".metadata.name")
		seen[name] = true

		b.spacer()
		b.property("resource.name", name)
		b.property("resource.namespace", EvaluateJSONPathOrDefault(c, ".metadata.namespace", name))

		switch EvaluateJSONPath(c, clusterConditionAvailable) {
		case "True":
			b.status("resource.status", "ok", StatusHealthy)
		case "False":
			b.status("resource.status", "offline", StatusFailed)
		default:
			b.status("resource.status", "pending", StatusPending)
		}

		console := EvaluateJSONPath(c, clusterConsoleClaim)
		if console == "" {
			console = EvaluateJSONPath(c, ".consoleURL")
		}
		if console != "" {
			b.link(LinkValue{
				Label: console,
				ID:    node.ID + "-" + name + "-console",
				Data:  LinkData{Action: ActionOpenLink, TargetLink: console, Cluster: name},
			}, true)
		}

		b.property("resource.cpu", EvaluateJSONPath(c, ".status.capacity.cpu"))
		b.property("resource.memory", EvaluateJSONPath(c, ".status.capacity.memory"))
	}

	for _, name := range node.Specs.ClustersNames {
		if seen[name] {
			continue
		}
		b.spacer()
		b.property("resource.name", name)
		b.status("resource.status", valueUnknown, StatusNotApplicable)
	}
	return b.records
}

// RouteLocation links the public location of an OpenShift route
func RouteLocation(node *GraphNode) []DisplayRecord {
	if node == nil {
		return nil
	}
	var hosts []string
	if host := rawString(node, "spec", "host"); host != "" {
		hosts = append(hosts, host)
	}
	if node.Type == TypeRoute {
		for _, inst := range modelInstances(node, TypeRoute) {
			if h := inst.String("host"); h != "" && (len(hosts) == 0 || hosts[0] != h) {
				hosts = append(hosts, h)
			}
		}
	}
	if len(hosts) == 0 {
		return nil
	}

	scheme := "http"
	if _, ok := lookup(node.Specs.Raw, P("spec", "tls")); ok {
		scheme = "https"
	}

	b := &builder{}
	b.spacer()
	b.label("raw.spec.host.location")
	seen := map[string]bool{}
	for _, host := range hosts {
		if seen[host] {
			continue
		}
		seen[host] = true
		url := scheme + "://" + host
		b.link(LinkValue{
			Label: url,
			ID:    node.ID + "-location-" + host,
			Data:  LinkData{Action: ActionOpenLink, TargetLink: url},
		}, true)
	}
	return b.records
}

// IngressInfo lists the hosts and backend services of an Ingress
func IngressInfo(node *GraphNode) []DisplayRecord {
	if node == nil || (node.Type != TypeIngress && rawString(node, "kind") != "Ingress") {
		return nil
	}
	v, _ := lookup(node.Specs.Raw, P("spec", "rules"))
	rules, _ := v.([]any)

	b := &builder{}
	b.spacer()
	b.label("raw.spec.ingress.host.location")
	for _, r := range rules {
		rule, ok := r.(map[string]any)
		if !ok {
			continue
		}
		host := FormatValue(rule["host"])
		if host == "" {
			host = "NA"
		}
		b.property("raw.spec.ingress.host", host)

		pv, _ := lookup(rule, P("http", "paths"))
		paths, _ := pv.([]any)
		for _, p := range paths {
			path, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if svc, ok := firstDefined(path, Paths(
				P("backend", "serviceName"),
				P("backend", "service", "name"),
			)); ok {
				b.property("raw.spec.ingress.service", FormatValue(svc))
			}
			if port, ok := firstDefined(path, Paths(
				P("backend", "servicePort"),
				P("backend", "service", "port", "number"),
				P("backend", "service", "port", "name"),
			)); ok {
				b.property("raw.spec.ingress.service.port", FormatValue(port))
			}
		}
		b.spacer()
	}
	return b.records
}
