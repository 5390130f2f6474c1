package ui

// labels is the English text for every detail record label key
var labels = map[string]string{
	"prop.details.section":         "Details",
	"prop.details.section.cluster": "Cluster details",

	"resource.type":        "Type",
	"resource.api.version": "API Version",
	"resource.cluster":     "Cluster",
	"resource.clustername": "Cluster name",
	"resource.namespace":   "Namespace",
	"resource.name":        "Name",
	"resource.labels":      "Labels",
	"resource.message":     "Message",
	"resource.placement":   "Placement",
	"resource.status":      "Status",
	"resource.restarts":    "Restarts",
	"resource.hostip":      "Host IP",
	"resource.podip":       "Pod IP",
	"resource.started":     "Created",
	"resource.cpu":         "CPU",
	"resource.memory":      "Memory",

	"resource.app.channels":             "Channels",
	"resource.app.deployables":          "Deployables",
	"resource.deploy.statuses":          "Cluster deploy status",
	"resource.deploy.pods.statuses":     "Pod details for",
	"resource.deploy.nopods":            "No pods found",
	"resource.subscription.nodeployed":  "Not deployed on any cluster",
	"resource.rule.clusters.error":      "No clusters matched the placement",
	"resource.rule.placed":              "Placed on",
	"spec.deploy.not.deployed":          "Not deployed",
	"spec.selector.matchExpressions":    "Resource selector",
	"spec.subscr.annotations.gitBranch": "Git branch",
	"spec.subscr.annotations.gitPath":   "Git path",
	"spec.subscr.annotations.gitTag":    "Git tag",
	"spec.subscr.annotations.gitCommit": "Git commit",

	"spec.subscr.annotations.reconcileRate": "Reconcile rate",

	"raw.spec.chart.name":          "Chart name",
	"raw.spec.release.name":        "Release name",
	"raw.spec.version":             "Version",
	"raw.spec.metadata.label":      "Labels",
	"raw.spec.replicas":            "Required replicas",
	"raw.spec.selector":            "Pod selector",
	"raw.spec.ports":               "Ports",
	"raw.spec.channel":             "Channel",
	"raw.spec.installPlanApproval": "Install plan approval",
	"raw.spec.source":              "Source",
	"raw.status.health.status":     "Health",
	"raw.spec.sourceNamespace":     "Source namespace",
	"raw.spec.startingCSV":         "Starting CSV",
	"raw.spec.packageFilter":       "Package filter",
	"raw.spec.placementRef":        "Placement reference",
	"raw.spec.clusterSelector":     "Cluster selector",
	"raw.spec.clusterConditions":   "Cluster conditions",
	"raw.spec.clusterLabels":       "Cluster labels",
	"raw.spec.clusterReplicas":     "Cluster replicas",
	"raw.status.decisionCls":       "Decisions",
	"raw.spec.to":                  "To",
	"raw.spec.host":                "Host",
	"raw.spec.accessmode":          "Access mode",

	"raw.spec.host.location":         "Location",
	"raw.spec.ingress.host.location": "Location",
	"raw.spec.ingress.host":          "Host",
	"raw.spec.ingress.service":       "Service name",
	"raw.spec.ingress.service.port":  "Service port",
}

// Label returns the text for a label key, or the key itself when unknown
func Label(key string) string {
	if text, ok := labels[key]; ok {
		return text
	}
	return key
}
