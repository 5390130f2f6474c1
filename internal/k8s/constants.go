package k8s

import (
	"time"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// DefaultFetchTimeout bounds one topology fetch against the hub. Each
	// fetch issues one list per subscription plus one get per placement rule
	// and cluster, so large applications need room.
	DefaultFetchTimeout = 30 * time.Second

	// HubCluster is the name the hub uses for itself
	HubCluster = "local-cluster"
)

// Hub resource kinds read by the live repository
var (
	ApplicationGVK    = schema.GroupVersionKind{Group: "app.k8s.io", Version: "v1beta1", Kind: "Application"}
	SubscriptionGVK   = schema.GroupVersionKind{Group: "apps.open-cluster-management.io", Version: "v1", Kind: "Subscription"}
	PlacementRuleGVK  = schema.GroupVersionKind{Group: "apps.open-cluster-management.io", Version: "v1", Kind: "PlacementRule"}
	ManagedClusterGVK = schema.GroupVersionKind{Group: "cluster.open-cluster-management.io", Version: "v1", Kind: "ManagedCluster"}
)
