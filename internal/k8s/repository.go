package k8s

import (
	"context"

	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/viewstate"
)

// Repository provides the application topology and the objects behind it
type Repository interface {
	// GetTopology returns the graph. On error the returned graph may still
	// hold what was collected before the failure.
	GetTopology(ctx context.Context) (topology.Graph, error)

	// GetFilterOptions returns the raw options for the filter categories
	GetFilterOptions(ctx context.Context) (viewstate.FiltersSuccessMsg, error)

	// GetResourceYAML renders the object a show_resource_yaml link points at
	GetResourceYAML(ctx context.Context, ref topology.LinkData) (string, error)

	// Describe names the source for the header
	Describe() string

	Close()
}
