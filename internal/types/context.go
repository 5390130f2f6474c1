package types

import (
	"time"

	"github.com/renato0307/apptopo/internal/k8s"
	"github.com/renato0307/apptopo/internal/keyboard"
	"github.com/renato0307/apptopo/internal/ui"
)

// AppContext holds app-wide configuration and dependencies
type AppContext struct {
	Theme *ui.Theme
	Repo  k8s.Repository
	Keys  *keyboard.Keys

	// FetchTimeout bounds each repository call
	FetchTimeout time.Duration
	// RefreshInterval re-fetches the topology; 0 disables it
	RefreshInterval time.Duration

	// Namespaces and Clusters seed the active filters
	Namespaces []string
	Clusters   []string
}

// NewAppContext creates a new application context
func NewAppContext(theme *ui.Theme, repo k8s.Repository) *AppContext {
	return &AppContext{
		Theme:        theme,
		Repo:         repo,
		Keys:         keyboard.GetKeys(),
		FetchTimeout: k8s.DefaultFetchTimeout,
	}
}
