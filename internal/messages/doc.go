// Package messages defines how errors, success and info messages travel
// between the layers of apptopo.
//
// # Repository Layer (internal/k8s)
//
// Return standard Go errors wrapped with fmt.Errorf and %w. The repository
// does not depend on UI concerns. Partial results are returned together
// with the error:
//
//	func (r *HubRepository) GetTopology(ctx context.Context) (topology.Graph, error) {
//	    ...
//	    return graph, errors.Join(errs...)
//	}
//
// # Command Layer (internal/commands)
//
// Return a tea.Cmd that produces a types.StatusMsg. Use ErrorCmd, SuccessCmd
// and InfoCmd for messages that need no other work.
//
// # UI Layer (internal/app, internal/components, internal/screens)
//
// The app model owns the user message line. Screens never render errors
// themselves; they send a StatusMsg and the app shows it until the next
// message or until components.StatusBarDisplayDuration elapses.
//
// Topology fetch results travel as viewstate events (FetchStartMsg,
// FetchSuccessMsg, FetchFailureMsg) and are folded into the view state by
// viewstate.Reduce before any screen sees them.
package messages
