package topology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Node types with a dedicated branch in the detail builder. Every other type
// falls into the generic Kubernetes object path.
const (
	TypeCluster      = "cluster"
	TypePlacement    = "placement"
	TypePackage      = "package"
	TypePlacements   = "placements"
	TypeApplication  = "application"
	TypeSubscription = "subscription"
	TypeRoute        = "route"
	TypeIngress      = "ingress"
	TypePod          = "pod"
)

// StatusColor is the live pulse reported by the graph collector for a node
type StatusColor string

const (
	PulseGreen   StatusColor = "green"
	PulseYellow  StatusColor = "yellow"
	PulseRed     StatusColor = "red"
	PulseOrange  StatusColor = "orange" // no live signal
	PulseBlocked StatusColor = "blocked"
)

// Label is a name/value pair shown in the resource labels section
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Layout carries renderer hints; Type overrides the node type for display
type Layout struct {
	Type string `json:"type,omitempty"`
}

// PodStatus summarises pod readiness of one resource on one cluster
type PodStatus struct {
	Available int `json:"available"`
	Current   int `json:"current"`
	Desired   int `json:"desired"`
	Ready     int `json:"ready"`
}

// Instance is one observed object of a resource kind on a specific cluster.
// Collectors attach arbitrary kind-specific fields, so it stays a map.
type Instance map[string]any

// String returns the field as a display string ("" when absent)
func (i Instance) String(key string) string {
	v, ok := i[key]
	if !ok || v == nil {
		return ""
	}
	return FormatValue(v)
}

func (i Instance) Name() string      { return i.String("name") }
func (i Instance) Namespace() string { return i.String("namespace") }
func (i Instance) Cluster() string   { return i.String("cluster") }
func (i Instance) Label() string     { return i.String("label") }
func (i Instance) Status() string    { return i.String("status") }

// Specs holds the canonical manifest plus everything upstream collectors derived for a node
type Specs struct {
	Raw           map[string]any
	IsDesign      *bool // nil when the collector did not say
	Pulse         StatusColor
	Placements    []string
	ClustersNames []string
	Clusters      []map[string]any
	Channels      []string
	PodStatusMap  map[string]PodStatus

	// Models holds every specs.<kind>Model collection keyed by the
	// original field name, e.g. "deploymentModel" or "podModel".
	Models map[string]map[string][]Instance

	// modelOrder keeps the document order of each model's keys when
	// Specs was decoded from JSON
	modelOrder map[string][]string
}

// specsFields is the wire shape of the well-known Specs fields
type specsFields struct {
	Raw           map[string]any       `json:"raw,omitempty"`
	IsDesign      *bool                `json:"isDesign,omitempty"`
	Pulse         StatusColor          `json:"pulse,omitempty"`
	Placements    []string             `json:"placements,omitempty"`
	ClustersNames []string             `json:"clustersNames,omitempty"`
	Clusters      []map[string]any     `json:"clusters,omitempty"`
	Channels      []string             `json:"channels,omitempty"`
	PodStatusMap  map[string]PodStatus `json:"podStatusMap,omitempty"`
}

const modelSuffix = "Model"

// UnmarshalJSON decodes the known fields and collects every "<kind>Model" key into Models
func (s *Specs) UnmarshalJSON(data []byte) error {
	var known specsFields
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	*s = Specs{
		Raw:           known.Raw,
		IsDesign:      known.IsDesign,
		Pulse:         known.Pulse,
		Placements:    known.Placements,
		ClustersNames: known.ClustersNames,
		Clusters:      known.Clusters,
		Channels:      known.Channels,
		PodStatusMap:  known.PodStatusMap,
	}

	for key, raw := range all {
		if !strings.HasSuffix(key, modelSuffix) || key == modelSuffix {
			continue
		}
		var model map[string][]Instance
		if err := json.Unmarshal(raw, &model); err != nil {
			return fmt.Errorf("decoding specs.%s: %w", key, err)
		}
		order, err := objectKeys(raw)
		if err != nil {
			return fmt.Errorf("decoding specs.%s: %w", key, err)
		}
		if s.Models == nil {
			s.Models = make(map[string]map[string][]Instance)
			s.modelOrder = make(map[string][]string)
		}
		s.Models[key] = model
		s.modelOrder[key] = order
	}
	return nil
}

// objectKeys lists the keys of a JSON object in document order
func objectKeys(data json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// MarshalJSON writes Models back as top-level "<kind>Model" keys
func (s Specs) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	known, err := json.Marshal(specsFields{
		Raw:           s.Raw,
		IsDesign:      s.IsDesign,
		Pulse:         s.Pulse,
		Placements:    s.Placements,
		ClustersNames: s.ClustersNames,
		Clusters:      s.Clusters,
		Channels:      s.Channels,
		PodStatusMap:  s.PodStatusMap,
	})
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(known, &out); err != nil {
		return nil, err
	}
	for key, model := range s.Models {
		out[key] = model
	}
	return json.Marshal(out)
}

// Model returns the kind model collection for a node type ("deployment" -> deploymentModel)
func (s Specs) Model(kind string) map[string][]Instance {
	return s.Models[kind+modelSuffix]
}

// GraphNode is one vertex of the application topology
type GraphNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Namespace   string  `json:"namespace,omitempty"`
	Type        string  `json:"type"`
	ClusterName string  `json:"clusterName,omitempty"`
	Labels      []Label `json:"labels,omitempty"`
	Layout      Layout  `json:"layout,omitempty"`
	Specs       Specs   `json:"specs"`
}

// Link is a directed edge between two graph nodes
type Link struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
}

// Graph is a complete topology fetch result
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []Link      `json:"links"`
}

// sortedKeys returns map keys in ascending order so iteration is deterministic
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// modelKeys returns the keys of a kind model in document order. Models
// built in code, or keys added after decoding, follow in sorted order.
func (s Specs) modelKeys(kind string) []string {
	model := s.Model(kind)
	if len(model) == 0 {
		return nil
	}
	keys := make([]string, 0, len(model))
	seen := make(map[string]bool, len(model))
	for _, key := range s.modelOrder[kind+modelSuffix] {
		if _, ok := model[key]; ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for _, key := range sortedKeys(model) {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// modelInstances flattens every instance of a kind model in key order
func modelInstances(node *GraphNode, kind string) []Instance {
	model := node.Specs.Model(kind)
	var out []Instance
	for _, key := range node.Specs.modelKeys(kind) {
		out = append(out, model[key]...)
	}
	return out
}
