package k8s

import (
	"context"
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/renato0307/apptopo/internal/logging"
	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/viewstate"
)

// GraphRepository serves a topology that is already fully collected, either
// read from a graph document or built in memory
type GraphRepository struct {
	load        func() (topology.Graph, error)
	description string
}

// NewFileRepository reads the graph document at path on every fetch, so
// edits show up on refresh. YAML and JSON are both accepted.
func NewFileRepository(path string) *GraphRepository {
	return &GraphRepository{
		load:        func() (topology.Graph, error) { return ReadGraphFile(path) },
		description: "file " + path,
	}
}

// ReadGraphFile decodes and validates a graph document
func ReadGraphFile(path string) (topology.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return topology.Graph{}, fmt.Errorf("reading graph file: %w", err)
	}
	return ParseGraph(data)
}

// ParseGraph decodes a YAML or JSON graph document
func ParseGraph(data []byte) (topology.Graph, error) {
	var graph topology.Graph
	if err := yaml.Unmarshal(data, &graph); err != nil {
		return topology.Graph{}, fmt.Errorf("parsing graph: %w", err)
	}
	if err := validateGraph(graph); err != nil {
		return topology.Graph{}, err
	}
	return graph, nil
}

func validateGraph(graph topology.Graph) error {
	ids := make(map[string]bool, len(graph.Nodes))
	for i, node := range graph.Nodes {
		if node.ID == "" {
			return fmt.Errorf("nodes[%d] has no id", i)
		}
		if ids[node.ID] {
			return fmt.Errorf("duplicate node id %q", node.ID)
		}
		ids[node.ID] = true
	}
	for _, link := range graph.Links {
		if !ids[link.From] || !ids[link.To] {
			logging.Component("k8s").Warn("link references unknown node", "from", link.From, "to", link.To)
		}
	}
	return nil
}

func (r *GraphRepository) GetTopology(ctx context.Context) (topology.Graph, error) {
	if err := ctx.Err(); err != nil {
		return topology.Graph{}, err
	}
	timer := logging.Start("load graph")
	graph, err := r.load()
	logging.EndWithCount(timer, len(graph.Nodes))
	return graph, err
}

func (r *GraphRepository) GetFilterOptions(ctx context.Context) (viewstate.FiltersSuccessMsg, error) {
	graph, err := r.GetTopology(ctx)
	if err != nil {
		return viewstate.FiltersSuccessMsg{}, err
	}
	return FilterOptions(graph), nil
}

func (r *GraphRepository) GetResourceYAML(ctx context.Context, ref topology.LinkData) (string, error) {
	graph, err := r.GetTopology(ctx)
	if err != nil {
		return "", err
	}
	manifest, ok := FindManifest(graph, ref)
	if !ok {
		return "", fmt.Errorf("resource %s %s/%s not found in graph", ref.Kind, ref.Namespace, ref.Name)
	}
	return PrintYAML(manifest)
}

func (r *GraphRepository) Describe() string { return r.description }

func (r *GraphRepository) Close() {}

// FindManifest looks for the raw manifest a link points at
func FindManifest(graph topology.Graph, ref topology.LinkData) (map[string]any, bool) {
	for _, node := range graph.Nodes {
		raw := node.Specs.Raw
		if raw == nil {
			continue
		}
		if topology.EvaluateJSONPath(raw, ".kind") != ref.Kind ||
			topology.EvaluateJSONPath(raw, ".metadata.name") != ref.Name {
			continue
		}
		ns := topology.EvaluateJSONPath(raw, ".metadata.namespace")
		if ref.Namespace != "" && ns != "" && ns != ref.Namespace {
			continue
		}
		return raw, true
	}
	return nil, false
}

// FilterOptions derives the raw filter options from a collected graph
func FilterOptions(graph topology.Graph) viewstate.FiltersSuccessMsg {
	var msg viewstate.FiltersSuccessMsg
	seenCluster := map[string]bool{}
	seenNamespace := map[string]bool{}
	seenType := map[string]bool{}

	addNamespace := func(ns string) {
		if ns != "" && !seenNamespace[ns] {
			seenNamespace[ns] = true
			msg.Namespaces = append(msg.Namespaces, viewstate.NamespaceInfo{Name: ns})
		}
	}

	for _, node := range graph.Nodes {
		if !seenType[node.Type] {
			seenType[node.Type] = true
			msg.Types = append(msg.Types, node.Type)
		}

		for _, l := range node.Labels {
			msg.Labels = append(msg.Labels, viewstate.LabelInfo{Name: l.Name, Value: l.Value})
		}

		addNamespace(node.Namespace)
		addNamespace(topology.EvaluateJSONPath(node.Specs.Raw, ".metadata.namespace"))
		modelKeys := make([]string, 0, len(node.Specs.Models))
		for key := range node.Specs.Models {
			modelKeys = append(modelKeys, key)
		}
		sort.Strings(modelKeys)
		for _, key := range modelKeys {
			model := node.Specs.Models[key]
			names := make([]string, 0, len(model))
			for name := range model {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				for _, inst := range model[name] {
					addNamespace(inst.Namespace())
				}
			}
		}

		if node.Type != topology.TypeCluster {
			continue
		}
		for _, obj := range node.Specs.Clusters {
			name := topology.EvaluateJSONPath(obj, ".metadata.name")
			if name == "" || seenCluster[name] {
				continue
			}
			seenCluster[name] = true
			labels := map[string]string{}
			if v, ok := obj["metadata"].(map[string]any); ok {
				if l, ok := v["labels"].(map[string]any); ok {
					for k, val := range l {
						labels[k] = topology.FormatValue(val)
					}
				}
			}
			msg.Clusters = append(msg.Clusters, viewstate.ClusterInfo{ClusterName: name, Labels: labels})
		}
		for _, name := range node.Specs.ClustersNames {
			if !seenCluster[name] {
				seenCluster[name] = true
				msg.Clusters = append(msg.Clusters, viewstate.ClusterInfo{ClusterName: name})
			}
		}
	}
	return msg
}
