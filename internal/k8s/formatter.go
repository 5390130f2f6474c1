package k8s

import (
	"bytes"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/yaml"
)

// PrintYAML renders a manifest the way kubectl get -o yaml does. Manifests
// without apiVersion/kind are marshalled as plain YAML.
func PrintYAML(obj map[string]any) (string, error) {
	if obj == nil {
		return "", fmt.Errorf("no manifest to print")
	}

	// the type setter rewrites apiVersion/kind, so print a shallow copy
	copied := make(map[string]any, len(obj))
	for k, v := range obj {
		copied[k] = v
	}
	u := &unstructured.Unstructured{Object: copied}

	if u.GetKind() == "" || u.GetAPIVersion() == "" {
		out, err := yaml.Marshal(copied)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(out), nil
	}

	printer := printers.NewTypeSetter(scheme.Scheme).ToPrinter(&printers.YAMLPrinter{})
	var buf bytes.Buffer
	if err := printer.PrintObj(u, &buf); err != nil {
		return "", fmt.Errorf("failed to print YAML: %w", err)
	}
	return buf.String(), nil
}
