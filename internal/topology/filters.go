package topology

import "strings"

// Active filter categories
const (
	FilterCluster          = "cluster"
	FilterNamespace        = "namespace"
	FilterLabel            = "label"
	FilterResourceStatuses = "resourceStatuses"
)

// FilterValue is one selectable filter option.
//
// Cluster options list the clusters they select in FilterValues; label
// options carry the split Name and Value of their "name: value" Label.
type FilterValue struct {
	Label        string   `json:"label"`
	Name         string   `json:"name,omitempty"`
	Value        string   `json:"value,omitempty"`
	FilterValues []string `json:"filterValues,omitempty"`
}

// ActiveFilters maps a filter category to its selected options
type ActiveFilters map[string][]FilterValue

// Matches reports whether an instance passes every non-empty category.
// Unknown categories are ignored.
func (f ActiveFilters) Matches(inst Instance) bool {
	for category, values := range f {
		if len(values) == 0 {
			continue
		}
		var ok bool
		switch category {
		case FilterCluster:
			ok = matchCluster(values, inst.Cluster())
		case FilterNamespace:
			ok = matchLabel(values, inst.Namespace())
		case FilterLabel:
			ok = matchInstanceLabels(values, inst.Label())
		case FilterResourceStatuses:
			ok = matchLabel(values, string(InstanceColor(inst)))
		default:
			ok = true
		}
		if !ok {
			return false
		}
	}
	return true
}

func matchLabel(values []FilterValue, s string) bool {
	for _, v := range values {
		if v.Label == s {
			return true
		}
	}
	return false
}

func matchCluster(values []FilterValue, cluster string) bool {
	for _, v := range values {
		if v.Label == cluster {
			return true
		}
		for _, fv := range v.FilterValues {
			if fv == cluster {
				return true
			}
		}
	}
	return false
}

// matchInstanceLabels checks "name: value" options against a label string
// such as "app=web; tier=front"
func matchInstanceLabels(values []FilterValue, labels string) bool {
	present := map[string]bool{}
	for _, part := range strings.FieldsFunc(labels, func(r rune) bool { return r == ';' || r == ',' }) {
		present[strings.TrimSpace(part)] = true
	}
	for _, v := range values {
		name, value := v.Name, v.Value
		if name == "" {
			n, val, found := strings.Cut(v.Label, ":")
			if !found {
				continue
			}
			name, value = strings.TrimSpace(n), strings.TrimSpace(val)
		}
		if present[name+"="+value] {
			return true
		}
	}
	return false
}

// InstanceColor maps an instance status onto the pulse colours used by the
// resourceStatuses filter
func InstanceColor(inst Instance) StatusColor {
	switch podStatus(inst.Status()) {
	case StatusHealthy:
		return PulseGreen
	case StatusFailed:
		return PulseRed
	case StatusWarning:
		return PulseYellow
	}
	return PulseOrange
}
