package topology

import "fmt"

// RecordType selects how the renderer draws a DisplayRecord
type RecordType string

const (
	RecordLabel    RecordType = "label"
	RecordSpacer   RecordType = "spacer"
	RecordSnippet  RecordType = "snippet"
	RecordLink     RecordType = "link"
	RecordProperty RecordType = "property"
)

// Status is the badge shown next to a property row
type Status string

const (
	StatusHealthy       Status = "checkmark"
	StatusPending       Status = "pending"
	StatusWarning       Status = "warning"
	StatusFailed        Status = "failure"
	StatusNotApplicable Status = "info"
)

// Link actions understood by the console
const (
	ActionShowYAML   = "show_resource_yaml"
	ActionShowPodLog = "show_pod_log"
	ActionOpenLink   = "open_link"
)

// LinkData is the payload of an actionable record
type LinkData struct {
	Action     string `json:"action"`
	Cluster    string `json:"cluster,omitempty"`
	Name       string `json:"name,omitempty"`
	Namespace  string `json:"namespace,omitempty"`
	Kind       string `json:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`
	TargetLink string `json:"targetLink,omitempty"`
}

type LinkValue struct {
	Label string   `json:"label"`
	ID    string   `json:"id"`
	Data  LinkData `json:"data"`
}

// DisplayRecord is one row of the details panel.
//
// LabelKey is a message key resolved by the renderer, LabelValue is literal
// text used when no key applies.
type DisplayRecord struct {
	Type       RecordType `json:"type"`
	LabelKey   string     `json:"labelKey,omitempty"`
	LabelValue string     `json:"labelValue,omitempty"`
	Value      string     `json:"value,omitempty"`
	Indent     bool       `json:"indent,omitempty"`
	Status     Status     `json:"status,omitempty"`
	Link       *LinkValue `json:"link,omitempty"`
}

// AddProperty appends rec when it is not nil
func AddProperty(records []DisplayRecord, rec *DisplayRecord) []DisplayRecord {
	if rec == nil {
		return records
	}
	return append(records, *rec)
}

// builder accumulates records for one detail derivation
type builder struct {
	records []DisplayRecord
}

func (b *builder) add(rec *DisplayRecord) {
	b.records = AddProperty(b.records, rec)
}

// spacer separates sections; a spacer never follows another spacer
func (b *builder) spacer() {
	if b.lastIsSpacer() {
		return
	}
	b.records = append(b.records, DisplayRecord{Type: RecordSpacer})
}

func (b *builder) lastIsSpacer() bool {
	return len(b.records) > 0 && b.records[len(b.records)-1].Type == RecordSpacer
}

// extend appends the records of another block, folding a spacer that
// would land next to one already present
func (b *builder) extend(records []DisplayRecord) {
	for _, r := range records {
		if r.Type == RecordSpacer {
			b.spacer()
			continue
		}
		b.records = append(b.records, r)
	}
}

func (b *builder) label(key string) {
	b.records = append(b.records, DisplayRecord{Type: RecordLabel, LabelKey: key})
}

func (b *builder) heading(text string) {
	b.records = append(b.records, DisplayRecord{Type: RecordLabel, LabelValue: text})
}

func (b *builder) snippet(value string, indent bool) {
	b.records = append(b.records, DisplayRecord{Type: RecordSnippet, Value: value, Indent: indent})
}

// property appends a key/value row; empty values are skipped
func (b *builder) property(key, value string) {
	if value == "" {
		return
	}
	b.records = append(b.records, DisplayRecord{Type: RecordProperty, LabelKey: key, Value: value})
}

func (b *builder) status(key, value string, status Status) {
	b.records = append(b.records, DisplayRecord{
		Type:     RecordProperty,
		LabelKey: key,
		Value:    value,
		Status:   status,
		Indent:   true,
	})
}

func (b *builder) statusValue(text, value string, status Status) {
	b.records = append(b.records, DisplayRecord{
		Type:       RecordProperty,
		LabelValue: text,
		Value:      value,
		Status:     status,
		Indent:     true,
	})
}

func (b *builder) link(link LinkValue, indent bool) {
	l := link
	b.records = append(b.records, DisplayRecord{Type: RecordLink, Value: link.Label, Indent: indent, Link: &l})
}

func (r DisplayRecord) String() string {
	switch r.Type {
	case RecordSpacer:
		return ""
	case RecordLink:
		if r.Link != nil {
			return fmt.Sprintf("[%s] %s", r.Link.Data.Action, r.Link.Label)
		}
	}
	key := r.LabelKey
	if key == "" {
		key = r.LabelValue
	}
	if r.Value == "" {
		return key
	}
	if key == "" {
		return r.Value
	}
	return key + ": " + r.Value
}
