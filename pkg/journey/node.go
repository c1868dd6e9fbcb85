package journey

// NodeType constants form the closed set of declared node kinds.
// An unknown type does not fail resolution; the classifier treats it
// as a gateway and the resolver emits a diagnostic.
const (
	// NodeTypeForm collects answers through fillable fields.
	NodeTypeForm = "form"
	// NodeTypeUpload requires one or more file deliverables.
	NodeTypeUpload = "upload"
	// NodeTypeConfirm is an upload-style confirmation task; when both
	// uploads and fields are declared, upload stays dominant.
	NodeTypeConfirm = "confirm"
	// NodeTypeDecision branches on a declared outcome.
	NodeTypeDecision = "decision"
	// NodeTypeExternal tracks a process completed outside the portal.
	NodeTypeExternal = "external"
	// NodeTypeInfo displays content with no required interaction.
	NodeTypeInfo = "info"
	// NodeTypeGateway is a pure pass-through step.
	NodeTypeGateway = "gateway"
	// NodeTypeMeeting represents a scheduled appointment.
	NodeTypeMeeting = "meeting"
	// NodeTypeMilestone marks a checkpoint in the journey.
	NodeTypeMilestone = "milestone"
)

// KnownNodeType reports whether t belongs to the closed type set.
func KnownNodeType(t string) bool {
	switch t {
	case NodeTypeForm, NodeTypeUpload, NodeTypeConfirm, NodeTypeDecision,
		NodeTypeExternal, NodeTypeInfo, NodeTypeGateway, NodeTypeMeeting,
		NodeTypeMilestone:
		return true
	}
	return false
}

// Node represents a single unit of required interaction within a phase.
type Node struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Requirements declares what the user must provide to complete the node.
	Requirements *Requirements `json:"requirements,omitempty" yaml:"requirements,omitempty"`

	// Next lists successor node ids for the default (unconditional) edges.
	Next []string `json:"next,omitempty" yaml:"next,omitempty"`

	// Outcomes declares guarded branches for decision-style nodes.
	// Declaration order matters: guards are evaluated first match wins.
	Outcomes []Outcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`

	// EndsPhase marks the node as phase-ending even when it has
	// within-phase outgoing edges.
	EndsPhase bool `json:"ends_phase,omitempty" yaml:"ends_phase,omitempty"`

	// WhoCanComplete restricts which roles may record completion.
	// Enforcement happens outside the engine; the value passes through.
	WhoCanComplete []string `json:"who_can_complete,omitempty" yaml:"who_can_complete,omitempty"`
}

// Requirements declares the interaction surface of a node.
type Requirements struct {
	Fields    []Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Uploads   []UploadSlot `json:"uploads,omitempty" yaml:"uploads,omitempty"`
	Checklist []string     `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	Notes     string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Empty reports whether no requirement of any kind is declared.
func (r *Requirements) Empty() bool {
	if r == nil {
		return true
	}
	return len(r.Fields) == 0 && len(r.Uploads) == 0 && len(r.Checklist) == 0
}

// Field is a single fillable form field.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Kind     string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// UploadSlot is a single required file deliverable.
type UploadSlot struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Accept   string `json:"accept,omitempty" yaml:"accept,omitempty"`
	Multiple bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
}

// Outcome is a guarded branch from a decision-style node.
type Outcome struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// When is a condition expression over the user's facts. An empty
	// expression always matches.
	When string `json:"when,omitempty" yaml:"when,omitempty"`

	// Next lists the successor node ids taken when this outcome is selected.
	Next []string `json:"next,omitempty" yaml:"next,omitempty"`
}
