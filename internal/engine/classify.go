package engine

import "github.com/waymarkhq/waymark/pkg/journey"

// Classify returns every action kind a node's declared requirements match,
// in fixed detection order: upload, form, outcome, external, gateway. A node
// may match several kinds at once (a decision that also needs uploads).
func Classify(n *journey.Node) []journey.ActionKind {
	var kinds []journey.ActionKind

	hasUploads := n.Requirements != nil && len(n.Requirements.Uploads) > 0
	hasFields := n.Requirements != nil && len(n.Requirements.Fields) > 0
	hasChecklist := n.Requirements != nil && len(n.Requirements.Checklist) > 0

	if hasUploads {
		kinds = append(kinds, journey.ActionUpload)
	}
	if hasFields {
		kinds = append(kinds, journey.ActionForm)
	}
	if len(n.Outcomes) > 0 {
		kinds = append(kinds, journey.ActionOutcome)
	}
	// External: the node type flags an externally-tracked process, or it
	// declares only a checklist with no in-app completion surface.
	if n.Type == journey.NodeTypeExternal || (hasChecklist && !hasUploads && !hasFields) {
		kinds = append(kinds, journey.ActionExternal)
	}

	if len(kinds) == 0 {
		kinds = append(kinds, journey.ActionGateway)
	}
	return kinds
}

// Dominant picks the single kind the interaction surface should render.
//
// When both upload and form apply, the declared node type breaks the tie: a
// node typed as an upload/confirmation task prefers upload, otherwise form
// wins. Outcome is an overlay, not a surface: it is dominant only when it is
// the sole kind present. Everything else follows the fixed priority
// upload > form > external > gateway. Unknown node types carry no upload
// preference and fall through like gateways.
func Dominant(n *journey.Node) journey.ActionKind {
	kinds := Classify(n)
	if len(kinds) == 1 {
		return kinds[0]
	}

	has := make(map[journey.ActionKind]bool, len(kinds))
	for _, k := range kinds {
		has[k] = true
	}

	if has[journey.ActionUpload] && has[journey.ActionForm] {
		switch n.Type {
		case journey.NodeTypeUpload, journey.NodeTypeConfirm:
			return journey.ActionUpload
		default:
			return journey.ActionForm
		}
	}

	for _, k := range []journey.ActionKind{
		journey.ActionUpload,
		journey.ActionForm,
		journey.ActionExternal,
		journey.ActionGateway,
	} {
		if has[k] {
			return k
		}
	}
	return journey.ActionOutcome
}
