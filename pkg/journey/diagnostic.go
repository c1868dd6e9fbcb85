package journey

import "fmt"

// DiagnosticCode identifies a class of recoverable definition or input
// problem encountered during a resolution pass.
type DiagnosticCode string

const (
	// DiagDanglingEdge flags a next/outcome reference to a node id that
	// does not exist in the definition.
	DiagDanglingEdge DiagnosticCode = "dangling_edge"
	// DiagUnknownNodeType flags a declared type outside the closed set.
	DiagUnknownNodeType DiagnosticCode = "unknown_node_type"
	// DiagBadCondition flags an unparseable condition expression. The
	// evaluator failed open and treated the gate as passing.
	DiagBadCondition DiagnosticCode = "bad_condition"
	// DiagOrphanOverride flags an override for a node id that does not
	// exist in the definition. The override was ignored.
	DiagOrphanOverride DiagnosticCode = "orphan_override"
	// DiagNoTerminalNodes flags a phase in which no node has zero
	// within-phase out-degree. This is a definition error; resolution
	// still completes.
	DiagNoTerminalNodes DiagnosticCode = "no_terminal_nodes"
)

// Diagnostic describes one recoverable problem. The engine never fails a
// resolution pass over these; it surfaces them for the caller to log.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	NodeID  string         `json:"node_id,omitempty"`
	PhaseID string         `json:"phase_id,omitempty"`
	Detail  string         `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	where := d.NodeID
	if where == "" {
		where = d.PhaseID
	}
	return fmt.Sprintf("%s (%s): %s", d.Code, where, d.Detail)
}
