package canvas

import "fmt"

// IssueKind classifies a structural problem found by [Validate].
type IssueKind string

const (
	IssueDuplicateID  IssueKind = "duplicate_id"
	IssueDanglingEdge IssueKind = "dangling_edge"
	IssueUnknownType  IssueKind = "unknown_type"
	IssueInvalidSize  IssueKind = "invalid_size"
	IssueMissingID    IssueKind = "missing_id"
)

// Issue is a non-fatal problem in a document.
type Issue struct {
	Kind    IssueKind
	ID      string // node or edge id the issue refers to
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Validate lints a document and returns every issue found, in document order.
// A nil result means the document is structurally sound. Validate never
// modifies d.
//
// Ids are checked for uniqueness across nodes and edges together, as the
// JSON Canvas specification requires.
func Validate(d Document) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(d.Nodes)+len(d.Edges))
	nodes := make(map[string]bool, len(d.Nodes))

	checkID := func(kind, id string) {
		if id == "" {
			issues = append(issues, Issue{Kind: IssueMissingID, Message: kind + " without id"})
			return
		}
		if seen[id] {
			issues = append(issues, Issue{Kind: IssueDuplicateID, ID: id, Message: fmt.Sprintf("%s id %q is not unique", kind, id)})
		}
		seen[id] = true
	}

	for _, n := range d.Nodes {
		checkID("node", n.ID)
		nodes[n.ID] = true
		if !n.Type.Known() {
			issues = append(issues, Issue{Kind: IssueUnknownType, ID: n.ID, Message: fmt.Sprintf("node %q has unknown type %q", n.ID, n.Type)})
		}
		if n.Width < 0 || n.Height < 0 {
			issues = append(issues, Issue{Kind: IssueInvalidSize, ID: n.ID, Message: fmt.Sprintf("node %q has negative size %gx%g", n.ID, n.Width, n.Height)})
		}
	}

	for _, e := range d.Edges {
		checkID("edge", e.ID)
		for _, ref := range []string{e.FromNode, e.ToNode} {
			if !nodes[ref] {
				issues = append(issues, Issue{Kind: IssueDanglingEdge, ID: e.ID, Message: fmt.Sprintf("edge %q references missing node %q", e.ID, ref)})
			}
		}
	}

	return issues
}
