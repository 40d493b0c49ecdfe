package canvas

import (
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		doc   Document
		kinds []IssueKind
	}{
		{
			name: "Clean",
			doc: Document{
				Nodes: []Node{{ID: "a", Type: TypeText}, {ID: "b", Type: TypeGroup}},
				Edges: []Edge{{ID: "e", FromNode: "a", ToNode: "b"}},
			},
		},
		{
			name:  "Empty",
			doc:   Document{},
			kinds: nil,
		},
		{
			name: "DuplicateNode",
			doc: Document{
				Nodes: []Node{{ID: "a", Type: TypeText}, {ID: "a", Type: TypeText}},
			},
			kinds: []IssueKind{IssueDuplicateID},
		},
		{
			name: "EdgeSharesNodeID",
			doc: Document{
				Nodes: []Node{{ID: "a", Type: TypeText}},
				Edges: []Edge{{ID: "a", FromNode: "a", ToNode: "a"}},
			},
			kinds: []IssueKind{IssueDuplicateID},
		},
		{
			name: "Dangling",
			doc: Document{
				Nodes: []Node{{ID: "a", Type: TypeText}},
				Edges: []Edge{{ID: "e", FromNode: "a", ToNode: "ghost"}},
			},
			kinds: []IssueKind{IssueDanglingEdge},
		},
		{
			name: "UnknownType",
			doc: Document{
				Nodes: []Node{{ID: "a", Type: "agent"}},
			},
			kinds: []IssueKind{IssueUnknownType},
		},
		{
			name: "NegativeSize",
			doc: Document{
				Nodes: []Node{{ID: "a", Type: TypeText, Width: -1, Height: 10}},
			},
			kinds: []IssueKind{IssueInvalidSize},
		},
		{
			name: "MissingID",
			doc: Document{
				Nodes: []Node{{Type: TypeText}},
			},
			kinds: []IssueKind{IssueMissingID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(tt.doc)
			if len(issues) != len(tt.kinds) {
				t.Fatalf("issues = %v, want kinds %v", issues, tt.kinds)
			}
			for i, issue := range issues {
				if issue.Kind != tt.kinds[i] {
					t.Errorf("issue[%d].Kind = %s, want %s", i, issue.Kind, tt.kinds[i])
				}
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Kind: IssueDanglingEdge, ID: "e", Message: `edge "e" references missing node "x"`}
	want := `dangling_edge: edge "e" references missing node "x"`
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestExampleBoardIsClean(t *testing.T) {
	doc, err := ReadFile(filepath.Join("..", "..", "examples", "canvas", "board.canvas"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(doc.Nodes) != 5 || len(doc.Edges) != 3 {
		t.Errorf("got %d nodes, %d edges, want 5, 3", len(doc.Nodes), len(doc.Edges))
	}
	if issues := Validate(doc); len(issues) != 0 {
		t.Errorf("example board has issues: %v", issues)
	}
}
