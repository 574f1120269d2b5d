package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderTreeLines_Empty(t *testing.T) {
	lines := RenderTreeLines(nil, TreeRenderOptions{})
	if len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestRenderTreeLines_SingleNode(t *testing.T) {
	lines := RenderTreeLines([]TreeNode{{Label: "tabs", Status: StatusPass}}, TreeRenderOptions{ShowStatus: true})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0] != "└── ✓ tabs" {
		t.Errorf("got %q", lines[0])
	}
}

func TestRenderTreeLines_WithChildren(t *testing.T) {
	nodes := []TreeNode{
		{Label: "listbox", Status: StatusFail, Children: []TreeNode{
			{Label: "step 3: focused = A, want B"},
			{Label: "step 5: toggles = 0, want 1"},
		}},
		{Label: "tabs", Status: StatusPass},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{ShowStatus: true})
	want := []string{
		"├── ✗ listbox",
		"│   ├── step 3: focused = A, want B",
		"│   └── step 5: toggles = 0, want 1",
		"└── ✓ tabs",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeLines_MaxDepth(t *testing.T) {
	nodes := []TreeNode{{Label: "a", Children: []TreeNode{{Label: "b"}}}}
	lines := RenderTreeLines(nodes, TreeRenderOptions{MaxDepth: 1})
	if len(lines) != 1 {
		t.Errorf("expected children cut at depth 1, got %v", lines)
	}
}

func TestRenderTree(t *testing.T) {
	root := TreeNode{Label: "scenarios", Detail: "2 files", Children: []TreeNode{
		{Label: "a.yaml", Status: StatusPass},
		{Label: "b.yaml", Status: StatusPass},
	}}
	got := RenderTree(root, TreeRenderOptions{})
	want := "scenarios (2 files)\n├── a.yaml\n└── b.yaml"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStatusMark(t *testing.T) {
	if statusMark(StatusPass) != "✓" || statusMark(StatusFail) != "✗" || statusMark(StatusNone) != "" {
		t.Error("unexpected status marks")
	}
}

func TestErrorWritesToStderr(t *testing.T) {
	var buf bytes.Buffer
	old := Stderr
	Stderr = &buf
	defer func() { Stderr = old }()

	Error("load %s: %v", "x.yaml", "boom")
	Warning("slow")
	out := buf.String()
	if !strings.Contains(out, "ERROR:") || !strings.Contains(out, "load x.yaml: boom") {
		t.Errorf("error output = %q", out)
	}
	if !strings.Contains(out, "WARNING: slow") {
		t.Errorf("warning output = %q", out)
	}
}
