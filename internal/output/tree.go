package output

import (
	"strings"
)

// Status marks a node as passed or failed.
type Status int

const (
	StatusNone Status = iota
	StatusPass
	StatusFail
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	Label    string
	Detail   string
	Status   Status
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth   int  // 0 = unlimited
	ShowStatus bool // Whether to show the pass/fail mark
}

// statusMark returns a status indicator symbol
func statusMark(s Status) string {
	switch s {
	case StatusPass:
		return "\u2713" // ✓
	case StatusFail:
		return "\u2717" // ✗
	default:
		return ""
	}
}

// RenderTree renders a tree starting from a single root node. The root's
// label is the first line.
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := []string{nodeText(root, opts)}
	lines = append(lines, renderTreeNodes(root.Children, opts, 0, "")...)
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func nodeText(node TreeNode, opts TreeRenderOptions) string {
	var parts []string
	if opts.ShowStatus {
		if mark := statusMark(node.Status); mark != "" {
			parts = append(parts, mark)
		}
	}
	parts = append(parts, node.Label)
	if node.Detail != "" {
		parts = append(parts, "("+node.Detail+")")
	}
	return strings.Join(parts, " ")
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string
	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 "  // ├──
		childPrefix := prefix + "\u2502   " // │
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
			childPrefix = prefix + "    "
		}

		lines = append(lines, prefix+connector+nodeText(node, opts))
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}
	return lines
}
