// Package export renders stored syntax trees into external formats:
// Mermaid diagrams for visualization and a JSON report for the whole store.
package export

import (
	"fmt"
	"strings"

	"github.com/lea-labs/ustree/internal/ust"
)

// GenerateMermaid produces a Mermaid graph TD diagram of a syntax tree.
// Nodes are labeled with their type plus the name attribute when present;
// parent-child containment becomes arrows.
func GenerateMermaid(tree *ust.UniversalSyntaxTree) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if tree == nil || tree.Root == nil {
		return sb.String()
	}

	// Build node → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(nodeID string) string {
		if id, ok := nodeIDs[nodeID]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[nodeID] = id
		return id
	}

	var walk func(n *ust.ASTNode)
	walk = func(n *ust.ASTNode) {
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", getID(n.ID), nodeLabel(n)))
		for _, c := range n.Children {
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", getID(n.ID), getID(c.ID)))
			walk(c)
		}
	}
	walk(tree.Root)

	return sb.String()
}

// nodeLabel renders a node as "type: name" when it has a name, truncated so
// diagrams of real files stay readable.
func nodeLabel(n *ust.ASTNode) string {
	label := string(n.Type)
	if name, ok := n.Attribute("name", nil).(string); ok && name != "" {
		label = fmt.Sprintf("%s: %s", label, name)
	} else if val := n.Attribute("value", nil); val != nil {
		label = fmt.Sprintf("%s: %v", label, val)
	}
	label = strings.ReplaceAll(label, `"`, "'")
	if len(label) > 40 {
		label = label[:37] + "..."
	}
	return label
}
