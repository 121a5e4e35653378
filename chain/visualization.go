package chain

import (
	"fmt"
	"sort"
	"strings"
)

// Exporter renders a goal graph in diagram formats by walking the
// declared connections, conditions and actions from a root goal. It is
// an explicit introspection pass over the object graph; nothing is
// registered globally as a side effect of construction.
type Exporter struct {
	root *Goal
}

// NewExporter creates an exporter rooted at the given goal.
func NewExporter(root *Goal) *Exporter {
	return &Exporter{root: root}
}

// MermaidOptions defines configuration for Mermaid diagram generation.
type MermaidOptions struct {
	// Direction of the flowchart (e.g., "TD", "LR")
	Direction string
}

// sortedGoals returns the reachable goals with the root first and the
// rest sorted by label, for deterministic output.
func (e *Exporter) sortedGoals() []*Goal {
	index := indexGoals(e.root)
	labels := make([]string, 0, len(index))
	for label := range index {
		if label != e.root.label {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	goals := make([]*Goal, 0, len(index))
	goals = append(goals, e.root)
	for _, label := range labels {
		goals = append(goals, index[label])
	}
	return goals
}

// DrawMermaid generates a Mermaid flowchart of the goal graph.
func (e *Exporter) DrawMermaid() string {
	return e.DrawMermaidWithOptions(MermaidOptions{Direction: "TD"})
}

// DrawMermaidWithOptions generates a Mermaid flowchart with custom options.
func (e *Exporter) DrawMermaidWithOptions(opts MermaidOptions) string {
	var sb strings.Builder

	direction := opts.Direction
	if direction == "" {
		direction = "TD"
	}
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))

	goals := e.sortedGoals()

	sb.WriteString("    START([\"START\"])\n")
	sb.WriteString(fmt.Sprintf("    START --> %s\n", e.root.label))
	sb.WriteString("    style START fill:#90EE90\n")

	for _, g := range goals {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", g.label, g.label))
	}

	for _, g := range goals {
		for _, cn := range g.connections {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", g.label, cn.UserIntent, cn.Target.label))
		}
		for _, cond := range g.conditions {
			sb.WriteString(fmt.Sprintf("    %s -. condition .-> %s\n", g.label, cond.Target.label))
		}
		if a := g.nextAction; a != nil {
			actionNode := g.label + "_action"
			sb.WriteString(fmt.Sprintf("    %s((\"action\"))\n", actionNode))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", g.label, actionNode))
			sb.WriteString(fmt.Sprintf("    style %s fill:#FFFFE0\n", actionNode))
			if a.nextGoal != nil {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", actionNode, a.nextGoal.label))
			}
			for _, cond := range a.conditions {
				sb.WriteString(fmt.Sprintf("    %s -. condition .-> %s\n", actionNode, cond.Target.label))
			}
			if a.conversationEnd {
				sb.WriteString(fmt.Sprintf("    %s --> END\n", actionNode))
			}
		}
	}

	if e.hasEnd(goals) {
		sb.WriteString("    END([\"END\"])\n")
		sb.WriteString("    style END fill:#FFB6C1\n")
	}

	sb.WriteString(fmt.Sprintf("    style %s fill:#87CEEB\n", e.root.label))
	return sb.String()
}

// DrawDOT generates a DOT (Graphviz) representation of the goal graph.
func (e *Exporter) DrawDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString("    rankdir=TD;\n")
	sb.WriteString("    node [shape=box];\n")

	goals := e.sortedGoals()

	sb.WriteString("    START [label=\"START\", shape=ellipse, style=filled, fillcolor=lightgreen];\n")
	sb.WriteString(fmt.Sprintf("    START -> %s;\n", e.root.label))
	sb.WriteString(fmt.Sprintf("    %s [style=filled, fillcolor=lightblue];\n", e.root.label))

	for _, g := range goals {
		for _, cn := range g.connections {
			sb.WriteString(fmt.Sprintf("    %s -> %s [label=\"%s\"];\n", g.label, cn.Target.label, cn.UserIntent))
		}
		for _, cond := range g.conditions {
			sb.WriteString(fmt.Sprintf("    %s -> %s [style=dotted, label=\"condition\"];\n", g.label, cond.Target.label))
		}
		if a := g.nextAction; a != nil {
			actionNode := g.label + "_action"
			sb.WriteString(fmt.Sprintf("    %s [label=\"action\", shape=ellipse, style=filled, fillcolor=lightyellow];\n", actionNode))
			sb.WriteString(fmt.Sprintf("    %s -> %s;\n", g.label, actionNode))
			if a.nextGoal != nil {
				sb.WriteString(fmt.Sprintf("    %s -> %s;\n", actionNode, a.nextGoal.label))
			}
			for _, cond := range a.conditions {
				sb.WriteString(fmt.Sprintf("    %s -> %s [style=dotted, label=\"condition\"];\n", actionNode, cond.Target.label))
			}
			if a.conversationEnd {
				sb.WriteString(fmt.Sprintf("    %s -> END;\n", actionNode))
			}
		}
	}

	if e.hasEnd(goals) {
		sb.WriteString("    END [label=\"END\", shape=ellipse, style=filled, fillcolor=lightpink];\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

func (e *Exporter) hasEnd(goals []*Goal) bool {
	for _, g := range goals {
		if g.nextAction != nil && g.nextAction.conversationEnd {
			return true
		}
	}
	return false
}
