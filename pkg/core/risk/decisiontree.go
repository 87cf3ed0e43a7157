package risk

import (
	"fmt"
	"math"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// DECISION TREE EVALUATION
// Nodes live in an arena and reference children by index, which keeps
// ownership unambiguous and makes the no-cycle/no-sharing invariant
// checkable before evaluation. Evaluation itself is one post-order
// pass; every node is visited exactly once.
// =============================================================================

// NodeKind tags the decision-tree variants.
type NodeKind string

const (
	Decision NodeKind = "decision" // pick the child with maximum expected value
	Chance   NodeKind = "chance"   // probability-weighted expectation over children
	Terminal NodeKind = "terminal" // resolved numeric value
)

// Node is one arena entry. Children and Probabilities index into the
// owning Tree; Probabilities applies to chance nodes only.
type Node struct {
	Kind          NodeKind  `json:"kind"`
	Label         string    `json:"label,omitempty"`
	Value         float64   `json:"value,omitempty"` // terminal nodes only
	Children      []int     `json:"children,omitempty"`
	Probabilities []float64 `json:"probabilities,omitempty"`
}

// Tree is a rooted arena of nodes.
type Tree struct {
	Nodes []Node `json:"nodes"`
	Root  int    `json:"root"`
}

// TreeResult is the backward-induction outcome.
type TreeResult struct {
	ExpectedValue float64  `json:"expected_value"`
	BestPath      []string `json:"best_path"` // labels chosen at decision nodes, root first
}

const probabilityTolerance = 1e-6

// Validate checks the structural invariants: indices in bounds, every
// node owned by exactly one parent, no cycles, no unreachable nodes,
// and per-kind child constraints.
func (t Tree) Validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w: tree has no nodes", calcerr.ErrMalformedTree)
	}
	if t.Root < 0 || t.Root >= len(t.Nodes) {
		return fmt.Errorf("%w: root index %d out of range", calcerr.ErrMalformedTree, t.Root)
	}

	owners := make([]int, len(t.Nodes))
	for i, node := range t.Nodes {
		switch node.Kind {
		case Terminal:
			if len(node.Children) > 0 {
				return fmt.Errorf("%w: terminal node %d carries children", calcerr.ErrMalformedTree, i)
			}
		case Decision:
			if len(node.Children) == 0 {
				return fmt.Errorf("%w: decision node %d has no children", calcerr.ErrMalformedTree, i)
			}
		case Chance:
			if len(node.Children) == 0 {
				return fmt.Errorf("%w: chance node %d has no children", calcerr.ErrMalformedTree, i)
			}
			if len(node.Probabilities) != len(node.Children) {
				return fmt.Errorf("%w: chance node %d has %d probabilities for %d children",
					calcerr.ErrMalformedTree, i, len(node.Probabilities), len(node.Children))
			}
			var sum float64
			for _, p := range node.Probabilities {
				if p < 0 {
					return fmt.Errorf("%w: chance node %d has negative probability %v", calcerr.ErrInvalidInput, i, p)
				}
				sum += p
			}
			if math.Abs(sum-1) > probabilityTolerance {
				return fmt.Errorf("%w: chance node %d probabilities sum to %v, want 1", calcerr.ErrInvalidInput, i, sum)
			}
		default:
			return fmt.Errorf("%w: node %d has unknown kind %q", calcerr.ErrMalformedTree, i, node.Kind)
		}

		for _, child := range node.Children {
			if child < 0 || child >= len(t.Nodes) {
				return fmt.Errorf("%w: node %d references child %d out of range", calcerr.ErrMalformedTree, i, child)
			}
			if child == t.Root {
				return fmt.Errorf("%w: root node %d is referenced as a child", calcerr.ErrMalformedTree, child)
			}
			owners[child]++
			if owners[child] > 1 {
				return fmt.Errorf("%w: node %d is owned by more than one parent", calcerr.ErrMalformedTree, child)
			}
		}
	}

	// Single ownership rules out cycles through the root's subtree, but
	// disconnected nodes could still cycle among themselves; requiring
	// full reachability from the root closes that hole.
	reachable := countReachable(t, t.Root, make([]bool, len(t.Nodes)))
	if reachable != len(t.Nodes) {
		return fmt.Errorf("%w: %d of %d nodes unreachable from root", calcerr.ErrMalformedTree, len(t.Nodes)-reachable, len(t.Nodes))
	}
	return nil
}

func countReachable(t Tree, idx int, seen []bool) int {
	if seen[idx] {
		return 0
	}
	seen[idx] = true
	count := 1
	for _, child := range t.Nodes[idx].Children {
		count += countReachable(t, child, seen)
	}
	return count
}

// EvaluateTree runs backward induction and reports the root's expected
// value plus the labels of the children chosen at decision nodes along
// the optimal route. The path stops at the first chance node, where the
// outcome becomes probabilistic.
func EvaluateTree(t Tree) (TreeResult, error) {
	if err := t.Validate(); err != nil {
		return TreeResult{}, err
	}

	values := make([]float64, len(t.Nodes))
	choices := make([]int, len(t.Nodes)) // best child per decision node
	evaluate(t, t.Root, values, choices)

	var path []string
	for idx := t.Root; t.Nodes[idx].Kind == Decision; {
		chosen := choices[idx]
		label := t.Nodes[chosen].Label
		if label == "" {
			label = fmt.Sprintf("node %d", chosen)
		}
		path = append(path, label)
		idx = chosen
	}

	return TreeResult{ExpectedValue: values[t.Root], BestPath: path}, nil
}

// evaluate is the post-order induction pass.
func evaluate(t Tree, idx int, values []float64, choices []int) float64 {
	node := t.Nodes[idx]
	switch node.Kind {
	case Terminal:
		values[idx] = node.Value
	case Chance:
		var expected float64
		for i, child := range node.Children {
			expected += node.Probabilities[i] * evaluate(t, child, values, choices)
		}
		values[idx] = expected
	case Decision:
		best := math.Inf(-1)
		for _, child := range node.Children {
			v := evaluate(t, child, values, choices)
			if v > best {
				best = v
				choices[idx] = child
			}
		}
		values[idx] = best
	}
	return values[idx]
}
