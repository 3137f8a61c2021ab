package syntax

// Depth returns the nesting depth of n; a leaf has depth 1. Translating a
// tree recurses this deep.
func Depth(n Node) int {
	max := 0
	for _, c := range children(n) {
		if d := Depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

// Walk calls fn for n and every node below it, parents first. Returning false
// from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c, fn)
	}
}

func children(n Node) []Node {
	switch n := n.(type) {
	case *Repetition:
		return []Node{n.Sub}
	case *Group:
		return []Node{n.Sub}
	case *Concat:
		return n.Items
	case *Alternation:
		return n.Alternatives
	case *BracketedClass:
		return []Node{n.Set}
	case *ClassSetBinaryOp:
		return []Node{n.LHS, n.RHS}
	case *ClassSetUnion:
		out := make([]Node, len(n.Items))
		for i, it := range n.Items {
			out[i] = it
		}
		return out
	}
	return nil
}
