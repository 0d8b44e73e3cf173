package navigation

// GraphPatch is a set of edges synthesized outside a rebuild
// The graph owner applies it; injected edges live until the next rebuild
type GraphPatch struct {
	Add  []Edge
	Note string
}

func (p GraphPatch) Empty() bool { return len(p.Add) == 0 }
