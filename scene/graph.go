package scene

// Graph is the flat set of nodes that make up the scene. It is not safe for
// concurrent use; all mutation happens on the update goroutine.
type Graph struct {
	nodes []*Node
}

func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) Add(n *Node) {
	g.nodes = append(g.nodes, n)
}

// Remove drops n from the graph. It reports whether n was present.
func (g *Graph) Remove(n *Node) bool {
	for i, existing := range g.nodes {
		if existing == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Nodes returns the graph's nodes in insertion order. The slice must not be
// modified.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) Contains(n *Node) bool {
	for _, existing := range g.nodes {
		if existing == n {
			return true
		}
	}
	return false
}
