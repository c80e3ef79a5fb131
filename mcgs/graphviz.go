package mcgs

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
)

// WriteDOT renders every node interned by e, and the edges between them, as
// a Graphviz DOT graph into w: one graph node per interned state labelled with its N
// and Q, one graph edge per populated edge-visit entry labelled with its
// visit count. This reads the tree without mutating it and never opens a
// file itself — it is a debug aid in the same spirit as logging, not a
// persistence feature.
func (e *Engine[B]) WriteDOT(w io.Writer) error {
	g := gographviz.NewGraph()
	if err := g.SetName("mcgs"); err != nil {
		return err
	}
	if err := g.SetDir(true); err != nil {
		return err
	}

	e.mu.Lock()
	nodes := make(map[B]*Node[B], len(e.nodes))
	for b, n := range e.nodes {
		nodes[b] = n
	}
	e.mu.Unlock()

	ids := make(map[B]string, len(nodes))
	i := 0
	for b, n := range nodes {
		id := fmt.Sprintf("n%d", i)
		i++
		ids[b] = id
		label := fmt.Sprintf("\"N=%d Q=%.3f\"", n.N(), n.Q())
		if err := g.AddNode("mcgs", id, map[string]string{"label": label}); err != nil {
			return err
		}
	}

	for b, n := range nodes {
		for child, visits := range n.EdgeVisits() {
			childID, ok := ids[child]
			if !ok {
				continue
			}
			attrs := map[string]string{"label": fmt.Sprintf("\"%d\"", visits)}
			if err := g.AddEdge(ids[b], childID, true, attrs); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, g.String())
	return err
}
