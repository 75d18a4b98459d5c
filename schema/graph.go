package schema

// NodeID indexes one (table, column) pair in a Graph's arena. Edges are
// traversed by index, never by owning pointer.
type NodeID int

// Node is one arena entry: a table/column pair and the columns that
// reference it.
type Node struct {
	Table  string
	Column string

	// RefTable/RefColumn name the (table, column) this node's column is
	// itself a reference to. Both are empty for non-reference columns.
	RefTable  string
	RefColumn string

	// ReferencedBy lists nodes whose column is a reference pointing at
	// this node's (table, column).
	ReferencedBy []NodeID
}

// Graph is the precomputed static reference graph over a schema's tables:
// an arena of (table, column) nodes with adjacency by reference edges,
// built once at schema load and reused by every cascade edit.
type Graph struct {
	nodes   []Node
	byTable map[string]map[string]NodeID
}

func buildGraph(tables map[string]*TableDefinitions) *Graph {
	g := &Graph{byTable: make(map[string]map[string]NodeID)}

	nodeID := func(table, column string) NodeID {
		cols, ok := g.byTable[table]
		if !ok {
			cols = make(map[string]NodeID)
			g.byTable[table] = cols
		}
		if id, ok := cols[column]; ok {
			return id
		}
		id := NodeID(len(g.nodes))
		g.nodes = append(g.nodes, Node{Table: table, Column: column})
		cols[column] = id
		return id
	}

	for _, t := range tables {
		for _, def := range t.Definitions {
			for _, f := range def.Fields {
				nodeID(t.Name, f.Name)
				if f.ReferenceTable == "" {
					continue
				}
				from := nodeID(t.Name, f.Name)
				to := nodeID(f.ReferenceTable, f.ReferenceColumn)
				g.nodes[from].RefTable = f.ReferenceTable
				g.nodes[from].RefColumn = f.ReferenceColumn
				g.nodes[to].ReferencedBy = append(g.nodes[to].ReferencedBy, from)
			}
		}
	}

	return g
}

// Node looks up the arena entry for a (table, column) pair.
func (g *Graph) Node(table, column string) (NodeID, bool) {
	cols, ok := g.byTable[table]
	if !ok {
		return 0, false
	}
	id, ok := cols[column]
	return id, ok
}

// ResolveReference follows reference edges from (table, column) to the
// column they ultimately point at: a reference column resolves to its
// target, a target that is itself a reference keeps resolving, and a
// non-reference column (or one unknown to the graph) resolves to itself.
// Reference cycles stop at the first revisited node.
func (g *Graph) ResolveReference(table, column string) (string, string) {
	visited := map[NodeID]bool{}
	for {
		id, ok := g.Node(table, column)
		if !ok || visited[id] {
			return table, column
		}
		visited[id] = true
		n := g.nodes[id]
		if n.RefTable == "" {
			return table, column
		}
		table, column = n.RefTable, n.RefColumn
	}
}

// ReferencingColumns returns every (table, column) that references the
// given (table, column), i.e. the edges a cascade edit of that column must
// follow.
func (g *Graph) ReferencingColumns(table, column string) []Node {
	id, ok := g.Node(table, column)
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(g.nodes[id].ReferencedBy))
	for _, refID := range g.nodes[id].ReferencedBy {
		out = append(out, g.nodes[refID])
	}
	return out
}
