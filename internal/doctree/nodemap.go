package doctree

// NodeMap is a name-to-node collection that preserves insertion order,
// so topics and subtopics marshal in the order they appeared in the
// source document. Setting an existing name replaces the node but keeps
// its original position (last one wins).
type NodeMap struct {
	names []string
	nodes map[string]*Node
}

// NewNodeMap returns an empty ordered map.
func NewNodeMap() *NodeMap {
	return &NodeMap{nodes: make(map[string]*Node)}
}

// Set inserts or replaces the node stored under name.
func (m *NodeMap) Set(name string, n *Node) {
	if _, ok := m.nodes[name]; !ok {
		m.names = append(m.names, name)
	}
	m.nodes[name] = n
}

// Get returns the node stored under name.
func (m *NodeMap) Get(name string) (*Node, bool) {
	if m == nil {
		return nil, false
	}
	n, ok := m.nodes[name]
	return n, ok
}

// Len reports the number of entries.
func (m *NodeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the entry names in insertion order.
func (m *NodeMap) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Clone returns a deep copy.
func (m *NodeMap) Clone() *NodeMap {
	if m == nil {
		return nil
	}
	out := &NodeMap{
		names: make([]string, len(m.names)),
		nodes: make(map[string]*Node, len(m.nodes)),
	}
	copy(out.names, m.names)
	for name, n := range m.nodes {
		out.nodes[name] = n.Clone()
	}
	return out
}

func (m *NodeMap) walk(ancestors []string, fn Visit) error {
	if m == nil {
		return nil
	}
	for _, name := range m.names {
		n := m.nodes[name]
		if err := fn(name, ancestors, n); err != nil {
			return err
		}
		path := append(ancestors[:len(ancestors):len(ancestors)], name)
		if err := n.Subtopics.walk(path, fn); err != nil {
			return err
		}
	}
	return nil
}
