package searcher

// Visit is the statistics of one root child after a search.
type Visit struct {
	Column int
	Visits int
	Wins   float64
}

// Policy returns the root children of the last search in expansion order.
func (m *MCTS) Policy() []Visit {
	if m.tree == nil {
		return nil
	}
	root := m.tree.root()
	policy := make([]Visit, 0, len(root.children))
	for _, id := range root.children {
		child := m.tree.get(id)
		policy = append(policy, Visit{Column: child.action, Visits: child.visits, Wins: child.wins})
	}
	return policy
}

// RootVisits is the visit count of the last search's root.
func (m *MCTS) RootVisits() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.root().visits
}
