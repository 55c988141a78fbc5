package searcher

import (
	"connect4/game"
	"connect4/knowledge"
	"math"
)

// NodeID indexes a node in its tree. Children are owned by the tree and
// refer back to their parent by ID only.
type NodeID int32

const noParent NodeID = -1

type node struct {
	board    game.Board
	player   game.Player // To move at this node
	key      game.Key
	parent   NodeID
	action   int // Column that led here from the parent
	depth    int
	untried  []int
	children []NodeID
	wins     float64
	visits   int
}

// mover is the player whose move produced the node.
func (n *node) mover() game.Player {
	return n.player.Opponent()
}

type tree struct {
	nodes    []node
	rules    game.Rules
	maxDepth int
}

func newTree(board game.Board, player game.Player, rules game.Rules) *tree {
	t := &tree{nodes: make([]node, 0, 1024), rules: rules}
	t.add(board, player, noParent, NoMove, 0)
	return t
}

func (t *tree) root() *node {
	return &t.nodes[0]
}

// get returns a pointer that stays valid only until the next add.
func (t *tree) get(id NodeID) *node {
	return &t.nodes[id]
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) add(board game.Board, player game.Player, parent NodeID, action, depth int) NodeID {
	var untried []int
	if !t.rules.IsTerminal(board) {
		untried = t.rules.ValidActions(board)
	}
	t.maxDepth = max(t.maxDepth, depth)
	t.nodes = append(t.nodes, node{
		board:   board,
		player:  player,
		key:     board.Key(player),
		parent:  parent,
		action:  action,
		depth:   depth,
		untried: untried,
	})
	return NodeID(len(t.nodes) - 1)
}

// expand turns the last untried action of id into a new child.
func (t *tree) expand(id NodeID) NodeID {
	n := t.get(id)
	last := len(n.untried) - 1
	action := n.untried[last]
	n.untried = n.untried[:last]

	board := t.rules.ApplyMove(n.board, action, n.player)
	player, depth := n.player.Opponent(), n.depth+1
	child := t.add(board, player, id, action, depth)

	// add may have grown the arena
	n = t.get(id)
	n.children = append(n.children, child)
	return child
}

// selectChild picks the child with the highest UCB1 score. Unvisited
// children win immediately; ties keep the first child encountered.
func (t *tree) selectChild(id NodeID, c float64) NodeID {
	n := t.get(id)
	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, childID := range n.children {
		child := t.get(childID)
		score := ucb1(child.wins, child.visits, n.visits, c)
		if math.IsInf(score, 1) {
			return childID
		}
		if score > bestScore {
			bestScore = score
			best = childID
		}
	}
	return best
}

// update adds one visit and a reward to id.
func (t *tree) update(id NodeID, reward float64) {
	n := t.get(id)
	n.visits++
	n.wins += reward
}

// seed overwrites a node's statistics with stored ones. It reports whether
// the store knew the position.
func (t *tree) seed(id NodeID, kb knowledge.Base) bool {
	if kb == nil {
		return false
	}
	n := t.get(id)
	stats, ok := kb.Lookup(n.key)
	if !ok {
		return false
	}
	n.wins = stats.Wins
	n.visits = stats.Visits
	return true
}

// mostVisited returns the root child with the most visits, first on ties.
func (t *tree) mostVisited(id NodeID) (NodeID, bool) {
	n := t.get(id)
	if len(n.children) == 0 {
		return noParent, false
	}
	best := n.children[0]
	for _, childID := range n.children[1:] {
		if t.get(childID).visits > t.get(best).visits {
			best = childID
		}
	}
	return best, true
}
