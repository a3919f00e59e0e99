package menu

import (
	"sort"

	"gachastore/internal/domain"
)

// Node is one entry of the rendered navigation tree.
type Node struct {
	domain.Menu
	Children []*Node `json:"children"`
}

// BuildTree assembles a forest from a flat menu list. A menu whose
// parent is missing from the input is dropped, so a partial fetch never
// shows a subtree detached from its place in the hierarchy. Siblings
// keep display_order ascending with creation time as the tiebreaker.
func BuildTree(menus []domain.Menu) []*Node {
	nodes := make(map[string]*Node, len(menus))
	for i := range menus {
		nodes[menus[i].ID] = &Node{Menu: menus[i], Children: []*Node{}}
	}

	var roots []*Node
	for _, n := range nodes {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := nodes[*n.ParentID]; ok {
			parent.Children = append(parent.Children, n)
		}
	}

	var sortLevel func(level []*Node)
	sortLevel = func(level []*Node) {
		sort.SliceStable(level, func(i, j int) bool {
			if level[i].DisplayOrder != level[j].DisplayOrder {
				return level[i].DisplayOrder < level[j].DisplayOrder
			}
			return level[i].CreatedAt.Before(level[j].CreatedAt)
		})
		for _, n := range level {
			sortLevel(n.Children)
		}
	}
	sortLevel(roots)

	if roots == nil {
		roots = []*Node{}
	}
	return roots
}
