package orgchart

import (
	"github.com/kadro-api/internal/domain"
)

// Node - узел организационной схемы
type Node struct {
	Position domain.Position
	Holder   *domain.Personnel
	Children []*Node
}

// FlatNode - узел дерева в прямом обходе с глубиной
type FlatNode struct {
	Position domain.Position
	Holder   *domain.Personnel
	Depth    int
}

// BuildTree строит лес по полю reportsTo.
// Корнями становятся должности без руководителя или с висячей ссылкой.
// Дети упорядочены ранжировщиком. Циклы не приводят к бесконечной рекурсии:
// цикл, недостижимый из корней, разрезается на его лучшей по рангу должности.
func (r *Ranker) BuildTree(positions []domain.Position, personnel []domain.Personnel) []*Node {
	rows := r.OrderPositions(positions, personnel)

	nodes := make(map[string]*Node, len(rows))
	for _, row := range rows {
		nodes[row.Position.ID] = &Node{Position: row.Position, Holder: row.Holder}
	}

	children := make(map[string][]*Node, len(rows))
	roots := make([]*Node, 0, 8)
	for _, row := range rows {
		node := nodes[row.Position.ID]
		parent := row.Position.ReportsTo
		if parent == nil || *parent == row.Position.ID || nodes[*parent] == nil {
			roots = append(roots, node)
			continue
		}
		children[*parent] = append(children[*parent], node)
	}

	visited := make(map[string]struct{}, len(rows))
	var walk func(n *Node)
	walk = func(n *Node) {
		visited[n.Position.ID] = struct{}{}
		for _, child := range children[n.Position.ID] {
			if _, ok := visited[child.Position.ID]; ok {
				continue
			}
			n.Children = append(n.Children, child)
			walk(child)
		}
	}

	for _, root := range roots {
		walk(root)
	}

	if len(visited) != len(nodes) {
		parents := parentIndex(positions)
		for _, row := range rows {
			id := row.Position.ID
			if _, ok := visited[id]; ok || !onCycle(parents, id) {
				continue
			}
			node := nodes[id]
			roots = append(roots, node)
			walk(node)
		}
	}

	return roots
}

// Flatten возвращает узлы дерева в прямом обходе
func Flatten(roots []*Node) []FlatNode {
	var out []FlatNode
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		out = append(out, FlatNode{Position: n.Position, Holder: n.Holder, Depth: depth})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
	return out
}
