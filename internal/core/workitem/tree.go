package workitem

import (
	"slices"
	"strings"
)

// byCreated orders by creation time, then id for equal timestamps.
func byCreated(a, b Item) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID(), b.ID())
}

// OrderClosure sorts a closure for presentation: Epics, then Tasks, then
// Sub-tasks grouped under their Task in Task order. Each group is ordered by
// creation time. Sub-tasks whose Task is not in the set come last.
func OrderClosure(items []Item) []Item {
	var epics, tasks, subs []Item
	for _, it := range items {
		switch it.Type {
		case KindEpic:
			epics = append(epics, it)
		case KindTask:
			tasks = append(tasks, it)
		default:
			subs = append(subs, it)
		}
	}
	slices.SortStableFunc(epics, byCreated)
	slices.SortStableFunc(tasks, byCreated)
	slices.SortStableFunc(subs, byCreated)

	byTask := make(map[string][]Item, len(tasks))
	for _, s := range subs {
		byTask[s.TaskID] = append(byTask[s.TaskID], s)
	}

	out := make([]Item, 0, len(items))
	out = append(out, epics...)
	out = append(out, tasks...)
	for _, t := range tasks {
		out = append(out, byTask[t.TaskID]...)
		delete(byTask, t.TaskID)
	}
	for _, s := range subs {
		if _, orphan := byTask[s.TaskID]; orphan {
			out = append(out, s)
		}
	}
	return out
}

// Node is an item with its direct children.
type Node struct {
	Item     Item    `json:"item"`
	Children []*Node `json:"children,omitempty"`
}

// BuildTree groups items Epic -> Task -> Sub-task. Items whose parent is not
// in the input become roots so nothing is dropped. Siblings are ordered by
// creation time.
func BuildTree(items []Item) []*Node {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		if a.Type.Rank() != b.Type.Rank() {
			return a.Type.Rank() - b.Type.Rank()
		}
		return byCreated(a, b)
	})

	epics := make(map[string]*Node)
	tasks := make(map[string]*Node)
	var roots []*Node

	for _, it := range sorted {
		node := &Node{Item: it}
		switch it.Type {
		case KindEpic:
			epics[it.EpicID] = node
			roots = append(roots, node)
		case KindTask:
			tasks[it.TaskID] = node
			if parent, ok := epics[it.EpicID]; ok {
				parent.Children = append(parent.Children, node)
			} else {
				roots = append(roots, node)
			}
		default:
			if parent, ok := tasks[it.TaskID]; ok {
				parent.Children = append(parent.Children, node)
			} else {
				roots = append(roots, node)
			}
		}
	}
	return roots
}

// Counts tallies items per kind.
type Counts struct {
	Epic    int `json:"epic"`
	Task    int `json:"task"`
	SubTask int `json:"subtask"`
}

// CountKinds tallies items per kind.
func CountKinds(items []Item) Counts {
	var c Counts
	for _, it := range items {
		switch it.Type {
		case KindEpic:
			c.Epic++
		case KindTask:
			c.Task++
		case KindSubTask:
			c.SubTask++
		}
	}
	return c
}

// Total is the sum of all kinds.
func (c Counts) Total() int { return c.Epic + c.Task + c.SubTask }
