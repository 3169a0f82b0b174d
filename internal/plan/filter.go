package plan

// prune drops every branch that contains no task anywhere within it, marking
// HasTasks on each node first.
func prune(items []*Item) []*Item {
	for _, it := range items {
		markTaskDescendants(it)
	}
	return filterItems(items)
}

// markTaskDescendants flags each subtree, post-order. A task counts for its
// own subtree; a heading depends entirely on its children.
func markTaskDescendants(item *Item) bool {
	has := item.Kind == KindTask
	for _, c := range item.Children {
		if markTaskDescendants(c) {
			has = true
		}
	}
	item.HasTasks = has
	return has
}

// filterItems rebuilds the list keeping only subtrees with tasks, preserving
// document order.
func filterItems(items []*Item) []*Item {
	var out []*Item
	for _, it := range items {
		if !it.HasTasks {
			continue
		}
		it.Children = filterItems(it.Children)
		out = append(out, it)
	}
	return out
}
