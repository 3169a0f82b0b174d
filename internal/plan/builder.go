package plan

// buildTree converts the ordered flat item list into a forest. Each item's
// parent is the nearest preceding item with a strictly smaller level; items
// with no such predecessor become roots.
func buildTree(items []flatItem) []*Item {
	var roots []*Item

	type frame struct {
		level    int
		children *[]*Item
	}

	// Sentinel frame at level 0 owns the root list. Every emitted level is
	// at least 1 (headings start at 2, tasks at heading+depth >= 1), so the
	// sentinel is never popped.
	stack := []frame{{level: 0, children: &roots}}

	for _, fi := range items {
		for len(stack) > 1 && stack[len(stack)-1].level >= fi.level {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		*top.children = append(*top.children, fi.item)
		stack = append(stack, frame{level: fi.level, children: &fi.item.Children})
	}

	return roots
}
