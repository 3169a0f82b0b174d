package plan

// aggregate computes the derived Status for every node with at least one
// child, from the states of all descendant tasks.
func aggregate(items []*Item) {
	for _, it := range items {
		aggregateItem(it)
	}
}

func aggregateItem(item *Item) {
	for _, c := range item.Children {
		aggregateItem(c)
	}

	if len(item.Children) == 0 {
		return
	}

	var states []State
	for _, c := range item.Children {
		collectTaskStates(c, &states)
	}

	item.Status = summarize(states)
}

// collectTaskStates gathers the states of every task in a subtree, the root
// included, recursing through intermediate headings and nested tasks.
func collectTaskStates(item *Item, states *[]State) {
	if item.Kind == KindTask {
		*states = append(*states, item.State)
	}
	for _, c := range item.Children {
		collectTaskStates(c, states)
	}
}

// summarize reduces a task state multiset to a Status. The branch order is
// significant: Done is checked before InProgress, InProgress before Partial.
func summarize(states []State) Status {
	if len(states) == 0 {
		return StatusPending
	}

	done := 0
	inProgress := false
	for _, s := range states {
		switch s {
		case StateDone:
			done++
		case StateInProgress:
			inProgress = true
		}
	}

	switch {
	case done == len(states):
		return StatusDone
	case inProgress:
		return StatusInProgress
	case done > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}
