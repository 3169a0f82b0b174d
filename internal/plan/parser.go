package plan

import "strings"

// Parse turns markdown text into a Plan. It is a pure function over the
// input: no I/O, deterministic, and total. Malformed lines are skipped at
// the item level and never abort the parse.
func Parse(source []byte, path string) *Plan {
	doc := tokenize(source)
	flat := extract(doc, source, path)

	// Counts come from the flat extraction so tasks pruned alongside an
	// empty branch are still part of the histogram.
	var counts StateCounts
	total := 0
	for _, fi := range flat {
		if fi.item.Kind != KindTask {
			continue
		}
		total++
		counts.Add(fi.item.State)
	}

	items := buildTree(flat)
	items = prune(items)
	aggregate(items)

	return &Plan{
		Title:      documentTitle(source),
		Path:       path,
		Items:      items,
		TotalTasks: total,
		Counts:     counts,
	}
}

// documentTitle returns the first non-empty line with any leading heading
// markers stripped, or DefaultTitle when the document has none.
func documentTitle(source []byte) string {
	for _, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if trimmed == "" {
			return DefaultTitle
		}
		return trimmed
	}
	return DefaultTitle
}
