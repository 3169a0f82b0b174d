package plan

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// flatItem pairs an extracted node with the nesting level used to build the
// hierarchy. The extractor emits flatItems in document order.
type flatItem struct {
	item  *Item
	level int
}

// extractor walks the token stream once, emitting one flatItem per recognized
// heading or checklist item.
type extractor struct {
	source []byte
	path   string
	lines  lineIndex

	// headingLevel is the level of the nearest preceding emitted heading,
	// or 0 before the first one. H1 is reserved for the document title and
	// never updates it.
	headingLevel int

	// listDepth counts currently open bullet/ordered lists.
	listDepth int

	// lastLine backs the degraded-accuracy fallback when a node carries no
	// source position.
	lastLine int

	out []flatItem
}

// extract produces the ordered flat item list for a document.
func extract(doc ast.Node, source []byte, path string) []flatItem {
	e := &extractor{
		source:   source,
		path:     path,
		lines:    newLineIndex(source),
		lastLine: -1,
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.List:
			if entering {
				e.listDepth++
			} else {
				e.listDepth--
			}
		case *ast.Heading:
			if entering {
				e.enterHeading(node)
				return ast.WalkSkipChildren, nil
			}
		case *ast.ListItem:
			if entering {
				e.enterListItem(node)
			}
		}
		return ast.WalkContinue, nil
	})

	return e.out
}

func (e *extractor) enterHeading(h *ast.Heading) {
	// H1 is the document title, never a hierarchy node.
	if h.Level < 2 {
		return
	}

	text := strings.TrimSpace(inlineText(h, e.source))
	line := e.resolveLine(nodeLine(h, e.lines))

	e.headingLevel = h.Level
	e.emit(&Item{
		ID:    itemID(e.path, line),
		Kind:  KindHeading,
		Text:  text,
		Line:  line,
		Level: h.Level,
	}, h.Level)
}

func (e *extractor) enterListItem(li *ast.ListItem) {
	block := li.FirstChild()
	if block == nil {
		return
	}

	state, text, ok := classifyItem(block, e.source)
	if !ok {
		return
	}

	// A marker with nothing after it is malformed; skip the line.
	if text == "" {
		return
	}

	line := e.resolveLine(nodeLine(block, e.lines))
	level := e.headingLevel + e.listDepth

	item := &Item{
		ID:    itemID(e.path, line),
		Kind:  KindTask,
		Text:  text,
		State: state,
		Line:  line,
		Level: level,
	}
	e.emit(item, level)
}

// classifyItem decides whether a list item's leading block carries checklist
// semantics, returning the state and cleaned text when it does.
func classifyItem(block ast.Node, source []byte) (State, string, bool) {
	// Only text-bearing blocks can carry a marker. A bare bullet whose
	// first child is a nested list has no text of its own; reading through
	// the container would steal a descendant's marker.
	switch block.(type) {
	case *ast.Paragraph, *ast.TextBlock:
	default:
		return "", "", false
	}

	// The task-list extension places the checkbox as the block's first
	// inline child for standard `[ ]`/`[x]` syntax.
	if cb, ok := block.FirstChild().(*east.TaskCheckBox); ok {
		state := StatePending
		if cb.IsChecked {
			state = StateDone
		}
		return state, strings.TrimSpace(inlineText(block, source)), true
	}

	// Custom markers survive as literal text; match them by prefix.
	text := strings.TrimSpace(inlineText(block, source))
	for _, m := range customMarkers {
		if strings.HasPrefix(text, m.Prefix) {
			return m.State, strings.TrimSpace(text[len(m.Prefix):]), true
		}
	}

	// Plain bullets are not checklist items.
	return "", "", false
}

func (e *extractor) emit(item *Item, level int) {
	e.out = append(e.out, flatItem{item: item, level: level})
}

// resolveLine prefers the tokenizer's source position, falling back to a
// monotonic counter when a node has none.
func (e *extractor) resolveLine(line int) int {
	if line < 0 {
		line = e.lastLine + 1
	}
	e.lastLine = line
	return line
}

// itemID derives a stable identifier from the source path and line. The same
// file parsed twice yields identical IDs.
func itemID(path string, line int) string {
	name := fmt.Sprintf("planscope://%s#%d", path, line)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
