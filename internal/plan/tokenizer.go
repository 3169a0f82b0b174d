package plan

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is the shared goldmark engine. Only its parser is used; planscope
// never renders. The TaskList extension turns standard `[ ]`/`[x]` prefixes
// into TaskCheckBox nodes; custom markers stay in the item text and are
// handled by the extractor.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.TaskList),
)

// tokenize parses source into a goldmark AST.
func tokenize(source []byte) ast.Node {
	return markdown.Parser().Parse(text.NewReader(source))
}

// lineIndex maps byte offsets back to zero-indexed line numbers.
type lineIndex []int

func newLineIndex(source []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range source {
		if b == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// lineAt returns the line containing the given byte offset.
func (li lineIndex) lineAt(offset int) int {
	n := sort.Search(len(li), func(i int) bool { return li[i] > offset })
	return n - 1
}

// nodeLine returns the zero-indexed line of a block node, or -1 when the node
// carries no source segments (loose lists can produce empty ones).
func nodeLine(n ast.Node, li lineIndex) int {
	if n.Type() != ast.TypeBlock {
		return -1
	}
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return -1
	}
	return li.lineAt(lines.At(0).Start)
}

// inlineText collects the plain text beneath a node. Raw HTML fragments and
// task checkboxes are dropped so the result is clean display text.
func inlineText(node ast.Node, source []byte) string {
	var sb strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		case *ast.RawHTML, *east.TaskCheckBox:
			// stripped from display text
		default:
			if c.HasChildren() {
				sb.WriteString(inlineText(c, source))
			}
		}
	}
	return sb.String()
}
