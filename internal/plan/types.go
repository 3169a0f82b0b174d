// Package plan parses markdown checklist documents into a typed,
// status-aggregated task tree. Parsing is total: any UTF-8 input produces a
// Plan, degrading to an empty one rather than failing.
package plan

// Kind distinguishes the two node types in a parsed tree.
type Kind string

const (
	KindHeading Kind = "heading"
	KindTask    Kind = "task"
)

// State is the checkbox state of a task node.
type State string

const (
	StatePending    State = "pending"     // [ ]
	StateDone       State = "done"        // [x] or [X]
	StateInProgress State = "in_progress" // [-] or [>]
	StateBlocked    State = "blocked"     // [!]
)

// Status is the derived completion summary of a node with children, computed
// from the states of all descendant tasks.
type Status string

const (
	StatusPending    Status = "pending"
	StatusDone       Status = "done"
	StatusPartial    Status = "partial"
	StatusInProgress Status = "in_progress"
)

// customMarkers maps bracket markers that goldmark's task-list extension does
// not recognize to their states. Matched by prefix on the item's leading text.
var customMarkers = []struct {
	Prefix string
	State  State
}{
	{"[-]", StateInProgress},
	{"[>]", StateInProgress},
	{"[!]", StateBlocked},
}

// Item is a node of the parsed tree: either a section heading or a task.
type Item struct {
	// ID is stable across parses of the same file: a SHA-1 UUID derived
	// from the source path and line number.
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Text string `json:"text"`

	// State is set only on task nodes.
	State State `json:"state,omitempty"`

	// Status is set only on nodes with at least one child.
	Status Status `json:"status,omitempty"`

	// Line is the zero-indexed source line, used for navigation only.
	Line int `json:"line"`

	// Level is the nesting depth used to build the hierarchy: the heading
	// level for headings, heading level plus list depth for tasks.
	Level int `json:"level"`

	Children []*Item `json:"children,omitempty"`

	// HasTasks reports whether this subtree (the node itself included, if
	// it is a task) contains at least one task node.
	HasTasks bool `json:"has_tasks"`
}

// StateCounts is a histogram of task states across a whole document.
type StateCounts struct {
	Pending    int `json:"pending"`
	Done       int `json:"done"`
	InProgress int `json:"in_progress"`
	Blocked    int `json:"blocked"`
}

// Add increments the bucket for the given state.
func (c *StateCounts) Add(s State) {
	switch s {
	case StatePending:
		c.Pending++
	case StateDone:
		c.Done++
	case StateInProgress:
		c.InProgress++
	case StateBlocked:
		c.Blocked++
	}
}

// Total returns the number of counted tasks.
func (c StateCounts) Total() int {
	return c.Pending + c.Done + c.InProgress + c.Blocked
}

// DefaultTitle is used when a document yields no usable title line.
const DefaultTitle = "Untitled Plan"

// Plan is the parse result for one checklist file.
type Plan struct {
	Title string `json:"title"`
	Path  string `json:"path"`

	// Items are the root nodes of the pruned, aggregated tree.
	Items []*Item `json:"items"`

	// TotalTasks counts every task extracted from the document, including
	// nested sub-tasks, before any branch pruning.
	TotalTasks int `json:"total_tasks"`

	Counts StateCounts `json:"counts"`
}

// Progress returns completed and total task counts for display.
func (p *Plan) Progress() (done, total int) {
	return p.Counts.Done, p.TotalTasks
}

// OverallStatus summarizes the whole document from its state histogram, with
// the same precedence the per-node aggregation uses.
func (p *Plan) OverallStatus() Status {
	c := p.Counts
	switch {
	case c.Total() == 0:
		return StatusPending
	case c.Done == c.Total():
		return StatusDone
	case c.InProgress > 0:
		return StatusInProgress
	case c.Done > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}
