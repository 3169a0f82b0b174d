// Package templates renders starter checklist files from YAML plan
// templates, used by `planscope init`.
package templates

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskTemplate is one checklist entry within a section.
type TaskTemplate struct {
	Title    string         `yaml:"title"`
	State    string         `yaml:"state,omitempty"` // pending, done, in_progress, blocked
	Subtasks []TaskTemplate `yaml:"subtasks,omitempty"`
}

// SectionTemplate is a level-2 heading with its tasks.
type SectionTemplate struct {
	Name  string         `yaml:"name"`
	Tasks []TaskTemplate `yaml:"tasks,omitempty"`
}

// PlanTemplate describes a whole starter checklist.
type PlanTemplate struct {
	Name     string            `yaml:"name"`
	Sections []SectionTemplate `yaml:"sections"`
}

// markers maps template states to checkbox markers. Kept in sync with the
// parser's state set.
var markers = map[string]string{
	"":            "[ ]",
	"pending":     "[ ]",
	"done":        "[x]",
	"in_progress": "[-]",
	"blocked":     "[!]",
}

// Default returns the built-in starter template.
func Default() *PlanTemplate {
	return &PlanTemplate{
		Name: "Project Plan",
		Sections: []SectionTemplate{
			{
				Name: "Setup",
				Tasks: []TaskTemplate{
					{Title: "Define scope"},
					{Title: "List milestones"},
				},
			},
			{
				Name: "Execution",
				Tasks: []TaskTemplate{
					{Title: "First milestone", Subtasks: []TaskTemplate{
						{Title: "Break into tasks"},
					}},
				},
			},
		},
	}
}

// LoadTemplate parses a YAML template file and returns a PlanTemplate.
func LoadTemplate(path string) (*PlanTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	var template PlanTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &template, nil
}

// Validate checks that the template has valid structure and content.
func (t *PlanTemplate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template name is required")
	}

	if len(t.Sections) == 0 {
		return fmt.Errorf("template must have at least one section")
	}

	sectionNames := make(map[string]bool)
	for i, section := range t.Sections {
		if strings.TrimSpace(section.Name) == "" {
			return fmt.Errorf("section %d: name is required", i)
		}
		if sectionNames[section.Name] {
			return fmt.Errorf("duplicate section name: %s", section.Name)
		}
		sectionNames[section.Name] = true

		for j, task := range section.Tasks {
			if err := validateTask(task, fmt.Sprintf("section %s, task %d", section.Name, j)); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateTask(task TaskTemplate, where string) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("%s: title is required", where)
	}
	if _, ok := markers[task.State]; !ok {
		return fmt.Errorf("%s: invalid state %q (must be pending, done, in_progress, or blocked)", where, task.State)
	}
	for k, sub := range task.Subtasks {
		if err := validateTask(sub, fmt.Sprintf("%s, subtask %d", where, k)); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders the template as a checklist document the parser round-trips.
func (t *PlanTemplate) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", t.Name)

	for _, section := range t.Sections {
		fmt.Fprintf(&sb, "\n## %s\n\n", section.Name)
		for _, task := range section.Tasks {
			writeTask(&sb, task, 0)
		}
	}

	return sb.String()
}

func writeTask(sb *strings.Builder, task TaskTemplate, depth int) {
	fmt.Fprintf(sb, "%s- %s %s\n", strings.Repeat("  ", depth), markers[task.State], task.Title)
	for _, sub := range task.Subtasks {
		writeTask(sb, sub, depth+1)
	}
}
