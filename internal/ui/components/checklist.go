package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdutta/afsmeter/internal/ui/theme"
)

// ChecklistItem is a single toggleable row. Indented rows render as
// children of the nearest non-indented row above them.
type ChecklistItem struct {
	ID      string
	Label   string
	Checked bool
	Indent  bool
}

// Checklist is a vertical multi-select list. Space toggles the row
// under the cursor; the OnToggle callback lets the owner apply cascade
// rules (a parent row toggling its children) before the next render.
type Checklist struct {
	Items    []ChecklistItem
	Cursor   int
	OnToggle func(index int) tea.Cmd
}

// NewChecklist creates a checklist over the given items.
func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

// Init returns nil.
func (c Checklist) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Cursor >= 0 && c.Cursor < len(c.Items) {
			if c.OnToggle != nil {
				return c, c.OnToggle(c.Cursor)
			}
			c.Items[c.Cursor].Checked = !c.Items[c.Cursor].Checked
		}
	}

	return c, nil
}

// CheckedIDs returns the IDs of all checked rows in list order.
func (c Checklist) CheckedIDs() []string {
	var ids []string
	for _, it := range c.Items {
		if it.Checked {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// View renders the checklist.
func (c Checklist) View() string {
	var s string
	for i, it := range c.Items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}

		indent := "  "
		if it.Indent {
			indent = "      "
		}

		cursor := " "
		if i == c.Cursor {
			cursor = "▸"
		}

		line := fmt.Sprintf("%s%s %s %s", indent, cursor, box, it.Label)

		switch {
		case i == c.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case it.Checked:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
