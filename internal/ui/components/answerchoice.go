package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdutta/afsmeter/internal/ui/theme"
)

// AnswerChoice is a yes/no selector for a single survey question.
// "y" and "n" answer directly; tab or h/l move the highlight and enter
// confirms it.
type AnswerChoice struct {
	Question string
	Selected int // 0 = yes, 1 = no
	Chosen   int // -1 until answered
}

// NewAnswerChoice creates an answer selector for the given question.
func NewAnswerChoice(question string) AnswerChoice {
	return AnswerChoice{
		Question: question,
		Selected: 0,
		Chosen:   -1,
	}
}

// Init returns nil.
func (a AnswerChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input.
func (a AnswerChoice) Update(msg tea.Msg) (AnswerChoice, tea.Cmd) {
	if a.Chosen >= 0 {
		return a, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch kmsg.String() {
	case "h", "l", "tab":
		a.Selected = 1 - a.Selected
	case "y", "Y":
		a.Chosen = 0
	case "n", "N":
		a.Chosen = 1
	case "enter":
		a.Chosen = a.Selected
	}

	return a, nil
}

// Answered reports whether a choice was made.
func (a AnswerChoice) Answered() bool {
	return a.Chosen >= 0
}

// Yes reports whether the chosen answer is yes.
func (a AnswerChoice) Yes() bool {
	return a.Chosen == 0
}

// View renders the question and the two options side by side.
func (a AnswerChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(a.Question) + "\n\n"

	yes := "  Yes  "
	no := "  No  "

	if a.Chosen >= 0 {
		if a.Chosen == 0 {
			s += theme.Positive.Render("▸"+yes) + "   " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+no)
		} else {
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+yes) + "   " + theme.Negative.Render("▸"+no)
		}
		return s
	}

	if a.Selected == 0 {
		s += theme.Selected.Render("▸"+yes) + "   " + theme.Unselected.Render(" "+no)
	} else {
		s += theme.Unselected.Render(" "+yes) + "   " + theme.Selected.Render("▸"+no)
	}
	return s
}
