package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// dealPrompt asks for the deal a view should work on.
type dealPrompt struct {
	input textinput.Model
	err   string
}

func newDealPrompt() dealPrompt {
	ti := textinput.New()
	ti.Placeholder = "deal id (uuid)"
	ti.Width = 40
	ti.Focus()

	return dealPrompt{input: ti}
}

// update returns the parsed deal id once the operator presses enter.
func (p dealPrompt) update(msg tea.Msg) (dealPrompt, uuid.UUID, bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		id, err := uuid.Parse(strings.TrimSpace(p.input.Value()))
		if err != nil {
			p.err = "not a valid deal id"
			return p, uuid.Nil, false, nil
		}

		p.err = ""

		return p, id, true, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)

	return p, uuid.Nil, false, cmd
}

func (p dealPrompt) view(title string) string {
	s := fmt.Sprintf("%s\n\nDeal:\n%s\n\n(Enter to open, Esc to back)", title, p.input.View())
	if p.err != "" {
		s += "\n\n" + activeStyle(p.err)
	}

	return s
}
