package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		// title, summary, status and help lines
		m.list.SetSize(msg.Width-h, msg.Height-v-6)
		m.help.Width = msg.Width - h
		return m, nil

	case entriesMsg:
		m.setEntries(msg.entries)
		return m, nil

	case completedMsg:
		c := msg.completion
		m.err = nil
		if c.Outcome == models.AlreadyCompleted {
			m.status = fmt.Sprintf("%s is already done for this %s", c.Habit.Name, strings.TrimSuffix(c.Habit.Periodicity.Unit(), "s"))
		} else {
			m.status = fmt.Sprintf("✓ Completed %s, streak %s", c.Habit.Name, count(c.Stats.CurrentStreak, c.Habit.Periodicity.Unit()))
		}
		return m, m.load

	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load
		case key.Matches(msg, m.keys.Complete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, m.complete(i.Entry.Habit.Name)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
