package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/tracker"
)

type entriesMsg struct {
	entries []analytics.Entry
}

type completedMsg struct {
	completion tracker.Completion
}

type errMsg struct {
	err error
}

// Model is the habit dashboard: one list row per habit plus a summary line.
type Model struct {
	tracker  *tracker.Tracker
	keys     KeyMap
	help     help.Model
	list     list.Model
	summary  analytics.Summary
	status   string
	err      error
	loaded   bool
	quitting bool
}

func NewModel(t *tracker.Tracker) Model {
	keys := DefaultKeyMap()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete, keys.Refresh}
	}

	return Model{
		tracker: t,
		keys:    keys,
		help:    help.New(),
		list:    l,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	entries, err := m.tracker.Entries()
	if err != nil {
		return errMsg{err}
	}
	return entriesMsg{entries}
}

func (m Model) complete(name string) tea.Cmd {
	return func() tea.Msg {
		c, err := m.tracker.Complete(name)
		if err != nil {
			return errMsg{err}
		}
		return completedMsg{c}
	}
}

func (m *Model) setEntries(entries []analytics.Entry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
	m.summary = analytics.Summarize(entries)
	m.loaded = true
}
