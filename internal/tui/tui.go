// Package tui is the interactive session browser: a filterable list of
// archived sessions on the left, the rendered timeline on the right.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tom26757207-cyber/line-archive/internal/query"
	"github.com/tom26757207-cyber/line-archive/internal/render"
	"github.com/tom26757207-cyber/line-archive/internal/session"
	"github.com/tom26757207-cyber/line-archive/internal/store"
)

const debounceDelay = 200 * time.Millisecond

type filterResultMsg struct {
	filter   string
	sessions []*session.Session
}

type debounceTickMsg struct {
	filter string
}

type previewRenderedMsg struct {
	sessionID string
	filter    string
	content   string
}

type model struct {
	arch        *store.Archive
	filter      string
	sessions    []*session.Session
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string
	width       int
	height      int
	ready       bool
	quitting    bool
	selected    *session.Session
}

// Run opens the browser and blocks until it exits. When the user selects a
// session, it becomes the archive's active session and its identifier is
// printed for shell use.
func Run(arch *store.Archive) error {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := model{
		arch:        arch,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected != nil {
		if err := arch.SetActive(fm.selected.ID); err != nil {
			return err
		}
		fmt.Println(fm.selected.ID)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.doFilter(""))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
		m.preview.Style = stylePanelBorder
		m.previewKey = ""
		if len(m.sessions) > 0 {
			cmds = append(cmds, m.loadCurrentPreview())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if len(m.sessions) > 0 && m.cursor < len(m.sessions) {
				m.selected = m.sessions[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil
		}

		var tiCmd tea.Cmd
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		newFilter := m.filterInput.Value()
		if newFilter != m.filter {
			m.filter = newFilter
			cmds = append(cmds, m.scheduleDebouncedFilter(newFilter))
		}
		return m, tea.Batch(cmds...)

	case debounceTickMsg:
		if msg.filter == m.filter {
			cmds = append(cmds, m.doFilter(msg.filter))
		}
		return m, tea.Batch(cmds...)

	case filterResultMsg:
		if msg.filter != m.filter {
			return m, nil
		}
		m.sessions = msg.sessions
		m.cursor = 0
		m.listOffset = 0
		if len(m.sessions) > 0 {
			cmds = append(cmds, m.loadCurrentPreview())
		} else {
			m.preview.SetContent("")
			m.previewKey = ""
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		key := msg.sessionID + ":" + msg.filter
		if key == m.previewKey {
			return m, nil
		}
		if len(m.sessions) > 0 && m.cursor < len(m.sessions) {
			want := m.sessions[m.cursor].ID + ":" + m.filter
			if key != want {
				return m, nil // stale preview
			}
		}
		m.preview.SetContent(msg.content)
		m.preview.GotoTop()
		m.previewKey = key
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d sessions", len(m.sessions)),
		"up/dn navigate",
		"C-u/C-d preview",
		"Enter select",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// doFilter recomputes the visible session list. A filter term matches when
// it hits the file name, a participant, or any message (content or sender).
func (m model) doFilter(filter string) tea.Cmd {
	arch := m.arch
	return func() tea.Msg {
		all := arch.Sessions()
		if filter == "" {
			return filterResultMsg{filter: filter, sessions: all}
		}

		lower := strings.ToLower(filter)
		var out []*session.Session
		for _, s := range all {
			if strings.Contains(strings.ToLower(s.FileName), lower) ||
				participantMatch(s, lower) ||
				len(query.Search(s.Messages, filter)) > 0 {
				out = append(out, s)
			}
		}
		return filterResultMsg{filter: filter, sessions: out}
	}
}

func participantMatch(s *session.Session, lower string) bool {
	for _, p := range s.Participants {
		if strings.Contains(strings.ToLower(p), lower) {
			return true
		}
	}
	return false
}

func (m model) scheduleDebouncedFilter(filter string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{filter: filter}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.sessions) == 0 || m.cursor >= len(m.sessions) {
		return nil
	}
	s := m.sessions[m.cursor]
	key := s.ID + ":" + m.filter
	if key == m.previewKey {
		return nil
	}
	filter := m.filter
	return func() tea.Msg {
		content := render.Timeline(s, render.Options{Query: filter})
		return previewRenderedMsg{sessionID: s.ID, filter: filter, content: content}
	}
}
