package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wifiview/export"
	"wifiview/i18n"
	"wifiview/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.keys.currentState = m.state

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeComponents()
		return m, nil

	case spinner.TickMsg:
		if m.state == viewLoading || m.exporting {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case profilesLoadedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				return m, nil
			}
			m.loadErr = msg.err
			if m.records == nil {
				m.state = viewError
				return m, nil
			}
			// A failed refresh keeps the profiles already shown.
			m.state = viewList
			return m, m.notify(i18n.T("load.error", msg.err), notifyError)
		}
		m.loadErr = nil
		m.state = viewList
		m.applySnapshot(msg.snapshot)
		if n := len(msg.snapshot.Warnings); n > 0 {
			return m, m.notify(i18n.T("load.warnings", n), notifyWarning)
		}

	case copyResultMsg:
		if msg.err != nil {
			return m, m.notify(i18n.T("notify.copy_failed"), notifyError)
		}
		return m, m.notify(i18n.T("notify.copied"), notifySuccess)

	case exportReadyMsg:
		return m, writeExportCmd(m.exporter, msg.format, msg.records)

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			return m, m.notify(i18n.T("notify.export_failed", msg.err), notifyError)
		}
		return m, m.notify(exportedText(msg.result), notifySuccess)

	case dismissNotificationMsg:
		// Only the notification this tick was scheduled for is cleared.
		if msg.seq == m.note.seq {
			m.note = notification{}
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	if msg.String() == "ctrl+c" {
		return []tea.Cmd{m.quit()}
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return []tea.Cmd{m.quit()}
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.resizeComponents()
		return nil
	}

	switch m.state {
	case viewList:
		return m.handleListKeys(msg)

	case viewError:
		if key.Matches(msg, m.keys.Refresh) {
			return m.reload()
		}

	case viewAbout:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.About) {
			m.state = viewList
		}
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

func (m *Model) reload() []tea.Cmd {
	logging.Infof("refresh requested")
	m.state = viewLoading
	return []tea.Cmd{loadProfilesCmd(m.ctx, m.store), m.spinner.Tick}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) []tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.query.Search = ""
		m.refreshVisible()
		m.resizeComponents()
		return nil

	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.resizeComponents()
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.query.Search {
		m.query.Search = m.searchInput.Value()
		m.refreshVisible()
	}
	return []tea.Cmd{cmd}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.query.Search != "" {
			m.query.Search = ""
			m.searchInput.SetValue("")
			m.refreshVisible()
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.Focus()
		m.resizeComponents()
		return []tea.Cmd{textinput.Blink}

	case key.Matches(msg, m.keys.Filter):
		m.query.Filter = m.query.Filter.Next()
		m.refreshVisible()

	case key.Matches(msg, m.keys.Sort):
		m.query.Sort = m.query.Sort.Next()
		m.refreshVisible()

	case key.Matches(msg, m.keys.Reveal):
		if r, ok := m.selected(); ok && r.HasPassword() {
			m.revealed[r.ID] = !m.revealed[r.ID]
		}

	case key.Matches(msg, m.keys.Copy):
		r, ok := m.selected()
		if !ok {
			return nil
		}
		if !r.HasPassword() {
			return []tea.Cmd{m.notify(i18n.T("notify.no_password", r.Name), notifyInfo)}
		}
		return []tea.Cmd{copySecretCmd(m.clipboard, r.Name, r.PasswordValue())}

	case key.Matches(msg, m.keys.ExportCSV):
		if cmd := m.startExport(export.CSV); cmd != nil {
			return []tea.Cmd{cmd, m.spinner.Tick}
		}

	case key.Matches(msg, m.keys.ExportJSON):
		if cmd := m.startExport(export.JSON); cmd != nil {
			return []tea.Cmd{cmd, m.spinner.Tick}
		}

	case key.Matches(msg, m.keys.Refresh):
		return m.reload()

	case key.Matches(msg, m.keys.About):
		m.state = viewAbout

	default:
		m.cards, cmd = m.cards.Update(msg)
		return []tea.Cmd{cmd}
	}
	return nil
}
