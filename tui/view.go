package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wifiview/i18n"
	"wifiview/profile"
)

func (m Model) View() string {
	availableWidth := m.width - appStyle.GetHorizontalFrameSize()
	if availableWidth < 0 {
		availableWidth = 0
	}

	header := m.headerView(availableWidth)
	footer := m.footerView(availableWidth)

	var content string
	switch m.state {
	case viewLoading:
		content = m.renderLoading()
	case viewError:
		content = m.renderError()
	case viewAbout:
		content = m.renderAbout()
	default:
		content = m.renderList()
	}

	parts := append([]string{header, content}, m.statusLines()...)
	parts = append(parts, footer)
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// statusLines are the export indicator and the current notification. They
// show in every view, so results arriving on another screen are not lost.
func (m Model) statusLines() []string {
	var lines []string
	if m.exporting {
		lines = append(lines, loadingStyle.Render(m.spinner.View()+" "+i18n.T("export.in_progress")))
	}
	if m.note.text != "" {
		lines = append(lines, m.noteStyle().Render(m.note.text))
	}
	return lines
}

func (m Model) headerView(width int) string {
	title := titleStyle.Render("📶 " + i18n.T("app.title"))
	subtitle := subtitleStyle.Render(i18n.T("app.subtitle"))
	badge := badgeStyle.Render("🛡 " + i18n.T("app.badge"))

	left := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	spacing := width - lipgloss.Width(left) - lipgloss.Width(badge)
	if spacing < 1 {
		spacing = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", spacing), badge)
}

func (m Model) footerView(width int) string {
	keys := m.keys
	keys.currentState = m.state
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, helpGlobalStyle.Render(m.help.View(keys)))
}

func (m Model) statsView() string {
	box := func(label string, value int) string {
		return statBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			statValueStyle.Render(fmt.Sprintf("%d", value)),
			labelStyle.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box(i18n.T("stats.total"), m.stats.Total),
		box(i18n.T("stats.connected"), m.stats.Connected),
		box(i18n.T("stats.secured"), m.stats.Secured),
		box(i18n.T("stats.open"), m.stats.Open),
	)
}

func (m Model) controlsView() string {
	search := controlStyle.Render(fmt.Sprintf("/ %s: %q", i18n.T("controls.search"), m.query.Search))
	if m.searching {
		search = searchInputStyle.Render(m.searchInput.View())
	} else if m.query.Search != "" {
		search = controlActiveStyle.Render(fmt.Sprintf("/ %s: %q", i18n.T("controls.search"), m.query.Search))
	}

	filterStyle := controlStyle
	if m.query.Filter != profile.FilterAll {
		filterStyle = controlActiveStyle
	}
	filter := filterStyle.Render(fmt.Sprintf("f %s: %s", i18n.T("controls.filter"), i18n.T("filter."+m.query.Filter.String())))
	sort := controlStyle.Render(fmt.Sprintf("s %s: %s", i18n.T("controls.sort"), i18n.T("sort."+m.query.Sort.String())))

	return lipgloss.JoinHorizontal(lipgloss.Center, search, filter, sort)
}

func (m Model) renderLoading() string {
	lines := lipgloss.JoinVertical(lipgloss.Center,
		loadingStyle.Render(m.spinner.View()+" "+i18n.T("loading.title")),
		labelStyle.Render(i18n.T("loading.detail")),
	)
	return infoBoxStyle.Render(lines)
}

func (m Model) renderError() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render(i18n.T("load.error", m.loadErr)),
		infoStyle.Render(i18n.T("load.retry")),
	)
}

func (m Model) renderAbout() string {
	bullets := []string{
		i18n.T("about.local"),
		i18n.T("about.remote"),
		i18n.T("about.admin"),
		i18n.T("about.responsible"),
	}
	for i, b := range bullets {
		bullets[i] = "• " + b
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(i18n.T("about.title")),
		textStyle.Render(strings.Join(bullets, "\n")),
		"",
		labelStyle.Render(i18n.T("app.version", m.version)),
		labelStyle.Render(i18n.T("about.back")),
	)
	return infoBoxStyle.Render(body)
}

func (m Model) renderList() string {
	parts := []string{m.statsView(), m.controlsView()}
	parts = append(parts, labelStyle.Render(i18n.T("list.count", len(m.visible), len(m.records))))

	if len(m.visible) == 0 {
		parts = append(parts, m.renderEmpty())
	} else {
		parts = append(parts, m.cards.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderEmpty() string {
	hint := i18n.T("empty.none")
	if m.query.Active() {
		hint = i18n.T("empty.filtered")
	}
	return emptyStyle.Render(lipgloss.JoinVertical(lipgloss.Left, i18n.T("empty.title"), hint))
}

func (m Model) noteStyle() lipgloss.Style {
	switch m.note.kind {
	case notifySuccess:
		return successStyle
	case notifyWarning:
		return warningStyle
	case notifyError:
		return errorStyle
	default:
		return infoStyle
	}
}
