package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wifiview/i18n"
	"wifiview/profile"
)

// card adapts a record to the list component.
type card struct {
	profile.Record
}

func (c card) FilterValue() string { return c.Name }

type cardDelegate struct {
	revealed map[string]bool
	now      func() time.Time
}

func (d cardDelegate) Height() int                             { return 4 }
func (d cardDelegate) Spacing() int                            { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(card)
	if !ok {
		return
	}
	fmt.Fprint(w, renderCard(c.Record, index == m.Index(), d.revealed[c.ID], d.now()))
}

// renderCard draws one network: name and security, signal, last connection
// and the password row.
func renderCard(r profile.Record, selected, revealed bool, now time.Time) string {
	cursor, nameStyle := "  ", cardNameStyle
	if selected {
		cursor, nameStyle = "▸ ", cardSelectedNameStyle
	}

	title := cursor + nameStyle.Render(r.Name)
	if r.Connected {
		title += connectedStyle.Render(" ✔ " + i18n.T("card.connected"))
	}
	title += "  " + securityBadge(r)

	q := profile.SignalQuality(r.Signal)
	signal := fmt.Sprintf("%s %s %s",
		signalBars(r.Signal),
		signalStyle(r.Signal).Render(fmt.Sprintf("%d%%", r.Signal)),
		labelStyle.Render(q.Label))

	last := labelStyle.Render(profile.LastConnectedLabel(r.LastConnected, now))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		cardBodyStyle.Render(signal),
		cardBodyStyle.Render(last),
		cardBodyStyle.Render(passwordLine(r, revealed)),
	)
}

// passwordLine shows the secret masked, or verbatim once revealed.
func passwordLine(r profile.Record, revealed bool) string {
	if !r.HasPassword() {
		if !r.IsOpen() {
			return labelStyle.Render(i18n.T("card.password_unavailable"))
		}
		return labelStyle.Render(i18n.T("card.no_password"))
	}
	secret := maskStyle.Render(profile.Mask(r.PasswordValue()))
	if revealed {
		secret = secretStyle.Render(r.PasswordValue())
	}
	return labelStyle.Render(i18n.T("card.password")) + " " + secret
}

func securityBadge(r profile.Record) string {
	if r.IsOpen() {
		return openStyle.Render("🔓 " + r.Security)
	}
	return securedStyle.Render("🔒 " + r.Security)
}

func signalBars(signal int) string {
	bars := profile.SignalQuality(signal).Bars
	glyphs := []string{"▂", "▄", "▆", "█"}
	lit := signalStyle(signal).Render(strings.Join(glyphs[:bars], ""))
	return lit + labelStyle.Render(strings.Join(glyphs[bars:], ""))
}

func signalStyle(signal int) lipgloss.Style {
	switch profile.SignalQuality(signal).Bars {
	case 4, 3:
		return signalExcellentStyle
	case 2:
		return signalGoodStyle
	default:
		return signalWeakStyle
	}
}
