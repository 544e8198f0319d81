package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"wifiview/i18n"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	Filter     key.Binding
	Sort       key.Binding
	Reveal     key.Binding
	Copy       key.Binding
	ExportCSV  key.Binding
	ExportJSON key.Binding
	Refresh    key.Binding
	About      key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding

	currentState viewState
}

func (k keyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.Help}

	switch k.currentState {
	case viewList:
		bindings = append(bindings, k.Reveal, k.Copy, k.Search, k.Filter, k.Sort)
	case viewError:
		bindings = append(bindings, k.Refresh)
	case viewAbout:
		bindings = append(bindings, k.Back)
	}

	return append(bindings, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	switch k.currentState {
	case viewList:
		return [][]key.Binding{
			{k.Up, k.Down, k.Reveal, k.Copy},
			{k.Search, k.Filter, k.Sort, k.Back},
			{k.ExportCSV, k.ExportJSON, k.Refresh, k.About},
			{k.Help, k.Quit},
		}
	default:
		return [][]key.Binding{{k.Back, k.Refresh, k.Help, k.Quit}}
	}
}

// newKeyMap builds the bindings with help text in the active language.
func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", i18n.T("key.search"))),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", i18n.T("key.filter"))),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", i18n.T("key.sort"))),
		Reveal:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", i18n.T("key.reveal"))),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", i18n.T("key.copy"))),
		ExportCSV:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", i18n.T("key.export_csv"))),
		ExportJSON: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", i18n.T("key.export_json"))),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", i18n.T("key.refresh"))),
		About:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", i18n.T("key.about"))),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", i18n.T("key.help"))),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", i18n.T("key.back"))),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", i18n.T("key.quit"))),
	}
}
