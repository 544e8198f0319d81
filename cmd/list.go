package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"wifiview/i18n"
	"wifiview/profile"
)

type queryFlags struct {
	search string
	filter string
	sort   string
	reveal bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive substring of the network name")
	cmd.Flags().StringVar(&f.filter, "filter", "all", "all, connected, secured or open")
	cmd.Flags().StringVar(&f.sort, "sort", "name", "name, signal or lastConnected")
}

func (f queryFlags) query() (profile.Query, error) {
	q := profile.Query{Search: f.search}
	var err error
	if f.filter != "" {
		if q.Filter, err = profile.ParseFilter(f.filter); err != nil {
			return q, err
		}
	}
	if f.sort != "" {
		if q.Sort, err = profile.ParseSortKey(f.sort); err != nil {
			return q, err
		}
	}
	return q, nil
}

func newListCmd(a *app) *cobra.Command {
	var flags queryFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print saved networks as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.reveal, "reveal", false, "print passwords in clear text")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, flags queryFlags) error {
	q, err := flags.query()
	if err != nil {
		return err
	}
	snap, visible, err := a.loadVisible(cmd, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(visible, flags.reveal, time.Now()))
	fmt.Fprintln(out, i18n.T("list.count", len(visible), len(snap.Records)))
	return nil
}

func renderTable(records []profile.Record, reveal bool, now time.Time) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Network Name", "Security", "Signal", "Last Connected", "Status", "Password")

	for _, r := range records {
		status := ""
		if r.Connected {
			status = i18n.T("card.connected")
		}
		t.Row(
			r.Name,
			r.Security,
			strconv.Itoa(r.Signal)+"%",
			profile.LastConnectedLabel(r.LastConnected, now),
			status,
			passwordCell(r, reveal),
		)
	}
	return t.String()
}

func passwordCell(r profile.Record, reveal bool) string {
	switch {
	case !r.HasPassword():
		return "-"
	case reveal:
		return r.PasswordValue()
	default:
		return profile.Mask(r.PasswordValue())
	}
}
