package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wifiview/export"
	"wifiview/i18n"
)

func newExportCmd(a *app) *cobra.Command {
	var flags queryFlags
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matching networks to a CSV or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			q, err := flags.query()
			if err != nil {
				return err
			}
			_, visible, err := a.loadVisible(cmd, q)
			if err != nil {
				return err
			}
			res, err := a.exporter().Export(visible, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.exported", res.Profiles, res.Path))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	cmd.Flags().String("dir", ".", "directory the export is written to")
	return cmd
}
