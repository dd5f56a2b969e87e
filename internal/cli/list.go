package cli

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/okian/swingsheet/internal/domain/types"
)

const listTimeLayout = "2006-01-02 15:04"

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists reports found in browser history, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listings, err := a.svc.ListReports(cmd.Context())
			if err != nil {
				return err
			}
			a.renderListings(listings)
			return nil
		},
	}
}

func (a *App) renderListings(listings []types.Listing) {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.AppendHeader(table.Row{"#", "Created", "Kind", "Report"})
	for i, l := range listings {
		created := l.Created.Format(listTimeLayout)
		if !l.CreatedKnown {
			created += " *"
		}
		kind := l.Kind
		if kind == "" {
			kind = "-"
		}
		t.AppendRow(table.Row{strconv.Itoa(i + 1), created, kind, l.ID})
	}
	t.AppendFooter(table.Row{"", "* metadata unavailable", "", strconv.Itoa(len(listings)) + " reports"})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
