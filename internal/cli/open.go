package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <report-id>",
		Short: "Opens the report page in the default browser.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := reportID(args[0])
			if err != nil {
				return err
			}
			url := a.cfg.ReportPageURL + id
			if err := a.open(url); err != nil {
				return fmt.Errorf("open %s: %w", url, err)
			}
			a.printf("opened %s\n", url)
			return nil
		},
	}
}
