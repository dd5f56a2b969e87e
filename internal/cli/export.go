package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [report-id | list-index]",
		Short: "Downloads a report and saves it as <YYYY_MM_DD>.xlsx in output_dir.",
		Long: "Downloads a report and saves it as <YYYY_MM_DD>.xlsx in output_dir.\n" +
			"Without an argument the newest report in browser history is exported;\n" +
			"a number picks that row of `swingsheet list`.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			listing, err := a.svc.Resolve(cmd.Context(), ref)
			if err != nil {
				return err
			}
			res, err := a.svc.Export(cmd.Context(), listing)
			if err != nil {
				return err
			}
			a.printf("raw report saved to %s\n", res.RawPath)
			a.printResult(res)
			return nil
		},
	}
}
