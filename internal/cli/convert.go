package cli

import (
	"github.com/spf13/cobra"

	service "github.com/okian/swingsheet/internal/app"
)

func (a *App) convertCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "convert <report.json>",
		Short: "Builds a workbook from a saved raw report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.Convert(cmd.Context(), args[0], out)
			if err != nil {
				return err
			}
			a.printResult(res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "workbook path (default: timestamped name in output_dir)")
	return cmd
}

func (a *App) printResult(res service.Result) {
	a.printf("workbook saved to %s\n", res.WorkbookPath)
	for _, s := range res.Sheets {
		mark := ""
		if s.BestSwing {
			mark = ", best swing flagged"
		}
		a.printf("  %-31s %4d swings%s\n", s.Name, s.Rows, mark)
	}
}
