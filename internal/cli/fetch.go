package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/swingsheet/internal/adapters/history"
)

func (a *App) fetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <report-id>",
		Short: "Downloads the full report and saves the raw JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := reportID(args[0])
			if err != nil {
				return err
			}
			path, err := a.svc.Retrieve(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.printf("raw report saved to %s\n", path)
			return nil
		},
	}
}

func reportID(arg string) (string, error) {
	id, ok := history.NormalizeID(arg)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidReportID, arg)
	}
	return id, nil
}
