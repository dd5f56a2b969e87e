package cli

import (
	"github.com/spf13/cobra"
)

func (a *App) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manages the saved report service token.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Saves a bearer token for later requests.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.svc.SaveToken(args[0]); err != nil {
				return err
			}
			a.printf("token saved\n")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Reports whether a token is available.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := a.svc.Token(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("token available (%d characters)\n", len(token))
			return nil
		},
	})
	return cmd
}
