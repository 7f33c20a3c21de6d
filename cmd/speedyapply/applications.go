package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newApplicationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "applications",
		Short: "List the most recent entries of the application log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			state, err := st.Get(cmd.Context())
			if err != nil {
				return err
			}
			if len(state.Applications) == 0 {
				_, _ = fmt.Fprintln(a.out, "No applications logged")
				return nil
			}
			a.printer.PrintApplications(state.Applications)
			return nil
		},
	}
}
