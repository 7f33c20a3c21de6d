package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/speedyapply/internal/engine"
	"github.com/jonathan/speedyapply/internal/observability"
)

func newIdentifyCmd(a *app) *cobra.Command {
	var htmlPath, pageURL string
	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Show the label, key and score found for every form control",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadPage(cmd.Context(), htmlPath, pageURL)
			if err != nil {
				return err
			}

			m := a.newMatcher()
			var rows []observability.CandidateRow
			for _, el := range engine.CollectCandidates(doc) {
				row := observability.CandidateRow{Element: el.String()}
				row.Label, _ = m.Label(el)
				if best, ok := m.Best(el); ok {
					row.Key, row.Score, row.Signals = best.Key, best.Score, best.Signals
				}
				rows = append(rows, row)
			}
			a.printer.PrintCandidates(rows, m.Threshold())
			return nil
		},
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "Path to a saved application page")
	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL; fetched when --html is not given")
	return cmd
}
