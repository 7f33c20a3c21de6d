package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/speedyapply/internal/profile"
	"github.com/jonathan/speedyapply/internal/resume"
	"github.com/jonathan/speedyapply/internal/store"
)

func newParseResumeCmd(a *app) *cobra.Command {
	var (
		importProfiles bool
		activate       bool
		concurrency    int
	)
	cmd := &cobra.Command{
		Use:   "parse-resume FILE...",
		Short: "Parse LaTeX resumes (.tex or .zip) and optionally store them as profiles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			batch, err := resume.ParseFiles(ctx, args,
				resume.WithConcurrency(concurrency),
				resume.WithLogger(a.logger),
			)
			a.printer.PrintResumes(batch)
			if err != nil {
				return err
			}
			if !importProfiles {
				return nil
			}

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			var imported []*profile.Profile
			for _, rec := range batch.Records() {
				p := profile.FromResume(rec)
				if err := p.Validate(); err != nil {
					a.logger.Warn("resume not imported", "resume", rec.ResumeName, "error", err)
					continue
				}
				imported = append(imported, p)
			}
			if len(imported) == 0 {
				return fmt.Errorf("no parsed resume passed profile validation")
			}

			err = st.Update(ctx, func(state *store.State) error {
				for _, p := range imported {
					state.AddProfile(*p)
				}
				if activate {
					state.ActiveProfileID = imported[0].ID
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, p := range imported {
				_, _ = fmt.Fprintf(a.out, "Imported profile %s (%s)\n", p.Name, p.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&importProfiles, "import", false, "Store each parsed resume as a new profile")
	cmd.Flags().BoolVar(&activate, "activate", false, "Make the first imported profile active")
	cmd.Flags().IntVar(&concurrency, "concurrency", resume.DefaultConcurrency, "Files parsed in parallel")
	return cmd
}
