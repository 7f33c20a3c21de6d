package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/speedyapply/internal/browser"
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/engine"
)

type scanResult struct {
	rep *engine.Report
	err error
}

func newLiveCmd(a *app) *cobra.Command {
	var (
		pageURL string
		force   bool
		show    bool
	)
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Render a page in Chrome, fill it and replay the fill into the browser",
		Long: "Open --url in Chrome, wait for the platform's initial delay, scan the rendered page and " +
			"write the values into the live form. With --show the browser window stays open until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pageURL == "" {
				return fmt.Errorf("--url is required")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			st, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			eng, release, err := a.newEngine(ctx, st)
			if err != nil {
				return err
			}
			defer release()

			opts := browser.DefaultSessionOptions()
			opts.Timeout = a.cfg.BrowserTimeout.Std()
			opts.Settle = a.cfg.RenderSettle.Std()
			opts.Headless = !show
			opts.Logger = a.logger
			session, err := browser.Open(ctx, opts)
			if err != nil {
				return err
			}
			defer session.Close()

			page, err := session.Render(pageURL)
			if err != nil {
				return err
			}
			doc, err := page.Document()
			if err != nil {
				return err
			}

			rep, err := a.scanLive(ctx, eng, doc, force)
			if err != nil {
				return err
			}
			a.printer.PrintReport(rep)

			actions := browser.Plan(doc)
			applied, err := session.Replay(actions)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "Replayed %d of %d fields into the page\n", applied, len(actions))

			if show {
				_, _ = fmt.Fprintln(a.out, "Browser left open; press Ctrl+C to close")
				<-ctx.Done()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "Application page URL")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Fill even where autofill is off and refill filled fields")
	cmd.Flags().BoolVar(&show, "show", false, "Show the browser window and keep it open")
	return cmd
}

// scanLive waits for the first scheduled scan of the rendered snapshot, or
// runs a forced scan straight away.
func (a *app) scanLive(ctx context.Context, eng *engine.Engine, doc *dom.Document, force bool) (*engine.Report, error) {
	results := make(chan scanResult, 1)
	sched := engine.NewScheduler(eng, doc,
		engine.WithSchedulerClock(a.clock),
		engine.WithDebounce(a.cfg.Debounce.Std()),
		engine.WithInitialDelay(a.cfg.InitialDelay.Std()),
		engine.OnScan(func(rep *engine.Report, err error) {
			select {
			case results <- scanResult{rep, err}:
			default:
			}
		}),
	)
	defer sched.Stop()

	if force {
		return sched.FillNow(ctx)
	}
	sched.Start(ctx)
	select {
	case r := <-results:
		return r.rep, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
