package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/speedyapply/internal/browser"
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/engine"
)

func newFillCmd(a *app) *cobra.Command {
	var (
		htmlPath string
		pageURL  string
		outPath  string
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Run one scan over a saved or fetched application page",
		Long: "Parse an application page from --html (saved page) or --url (fetched over HTTP), " +
			"fill it from the active profile and print what was filled. --out writes the filled HTML.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			doc, err := a.loadPage(ctx, htmlPath, pageURL)
			if err != nil {
				return err
			}

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

			rep, err := eng.ScanAndFill(ctx, doc, engine.ScanOptions{Force: force})
			if err != nil {
				return err
			}
			a.printer.PrintReport(rep)

			if outPath != "" {
				html, err := doc.HTML()
				if err != nil {
					return fmt.Errorf("failed to render filled page: %w", err)
				}
				if err := os.WriteFile(outPath, []byte(html), 0644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				_, _ = fmt.Fprintf(a.out, "Output: %s\n", outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "Path to a saved application page")
	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL; fetched when --html is not given")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the filled HTML here")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Fill even where autofill is off and refill filled fields")
	return cmd
}

// loadPage parses a saved page, or fetches pageURL when no file is given.
// A saved page without --url is addressed by its file URL.
func (a *app) loadPage(ctx context.Context, htmlPath, pageURL string) (*dom.Document, error) {
	switch {
	case htmlPath != "":
		source, err := os.ReadFile(htmlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read page: %w", err)
		}
		if pageURL == "" {
			abs, err := filepath.Abs(htmlPath)
			if err != nil {
				return nil, err
			}
			pageURL = "file://" + filepath.ToSlash(abs)
		}
		return dom.Parse(string(source), pageURL)
	case pageURL != "":
		opts := browser.DefaultOptions()
		opts.Timeout = a.cfg.BrowserTimeout.Std()
		page, err := browser.Fetch(ctx, pageURL, opts)
		if err != nil {
			return nil, err
		}
		doc, err := page.Document()
		if err != nil {
			return nil, err
		}
		if browser.NeedsRender(doc) {
			a.logger.Warn("page has no form controls before scripts run; try the live command", "url", pageURL)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("must provide --html or --url")
	}
}
