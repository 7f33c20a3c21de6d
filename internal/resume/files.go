package resume

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many files ParseFiles reads at once.
const DefaultConcurrency = 4

// FileResult is the outcome for one input path. Exactly one of Record and
// Err is set.
type FileResult struct {
	Path   string
	Record *Record
	Err    error
}

// Batch holds per-file results in input order.
type Batch struct {
	Results []FileResult
}

// Records returns the successfully parsed records in input order.
func (b *Batch) Records() []*Record {
	var out []*Record
	for _, r := range b.Results {
		if r.Record != nil {
			out = append(out, r.Record)
		}
	}
	return out
}

// Errors returns the per-file failures in input order.
func (b *Batch) Errors() []error {
	var out []error
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r.Err)
		}
	}
	return out
}

// FilesOption configures ParseFiles.
type FilesOption func(*filesConfig)

type filesConfig struct {
	concurrency int
	logger      *slog.Logger
}

// WithConcurrency sets the number of files parsed in parallel.
func WithConcurrency(n int) FilesOption {
	return func(c *filesConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-file failures.
func WithLogger(logger *slog.Logger) FilesOption {
	return func(c *filesConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ParseFiles parses .tex files and .zip archives concurrently. Each file is
// independent: a failure is recorded on its FileResult and the others carry
// on. The returned error is a *ParseError only when no file produced a
// record, or ctx's error when the batch was cancelled.
func ParseFiles(ctx context.Context, paths []string, opts ...FilesOption) (*Batch, error) {
	cfg := filesConfig{concurrency: DefaultConcurrency, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	batch := &Batch{Results: make([]FileResult, len(paths))}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rec, err := ParseFile(p)
			if err != nil {
				cfg.logger.Warn("resume file skipped", "path", p, "error", err)
			}
			// Each goroutine owns one slot.
			batch.Results[i] = FileResult{Path: p, Record: rec, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return batch, err
	}
	if len(batch.Records()) == 0 {
		return batch, &ParseError{Message: msgNothingRead}
	}
	return batch, nil
}

// ParseFile parses a single .tex file or .zip archive. The record's
// ResumeName is the .tex file name without its extension.
func ParseFile(p string) (*Record, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".tex":
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &ParseError{Message: "failed to read file", Path: p, Cause: err}
		}
		rec := Parse(string(data))
		rec.ResumeName = stem(filepath.Base(p))
		return rec, nil
	case ".zip":
		zr, err := zip.OpenReader(p)
		if err != nil {
			return nil, &ParseError{Message: "failed to open archive", Path: p, Cause: err}
		}
		defer zr.Close()
		rec, err := ParseZip(&zr.Reader)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = p
			}
			return nil, err
		}
		return rec, nil
	default:
		return nil, &ParseError{Message: "unsupported file type, expected .tex or .zip", Path: p}
	}
}

// ParseZip parses the first .tex member of an archive, in archive order.
func ParseZip(zr *zip.Reader) (*Record, error) {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(f.Name), ".tex") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("failed to open %s", f.Name), Cause: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("failed to read %s", f.Name), Cause: err}
		}
		rec := Parse(string(data))
		rec.ResumeName = stem(path.Base(f.Name))
		return rec, nil
	}
	return nil, &ParseError{Message: msgNoTexInZip}
}

func stem(name string) string {
	if ext := path.Ext(name); strings.EqualFold(ext, ".tex") {
		return name[:len(name)-len(ext)]
	}
	return name
}
