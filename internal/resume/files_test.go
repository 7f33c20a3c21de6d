package resume

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// writeZip creates an archive with the members in order; names ending in
// "/" become directories.
func writeZip(t *testing.T, dir, name string, members [][2]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, m := range members {
		w, err := zw.Create(m[0])
		require.NoError(t, err)
		if m[1] != "" {
			_, err = w.Write([]byte(m[1]))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestParseFile_Tex(t *testing.T) {
	p := writeFile(t, t.TempDir(), "jane_doe.tex", sampleResume)

	rec, err := ParseFile(p)
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", rec.ResumeName)
	assert.Equal(t, "Jane", rec.FirstName)
}

func TestParseFile_ZipUsesFirstTexMember(t *testing.T) {
	p := writeZip(t, t.TempDir(), "bundle.zip", [][2]string{
		{"docs/", ""},
		{"README.md", "not a resume"},
		{"cv/backend.tex", sampleResume},
		{"cv/frontend.tex", `\name{Other Person}`},
	})

	rec, err := ParseFile(p)
	require.NoError(t, err)
	assert.Equal(t, "backend", rec.ResumeName)
	assert.Equal(t, "Jane", rec.FirstName)
	assert.Len(t, rec.WorkHistory, 2)
}

func TestParseFile_ZipWithoutTex(t *testing.T) {
	p := writeZip(t, t.TempDir(), "empty.zip", [][2]string{{"notes.txt", "hello"}})

	_, err := ParseFile(p)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "No .tex file found in ZIP archive.", pe.Message)
	assert.Equal(t, p, pe.Path)
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	p := writeFile(t, t.TempDir(), "resume.pdf", "%PDF")

	_, err := ParseFile(p)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParseFiles_KeepsInputOrderAndPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "first.tex", `\name{Ada Lovelace}`),
		writeZip(t, dir, "broken.zip", [][2]string{{"a.txt", "x"}}),
		writeFile(t, dir, "notes.txt", "x"),
		writeZip(t, dir, "second.zip", [][2]string{{"grace.tex", `\name{Grace Hopper}`}}),
		writeFile(t, dir, "third.TEX", `\name{Alan Turing}`),
	}

	batch, err := ParseFiles(context.Background(), paths, WithConcurrency(2))
	require.NoError(t, err)
	require.Len(t, batch.Results, len(paths))

	for i, r := range batch.Results {
		assert.Equal(t, paths[i], r.Path)
	}
	assert.Nil(t, batch.Results[1].Record)
	assert.Error(t, batch.Results[1].Err)
	assert.Error(t, batch.Results[2].Err)

	recs := batch.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "Ada", recs[0].FirstName)
	assert.Equal(t, "Grace", recs[1].FirstName)
	assert.Equal(t, "grace", recs[1].ResumeName)
	assert.Equal(t, "Alan", recs[2].FirstName)
	assert.Len(t, batch.Errors(), 2)
}

func TestParseFiles_NothingParsed(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", "x"),
		writeZip(t, dir, "b.zip", [][2]string{{"c.md", "x"}}),
	}

	batch, err := ParseFiles(context.Background(), paths)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "No valid .tex or .zip files found or all failed to parse.", pe.Message)
	assert.Len(t, batch.Errors(), 2)
}

func TestParseFiles_Empty(t *testing.T) {
	_, err := ParseFiles(context.Background(), nil)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParseFiles_Cancelled(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.tex", `\name{A B}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseFiles(ctx, []string{p})
	assert.ErrorIs(t, err, context.Canceled)
}
