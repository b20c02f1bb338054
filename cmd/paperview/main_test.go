package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperview/internal/logging"
	"paperview/internal/render"
	"paperview/internal/tui"
)

const papersCSV = `Paper ID,Paper Title,Year,Source,Citation
P1,Care robots,2020,ACM,"Smith, ""2020"""
P2,Smart homes,2021,IEEE,Doe 2021
P3,Voice agents,2021,ACM,
`

func writePapers(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paperlist.csv")
	require.NoError(t, os.WriteFile(path, []byte(papersCSV), 0o644))
	return path
}

// execute runs the CLI with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { logging.Use(nil, nil) })
	t.Setenv("PAPERVIEW_SOURCE", "")

	cfgPath := filepath.Join(t.TempDir(), "paperview.yaml")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseFilter(t *testing.T) {
	col, val, err := parseFilter("Year=2021")
	require.NoError(t, err)
	assert.Equal(t, "Year", col)
	assert.Equal(t, "2021", val)

	col, val, err = parseFilter("Source=")
	require.NoError(t, err)
	assert.Equal(t, "Source", col)
	assert.Equal(t, "", val)

	_, _, err = parseFilter("Year")
	assert.Error(t, err)
	_, _, err = parseFilter("=2021")
	assert.Error(t, err)
}

func TestRender_HTML(t *testing.T) {
	src := writePapers(t)

	out, err := execute(t, "render", "--source", src, "--filter", "Year=2021", "--search", "voice")
	require.NoError(t, err)

	assert.Contains(t, out, "(1 of 3 papers)")
	assert.Contains(t, out, "Voice agents")
	assert.NotContains(t, out, "Smart homes")
	assert.Contains(t, out, `href="papers/P3.pdf"`)
}

func TestRender_BodyOnly(t *testing.T) {
	src := writePapers(t)

	out, err := execute(t, "render", "--source", src, "--filter", "Source=IEEE", "--body-only")
	require.NoError(t, err)
	assert.Contains(t, out, "Smart homes")
	assert.NotContains(t, out, "Care robots")
	assert.NotContains(t, out, "<html")
	assert.NotContains(t, out, "<select")

	_, err = execute(t, "render", "--source", src, "--format", "text", "--body-only")
	require.Error(t, err)
}

func TestRender_TextToFile(t *testing.T) {
	src := writePapers(t)
	dest := filepath.Join(t.TempDir(), "papers.txt")

	_, err := execute(t, "render", "--source", src, "--format", "text", "-o", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(3 of 3 papers)")
	assert.Contains(t, string(data), "Care robots")
}

func TestRender_NoMatches(t *testing.T) {
	src := writePapers(t)

	out, err := execute(t, "render", "--source", src, "--filter", "Year=2020", "--filter", "Source=IEEE")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 of 3 papers)")
	assert.Contains(t, out, render.NoResultsText)
}

func TestRender_MissingSourceRendersEmptyTable(t *testing.T) {
	out, err := execute(t, "render", "--source", filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "(0 of 0 papers)")
	assert.Contains(t, out, render.NoResultsText)
}

func TestRender_TextMissingSource(t *testing.T) {
	out, err := execute(t, "render", "--format", "text", "--source", filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "(0 of 0 papers)")
	assert.Contains(t, out, tui.NoDataText)
}

func TestRender_Errors(t *testing.T) {
	src := writePapers(t)

	_, err := execute(t, "render", "--source", src, "--filter", "Colour=red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter column")

	_, err = execute(t, "render", "--source", src, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestFacets(t *testing.T) {
	src := writePapers(t)

	out, err := execute(t, "facets", "--source", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Year (2): 2020, 2021")
	assert.Contains(t, out, "Source (2): ACM, IEEE")
	assert.Contains(t, out, "Technology (0): ")

	out, err = execute(t, "facets", "--source", src, "Paper Title")
	require.NoError(t, err)
	assert.Equal(t, "Care robots\nSmart homes\nVoice agents\n", out)

	_, err = execute(t, "facets", "--source", src, "Colour")
	assert.Error(t, err)
}

func TestFacets_MissingSource(t *testing.T) {
	_, err := execute(t, "facets", "--source", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load papers")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("PAPERVIEW_SOURCE", "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "paperview.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("source:\n  delimiter: \";;\"\n"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "facets"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
