package cmd

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fmea/internal/fmea"
	"github.com/abhisek/fmea/internal/input"
	"github.com/abhisek/fmea/internal/logging"
	"github.com/abhisek/fmea/internal/report"
)

const sampleDoc = `version: v1.0.0
title: Granulation
variables:
  - name: Temp
    severity: 8
    occurrence: 8
    detectability: 8
  - name: Humidity
    severity: 2
    occurrence: 2
    detectability: 2
`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunAssess_Table(t *testing.T) {
	path := writeDoc(t, "doc.yaml", sampleDoc)

	var out, errOut bytes.Buffer
	err := runAssess(assessOptions{Source: path, Format: report.FormatTable}, &out, &errOut, logging.Nop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "FMEA assessment: Granulation")
	assert.Contains(t, out.String(), "512")
	assert.Empty(t, errOut.String())
}

func TestRunAssess_JSONToFileWithHeatmap(t *testing.T) {
	path := writeDoc(t, "doc.yaml", sampleDoc)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "report.json")
	pngPath := filepath.Join(dir, "heatmap.png")

	err := runAssess(assessOptions{
		Source:  path,
		Format:  report.FormatJSON,
		Output:  outPath,
		Heatmap: pngPath,
		Title:   "Override",
	}, &bytes.Buffer{}, &bytes.Buffer{}, logging.Nop())
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Override", body["title"])

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestRunAssess_OutputPathErrors(t *testing.T) {
	path := writeDoc(t, "doc.yaml", sampleDoc)
	outPath := filepath.Join(t.TempDir(), "missing", "report.md")

	err := runAssess(assessOptions{Source: path, Format: report.FormatMarkdown, Output: outPath},
		&bytes.Buffer{}, &bytes.Buffer{}, logging.Nop())
	assert.ErrorContains(t, err, "create output")
}

func TestWriteReport_WritesAndClosesFile(t *testing.T) {
	res, err := fmea.Assess([]fmea.RawEntry{{Name: "Temp", Severity: 8, Occurrence: 8, Detectability: 8}})
	require.NoError(t, err)
	outPath := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, writeReport(outPath, report.New("t", res), report.FormatCSV, report.Options{}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Temp")
}

func TestRunAssess_ValidationErrors(t *testing.T) {
	path := writeDoc(t, "bad.yaml", `variables:
  - name: " "
    severity: 5
    occurrence: 5
    detectability: 12
`)

	var out, errOut bytes.Buffer
	err := runAssess(assessOptions{Source: path, Format: report.FormatTable}, &out, &errOut, logging.Nop())
	assert.ErrorIs(t, err, errInvalidInput)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), report.MsgFixErrors)
	assert.Contains(t, errOut.String(), "Variable 1 name cannot be empty or whitespace.")
	assert.Contains(t, errOut.String(), "Variable 1 detectability must be between 1 and 10, got 12.")
}

func TestRunAssess_MalformedDocument(t *testing.T) {
	path := writeDoc(t, "bad.json", `{"variables": "nope"}`)

	err := runAssess(assessOptions{Source: path, Format: report.FormatJSON}, &bytes.Buffer{}, &bytes.Buffer{}, logging.Nop())
	var docErr *input.DocumentError
	assert.ErrorAs(t, err, &docErr)
}

func TestLoadPreload_RejectsOutOfRangeRatings(t *testing.T) {
	path := writeDoc(t, "doc.yaml", `variables:
  - name: Temp
    severity: 0
    occurrence: 5
    detectability: 5
`)
	var errOut bytes.Buffer
	c := &cobra.Command{}
	c.SetErr(&errOut)

	_, err := loadPreload(c, path, logging.Nop())
	assert.ErrorIs(t, err, fmea.ErrInvalidRating)
	assert.Contains(t, errOut.String(), "Variable 1 severity must be between 1 and 10, got 0.")
}

func TestLoadPreload_KeepsNameProblemsForTheForm(t *testing.T) {
	path := writeDoc(t, "doc.yaml", `variables:
  - name: ""
    severity: 5
    occurrence: 5
    detectability: 5
`)
	doc, err := loadPreload(&cobra.Command{}, path, logging.Nop())
	require.NoError(t, err)
	assert.Len(t, doc.Entries(), 1)
}

func TestResolveAddr(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{}
		c.Flags().String("addr", "", "")
		return c
	}

	t.Setenv(envAddr, "")
	assert.Equal(t, ":8080", resolveAddr(newCmd()))

	t.Setenv(envAddr, ":9090")
	assert.Equal(t, ":9090", resolveAddr(newCmd()))

	c := newCmd()
	require.NoError(t, c.Flags().Set("addr", ":7070"))
	assert.Equal(t, ":7070", resolveAddr(c))
}

func TestResolveLogFile(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().String("log-file", "", "")

	t.Setenv(envLogFile, "/tmp/env.log")
	assert.Equal(t, "/tmp/env.log", resolveLogFile(c))

	require.NoError(t, c.Flags().Set("log-file", "/tmp/flag.log"))
	assert.Equal(t, "/tmp/flag.log", resolveLogFile(c))
}

func TestNotesCommand(t *testing.T) {
	var out bytes.Buffer
	notesCmd.SetOut(&out)
	require.NoError(t, notesCmd.RunE(notesCmd, nil))
	assert.Contains(t, out.String(), report.NotesTitle)
}
