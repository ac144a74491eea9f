package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sales-pulse/ordermatrix"
)

func writeItems(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "lines.json")
	items := `[
		{"brand": "A", "style": "S1", "size": "30", "quantity": 5},
		{"brand": "A", "style": "S1", "size": "32", "quantity": "3"},
		{"name": "B", "style": "S2", "size": 30, "qty": 2}
	]`
	require.NoError(t, os.WriteFile(path, []byte(items), 0o600))
	return path
}

func TestRenderCommandWritesJSON(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"render",
		"--env-file", filepath.Join(dir, "missing.env"),
		"--items", writeItems(t, dir),
		"--format", "json",
		"--order-no", "1042",
		"--remarks", "urgent",
		"-o", dir,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "order_1042.json"))
	require.NoError(t, err)

	var doc ordermatrix.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, []string{"30", "32"}, doc.Columns)
	require.Equal(t, 10, doc.GrandTotal)
	require.Equal(t, "urgent", doc.Pages[0].Footer.Remarks)
}

func TestRenderCommandStdout(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"render",
		"--env-file", filepath.Join(dir, "missing.env"),
		"--items", writeItems(t, dir),
		"--format", "html",
		"--page-size", "1",
		"-o", "-",
	})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Page 2 of 2")
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"render", "--items", "x.json", "--format", "docx"})
	require.Error(t, cmd.Execute())
}
