package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSourceFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.wax")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunCheck_ValidSourcePrintsOK(t *testing.T) {
	path := writeSourceFile(t, "let x: int = 1 + 2;")

	var out, errOut bytes.Buffer
	checkCmd.SetOut(&out)
	checkCmd.SetErr(&errOut)
	checkCmd.SetArgs([]string{path})

	err := checkCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ok")
}

func TestRunCheck_TypeErrorIsReportedAndReturned(t *testing.T) {
	path := writeSourceFile(t, "if 1 { }")

	var out, errOut bytes.Buffer
	checkCmd.SetOut(&out)
	checkCmd.SetErr(&errOut)
	checkCmd.SetArgs([]string{path})

	err := checkCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "type error")
}
