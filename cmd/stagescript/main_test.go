package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagescript/internal/testutils"
	"stagescript/pkg/stagetypes"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.stage")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestCompileFile_WellFormedScript(t *testing.T) {
	path := writeScript(t, testutils.GreetingScript)

	stages, err := compileFile(path)
	require.NoError(t, err)
	assert.Len(t, stages, 2)
	assert.Contains(t, stages, "initial")
	assert.Contains(t, stages, "next")
}

func TestCompileFile_MissingFile(t *testing.T) {
	_, err := compileFile(filepath.Join(t.TempDir(), "nope.stage"))
	require.Error(t, err)
	assert.Equal(t, exitIO, exitCodeFor(err))
}

func TestCompileFile_ScanError(t *testing.T) {
	path := writeScript(t, "BOGUS command\n")

	_, err := compileFile(path)
	require.Error(t, err)
	assert.Equal(t, exitScan, exitCodeFor(err))
}

func TestCompileFile_ParseError(t *testing.T) {
	path := writeScript(t, "STAGE initial\nSPEAK \"hi\"\n")

	_, err := compileFile(path)
	require.Error(t, err)
	assert.Equal(t, exitParse, exitCodeFor(err))
}

func TestExitCodeFor_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"scan", &stagetypes.ScanError{Line: 1}, exitScan},
		{"parse", &stagetypes.ParseError{Line: 1}, exitParse},
		{"runtime", &stagetypes.RuntimeError{Stage: "initial"}, exitRuntime},
		{"io", errors.New("file vanished"), exitIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, exitCodeFor(tt.err))
		})
	}
}
