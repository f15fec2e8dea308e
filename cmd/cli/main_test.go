package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/fileopen/internal/app"
	"github.com/specialistvlad/fileopen/internal/cli"
	"github.com/specialistvlad/fileopen/internal/fsutil"
	"github.com/stretchr/testify/require"
)

func TestRun_ExistingEmptyFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "empty.mp4")
	require.NoError(t, os.WriteFile(path, nil, 0600), "failed to set up test file")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{path})

	// --- Assert ---
	require.NoError(t, err)
	require.Empty(t, out.String())
	require.Empty(t, errOut.String())
}

func TestRun_MissingFile(t *testing.T) {
	t.Parallel()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(out, errOut, []string{"does_not_exist.mp4"})

	require.NoError(t, err, "a missing file is not an error exit")
	require.Equal(t, "File 'does_not_exist.mp4' doesn't exists\n", out.String())
	require.Empty(t, errOut.String())
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error buffer")
	require.Empty(t, out.String())
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		args        []string
		expectedMsg string
	}{
		{name: "no arguments", args: []string{}, expectedMsg: "missing required argument: file"},
		{name: "two arguments", args: []string{"a.mp4", "b.mp4"}, expectedMsg: "expected exactly one file argument, got 2"},
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag", "a.mp4"}, expectedMsg: "flag provided but not defined: -this-is-not-a-valid-flag"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

			err := run(out, errOut, tc.args)
			require.Error(t, err)
			code := report(errOut, err)

			require.Equal(t, 2, code)
			require.Contains(t, errOut.String(), "Usage:")
			require.Equal(t, 1, strings.Count(errOut.String(), tc.expectedMsg), "the error must be printed exactly once:\n%s", errOut.String())
			require.Empty(t, out.String())
		})
	}
}

func TestRun_InvalidSettings(t *testing.T) {
	t.Parallel()

	settings := filepath.Join(t.TempDir(), "fileopen.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("logging:\n  level: loud\n"), 0600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", settings, "a.mp4"})

	require.Error(t, err)
	require.Equal(t, 2, report(&bytes.Buffer{}, err))
}

func TestRun_NotFoundExitCode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	settings := filepath.Join(dir, "fileopen.hcl")
	require.NoError(t, os.WriteFile(settings, []byte("not_found_exit_code = 4\n"), 0600))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(out, errOut, []string{"-config", settings, filepath.Join(dir, "missing.mp4")})

	require.Error(t, err)
	require.Equal(t, 4, report(errOut, err))
	require.Contains(t, out.String(), "doesn't exists")
	require.Empty(t, errOut.String())
}

func TestReport(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "x.mp4")
	_, openErr := os.Open(missing)
	require.Error(t, openErr)

	testCases := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "open failure",
			err:          &fsutil.OpenError{Path: missing, Err: openErr},
			expectedCode: 1,
			expectedErr:  "Unable to open file: open " + missing + ": no such file or directory\n",
		},
		{
			name:         "flag error already printed",
			err:          &cli.ExitError{Code: 2, Message: "flag provided but not defined: -x", Reported: true},
			expectedCode: 2,
			expectedErr:  "",
		},
		{
			name:         "usage error",
			err:          &cli.ExitError{Code: 2, Message: "missing required argument: file"},
			expectedCode: 2,
			expectedErr:  "missing required argument: file\n",
		},
		{
			name:         "not found with configured code",
			err:          &app.NotFoundError{Path: "clip.mp4", Code: 3},
			expectedCode: 3,
			expectedErr:  "",
		},
		{
			name:         "unexpected error",
			err:          errors.New("boom"),
			expectedCode: 1,
			expectedErr:  "boom\n",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			errOut := &bytes.Buffer{}

			code := report(errOut, tc.err)

			require.Equal(t, tc.expectedCode, code)
			require.Equal(t, tc.expectedErr, errOut.String())
		})
	}
}

func TestRun_OpenFailure(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "locked.mp4")
	require.NoError(t, os.WriteFile(path, nil, 0000), "failed to set up test file")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{path})

	// --- Assert ---
	require.Error(t, err)
	require.Equal(t, 1, report(errOut, err))
	require.Contains(t, errOut.String(), "Unable to open file: ")
	require.Empty(t, out.String())
}

// The tests below install an after-check hook and therefore do not run in parallel.

func TestRun_FileRemovedBeforeOpen(t *testing.T) {
	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "vanishing.mp4")
	require.NoError(t, os.WriteFile(path, nil, 0600), "failed to set up test file")
	t.Cleanup(fsutil.SetAfterCheckHook(func(p string) {
		require.NoError(t, os.Remove(p))
	}))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{path})
	code := report(errOut, err)

	// --- Assert ---
	require.Equal(t, 1, code)
	require.Equal(t, "Unable to open file: open "+path+": no such file or directory\n", errOut.String())
	require.Empty(t, out.String())
}

func TestRun_FileReplacedBeforeOpen(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	replacement := filepath.Join(dir, "other.mp4")
	require.NoError(t, os.WriteFile(path, nil, 0600), "failed to set up test file")
	require.NoError(t, os.WriteFile(replacement, nil, 0600), "failed to set up test file")
	t.Cleanup(fsutil.SetAfterCheckHook(func(p string) {
		require.NoError(t, os.Rename(replacement, p))
	}))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{path})
	code := report(errOut, err)

	// --- Assert ---
	require.Equal(t, 1, code)
	require.Equal(t, "Unable to open file: open "+path+": file changed between check and open\n", errOut.String())
	require.Empty(t, out.String())
}
