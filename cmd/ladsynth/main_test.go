package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/ladsynth/internal/cli"
	"github.com/specialistvlad/ladsynth/internal/document"
	"github.com/specialistvlad/ladsynth/internal/testutil"
)

func TestRun_Generate(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{"tank.hcl": testutil.TankHCL})
	out := filepath.Join(dir, "tank.smbp")
	args := []string{
		"--skeleton", testutil.WriteSkeleton(t, dir),
		"--spec", filepath.Join(dir, "tank.hcl"),
		"--out", out,
	}

	errW := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), &bytes.Buffer{}, errW, args))

	doc, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, document.Validate(doc))
	assert.Contains(t, errW.String(), "Document written.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, &bytes.Buffer{}, []string{"-h"}))
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"broken.hcl":          testutil.BrokenHCL,
		"syntax.hcl":          "rung \"r\" {\n",
		"skeleton/empty.smbp": "<?xml version=\"1.0\" encoding=\"utf-8\"?>\r\n<Project>\r\n</Project>\r\n",
		"tank.hcl":            testutil.TankHCL,
	})
	out := filepath.Join(dir, "out.smbp")

	testCases := []struct {
		name string
		args []string
		code int
	}{
		{name: "usage", args: []string{"--this-is-not-a-valid-flag"}, code: cli.ExitUsage},
		{name: "syntax error", args: []string{"--spec", filepath.Join(dir, "syntax.hcl"), "--out", out}, code: cli.ExitInvalidSpec},
		{name: "unknown symbol", args: []string{"--spec", filepath.Join(dir, "broken.hcl"), "--out", out}, code: cli.ExitStructural},
		{name: "missing spec", args: []string{"--spec", filepath.Join(dir, "missing.hcl"), "--out", out}, code: cli.ExitIO},
		{
			name: "skeleton without sections",
			args: []string{"--skeleton", filepath.Join(dir, "skeleton", "empty.smbp"), "--spec", filepath.Join(dir, "tank.hcl"), "--out", out},
			code: cli.ExitSection,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, tc.args)
			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tc.code, exitErr.Code, exitErr.Message)
		})
	}
	assert.NoFileExists(t, out)
}
