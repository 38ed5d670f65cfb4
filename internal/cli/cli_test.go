package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/app"
	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/document"
	"github.com/specialistvlad/ladsynth/internal/hardware"
	"github.com/specialistvlad/ladsynth/internal/ladder"
	"github.com/specialistvlad/ladsynth/internal/pattern"
	"github.com/specialistvlad/ladsynth/internal/program"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want app.Config
	}{
		{
			name: "single build",
			args: []string{"--spec", "tank.hcl", "--out", "tank.smbp"},
			want: app.Config{Specs: []string{"tank.hcl"}, Out: "tank.smbp", LogLevel: "info", LogFormat: "text", WorkerCount: runtime.NumCPU()},
		},
		{
			name: "skeleton and logging",
			args: []string{"--skeleton", "base.smbp", "--spec", "tank.hcl", "-o", "tank.smbp", "--log-level", "DEBUG", "--log-format", "json"},
			want: app.Config{SkeletonPath: "base.smbp", Specs: []string{"tank.hcl"}, Out: "tank.smbp", LogLevel: "debug", LogFormat: "json", WorkerCount: runtime.NumCPU()},
		},
		{
			name: "batch",
			args: []string{"batch", "--skeleton", "base.smbp", "--out-dir", "out", "-w", "3", "a.hcl", "specs"},
			want: app.Config{SkeletonPath: "base.smbp", Specs: []string{"a.hcl", "specs"}, OutDir: "out", LogLevel: "info", LogFormat: "text", WorkerCount: 3},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, shouldExit)
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"-h"}, {"batch", "--help"}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)
		require.NoError(t, err, "args %v", args)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		message string
	}{
		{name: "unknown flag", args: []string{"--nope"}, message: "unknown flag: --nope"},
		{name: "missing out", args: []string{"--spec", "a.hcl"}, message: "both --spec and --out are required"},
		{name: "positional argument", args: []string{"a.hcl"}, message: "unknown command"},
		{name: "bad level", args: []string{"--spec", "a.hcl", "--out", "a.smbp", "--log-level", "loud"}, message: "log level"},
		{name: "batch without out-dir", args: []string{"batch", "a.hcl"}, message: "out-dir"},
		{name: "batch without specs", args: []string{"batch", "--out-dir", "out"}, message: "requires at least 1 arg"},
		{name: "negative workers", args: []string{"batch", "--out-dir", "out", "-w", "-2", "a.hcl"}, message: "negative worker count"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, ExitUsage, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.message)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	wrap := func(errs ...error) error {
		format := "rung \"r\""
		args := make([]any, 0, len(errs))
		for _, e := range errs {
			format += ": %w"
			args = append(args, e)
		}
		return fmt.Errorf(format, args...)
	}

	testCases := []struct {
		name string
		err  error
		code int
	}{
		{name: "usage", err: wrap(app.ErrInvalidConfig), code: ExitUsage},
		{name: "invalid spec", err: wrap(config.ErrInvalidSpec), code: ExitInvalidSpec},
		{name: "pattern error", err: wrap(pattern.ErrUnknownPattern), code: ExitInvalidSpec},
		{name: "spec wins over element", err: wrap(config.ErrInvalidSpec, ladder.ErrInvalidElement), code: ExitInvalidSpec},
		{name: "address conflict", err: wrap(address.ErrAddressConflict), code: ExitStructural},
		{name: "unknown symbol", err: wrap(address.ErrUnknownSymbol), code: ExitStructural},
		{name: "dangling", err: wrap(ladder.ErrDanglingConnection), code: ExitStructural},
		{name: "duplicate rung", err: wrap(program.ErrDuplicateRungName), code: ExitStructural},
		{name: "mismatch", err: wrap(program.ErrLinearizationMismatch), code: ExitMismatch},
		{name: "incomplete module", err: wrap(hardware.ErrIncompleteModule), code: ExitHardware},
		{name: "duplicate extension", err: wrap(program.ErrDuplicateExtension), code: ExitHardware},
		{name: "section not found", err: wrap(document.ErrSectionNotFound), code: ExitSection},
		{name: "encoding", err: wrap(document.ErrEncodingViolation), code: ExitEncoding},
		{name: "io", err: wrap(os.ErrNotExist), code: ExitIO},
		{name: "cancelled", err: context.Canceled, code: ExitIO},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tc.err)
			require.NotNil(t, got)
			assert.Equal(t, tc.code, got.Code)
			assert.Equal(t, tc.err.Error(), got.Message)
			assert.True(t, errors.Is(got, tc.err))
		})
	}

	assert.Nil(t, Classify(nil))
	already := &ExitError{Code: ExitSection, Message: "m"}
	assert.Same(t, already, Classify(fmt.Errorf("outer: %w", already)))
}
