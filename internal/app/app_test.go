package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/document"
	"github.com/specialistvlad/ladsynth/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestApp(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	cfg.LogLevel = "debug"
	valid, err := NewConfig(cfg)
	require.NoError(t, err)

	logs := &testutil.SafeBuffer{}
	testutil.LogOnFailure(t, logs)
	a, err := NewApp(logs, valid)
	require.NoError(t, err)
	return a, logs
}

func requireDocument(t *testing.T, path string, rungs int) {
	t.Helper()
	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, document.Validate(doc))
	section, err := document.Extract(doc, document.SectionRungs)
	require.NoError(t, err)
	assert.Len(t, section.ChildrenNamed("RungEntity"), rungs)
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{Specs: []string{"a.hcl"}, Out: "a.smbp"})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Positive(t, cfg.WorkerCount)

	testCases := []struct {
		name string
		cfg  Config
	}{
		{name: "no spec", cfg: Config{Out: "a.smbp"}},
		{name: "no output", cfg: Config{Specs: []string{"a.hcl"}}},
		{name: "both outputs", cfg: Config{Specs: []string{"a.hcl"}, Out: "a.smbp", OutDir: "out"}},
		{name: "single build with two specs", cfg: Config{Specs: []string{"a.hcl", "b.hcl"}, Out: "a.smbp"}},
		{name: "bad level", cfg: Config{Specs: []string{"a.hcl"}, Out: "a.smbp", LogLevel: "trace"}},
		{name: "bad format", cfg: Config{Specs: []string{"a.hcl"}, Out: "a.smbp", LogFormat: "xml"}},
		{name: "negative workers", cfg: Config{Specs: []string{"a.hcl"}, OutDir: "out", WorkerCount: -1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConfig(tc.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewApp_MissingSkeleton(t *testing.T) {
	cfg, err := NewConfig(Config{
		SkeletonPath: filepath.Join(t.TempDir(), "missing.smbp"),
		Specs:        []string{"a.hcl"},
		Out:          "a.smbp",
	})
	require.NoError(t, err)
	_, err = NewApp(&testutil.SafeBuffer{}, cfg)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{"tank.hcl": testutil.TankHCL})
	out := filepath.Join(dir, "tank.smbp")

	a, logs := newTestApp(t, Config{
		SkeletonPath: testutil.WriteSkeleton(t, dir),
		Specs:        []string{filepath.Join(dir, "tank.hcl")},
		Out:          out,
	})
	require.NoError(t, a.Run(context.Background()))

	requireDocument(t, out, testutil.TankRungs)
	assert.Contains(t, logs.String(), "Document written.")
	assert.Contains(t, logs.String(), "rung=\"Fill timeout\"")
}

func TestGenerate_Sources(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"mixer.yml":          testutil.MixerYAML,
		"split/program.hcl":  `program "split" {}` + "\n" + `symbol "A" { zone = "bit" }`,
		"split/rungs.hcl":    `rung "r" {` + "\n" + `pattern = "output"` + "\n" + `arguments {` + "\n" + `coils = ["A"]` + "\n" + "}\n}\n",
		"split/ignored.yaml": "not: [valid",
	})

	testCases := []struct {
		name  string
		spec  string
		rungs int
	}{
		{name: "yaml file", spec: filepath.Join(dir, "mixer.yml"), rungs: 1},
		{name: "hcl directory", spec: filepath.Join(dir, "split"), rungs: 1},
		{name: "inline", spec: testutil.TankHCL, rungs: testutil.TankRungs},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.smbp")
			a, _ := newTestApp(t, Config{Specs: []string{tc.spec}, Out: out})
			require.NoError(t, a.Run(context.Background()))
			requireDocument(t, out, tc.rungs)
		})
	}
}

func TestGenerate_Errors(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"broken.hcl": testutil.BrokenHCL,
		"notes.txt":  "program",
	})

	testCases := []struct {
		name    string
		spec    string
		wantErr error
	}{
		{name: "unknown symbol", spec: filepath.Join(dir, "broken.hcl"), wantErr: address.ErrUnknownSymbol},
		{name: "unsupported extension", spec: filepath.Join(dir, "notes.txt"), wantErr: config.ErrInvalidSpec},
		{name: "missing file", spec: filepath.Join(dir, "missing.hcl"), wantErr: os.ErrNotExist},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.smbp")
			a, _ := newTestApp(t, Config{Specs: []string{tc.spec}, Out: out})
			err := a.Run(context.Background())
			require.ErrorIs(t, err, tc.wantErr)
			assert.NoFileExists(t, out)
		})
	}
}

func TestBatch(t *testing.T) {
	specs := testutil.WriteFiles(t, t.TempDir(), map[string]string{
		"tank.hcl":        testutil.TankHCL,
		"lines/mixer.yml": testutil.MixerYAML,
		"lines/README":    "skipped",
	})
	outDir := filepath.Join(t.TempDir(), "out")

	a, logs := newTestApp(t, Config{Specs: []string{specs}, OutDir: outDir, WorkerCount: 2})
	require.NoError(t, a.Run(context.Background()))

	requireDocument(t, filepath.Join(outDir, "tank.smbp"), testutil.TankRungs)
	requireDocument(t, filepath.Join(outDir, "mixer.smbp"), 1)
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Contains(t, logs.String(), "Batch build finished.")
}

func TestBatch_Errors(t *testing.T) {
	t.Run("failing spec", func(t *testing.T) {
		specs := testutil.WriteFiles(t, t.TempDir(), map[string]string{
			"broken.hcl": testutil.BrokenHCL,
			"tank.hcl":   testutil.TankHCL,
		})
		a, _ := newTestApp(t, Config{Specs: []string{specs}, OutDir: t.TempDir(), WorkerCount: 1})
		err := a.Run(context.Background())
		require.ErrorIs(t, err, address.ErrUnknownSymbol)
		assert.Contains(t, err.Error(), "broken.hcl")
	})

	t.Run("output collision", func(t *testing.T) {
		specs := testutil.WriteFiles(t, t.TempDir(), map[string]string{
			"tank.hcl":  testutil.TankHCL,
			"tank.yaml": testutil.MixerYAML,
		})
		a, _ := newTestApp(t, Config{Specs: []string{specs}, OutDir: t.TempDir()})
		require.ErrorIs(t, a.Run(context.Background()), ErrInvalidConfig)
	})

	t.Run("nothing to build", func(t *testing.T) {
		a, _ := newTestApp(t, Config{Specs: []string{t.TempDir()}, OutDir: t.TempDir()})
		require.ErrorIs(t, a.Run(context.Background()), ErrInvalidConfig)
	})

	t.Run("cancelled", func(t *testing.T) {
		specs := testutil.WriteFiles(t, t.TempDir(), map[string]string{"tank.hcl": testutil.TankHCL})
		outDir := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a, _ := newTestApp(t, Config{Specs: []string{specs}, OutDir: outDir})
		require.ErrorIs(t, a.Run(ctx), context.Canceled)
		assert.NoFileExists(t, filepath.Join(outDir, "tank.smbp"))
	})
}
