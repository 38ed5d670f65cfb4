package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/ladsynth/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	// Err is the failure the code was derived from, if any.
	Err error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the classified failure.
func (e *ExitError) Unwrap() error {
	return e.Err
}

type flags struct {
	skeleton  string
	spec      string
	out       string
	outDir    string
	workers   int
	logLevel  string
	logFormat string
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cfg *app.Config
	accept := func(c app.Config) error {
		valid, err := app.NewConfig(c)
		if err != nil {
			return err
		}
		cfg = valid
		return nil
	}

	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root := newRootCommand(accept)
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)
	if err := root.Execute(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	}
	if cfg == nil {
		slog.Debug("Nothing to build, exiting.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "specs", cfg.Specs, "workers", cfg.WorkerCount)
	return cfg, false, nil
}

func newRootCommand(accept func(app.Config) error) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "ladsynth --spec SPEC --out FILE",
		Short: "Synthesize ladder logic programs into project documents",
		Long: `ladsynth compiles a process specification (HCL or YAML) into ladder rungs,
derives their instruction lists, checks both forms agree, and writes the
result into a copy of a skeleton project document.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.spec == "" && f.out == "" {
				return cmd.Help()
			}
			if f.spec == "" || f.out == "" {
				return errors.New("both --spec and --out are required")
			}
			return accept(app.Config{
				SkeletonPath: f.skeleton,
				Specs:        []string{f.spec},
				Out:          f.out,
				LogLevel:     strings.ToLower(f.logLevel),
				LogFormat:    strings.ToLower(f.logFormat),
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.skeleton, "skeleton", "", "Path to the skeleton document. Defaults to the built-in reference skeleton.")
	pf.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	root.Flags().StringVar(&f.spec, "spec", "", "Process specification file, directory of .hcl files, or inline HCL source.")
	root.Flags().StringVarP(&f.out, "out", "o", "", "Path of the document to write.")

	root.AddCommand(newBatchCommand(f, accept))
	return root
}

func newBatchCommand(f *flags, accept func(app.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch --out-dir DIR SPEC...",
		Short: "Build every specification into its own document, concurrently",
		Long: `Each SPEC is a specification file or a directory searched for .hcl, .yaml
and .yml files. Every specification is written to DIR/<name>.smbp.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return accept(app.Config{
				SkeletonPath: f.skeleton,
				Specs:        args,
				OutDir:       f.outDir,
				WorkerCount:  f.workers,
				LogLevel:     strings.ToLower(f.logLevel),
				LogFormat:    strings.ToLower(f.logFormat),
			})
		},
	}
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "Directory receiving the documents.")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Number of concurrent builds. 0 uses one per CPU.")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}
