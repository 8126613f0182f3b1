package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/ntm/internal/machine"
	"github.com/roach88/ntm/internal/metrics"
	"github.com/roach88/ntm/internal/search"
	"github.com/roach88/ntm/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Machine  string
	Strategy string
	MaxSteps int
	Trace    bool
	Database string
	Metrics  bool

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Machine  string              `json:"machine"`
	Input    string              `json:"input"`
	Strategy string              `json:"strategy"`
	Accepted bool                `json:"accepted"`
	Steps    int                 `json:"steps"`
	Explored int                 `json:"explored"`
	Tape     string              `json:"tape,omitempty"`
	Trace    []search.TraceEvent `json:"trace,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <machine-file> <input>",
		Short: "Simulate a machine on an input",
		Long: `Simulate a machine on an input string and report whether it is accepted.

The text report has three lines, as in the classic simulator: the verdict,
the number of steps, and the tape of the accepting branch (or of the final
configuration of a deterministic run). Trailing blanks are trimmed.

Exit codes:
  0 - Input accepted
  1 - Input not accepted, or the step limit was exceeded
  2 - Command error (bad machine file, input outside the alphabet, etc.)

Examples:
  ntm run machines/even-ones.yaml 0110
  ntm run machines.cue --machine contains-11 --strategy dfs 0110
  ntm run machines/even-ones.yaml 1011 --trace
  ntm run machines/even-ones.yaml 11 --db ./ntm.db --metrics`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Machine, "machine", "", "machine name, when the file defines several")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", string(search.StrategyBFS), "search strategy (bfs|dfs|deterministic)")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", search.DefaultMaxSteps, "maximum search depth (0 for unlimited)")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print every explored configuration")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics after the run")

	return cmd
}

func runMachine(opts *RunOptions, path, input string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Diagnostics go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	desc, err := loadMachine(path, opts.Machine)
	if err != nil {
		return reportLoadError(formatter, err)
	}
	strategy, err := search.ParseStrategy(opts.Strategy)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid strategy", err)
	}
	if opts.MaxSteps < 0 {
		_ = formatter.Error(ErrCodeGeneric, "--max-steps must not be negative", nil)
		return NewExitError(ExitCommandError, "invalid max steps")
	}

	searchOpts := []search.Option{
		search.WithStrategy(strategy),
		search.WithMaxSteps(opts.MaxSteps),
		search.WithLogger(logger),
	}

	var trace *search.Trace
	if opts.Trace {
		if formatter.Format == "json" {
			trace = search.NewTrace(desc)
			searchOpts = append(searchOpts, search.WithObserver(trace))
		} else {
			searchOpts = append(searchOpts, search.WithObserver(search.NewRecorder(formatter.Writer, desc)))
		}
	}

	var registry *prometheus.Registry
	if opts.Metrics {
		registry = prometheus.NewRegistry()
		collector, err := metrics.New(registry)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to set up metrics", err)
		}
		searchOpts = append(searchOpts, search.WithObserver(collector.ForMachine(desc.Name)))
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := search.Run(ctx, desc, input, searchOpts...)
	if err != nil {
		return reportRunError(formatter, err)
	}

	var runID string
	if opts.Database != "" {
		runID, err = recordRun(ctx, opts, desc, input, result, logger)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}

	if err := outputRunResult(formatter, desc, input, result, trace, runID); err != nil {
		return err
	}

	if registry != nil {
		// Keep JSON output parseable
		w := formatter.Writer
		if formatter.Format == "json" {
			w = formatter.GetErrWriter()
		}
		if err := metrics.WriteText(w, registry); err != nil {
			return WrapExitError(ExitCommandError, "failed to write metrics", err)
		}
	}

	if !result.Accepted {
		return NewExitError(ExitFailure, "input not accepted")
	}
	return nil
}

func recordRun(ctx context.Context, opts *RunOptions, desc *machine.Description, input string, result *search.Result, logger *slog.Logger) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	gen := opts.IDGenerator
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}
	run := &store.Run{
		ID:          gen.Generate(),
		Machine:     desc.Name,
		MachineHash: desc.Hash(),
		Input:       input,
		Strategy:    string(result.Strategy),
		MaxSteps:    opts.MaxSteps,
		Accepted:    result.Accepted,
		Steps:       result.Steps,
		Explored:    result.Explored,
		Tape:        result.Tape,
	}
	if err := st.WriteRun(ctx, run); err != nil {
		return "", err
	}
	logger.Info("run recorded", "id", run.ID, "seq", run.Seq, "db", opts.Database)
	return run.ID, nil
}

func outputRunResult(formatter *OutputFormatter, desc *machine.Description, input string, result *search.Result, trace *search.Trace, runID string) error {
	if formatter.Format == "json" {
		out := RunOutput{
			Machine:  desc.Name,
			Input:    input,
			Strategy: string(result.Strategy),
			Accepted: result.Accepted,
			Steps:    result.Steps,
			Explored: result.Explored,
			Tape:     result.Tape,
		}
		if trace != nil {
			out.Trace = trace.Events
		}
		return formatter.JSON(CLIResponse{Status: "ok", Data: out, RunID: runID})
	}

	w := formatter.Writer
	formatter.VerboseLog("explored %d configuration(s) with %s", result.Explored, result.Strategy)
	fmt.Fprintln(w, result.String())
	if runID != "" {
		fmt.Fprintf(w, "recorded run %s\n", runID)
	}
	return nil
}

// reportLoadError prints a machine loading error. Definition errors exit
// with ExitCommandError like path errors: the run never started.
func reportLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load machine", err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "failed to load machine", err)
}

func reportRunError(formatter *OutputFormatter, err error) error {
	switch {
	case errors.Is(err, machine.ErrInvalidInput):
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid input", err)
	case search.IsStepsExceededError(err):
		_ = formatter.Error(ErrCodeStepLimit, err.Error(), nil)
		return WrapExitError(ExitFailure, "step limit exceeded", err)
	case errors.Is(err, context.Canceled):
		_ = formatter.Error(ErrCodeGeneric, "interrupted", nil)
		return WrapExitError(ExitFailure, "interrupted", err)
	default:
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "run failed", err)
	}
}
