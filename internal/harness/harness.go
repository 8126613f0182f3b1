package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/ntm/internal/compiler"
	"github.com/roach88/ntm/internal/search"
)

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger passed to every search.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// Run executes a test scenario and returns the result.
//
// The returned error covers problems with the scenario itself (machine file,
// strategy). Mismatches between expected and observed results are reported
// in Result.Errors.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	desc, err := compiler.LoadOne(scenario.Machine, scenario.Select)
	if err != nil {
		return nil, fmt.Errorf("load machine: %w", err)
	}
	strategy, err := search.ParseStrategy(scenario.Strategy)
	if err != nil {
		return nil, err
	}

	searchOpts := []search.Option{search.WithStrategy(strategy)}
	if scenario.MaxSteps != nil {
		searchOpts = append(searchOpts, search.WithMaxSteps(*scenario.MaxSteps))
	}
	if cfg.logger != nil {
		searchOpts = append(searchOpts, search.WithLogger(cfg.logger))
	}

	result := NewResult()
	result.Machine = desc.Name
	result.Strategy = string(strategy)

	for i, c := range scenario.Cases {
		trace := search.NewTrace(desc)
		res, runErr := search.Run(ctx, desc, c.Input, append(searchOpts, search.WithObserver(trace))...)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		cr := CaseResult{Input: c.Input, Trace: trace.Events}
		if cr.Trace == nil {
			cr.Trace = []search.TraceEvent{}
		}
		if runErr != nil {
			cr.Error = runErr.Error()
		} else {
			cr.Accepted = res.Accepted
			cr.Steps = res.Steps
			cr.Explored = res.Explored
			cr.Tape = res.Tape
		}
		result.Cases = append(result.Cases, cr)

		for _, msg := range check(c.Expect, cr, runErr) {
			result.AddError(fmt.Sprintf("case %d (input %q): %s", i, c.Input, msg))
		}
	}

	return result, nil
}

// check compares one observed case against its expectation.
func check(want Expect, got CaseResult, runErr error) []string {
	if want.Error != "" {
		switch {
		case runErr == nil:
			return []string{fmt.Sprintf("expected error containing %q, got none", want.Error)}
		case !strings.Contains(runErr.Error(), want.Error):
			return []string{fmt.Sprintf("expected error containing %q, got %q", want.Error, runErr.Error())}
		}
		return nil
	}
	if runErr != nil {
		return []string{fmt.Sprintf("unexpected error: %v", runErr)}
	}

	var msgs []string
	if got.Accepted != want.Accepted {
		msgs = append(msgs, fmt.Sprintf("accepted: expected %t, got %t", want.Accepted, got.Accepted))
	}
	if want.Steps != nil && got.Steps != *want.Steps {
		msgs = append(msgs, fmt.Sprintf("steps: expected %d, got %d", *want.Steps, got.Steps))
	}
	if want.Tape != nil && got.Tape != *want.Tape {
		msgs = append(msgs, fmt.Sprintf("tape: expected %q, got %q", *want.Tape, got.Tape))
	}
	return msgs
}
