package search

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/ntm/internal/engine"
	"github.com/roach88/ntm/internal/machine"
)

// node is a frontier entry.
type node struct {
	cfg   *machine.Configuration
	depth int
}

type runner struct {
	desc   *machine.Description
	cfg    config
	clock  *Clock
	quota  *QuotaEnforcer
	result *Result
}

// Run simulates desc on input and reports whether any branch accepts.
//
// The description is validated first. A cancelled ctx stops the search
// between expansions and its error is returned.
func Run(ctx context.Context, desc *machine.Description, input string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine %s: %w", desc.Name, err)
	}
	tape, err := desc.Encode(input)
	if err != nil {
		return nil, err
	}

	r := &runner{
		desc:   desc,
		cfg:    cfg,
		clock:  NewClock(),
		quota:  NewQuotaEnforcer(cfg.maxSteps),
		result: &Result{Strategy: cfg.strategy},
	}
	root := machine.Build(tape, desc.Accept, desc.Reject)

	log := cfg.logger.With("machine", desc.Name, "strategy", string(cfg.strategy))
	log.Debug("search started", "input", input, "max_steps", cfg.maxSteps)

	switch cfg.strategy {
	case StrategyBFS:
		err = r.explore(ctx, root, newQueue[node]())
	case StrategyDFS:
		err = r.explore(ctx, root, newStack[node]())
	case StrategyDeterministic:
		err = r.deterministic(ctx, root)
	default:
		err = fmt.Errorf("unknown strategy %q", cfg.strategy)
	}
	if err != nil {
		log.Debug("search aborted", "error", err, "explored", r.result.Explored)
		return nil, err
	}

	log.Debug("search finished",
		"accepted", r.result.Accepted,
		"steps", r.result.Steps,
		"explored", r.result.Explored,
	)
	return r.result, nil
}

// explore runs the nondeterministic search over f. A queue gives
// breadth-first order, a stack depth-first order.
func (r *runner) explore(ctx context.Context, root *machine.Configuration, f *frontier[node]) error {
	f.Push(node{cfg: root})
	var batch []*machine.Configuration

	for {
		n, ok := f.Pop()
		if !ok {
			r.reject(max(r.quota.Deepest(), 0))
			return nil
		}
		if err := r.expand(ctx, n, f.Len()); err != nil {
			return err
		}

		state, symbol := n.cfg.Read()
		batch = batch[:0]
		o := engine.Apply(n.cfg, r.desc.Lookup(state, symbol), func(c *machine.Configuration) bool {
			batch = append(batch, c)
			return true
		})
		if acc, ok := engine.IsAccepted(o); ok {
			r.accept(acc.Witness, n.depth)
			return nil
		}

		// A stack pops the last push first; push in reverse so the first
		// transition is explored first.
		if f.lifo {
			slices.Reverse(batch)
		}
		for _, c := range batch {
			f.Push(node{cfg: c, depth: n.depth + 1})
		}
		clear(batch)
	}
}

// deterministic follows the first transition of every batch. The single
// configuration is rewritten in place.
func (r *runner) deterministic(ctx context.Context, root *machine.Configuration) error {
	n := node{cfg: root}
	for {
		if err := r.expand(ctx, n, 0); err != nil {
			return err
		}

		state, symbol := n.cfg.Read()
		batch := r.desc.Lookup(state, symbol)
		if len(batch) > 1 {
			batch = batch[:1]
		}

		var next *machine.Configuration
		o := engine.Apply(n.cfg, batch, func(c *machine.Configuration) bool {
			next = c
			return false
		})
		if acc, ok := engine.IsAccepted(o); ok {
			r.accept(acc.Witness, n.depth)
			return nil
		}
		if next == nil {
			// A rejecting transition still writes and moves before the
			// machine halts. A missing one leaves the tape untouched.
			if len(batch) == 1 && batch[0].To == r.desc.Reject {
				t := batch[0]
				n.cfg.Write(t.Write)
				n.cfg.SetState(t.To)
				if t.Right {
					n.cfg.MoveRight()
				} else {
					n.cfg.MoveLeft()
				}
			}
			r.result.Tape = r.desc.Decode(n.cfg.Tape())
			r.result.HasTape = true
			r.reject(n.depth)
			return nil
		}
		n = node{cfg: next, depth: n.depth + 1}
	}
}

func (r *runner) expand(ctx context.Context, n node, pending int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.quota.Check(r.desc.Name, n.depth); err != nil {
		return err
	}
	r.result.Explored++
	r.emit(Event{Kind: EventExpand, Depth: n.depth, Frontier: pending, Config: n.cfg})
	return nil
}

func (r *runner) accept(witness *machine.Configuration, depth int) {
	r.result.Accepted = true
	r.result.Steps = depth
	r.result.Tape = r.desc.Decode(witness.Tape())
	r.result.HasTape = true
	r.emit(Event{Kind: EventAccept, Depth: depth, Config: witness})
}

func (r *runner) reject(depth int) {
	r.result.Accepted = false
	r.result.Steps = depth
	r.emit(Event{Kind: EventReject, Depth: depth})
}

func (r *runner) emit(e Event) {
	if len(r.cfg.observers) == 0 {
		return
	}
	e.Seq = r.clock.Next()
	r.cfg.observers.OnEvent(e)
}
