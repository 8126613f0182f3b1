package engine

import (
	"iter"

	"github.com/roach88/ntm/internal/machine"
)

// Apply enumerates the successors of cfg for one transition batch, calling
// yield once per successor in batch order. Enumeration stops when yield
// returns false; entries after that point are never evaluated.
//
// Transitions into the rejecting state are skipped. A transition into the
// accepting state aborts the batch and Apply returns Accepted; later entries
// are never evaluated.
//
// The last entry that produces a successor reuses cfg's buffer, every
// earlier one works on a clone. cfg must not be used by the caller after
// Apply returns.
func Apply(cfg *machine.Configuration, batch []machine.Transition, yield func(*machine.Configuration) bool) Outcome {
	accepting, rejecting := cfg.Accepting(), cfg.Rejecting()

	last := -1
	for i := len(batch) - 1; i >= 0; i-- {
		if batch[i].To != accepting && batch[i].To != rejecting {
			last = i
			break
		}
	}

	// pristine holds the parent as it was before the in-place branch, but
	// only when an accepting entry could still follow that branch.
	var pristine *machine.Configuration
	acceptAfterLast := last >= 0 && acceptsAfter(batch[last+1:], accepting)

	yielded := 0
	for i, t := range batch {
		switch t.To {
		case rejecting:
			continue
		case accepting:
			witness := cfg
			if pristine != nil {
				witness = pristine
			}
			step(witness, t)
			return Accepted{Witness: witness}
		}

		next := cfg
		if i != last {
			next = cfg.Clone()
		} else if acceptAfterLast {
			pristine = cfg.Clone()
		}
		step(next, t)
		yielded++
		if !yield(next) {
			return Branched{Yielded: yielded, Stopped: true}
		}
	}
	return Branched{Yielded: yielded}
}

// Successors adapts Apply to a range-over-func iterator. The returned
// function reports the outcome once the range loop has finished.
//
//	seq, outcome := engine.Successors(cfg, batch)
//	for next := range seq {
//		frontier.Push(next)
//	}
//	if _, ok := engine.IsAccepted(outcome()); ok {
//		// stop the search
//	}
//
// The sequence is single-use: Apply consumes cfg, so ranging it again
// yields nothing. outcome returns nil until the sequence has been ranged.
func Successors(cfg *machine.Configuration, batch []machine.Transition) (iter.Seq[*machine.Configuration], func() Outcome) {
	var result Outcome
	seq := func(yield func(*machine.Configuration) bool) {
		if result != nil {
			return
		}
		result = Apply(cfg, batch, yield)
	}
	return seq, func() Outcome { return result }
}

// Collect forces the whole batch and returns every successor.
func Collect(cfg *machine.Configuration, batch []machine.Transition) ([]*machine.Configuration, Outcome) {
	var out []*machine.Configuration
	o := Apply(cfg, batch, func(c *machine.Configuration) bool {
		out = append(out, c)
		return true
	})
	return out, o
}

// step writes the symbol, changes state, then moves the head.
func step(c *machine.Configuration, t machine.Transition) {
	c.Write(t.Write)
	c.SetState(t.To)
	if t.Right {
		c.MoveRight()
	} else {
		c.MoveLeft()
	}
}

func acceptsAfter(rest []machine.Transition, accepting machine.State) bool {
	for _, t := range rest {
		if t.To == accepting {
			return true
		}
	}
	return false
}
