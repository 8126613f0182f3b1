package search

import "github.com/roach88/ntm/internal/machine"

// evenOnes accepts binary strings with an even number of ones.
func evenOnes() *machine.Description {
	d := machine.NewDescription("even-ones",
		[]string{"even", "odd", "accept", "reject"},
		[]string{"_", "0", "1"},
		2, 3)
	d.AddTransition(0, 1, machine.Transition{To: 0, Write: 1, Right: true})
	d.AddTransition(0, 2, machine.Transition{To: 1, Write: 2, Right: true})
	d.AddTransition(0, 0, machine.Transition{To: 2, Write: 0})
	d.AddTransition(1, 1, machine.Transition{To: 1, Write: 1, Right: true})
	d.AddTransition(1, 2, machine.Transition{To: 0, Write: 2, Right: true})
	d.AddTransition(1, 0, machine.Transition{To: 3, Write: 0})
	return d
}

// containsOneOne guesses where "11" starts.
func containsOneOne() *machine.Description {
	d := machine.NewDescription("contains-11",
		[]string{"scan", "seen1", "accept", "reject"},
		[]string{"_", "0", "1"},
		2, 3)
	d.AddTransition(0, 1, machine.Transition{To: 0, Write: 1, Right: true})
	d.AddTransition(0, 2, machine.Transition{To: 0, Write: 2, Right: true})
	d.AddTransition(0, 2, machine.Transition{To: 1, Write: 2, Right: true})
	d.AddTransition(0, 0, machine.Transition{To: 3, Write: 0})
	d.AddTransition(1, 2, machine.Transition{To: 2, Write: 2})
	d.AddTransition(1, 1, machine.Transition{To: 3, Write: 1})
	d.AddTransition(1, 0, machine.Transition{To: 3, Write: 0})
	return d
}

// runaway never halts.
func runaway() *machine.Description {
	d := machine.NewDescription("runaway",
		[]string{"loop", "accept", "reject"},
		[]string{"_"},
		1, 2)
	d.AddTransition(0, 0, machine.Transition{To: 0, Write: 0, Right: true})
	return d
}
