package machine

import (
	"fmt"
	"strings"
)

// Render formats a configuration on one line: the state name padded to five
// columns, then the tape with the head cell in brackets. Trailing blank slack
// beyond the head is omitted.
func (d *Description) Render(c *Configuration) string {
	tape := c.Tape()
	pos := c.Position()
	end := len(tape)
	for end > pos+1 && tape[end-1] == Blank {
		end--
	}

	var b strings.Builder
	fmt.Fprintf(&b, " %-5s ", d.StateName(c.State()))
	for i, s := range tape[:end] {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == pos {
			b.WriteString("[" + d.SymbolName(s) + "]")
		} else {
			b.WriteString(d.SymbolName(s))
		}
	}
	return b.String()
}
