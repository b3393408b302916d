package compiler

import "strings"

// Compilation phases that can reject a program.
const (
	PhaseParse = "parse"
	PhaseCheck = "check"
)

// Diagnostics is the set of source errors one phase reported. The
// phases run strictly in order, so a Diagnostics value never mixes
// parse and check errors.
type Diagnostics struct {
	Phase string
	Errs  []error
}

func (d *Diagnostics) Error() string {
	msgs := make([]string, len(d.Errs))
	for i, e := range d.Errs {
		msgs[i] = e.Error()
	}
	return d.Phase + ": " + strings.Join(msgs, "; ")
}

// Messages returns the individual diagnostics in source order.
func (d *Diagnostics) Messages() []string {
	msgs := make([]string, len(d.Errs))
	for i, e := range d.Errs {
		msgs[i] = e.Error()
	}
	return msgs
}
