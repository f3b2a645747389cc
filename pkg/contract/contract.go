// Package contract reports broken internal invariants. A failure here is a
// defect in compy itself, never a property of the input program.
package contract

import (
	"fmt"

	"github.com/golang/glog"
)

const failMsg = "An internal invariant has been violated"

// Violation is the panic value raised by a failed assertion.
type Violation struct {
	Msg string
}

func (v *Violation) Error() string { return v.Msg }

// Assertf fails with the formatted message if cond is false.
func Assertf(cond bool, msg string, args ...any) {
	if !cond {
		fail(fmt.Sprintf("%v: %v", failMsg, fmt.Sprintf(msg, args...)))
	}
}

// Failf unconditionally fails with the formatted message.
func Failf(msg string, args ...any) {
	fail(fmt.Sprintf("%v: %v", failMsg, fmt.Sprintf(msg, args...)))
}

func fail(msg string) {
	glog.ErrorDepth(2, msg)
	panic(&Violation{Msg: msg})
}
