// Package crashreport turns panics into errors so that the CLI can
// log them instead of crashing with a stack trace.
package crashreport

import (
	"fmt"
	"runtime/debug"

	"github.com/apex/log"
)

// Disabled flag is used to globally disable panic capturing, which is
// useful when debugging to get the original stack trace.
var Disabled = false

// CapturePanic runs f and returns the recovered panic, if any, as an
// error. When Disabled is true, panics are not captured.
func CapturePanic(f func() error) (err error) {
	if Disabled {
		return f()
	}
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("crashreport: %s", debug.Stack())
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f()
}
