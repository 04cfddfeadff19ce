// Package runtimex contains runtime extensions used when a failure
// can only be caused by a programming error (e.g., a broken prompt
// definition or a value that must always serialize).
package runtimex

import "fmt"

// PanicOnError calls panic() if err is not nil.
func PanicOnError(err error, message string) {
	if err != nil {
		panic(fmt.Errorf("%s: %w", message, err))
	}
}
