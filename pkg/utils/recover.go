package utils

import (
	"fmt"
	"runtime/debug"
)

// RecoverToError runs fn and converts a panic into an error.
func RecoverToError(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return fn()
}
