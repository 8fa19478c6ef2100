package host

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Go runs fn in a new goroutine with panic recovery routed to onPanic
// Use this instead of the 'go' keyword for goroutines that touch the terminal
func Go(fn func(), onPanic func(any)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if onPanic == nil {
					panic(r)
				}
				onPanic(r)
			}
		}()
		fn()
	}()
}

// WriteCrash prints a panic value and the current stack to w
// Uses \r\n so the output stays aligned if the terminal is still in raw mode
func WriteCrash(w io.Writer, label string, r any) {
	fmt.Fprintf(w, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", label, r)
	fmt.Fprintf(w, "Stack Trace:\r\n%s\r\n", debug.Stack())
}
