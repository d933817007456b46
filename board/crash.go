package board

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// CrashHandler returns a panic handler that restores the terminal before
// printing the stack trace
func CrashHandler(screen tcell.Screen) func(r any) {
	return func(r any) {
		if r == nil {
			return
		}
		if screen != nil {
			screen.Fini()
		}

		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mDROPZONE CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}

// Go runs fn in a new goroutine, routing panics to handle
// Use this instead of the 'go' keyword while the screen is in raw mode
func Go(handle func(r any), fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handle(r)
			}
		}()
		fn()
	}()
}
