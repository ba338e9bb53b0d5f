package cmdutil

import (
	"fmt"
	"io"
)

// Warnf prints a diagnostic line unless quiet is set. Warnings are the
// observable trace of skip-and-continue decisions; nothing is dropped
// silently elsewhere.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}
