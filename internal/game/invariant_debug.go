//go:build novadebug

package game

import "fmt"

// invariant panics when cond is false. Only compiled into novadebug builds.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("invariant violated: "+format, args...))
	}
}
