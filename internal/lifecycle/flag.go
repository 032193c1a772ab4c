// Package lifecycle holds the process-wide running flag that every loop
// polls between event batches.
package lifecycle

import "sync/atomic"

// Flag is up while the program runs. The zero value is running.
type Flag struct {
	stopped atomic.Bool
}

// Default is the process-wide flag.
var Default = &Flag{}

// Running reports whether the flag is still up.
func (f *Flag) Running() bool {
	return !f.stopped.Load()
}

// Stop lowers the flag. It reports whether this call lowered it; later calls
// are no-ops.
func (f *Flag) Stop() bool {
	return f.stopped.CompareAndSwap(false, true)
}
