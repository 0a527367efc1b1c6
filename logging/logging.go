package logging

import (
	"log"
	"os"
	"sync/atomic"
)

var verbose atomic.Bool

// Init configures the standard logger. Debug output is only emitted when
// isVerbose is set.
func Init(isVerbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags)
	verbose.Store(isVerbose)
}

func IsVerbose() bool {
	return verbose.Load()
}

func Debugf(format string, v ...any) {
	if !verbose.Load() {
		return
	}
	log.Printf(format, v...)
}
