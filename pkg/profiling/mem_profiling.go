package profiling

import (
	"runtime/pprof"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var memProfilingInterval = 30 * time.Second
var pprofWriteHeapProfile = pprof.WriteHeapProfile

// DoMemProfiling periodically rewrites a heap profile to the named
// file. The returned func writes a final profile and stops the
// periodic loop; it is safe to call more than once.
func DoMemProfiling(name string) func() {
	writeMemProfile := func() {
		f, err := osCreate(name)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("failed to create mem profile file")
			return
		}
		defer func() {
			_ = f.Close()
		}()
		if err = pprofWriteHeapProfile(f); err != nil {
			log.Error().Err(err).Str("file", name).Msg("failed to write heap profile")
		}
	}
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case <-quit:
				return
			case <-time.After(memProfilingInterval):
				writeMemProfile()
			}
		}
	}()
	var stop sync.Once
	return func() {
		stop.Do(func() { close(quit) })
		writeMemProfile()
	}
}
