// Package profiling hooks up optional CPU and memory profiling for
// troubleshooting sessions.
package profiling

import (
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog/log"
)

var osCreate = os.Create
var pprofStartCPUProfile = pprof.StartCPUProfile

// DoCPUProfiling starts writing a CPU profile to the named file. The
// returned func stops profiling and closes the file; after a setup
// failure it is a no-op.
func DoCPUProfiling(name string) func() {
	f, err := osCreate(name)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("failed to create cpu profile file")
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		log.Error().Err(err).Str("file", name).Msg("failed to start cpu profiling")
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}
}
