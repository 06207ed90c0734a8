// Package profiling maps the -profile flag of the blockfall commands onto
// pkg/profile modes.
package profiling

import (
	"fmt"
	"slices"

	"github.com/pkg/profile"
)

var modes = map[string]func(*profile.Profile){
	"cpu":    profile.CPUProfile,
	"mem":    profile.MemProfile,
	"allocs": profile.MemProfileAllocs,
	"block":  profile.BlockProfile,
	"mutex":  profile.MutexProfile,
	"trace":  profile.TraceProfile,
}

// Modes returns the accepted mode names in sorted order.
func Modes() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Start begins profiling in the named mode, writing into dir. An empty mode
// is a no-op. The returned function stops the profile and flushes it.
func Start(mode, dir string) (stop func(), err error) {
	if mode == "" {
		return func() {}, nil
	}
	option, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q, want one of %v", mode, Modes())
	}
	p := profile.Start(option, profile.ProfilePath(dir), profile.NoShutdownHook)
	return p.Stop, nil
}
