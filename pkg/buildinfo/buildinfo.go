// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/elves/ebind/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"fmt"
	"os"
	"runtime"

	"github.com/elves/ebind/pkg/prog"
)

// Version identifies the version of ebind. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version to build the full version string.
var VersionSuffix = "-dev.unknown"

// FullVersion returns Version with VersionSuffix appended.
func FullVersion() string { return Version + VersionSuffix }

// Program is the buildinfo subprogram. It handles -version and leaves
// everything else to other subprograms.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version {
		return prog.ErrNotSuitable
	}
	fmt.Fprintln(fds[1], "Version:", FullVersion())
	fmt.Fprintln(fds[1], "Go version:", runtime.Version())
	return nil
}
