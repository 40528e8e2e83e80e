// Command ebind runs the ebind demo, an editor tree over a small task board
// driven by line commands.
package main

import (
	"os"

	"github.com/elves/ebind/pkg/buildinfo"
	"github.com/elves/ebind/pkg/demo"
	"github.com/elves/ebind/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, demo.Program{})))
}
