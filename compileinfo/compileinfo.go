// Package compileinfo reports the module path and version-control state a
// binary was built from.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

type CompileInfo struct {
	Package    string `json:"package"`
	GoVersion  string `json:"go_version"`
	Commit     string `json:"commit"`
	CommitTime string `json:"commit_time"`
	Modified   bool   `json:"modified"`
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "This binary carries no build information."
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	commit := c.Commit
	if commit == "" {
		commit = "(unknown)"
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %s at time %s.%s", c.Package, c.GoVersion, commit, c.CommitTime, mod)
}

var (
	once   sync.Once
	cached CompileInfo
)

// Get reads the build information once and returns it on every call.
func Get() CompileInfo {
	once.Do(func() {
		cached = read()
	})

	return cached
}

func read() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build summary to w.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
