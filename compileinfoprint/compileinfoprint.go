// compileinfoprint is imported for the side effect of printing the build
// information to os.Stderr when a binary starts.
package compileinfoprint

import "github.com/carbocation/bellybutton/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
