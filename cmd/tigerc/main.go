// Command tigerc compiles a Tiger source file to LLVM IR.
package main

import (
	"fmt"
	"os"

	"github.com/tiger-lang/tigerc/cmd/tigerc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
