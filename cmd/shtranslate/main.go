// shtranslate - shader translation front ends
//
// The translate subcommand is the batch mode: it compiles shader files named
// on the command line and prints logs, translated code, and reflection data.
// The serve subcommand runs the line-delimited JSON-RPC loop over
// stdin/stdout.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitError carries a process exit code through cobra's error path.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shtranslate",
		Short:         "Translate GLSL/ESSL shaders through the ANGLE translator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(translateCmd())
	root.AddCommand(serveCmd())
	return root
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "shtranslate:", err)
		os.Exit(1)
	}
}
