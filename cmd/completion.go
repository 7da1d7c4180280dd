package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// PerformingShellCompletion indicates whether or not the current process is
// servicing one of Cobra's hidden shell completion commands.
var PerformingShellCompletion bool

func init() {
	// Completion requests always arrive via one of Cobra's hidden commands in
	// the first argument position.
	if len(os.Args) > 1 {
		PerformingShellCompletion = os.Args[1] == cobra.ShellCompRequestCmd ||
			os.Args[1] == cobra.ShellCompNoDescRequestCmd
	}
}
