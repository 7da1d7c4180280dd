package cmd

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"

	isatty "github.com/mattn/go-isatty"
)

// HandleTerminalCompatibility relaunches the current process inside a terminal
// emulation layer if the hosting console requires one. Mintty-based consoles
// are currently the only such case - they don't provide a native Windows
// console interface, so the command is restarted inside winpty, which does.
func HandleTerminalCompatibility() {
	// If we're not running inside a mintty-based terminal, then no emulation
	// is required.
	if !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return
	}

	// Locate winpty.
	winpty, err := exec.LookPath("winpty")
	if err != nil {
		Fatal(errors.New("running inside mintty terminal and unable to locate winpty"))
	}

	// Compute the path to the current executable.
	executable, err := os.Executable()
	if err != nil {
		Fatal(errors.Wrap(err, "running inside mintty terminal and unable to locate current executable"))
	}

	// Relaunch the current command inside winpty, forwarding the standard
	// streams, and terminate with its exit code.
	command := exec.Command(winpty, append([]string{executable}, os.Args[1:]...)...)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	command.Run()
	os.Exit(command.ProcessState.ExitCode())
}
