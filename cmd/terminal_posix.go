//go:build !windows

package cmd

// HandleTerminalCompatibility relaunches the current process inside a terminal
// emulation layer if the hosting console requires one. No emulation is ever
// required on POSIX systems, so it's a no-op here.
func HandleTerminalCompatibility() {
}
