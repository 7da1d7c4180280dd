package cmd

import (
	"github.com/pkg/errors"

	"github.com/spf13/cobra"
)

// DisallowArguments is a Cobra positional argument validator that disallows
// all positional arguments.
func DisallowArguments(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New("command does not accept positional arguments")
	}
	return nil
}
