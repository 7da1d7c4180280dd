package main

import (
	"github.com/spf13/cobra"

	"github.com/pkg/errors"

	"github.com/dustin/go-humanize"

	"github.com/capstream-io/capstream/pkg/capability"
	"github.com/capstream-io/capstream/pkg/identifier"
	"github.com/capstream-io/capstream/pkg/logging"
	"github.com/capstream-io/capstream/pkg/stream"
)

// skipMain is the entry point for the skip command.
func skipMain(command *cobra.Command, arguments []string) error {
	// Validate arguments and extract the source and destination.
	if len(arguments) < 1 || len(arguments) > 2 {
		return errors.New("invalid number of arguments")
	}
	source := arguments[0]
	var destination string
	if len(arguments) == 2 {
		destination = arguments[1]
	}

	// Extract the skip count.
	if !skipConfiguration.count.set {
		return errors.New("no skip count specified")
	}
	count := skipConfiguration.count.value

	// Determine the forwarding buffer size, preferring any override to the
	// global configuration.
	bufferSize := uint64(globalConfiguration.Transfer.BufferSize)
	if skipConfiguration.bufferSize.set {
		bufferSize = skipConfiguration.bufferSize.value
	}

	// Generate an operation identifier and logger.
	operation, err := identifier.New(identifier.PrefixTransfer)
	if err != nil {
		return errors.Wrap(err, "unable to generate operation identifier")
	}
	logger := logging.RootLogger.Sublogger("skip")

	// Open the source and defer its closure.
	sourceFile, sourceCloser, err := openSourceFile(source)
	if err != nil {
		return err
	}
	defer sourceCloser()

	// Wrap the source in an erased handle. Regular files yield handles with
	// the positioning capability, letting the skip below reposition instead
	// of reading.
	handle := sourceHandle(sourceFile)

	// Report which skip strategy the handle's capabilities select.
	if handle.Has(capability.CapabilitySeek) {
		logger.Printf("%s: skipping %s of %s by repositioning",
			operation, humanize.Bytes(count), sourceDisplayName(source),
		)
	} else {
		logger.Printf("%s: skipping %s of %s by reading",
			operation, humanize.Bytes(count), sourceDisplayName(source),
		)
	}

	// Skip the requested number of bytes.
	skipped, err := capability.Skip(handle, int64(count))
	if err != nil {
		return errors.Wrapf(err, "unable to skip source content (skipped %d of %d bytes)", skipped, count)
	}

	// Open the destination and defer its closure.
	destinationFile, destinationCloser, err := openDestinationFile(destination, false)
	if err != nil {
		return err
	}
	defer destinationCloser()

	// Wrap the destination in an erased handle and stream the remainder of
	// the source to it.
	destinationBox := destinationHandle(destinationFile)
	var copied int64
	if bufferSize > 0 {
		copied, err = stream.CopyBuffer(destinationBox, handle.Stream(), make([]byte, bufferSize))
	} else {
		copied, err = stream.Copy(destinationBox, handle.Stream())
	}
	if err != nil {
		return errors.Wrap(err, "unable to copy stream contents")
	}

	// Flush the destination.
	if err := destinationBox.Flush(); err != nil {
		return errors.Wrap(err, "unable to flush destination")
	}
	logger.Debugf("%s: forwarded %d bytes", operation, copied)

	// Success.
	return nil
}

// skipCommand is the skip command.
var skipCommand = &cobra.Command{
	Use:          "skip --count <count> <source> [<destination>]",
	Short:        "Discard leading stream content and forward the remainder",
	RunE:         skipMain,
	SilenceUsage: true,
}

// skipConfiguration stores configuration for the skip command.
var skipConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// count is the number of leading source bytes to discard.
	count byteCountValue
	// bufferSize is the forwarding buffer size, overriding the global
	// configuration.
	bufferSize byteCountValue
}

func init() {
	// Grab a handle for the command line flags.
	flags := skipCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&skipConfiguration.help, "help", "h", false, "Show help information")

	// Wire up skip command flags.
	flags.VarP(&skipConfiguration.count, "count", "c", "Discard the specified number of leading source bytes")
	flags.Var(&skipConfiguration.bufferSize, "buffer-size", "Override the configured forwarding buffer size")
}
