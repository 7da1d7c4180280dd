package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkg/errors"

	"github.com/dustin/go-humanize"

	"github.com/mattn/go-isatty"

	"github.com/capstream-io/capstream/cmd"
	"github.com/capstream-io/capstream/pkg/capability"
	"github.com/capstream-io/capstream/pkg/identifier"
	"github.com/capstream-io/capstream/pkg/logging"
	"github.com/capstream-io/capstream/pkg/stream"
)

// progressUpdateInterval is the minimum interval between progress updates.
const progressUpdateInterval = 100 * time.Millisecond

// progressWriter wraps a writer and periodically prints the number of bytes
// written through it to a status line.
type progressWriter struct {
	// writer is the underlying writer.
	writer stream.Writer
	// printer is the status line printer. It may be nil, in which case no
	// progress is printed.
	printer *cmd.StatusLinePrinter
	// written is the total number of bytes written.
	written uint64
	// lastUpdate is the time of the last progress update.
	lastUpdate time.Time
}

// Write implements stream.Writer.Write.
func (w *progressWriter) Write(data []byte) (int, error) {
	n, err := w.writer.Write(data)
	w.written += uint64(n)
	if w.printer != nil {
		if now := time.Now(); now.Sub(w.lastUpdate) >= progressUpdateInterval {
			w.printer.Print(fmt.Sprintf("Copied %s", humanize.Bytes(w.written)))
			w.lastUpdate = now
		}
	}
	return n, err
}

// copyMain is the entry point for the copy command.
func copyMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 2 {
		return errors.New("invalid number of arguments")
	}
	source, destination := arguments[0], arguments[1]

	// Extract size-related flags, with the buffer size defaulting to the
	// global configuration.
	skipCount := copyConfiguration.skip.value
	limit, haveLimit := copyConfiguration.limit.value, copyConfiguration.limit.set
	bufferSize := uint64(globalConfiguration.Transfer.BufferSize)
	if copyConfiguration.bufferSize.set {
		bufferSize = copyConfiguration.bufferSize.value
	}

	// Generate an operation identifier and logger for debugging purposes.
	operation, err := identifier.New(identifier.PrefixTransfer)
	if err != nil {
		return errors.Wrap(err, "unable to generate operation identifier")
	}
	logger := logging.RootLogger.Sublogger("copy")
	logger.Debugf("%s: copying %s to %s",
		operation, sourceDisplayName(source), destinationDisplayName(destination),
	)

	// Open the source and defer its closure.
	sourceFile, sourceCloser, err := openSourceFile(source)
	if err != nil {
		return err
	}
	defer sourceCloser()

	// Wrap the source in an erased handle, adding a readahead layer if one is
	// configured.
	var sourceBox *capability.ReaderBox
	if window := uint64(globalConfiguration.Transfer.ReadaheadSize); window > 0 {
		sourceBox = bufferedSourceHandle(sourceFile, int(window))
	} else {
		sourceBox = sourceHandle(sourceFile)
	}

	// Skip leading source content if requested.
	if skipCount > 0 {
		if skipped, err := capability.Skip(sourceBox, int64(skipCount)); err != nil {
			return errors.Wrapf(err, "unable to skip source content (skipped %d of %d bytes)", skipped, skipCount)
		}
	}

	// Open the destination and defer its discard. The discard becomes a no-op
	// once the destination has been committed.
	staged, err := openStagedDestination(destination, copyConfiguration.append)
	if err != nil {
		return err
	}
	defer staged.discard()

	// Wrap the destination in an erased handle.
	destinationBox := destinationHandle(staged.file)

	// Position the destination at its end for appending if requested. This
	// requires the positioning capability on the destination handle.
	if copyConfiguration.append {
		seeker, ok := destinationBox.Seeker()
		if !ok {
			return errors.New("destination does not support positioning")
		}
		if _, err := seeker.Seek(0, io.SeekEnd); err != nil {
			return errors.Wrap(err, "unable to seek to destination end")
		}
	}

	// Borrow views covering the transfer phase. While the views are live, the
	// handles are leased and unusable, so nothing else can disturb the
	// streams mid-transfer.
	sourceView := sourceBox.View()
	destinationView := destinationBox.View()

	// Restrict the source if a copy limit was specified.
	var reader stream.Reader = sourceView
	if haveLimit {
		reader = stream.LimitReader(reader, int64(limit))
	}

	// Create a status line printer for progress reporting if standard error
	// is a terminal. Progress goes to standard error so that it can't corrupt
	// data flowing to standard output.
	var printer *cmd.StatusLinePrinter
	if isatty.IsTerminal(os.Stderr.Fd()) {
		printer = &cmd.StatusLinePrinter{UseStandardError: true}
	}

	// Wrap the destination in a progress-tracking writer and perform the
	// copy.
	progress := &progressWriter{writer: destinationView, printer: printer}
	start := time.Now()
	var copied int64
	if bufferSize > 0 {
		copied, err = stream.CopyBuffer(progress, reader, make([]byte, bufferSize))
	} else {
		copied, err = stream.Copy(progress, reader)
	}
	if err != nil {
		if printer != nil {
			printer.BreakIfNonEmpty()
		}
		return errors.Wrap(err, "unable to copy stream contents")
	}

	// Flush any buffered destination content through the view.
	if err := destinationView.Flush(); err != nil {
		return errors.Wrap(err, "unable to flush destination")
	}

	// Release the transfer views, returning the handles to their owners.
	sourceView.Close()
	destinationView.Close()

	// Commit the destination, swapping staged content into place.
	if err := staged.commit(); err != nil {
		return err
	}

	// Clear any progress output and print a summary.
	elapsed := time.Since(start)
	if printer != nil {
		printer.Clear()
		fmt.Fprintf(os.Stderr, "Copied %s in %v\n",
			humanize.Bytes(uint64(copied)), elapsed.Round(time.Millisecond),
		)
	}
	logger.Debugf("%s: copied %d bytes in %v", operation, copied, elapsed)

	// Success.
	return nil
}

// copyCommand is the copy command.
var copyCommand = &cobra.Command{
	Use:          "copy <source> <destination>",
	Short:        "Copy stream content from a source to a destination",
	RunE:         copyMain,
	SilenceUsage: true,
}

// copyConfiguration stores configuration for the copy command.
var copyConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// skip is the number of leading source bytes to discard before copying.
	skip byteCountValue
	// limit is the maximum number of bytes to copy.
	limit byteCountValue
	// append indicates that the destination should be appended to rather than
	// replaced.
	append bool
	// bufferSize is the copy buffer size, overriding the global
	// configuration.
	bufferSize byteCountValue
}

func init() {
	// Grab a handle for the command line flags.
	flags := copyCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&copyConfiguration.help, "help", "h", false, "Show help information")

	// Wire up copy command flags.
	flags.Var(&copyConfiguration.skip, "skip", "Discard the specified number of leading source bytes")
	flags.VarP(&copyConfiguration.limit, "limit", "l", "Copy at most the specified number of bytes")
	flags.BoolVarP(&copyConfiguration.append, "append", "a", false, "Append to the destination instead of replacing it")
	flags.Var(&copyConfiguration.bufferSize, "buffer-size", "Override the configured copy buffer size")
}
