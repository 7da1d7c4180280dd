package main

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/spf13/pflag"

	"github.com/dustin/go-humanize"

	"github.com/capstream-io/capstream/pkg/capability"
	"github.com/capstream-io/capstream/pkg/filesystem"
	"github.com/capstream-io/capstream/pkg/stream"
)

// byteCountValue is a pflag.Value implementation for human-readable byte
// count flags such as "4MiB" or "100 kB", enforcing that parsed values fit in
// an int64. The zero value represents an unset flag.
type byteCountValue struct {
	// set indicates whether or not the flag was provided.
	set bool
	// value is the parsed byte count.
	value uint64
}

var _ pflag.Value = &byteCountValue{}

// String implements pflag.Value.String.
func (v *byteCountValue) String() string {
	if !v.set {
		return ""
	}
	return strconv.FormatUint(v.value, 10)
}

// Set implements pflag.Value.Set.
func (v *byteCountValue) Set(text string) error {
	value, err := humanize.ParseBytes(text)
	if err != nil {
		return err
	} else if value > math.MaxInt64 {
		return errors.New("count too large")
	}
	v.set = true
	v.value = value
	return nil
}

// Type implements pflag.Value.Type.
func (v *byteCountValue) Type() string {
	return "bytes"
}

// openSourceFile opens the file underlying a source specification, returning
// the file and a closer that must be invoked once the file is no longer
// needed. A specification of "-" (or an empty string) indicates standard
// input.
func openSourceFile(source string) (*os.File, func() error, error) {
	// Handle standard input.
	if source == "" || source == "-" {
		return os.Stdin, func() error { return nil }, nil
	}

	// Open the file.
	file, err := os.Open(source)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to open source")
	}

	// Success.
	return file, file.Close, nil
}

// openDestinationFile opens the file underlying a destination specification,
// returning the file and a closer that must be invoked once the file is no
// longer needed. A specification of "-" (or an empty string) indicates
// standard output. If appendMode is false, existing destination files are
// truncated.
func openDestinationFile(destination string, appendMode bool) (*os.File, func() error, error) {
	// Handle standard output.
	if destination == "" || destination == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	// Compute open flags.
	flags := os.O_WRONLY | os.O_CREATE
	if !appendMode {
		flags |= os.O_TRUNC
	}

	// Open the file.
	file, err := os.OpenFile(destination, flags, 0644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to open destination")
	}

	// Success.
	return file, file.Close, nil
}

// stagedDestination is an open destination file, possibly backed by an
// intermediate temporary file that is renamed into place on commit, making
// the final contents appear atomically.
type stagedDestination struct {
	// file is the open file receiving writes.
	file *os.File
	// path is the final destination path, or an empty string if writes go to
	// standard output.
	path string
	// temporary is the path of the intermediate temporary file, or an empty
	// string if writes go directly to the final destination.
	temporary string
	// committed indicates that the destination has been committed.
	committed bool
}

// openStagedDestination opens the file underlying a destination
// specification. Regular destinations are staged through an intermediate
// temporary file in the same directory so that the final contents appear
// atomically on commit. Append-mode destinations and standard output can't be
// staged, so they receive writes directly.
func openStagedDestination(destination string, appendMode bool) (*stagedDestination, error) {
	// Handle standard output.
	if destination == "" || destination == "-" {
		return &stagedDestination{file: os.Stdout}, nil
	}

	// Appending has to modify the destination in place.
	if appendMode {
		file, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "unable to open destination")
		}
		return &stagedDestination{file: file, path: destination}, nil
	}

	// Compute a temporary file name inside the destination's parent directory
	// so that the final rename doesn't cross filesystem boundaries.
	name, err := filesystem.TemporaryName("copy")
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute temporary file name")
	}
	temporary := filepath.Join(filepath.Dir(destination), name)

	// Create the temporary file with secure permissions.
	file, err := os.OpenFile(temporary, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create temporary file")
	}

	// Success.
	return &stagedDestination{file: file, path: destination, temporary: temporary}, nil
}

// commit finalizes the destination, closing the file and, if writes were
// staged, renaming the temporary file into place with standard permissions.
func (d *stagedDestination) commit() error {
	// Mark the destination as committed so that a deferred discard doesn't
	// remove the final contents.
	d.committed = true

	// Standard output is left open for the process runtime.
	if d.path == "" {
		return nil
	}

	// Close out the file.
	if err := d.file.Close(); err != nil {
		if d.temporary != "" {
			os.Remove(d.temporary)
		}
		return errors.Wrap(err, "unable to close destination")
	}

	// If writes went directly to the destination, then there's nothing to
	// swap into place.
	if d.temporary == "" {
		return nil
	}

	// Reset permissions and rename the temporary file into place.
	if err := os.Chmod(d.temporary, 0644); err != nil {
		os.Remove(d.temporary)
		return errors.Wrap(err, "unable to change file permissions")
	} else if err = os.Rename(d.temporary, d.path); err != nil {
		os.Remove(d.temporary)
		return errors.Wrap(err, "unable to rename file")
	}

	// Success.
	return nil
}

// discard aborts the destination, closing the file and removing any
// intermediate temporary file. It's a no-op after a successful commit, so
// it's safe to defer at open time.
func (d *stagedDestination) discard() {
	if d.committed {
		return
	}
	if d.path != "" {
		d.file.Close()
	}
	if d.temporary != "" {
		os.Remove(d.temporary)
	}
}

// seekable indicates whether or not a file actually supports repositioning.
// Regular files do, but pipes and character devices don't, even though their
// type claims the full positioning interface.
func seekable(file *os.File) bool {
	_, err := file.Seek(0, io.SeekCurrent)
	return err == nil
}

// sourceHandle wraps an open file in an erased read handle, declaring
// positioning support if the file is actually seekable and identity support
// for metadata queries.
func sourceHandle(file *os.File) *capability.ReaderBox {
	// Create the handle.
	reader := capability.NewReader(file)

	// Declare capabilities.
	if seekable(file) {
		capability.DeclareSeeker(reader)
	}
	capability.DeclareIdentity(reader)

	// Convert to an erased form.
	return reader.Box()
}

// bufferedSourceHandle wraps an open file in a readahead layer and an erased
// read handle. The readahead wrapper doesn't support positioning, so the
// handle carries only the readahead capability and skips through it fall back
// to reading.
func bufferedSourceHandle(file *os.File, window int) *capability.ReaderBox {
	// Create the readahead layer.
	readahead := stream.NewReadaheadSize(file, window)

	// Create the handle and declare capabilities.
	reader := capability.NewReader(readahead)
	capability.DeclareBuffered(reader)

	// Convert to an erased form.
	return reader.Box()
}

// destinationHandle wraps an open file in an erased write handle, declaring
// positioning support if the file is actually seekable and identity support
// for metadata queries.
func destinationHandle(file *os.File) *capability.WriterBox {
	// Create the handle.
	writer := capability.NewWriter(file)

	// Declare capabilities.
	if seekable(file) {
		capability.DeclareWriteSeeker(writer)
	}
	capability.DeclareWriteIdentity(writer)

	// Convert to an erased form.
	return writer.Box()
}

// sourceDisplayName converts a source specification to a human-readable name.
func sourceDisplayName(source string) string {
	if source == "" || source == "-" {
		return "standard input"
	}
	return source
}

// destinationDisplayName converts a destination specification to a
// human-readable name.
func destinationDisplayName(destination string) string {
	if destination == "" || destination == "-" {
		return "standard output"
	}
	return destination
}
