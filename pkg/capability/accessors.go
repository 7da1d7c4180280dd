package capability

import (
	"github.com/capstream-io/capstream/pkg/stream"
)

// Accessors returned by handles, views, and boxes must expose exactly the
// method set of the capability they were obtained for: a wider type would let
// holders type-assert their way to capabilities that were never declared.
// Each accessor type below embeds a single interface and therefore exposes
// nothing else.

// readerOnly restricts a stream to sequential reading.
type readerOnly struct{ stream.Reader }

// writerOnly restricts a stream to sequential writing.
type writerOnly struct{ stream.Writer }

// seekerOnly restricts a stream to positioning.
type seekerOnly struct{ stream.Seeker }

// bufferedOnly restricts a stream to sequential reading and readahead window
// access.
type bufferedOnly struct{ stream.BufferedReader }
