package capability

import (
	"github.com/capstream-io/capstream/pkg/stream"
)

// ReaderView is a borrowed, type-erased view over a read handle or box. It
// exposes the same mandatory and optional capability surface as its owner
// without naming the concrete stream type, and it holds its owner's exclusive
// lease for its whole lifetime: the owner is unusable until the view is
// closed, and only one view can be live at a time. Views cannot declare
// capabilities; declaration requires the static type knowledge that erasure
// discards.
type ReaderView struct {
	// core is the owner's state.
	core *readerCore
	// closed indicates that the view has been closed and its lease released.
	closed bool
}

// ensureLive panics if the view has been closed.
func (v *ReaderView) ensureLive() {
	if v.closed {
		panic("use of closed stream view")
	}
}

// Read implements stream.Reader.Read, the view's mandatory capability. It
// panics if the view has been closed.
func (v *ReaderView) Read(buffer []byte) (int, error) {
	v.ensureLive()
	return v.core.read(buffer)
}

// Stream returns a type-erased accessor for the mandatory read capability,
// materialized from the owner's current storage. It panics if the view has
// been closed.
func (v *ReaderView) Stream() stream.Reader {
	v.ensureLive()
	return v.core.reader()
}

// Seeker returns an accessor for the seek capability, or false if it was not
// declared on the owner. It panics if the view has been closed.
func (v *ReaderView) Seeker() (stream.Seeker, bool) {
	v.ensureLive()
	return v.core.seeker()
}

// Buffered returns an accessor for the readahead capability, or false if it
// was not declared on the owner. It panics if the view has been closed.
func (v *ReaderView) Buffered() (stream.BufferedReader, bool) {
	v.ensureLive()
	return v.core.buffered()
}

// Identify returns the stored stream value for recovery via type assertion,
// or false if the identity capability was not declared on the owner. It
// panics if the view has been closed.
func (v *ReaderView) Identify() (any, bool) {
	v.ensureLive()
	return v.core.identify()
}

// Has indicates whether or not a capability was declared on the owner.
func (v *ReaderView) Has(capability Capability) bool {
	v.ensureLive()
	return v.core.has(capability)
}

// Declared returns the capabilities declared on the owner.
func (v *ReaderView) Declared() []Capability {
	v.ensureLive()
	return v.core.declared()
}

// Close releases the owner's exclusive lease, making the owner usable again.
// The view panics on any use after closure. Close never fails; its error
// return satisfies the conventional closer signature.
func (v *ReaderView) Close() error {
	v.ensureLive()
	v.closed = true
	v.core.viewed = false
	return nil
}
