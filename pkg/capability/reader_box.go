package capability

import (
	"github.com/capstream-io/capstream/pkg/stream"
)

// ReaderBox is an owned, type-erased read handle: it owns its stream value
// without retaining the concrete type and exposes the same mandatory and
// optional capability surface as the handle it was converted from. The
// conversion is permanent: a box offers no unwrap, and the concrete stream
// value can be recovered only if the identity capability was declared before
// conversion. Boxes cannot declare capabilities.
type ReaderBox struct {
	// core is the box's state.
	core readerCore
}

// Read implements stream.Reader.Read, the box's mandatory capability. It
// panics if an exclusive view is live.
func (b *ReaderBox) Read(buffer []byte) (int, error) {
	b.core.ensureUnviewed()
	return b.core.read(buffer)
}

// Stream returns a type-erased accessor for the mandatory read capability,
// materialized from the box's current storage. It panics if an exclusive view
// is live.
func (b *ReaderBox) Stream() stream.Reader {
	b.core.ensureUnviewed()
	return b.core.reader()
}

// Seeker returns an accessor for the seek capability, or false if it was not
// declared before conversion. It panics if an exclusive view is live.
func (b *ReaderBox) Seeker() (stream.Seeker, bool) {
	b.core.ensureUnviewed()
	return b.core.seeker()
}

// Buffered returns an accessor for the readahead capability, or false if it
// was not declared before conversion. It panics if an exclusive view is live.
func (b *ReaderBox) Buffered() (stream.BufferedReader, bool) {
	b.core.ensureUnviewed()
	return b.core.buffered()
}

// Identify returns the stored stream value for recovery via type assertion,
// or false if the identity capability was not declared before conversion. It
// panics if an exclusive view is live.
func (b *ReaderBox) Identify() (any, bool) {
	b.core.ensureUnviewed()
	return b.core.identify()
}

// Has indicates whether or not a capability was declared before conversion.
func (b *ReaderBox) Has(capability Capability) bool {
	b.core.ensureUnviewed()
	return b.core.has(capability)
}

// Declared returns the capabilities declared before conversion.
func (b *ReaderBox) Declared() []Capability {
	b.core.ensureUnviewed()
	return b.core.declared()
}

// View borrows the box as a type-erased view, holding the box's exclusive
// lease until the view is closed.
func (b *ReaderBox) View() *ReaderView {
	b.core.ensureUnviewed()
	b.core.viewed = true
	return &ReaderView{core: &b.core}
}
