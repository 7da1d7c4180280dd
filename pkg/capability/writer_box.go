package capability

import (
	"github.com/capstream-io/capstream/pkg/stream"
)

// WriterBox is an owned, type-erased write handle: it owns its stream value
// without retaining the concrete type and exposes the same mandatory and
// optional capability surface as the handle it was converted from. The
// conversion is permanent: a box offers no unwrap, and the concrete stream
// value can be recovered only if the identity capability was declared before
// conversion. Boxes cannot declare capabilities.
type WriterBox struct {
	// core is the box's state.
	core writerCore
}

// Write implements stream.Writer.Write, the box's mandatory capability. It
// panics if an exclusive view is live.
func (b *WriterBox) Write(data []byte) (int, error) {
	b.core.ensureUnviewed()
	return b.core.write(data)
}

// Flush flushes the stream if it buffers and succeeds as a no-op otherwise.
// It panics if an exclusive view is live.
func (b *WriterBox) Flush() error {
	b.core.ensureUnviewed()
	return b.core.flush()
}

// Stream returns a type-erased accessor for the mandatory write capability,
// materialized from the box's current storage. It panics if an exclusive view
// is live.
func (b *WriterBox) Stream() stream.Writer {
	b.core.ensureUnviewed()
	return b.core.writer()
}

// Seeker returns an accessor for the seek capability, or false if it was not
// declared before conversion. It panics if an exclusive view is live.
func (b *WriterBox) Seeker() (stream.Seeker, bool) {
	b.core.ensureUnviewed()
	return b.core.seeker()
}

// Identify returns the stored stream value for recovery via type assertion,
// or false if the identity capability was not declared before conversion. It
// panics if an exclusive view is live.
func (b *WriterBox) Identify() (any, bool) {
	b.core.ensureUnviewed()
	return b.core.identify()
}

// Has indicates whether or not a capability was declared before conversion.
func (b *WriterBox) Has(capability Capability) bool {
	b.core.ensureUnviewed()
	return b.core.has(capability)
}

// Declared returns the capabilities declared before conversion.
func (b *WriterBox) Declared() []Capability {
	b.core.ensureUnviewed()
	return b.core.declared()
}

// View borrows the box as a type-erased view, holding the box's exclusive
// lease until the view is closed.
func (b *WriterBox) View() *WriterView {
	b.core.ensureUnviewed()
	b.core.viewed = true
	return &WriterView{core: &b.core}
}
