package capability

import (
	"github.com/capstream-io/capstream/pkg/stream"
)

// WriterView is a borrowed, type-erased view over a write handle or box. It
// exposes the same mandatory and optional capability surface as its owner
// without naming the concrete stream type, and it holds its owner's exclusive
// lease for its whole lifetime. Views cannot declare capabilities.
type WriterView struct {
	// core is the owner's state.
	core *writerCore
	// closed indicates that the view has been closed and its lease released.
	closed bool
}

// ensureLive panics if the view has been closed.
func (v *WriterView) ensureLive() {
	if v.closed {
		panic("use of closed stream view")
	}
}

// Write implements stream.Writer.Write, the view's mandatory capability. It
// panics if the view has been closed.
func (v *WriterView) Write(data []byte) (int, error) {
	v.ensureLive()
	return v.core.write(data)
}

// Flush flushes the stream if it buffers and succeeds as a no-op otherwise.
// It panics if the view has been closed.
func (v *WriterView) Flush() error {
	v.ensureLive()
	return v.core.flush()
}

// Stream returns a type-erased accessor for the mandatory write capability,
// materialized from the owner's current storage. It panics if the view has
// been closed.
func (v *WriterView) Stream() stream.Writer {
	v.ensureLive()
	return v.core.writer()
}

// Seeker returns an accessor for the seek capability, or false if it was not
// declared on the owner. It panics if the view has been closed.
func (v *WriterView) Seeker() (stream.Seeker, bool) {
	v.ensureLive()
	return v.core.seeker()
}

// Identify returns the stored stream value for recovery via type assertion,
// or false if the identity capability was not declared on the owner. It
// panics if the view has been closed.
func (v *WriterView) Identify() (any, bool) {
	v.ensureLive()
	return v.core.identify()
}

// Has indicates whether or not a capability was declared on the owner.
func (v *WriterView) Has(capability Capability) bool {
	v.ensureLive()
	return v.core.has(capability)
}

// Declared returns the capabilities declared on the owner.
func (v *WriterView) Declared() []Capability {
	v.ensureLive()
	return v.core.declared()
}

// Close releases the owner's exclusive lease, making the owner usable again.
// The view panics on any use after closure. Close never fails; its error
// return satisfies the conventional closer signature.
func (v *WriterView) Close() error {
	v.ensureLive()
	v.closed = true
	v.core.viewed = false
	return nil
}
