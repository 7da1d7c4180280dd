package capability

import (
	"github.com/capstream-io/capstream/pkg/stream"
)

// readerCapabilities is the optional capability table for read handles. The
// seek and buffered slots hold conversions that re-derive the capability's
// accessor from the handle's current storage; a conversion depends only on
// the storage's concrete type, never on its location, so it remains valid
// when the storage moves between a handle and a box.
type readerCapabilities struct {
	// seek derives a positioning accessor from the stored stream.
	seek func(any) stream.Seeker
	// buffered derives a readahead accessor from the stored stream.
	buffered func(any) stream.BufferedReader
	// identity indicates whether or not the stored stream may be identified
	// and recovered as its concrete type.
	identity bool
}

// readerCore is the state shared by read handles and the views and boxes
// derived from them. It is deliberately non-generic so that erased forms can
// operate on it without knowing the stream type.
type readerCore struct {
	// stream is the stored stream value, always of the originating handle's
	// concrete stream type. It is nil only once the core is detached.
	stream any
	// capabilities is the optional capability table.
	capabilities readerCapabilities
	// lease is the attachment and exclusivity state.
	lease
}

// read performs a read against the stored stream.
func (c *readerCore) read(buffer []byte) (int, error) {
	return c.stream.(stream.Reader).Read(buffer)
}

// reader materializes the mandatory read accessor from the current storage.
func (c *readerCore) reader() stream.Reader {
	return readerOnly{c.stream.(stream.Reader)}
}

// seeker materializes the positioning accessor from the current storage, if
// declared.
func (c *readerCore) seeker() (stream.Seeker, bool) {
	if c.capabilities.seek == nil {
		return nil, false
	}
	return seekerOnly{c.capabilities.seek(c.stream)}, true
}

// buffered materializes the readahead accessor from the current storage, if
// declared.
func (c *readerCore) buffered() (stream.BufferedReader, bool) {
	if c.capabilities.buffered == nil {
		return nil, false
	}
	return bufferedOnly{c.capabilities.buffered(c.stream)}, true
}

// identify returns the stored stream value, if identification was declared.
func (c *readerCore) identify() (any, bool) {
	if !c.capabilities.identity {
		return nil, false
	}
	return c.stream, true
}

// has indicates whether or not a capability has been declared.
func (c *readerCore) has(capability Capability) bool {
	switch capability {
	case CapabilitySeek:
		return c.capabilities.seek != nil
	case CapabilityBuffered:
		return c.capabilities.buffered != nil
	case CapabilityIdentity:
		return c.capabilities.identity
	default:
		return false
	}
}

// declared returns the declared capabilities in declaration-independent
// order.
func (c *readerCore) declared() []Capability {
	var result []Capability
	if c.capabilities.seek != nil {
		result = append(result, CapabilitySeek)
	}
	if c.capabilities.buffered != nil {
		result = append(result, CapabilityBuffered)
	}
	if c.capabilities.identity {
		result = append(result, CapabilityIdentity)
	}
	return result
}

// Reader is a read handle: it owns one concrete stream value of type S,
// always exposes sequential reading, and additionally exposes whichever
// optional capabilities have been declared for it. Handles are created with
// NewReader; the zero value is not usable.
type Reader[S stream.Reader] struct {
	core readerCore
}

// NewReader creates a handle owning the provided stream with no optional
// capabilities declared.
func NewReader[S stream.Reader](s S) *Reader[S] {
	return &Reader[S]{core: readerCore{stream: s}}
}

// DeclareSeeker declares the seek capability on a read handle. It only
// compiles when the handle's concrete stream type implements
// stream.ReadSeeker, and that compile-time proof is the only requirement:
// once declared, any holder of the handle or of a view or box derived from it
// can obtain a positioning accessor without knowing the stream type.
// Redeclaration is equivalent to the first declaration. DeclareSeeker panics
// if the handle is detached or an exclusive view is live.
func DeclareSeeker[S stream.ReadSeeker](r *Reader[S]) {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	r.core.capabilities.seek = func(s any) stream.Seeker {
		return s.(S)
	}
}

// DeclareBuffered declares the readahead capability on a read handle. It only
// compiles when the handle's concrete stream type implements
// stream.BufferedReader. Semantics otherwise match DeclareSeeker.
func DeclareBuffered[S stream.BufferedReader](r *Reader[S]) {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	r.core.capabilities.buffered = func(s any) stream.BufferedReader {
		return s.(S)
	}
}

// DeclareIdentity declares the type identification capability on a read
// handle, allowing the concrete stream value to be recovered (via Identify
// and a type assertion) even from erased forms. Semantics otherwise match
// DeclareSeeker.
func DeclareIdentity[S stream.Reader](r *Reader[S]) {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	r.core.capabilities.identity = true
}

// Read implements stream.Reader.Read, the handle's mandatory capability. It
// panics if the handle is detached or an exclusive view is live.
func (r *Reader[S]) Read(buffer []byte) (int, error) {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	return r.core.read(buffer)
}

// Stream returns a type-erased accessor for the mandatory read capability,
// materialized from the handle's current storage. The accessor exposes only
// sequential reading. Stream panics if the handle is detached or an exclusive
// view is live.
func (r *Reader[S]) Stream() stream.Reader {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	return r.core.reader()
}

// Seeker returns an accessor for the seek capability, or false if it has not
// been declared. The accessor exposes only positioning. Seeker panics if the
// handle is detached or an exclusive view is live.
func (r *Reader[S]) Seeker() (stream.Seeker, bool) {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	return r.core.seeker()
}

// Buffered returns an accessor for the readahead capability, or false if it
// has not been declared. Buffered panics if the handle is detached or an
// exclusive view is live.
func (r *Reader[S]) Buffered() (stream.BufferedReader, bool) {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	return r.core.buffered()
}

// Identify returns the stored stream value for recovery via type assertion,
// or false if the identity capability has not been declared. Identify panics
// if the handle is detached or an exclusive view is live.
func (r *Reader[S]) Identify() (any, bool) {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	return r.core.identify()
}

// Has indicates whether or not a capability has been declared on the handle.
func (r *Reader[S]) Has(capability Capability) bool {
	r.core.ensureAttached()
	return r.core.has(capability)
}

// Declared returns the declared capabilities.
func (r *Reader[S]) Declared() []Capability {
	r.core.ensureAttached()
	return r.core.declared()
}

// View borrows the handle as a type-erased view with the same capability
// surface. The view holds the handle's exclusive lease: until the view is
// closed, any use of the handle (including creating another view) panics.
func (r *Reader[S]) View() *ReaderView {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	r.core.viewed = true
	return &ReaderView{core: &r.core}
}

// Box converts the handle into a type-erased box that takes over ownership of
// the stream. The capability table carries over unchanged, so accessors
// obtained from the box behave identically to those the handle would have
// produced. The handle is left detached and panics on further use; the
// conversion cannot be reversed, and the concrete stream type is recoverable
// from the box only if the identity capability was declared beforehand. Box
// panics if the handle is detached or an exclusive view is live.
func (r *Reader[S]) Box() *ReaderBox {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	box := &ReaderBox{core: readerCore{
		stream:       r.core.stream,
		capabilities: r.core.capabilities,
	}}
	r.core.stream = nil
	r.core.detached = true
	return box
}

// Unwrap detaches the handle and returns the owned stream value, discarding
// any declared capabilities. State changes made through previously obtained
// accessors are reflected in the returned value. The handle panics on further
// use. Unwrap panics if the handle is detached or an exclusive view is live.
func (r *Reader[S]) Unwrap() S {
	r.core.ensureAttached()
	r.core.ensureUnviewed()
	s := r.core.stream.(S)
	r.core.stream = nil
	r.core.detached = true
	return s
}
