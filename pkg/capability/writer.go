package capability

import (
	"github.com/capstream-io/capstream/pkg/stream"
)

// writerCapabilities is the optional capability table for write handles.
// Write handles support the seek and identity capabilities; there is no
// readahead capability on the write side.
type writerCapabilities struct {
	// seek derives a positioning accessor from the stored stream.
	seek func(any) stream.Seeker
	// identity indicates whether or not the stored stream may be identified
	// and recovered as its concrete type.
	identity bool
}

// writerCore is the state shared by write handles and the views and boxes
// derived from them.
type writerCore struct {
	// stream is the stored stream value, always of the originating handle's
	// concrete stream type. It is nil only once the core is detached.
	stream any
	// capabilities is the optional capability table.
	capabilities writerCapabilities
	// lease is the attachment and exclusivity state.
	lease
}

// write performs a write against the stored stream.
func (c *writerCore) write(data []byte) (int, error) {
	return c.stream.(stream.Writer).Write(data)
}

// flush flushes the stored stream if it buffers and succeeds as a no-op
// otherwise. Flushing is part of the mandatory write surface, so it is not
// gated on a declaration.
func (c *writerCore) flush() error {
	if flusher, ok := c.stream.(stream.Flusher); ok {
		return flusher.Flush()
	}
	return nil
}

// writer materializes the mandatory write accessor from the current storage.
func (c *writerCore) writer() stream.Writer {
	return writerOnly{c.stream.(stream.Writer)}
}

// seeker materializes the positioning accessor from the current storage, if
// declared.
func (c *writerCore) seeker() (stream.Seeker, bool) {
	if c.capabilities.seek == nil {
		return nil, false
	}
	return seekerOnly{c.capabilities.seek(c.stream)}, true
}

// identify returns the stored stream value, if identification was declared.
func (c *writerCore) identify() (any, bool) {
	if !c.capabilities.identity {
		return nil, false
	}
	return c.stream, true
}

// has indicates whether or not a capability has been declared.
func (c *writerCore) has(capability Capability) bool {
	switch capability {
	case CapabilitySeek:
		return c.capabilities.seek != nil
	case CapabilityIdentity:
		return c.capabilities.identity
	default:
		return false
	}
}

// declared returns the declared capabilities.
func (c *writerCore) declared() []Capability {
	var result []Capability
	if c.capabilities.seek != nil {
		result = append(result, CapabilitySeek)
	}
	if c.capabilities.identity {
		result = append(result, CapabilityIdentity)
	}
	return result
}

// Writer is a write handle: it owns one concrete stream value of type S,
// always exposes sequential writing and flushing, and additionally exposes
// whichever optional capabilities have been declared for it. Handles are
// created with NewWriter; the zero value is not usable.
type Writer[S stream.Writer] struct {
	core writerCore
}

// NewWriter creates a handle owning the provided stream with no optional
// capabilities declared.
func NewWriter[S stream.Writer](s S) *Writer[S] {
	return &Writer[S]{core: writerCore{stream: s}}
}

// DeclareWriteSeeker declares the seek capability on a write handle. It only
// compiles when the handle's concrete stream type implements
// stream.WriteSeeker, and that compile-time proof is the only requirement:
// once declared, any holder of the handle or of a view or box derived from it
// can obtain a positioning accessor without knowing the stream type.
// Redeclaration is equivalent to the first declaration. DeclareWriteSeeker
// panics if the handle is detached or an exclusive view is live.
func DeclareWriteSeeker[S stream.WriteSeeker](w *Writer[S]) {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	w.core.capabilities.seek = func(s any) stream.Seeker {
		return s.(S)
	}
}

// DeclareWriteIdentity declares the type identification capability on a write
// handle, allowing the concrete stream value to be recovered (via Identify
// and a type assertion) even from erased forms. Semantics otherwise match
// DeclareWriteSeeker.
func DeclareWriteIdentity[S stream.Writer](w *Writer[S]) {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	w.core.capabilities.identity = true
}

// Write implements stream.Writer.Write, the handle's mandatory capability. It
// panics if the handle is detached or an exclusive view is live.
func (w *Writer[S]) Write(data []byte) (int, error) {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	return w.core.write(data)
}

// Flush flushes the stream if it buffers and succeeds as a no-op otherwise.
// It panics if the handle is detached or an exclusive view is live.
func (w *Writer[S]) Flush() error {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	return w.core.flush()
}

// Stream returns a type-erased accessor for the mandatory write capability,
// materialized from the handle's current storage. The accessor exposes only
// sequential writing. Stream panics if the handle is detached or an exclusive
// view is live.
func (w *Writer[S]) Stream() stream.Writer {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	return w.core.writer()
}

// Seeker returns an accessor for the seek capability, or false if it has not
// been declared. Seeker panics if the handle is detached or an exclusive view
// is live.
func (w *Writer[S]) Seeker() (stream.Seeker, bool) {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	return w.core.seeker()
}

// Identify returns the stored stream value for recovery via type assertion,
// or false if the identity capability has not been declared. Identify panics
// if the handle is detached or an exclusive view is live.
func (w *Writer[S]) Identify() (any, bool) {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	return w.core.identify()
}

// Has indicates whether or not a capability has been declared on the handle.
func (w *Writer[S]) Has(capability Capability) bool {
	w.core.ensureAttached()
	return w.core.has(capability)
}

// Declared returns the declared capabilities.
func (w *Writer[S]) Declared() []Capability {
	w.core.ensureAttached()
	return w.core.declared()
}

// View borrows the handle as a type-erased view with the same capability
// surface. The view holds the handle's exclusive lease: until the view is
// closed, any use of the handle (including creating another view) panics.
func (w *Writer[S]) View() *WriterView {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	w.core.viewed = true
	return &WriterView{core: &w.core}
}

// Box converts the handle into a type-erased box that takes over ownership of
// the stream. The capability table carries over unchanged. The handle is left
// detached and panics on further use; the conversion cannot be reversed, and
// the concrete stream type is recoverable from the box only if the identity
// capability was declared beforehand. Box panics if the handle is detached or
// an exclusive view is live.
func (w *Writer[S]) Box() *WriterBox {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	box := &WriterBox{core: writerCore{
		stream:       w.core.stream,
		capabilities: w.core.capabilities,
	}}
	w.core.stream = nil
	w.core.detached = true
	return box
}

// Unwrap detaches the handle and returns the owned stream value, discarding
// any declared capabilities. State changes made through previously obtained
// accessors are reflected in the returned value. The handle panics on further
// use. Unwrap panics if the handle is detached or an exclusive view is live.
func (w *Writer[S]) Unwrap() S {
	w.core.ensureAttached()
	w.core.ensureUnviewed()
	s := w.core.stream.(S)
	w.core.stream = nil
	w.core.detached = true
	return s
}
