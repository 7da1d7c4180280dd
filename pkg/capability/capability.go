package capability

// Capability enumerates the optional stream capabilities that can be declared
// on a handle.
type Capability uint8

const (
	// CapabilitySeek is the random-access positioning capability.
	CapabilitySeek Capability = iota
	// CapabilityBuffered is the readahead window capability. It is only
	// supported on read handles.
	CapabilityBuffered
	// CapabilityIdentity is the dynamic type identification capability, which
	// allows the concrete stream value to be recovered from type-erased forms.
	CapabilityIdentity
)

// String provides a human-readable representation of the capability.
func (c Capability) String() string {
	switch c {
	case CapabilitySeek:
		return "seek"
	case CapabilityBuffered:
		return "buffered"
	case CapabilityIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// lease tracks the attachment and view-exclusivity state of a handle core.
// Handle operations require the core to be attached and unviewed, view
// creation acquires the lease, and closing the view releases it.
type lease struct {
	// viewed indicates that an exclusive view is currently live.
	viewed bool
	// detached indicates that ownership of the stream has been transferred
	// away (by unwrapping or boxing) and that the handle is no longer usable.
	detached bool
}

// ensureAttached panics if ownership of the stream has been transferred away.
func (l *lease) ensureAttached() {
	if l.detached {
		panic("use of detached stream handle")
	}
}

// ensureUnviewed panics if an exclusive view is currently live.
func (l *lease) ensureUnviewed() {
	if l.viewed {
		panic("stream handle used while an exclusive view is live")
	}
}
