// Package capability wraps concrete stream values behind handles that always
// expose one mandatory capability (sequential reading or writing) and any
// optional capabilities (positioning, readahead, type identification) that
// have been declared for them. Declarations require compile-time proof that
// the concrete stream type supports the capability, but once made they follow
// the handle through type erasure: a holder of a borrowed view or an owned
// box can query for and use a declared capability without ever learning the
// stream type. This lets APIs keep an optimized code path (skipping by
// seeking, scanning through a readahead window) without demanding that every
// caller's stream support it.
//
// The package performs no IO of its own and is not safe for concurrent use:
// handles, views, and boxes belong to a single goroutine, and exclusivity of
// views is enforced with runtime checks rather than locks.
package capability
