// Package filesystem provides filesystem utilities, including unique
// temporary file naming and atomic file writes.
package filesystem
