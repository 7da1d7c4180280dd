//go:build !windows

package cmd

const (
	// statusLineWidth is the width to which status lines are truncated and
	// padded. Using a fixed width keeps the cursor parked at a stable column
	// and guarantees that each status update fully overwrites the previous
	// one. 80 columns is the minimum width of a VT100 terminal, so it's a safe
	// lower bound for any terminal likely to be encountered.
	statusLineWidth = 80
)
