package cmd

const (
	// statusLineWidth is the width to which status lines are truncated and
	// padded. Using a fixed width keeps the cursor parked at a stable column
	// and guarantees that each status update fully overwrites the previous
	// one. Windows consoles default to 80 columns, but carriage return wipes
	// fail there once a character has been printed in the final column of a
	// line, so status lines are restricted to one column less.
	statusLineWidth = 79
)
