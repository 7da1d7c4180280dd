// Package profile provides a minimal CPU and heap profiling facility for use
// in benchmarking tools.
package profile

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
)

// Profile represents an in-progress profiling session covering CPU and heap
// measurements.
type Profile struct {
	// name is the prefix used for profile output files.
	name string
	// cpu is the output file receiving the CPU profile.
	cpu *os.File
}

// New starts a profiling session with the specified name. CPU profiling begins
// immediately and continues until the session is finalized. Profile files are
// written to the current working directory with the session name as their
// prefix.
func New(name string) (*Profile, error) {
	// Create the CPU profile output and start profiling into it.
	cpu, err := os.Create(name + "_cpu.prof")
	if err != nil {
		return nil, errors.Wrap(err, "unable to create CPU profile")
	} else if err = pprof.StartCPUProfile(cpu); err != nil {
		cpu.Close()
		return nil, errors.Wrap(err, "unable to start CPU profile")
	}

	// Success.
	return &Profile{name: name, cpu: cpu}, nil
}

// Finalize stops the session, writing the CPU profile and a point-in-time heap
// profile to disk.
func (p *Profile) Finalize() error {
	// Stop CPU profiling and close out its output.
	pprof.StopCPUProfile()
	if err := p.cpu.Close(); err != nil {
		return errors.Wrap(err, "unable to close CPU profile")
	}

	// Force a garbage collection cycle so that the heap profile reflects
	// current liveness rather than stale allocation statistics.
	runtime.GC()

	// Write the heap profile.
	heap, err := os.Create(p.name + "_heap.prof")
	if err != nil {
		return errors.Wrap(err, "unable to create heap profile")
	} else if err = pprof.WriteHeapProfile(heap); err != nil {
		heap.Close()
		return errors.Wrap(err, "unable to write heap profile")
	} else if err = heap.Close(); err != nil {
		return errors.Wrap(err, "unable to close heap profile")
	}

	// Success.
	return nil
}
