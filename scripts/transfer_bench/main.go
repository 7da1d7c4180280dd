package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/pkg/errors"

	"github.com/dustin/go-humanize"

	"github.com/capstream-io/capstream/cmd"
	"github.com/capstream-io/capstream/cmd/profile"

	"github.com/capstream-io/capstream/pkg/capability"
	"github.com/capstream-io/capstream/pkg/stream"
)

const (
	// benchmarkFile is the name of the temporary file used to back benchmark
	// transfers.
	benchmarkFile = "transfer_test"
	// fillByte is the byte used to fill the benchmark file.
	fillByte = 'b'
)

var usage = `transfer_bench [-h|--help] [-p|--profile] [-s|--size=<bytes>]
`

// throughput formats a byte count and duration as a human-readable rate.
func throughput(count int64, duration time.Duration) string {
	if duration <= 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(float64(count)/duration.Seconds())) + "/s"
}

// openBenchmarkFile opens the benchmark file for reading.
func openBenchmarkFile() *os.File {
	file, err := os.Open(benchmarkFile)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to open benchmark file"))
	}
	return file
}

func main() {
	// Parse command line arguments.
	flagSet := pflag.NewFlagSet("transfer_bench", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	var enableProfile bool
	var sizeSpecification string
	flagSet.BoolVarP(&enableProfile, "profile", "p", false, "enable profiling")
	flagSet.StringVarP(&sizeSpecification, "size", "s", "64 MB", "specify benchmark file size")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			fmt.Fprint(os.Stdout, usage)
			return
		} else {
			cmd.Fatal(errors.Wrap(err, "unable to parse command line"))
		}
	}
	if len(flagSet.Args()) != 0 {
		cmd.Fatal(errors.New("unexpected positional arguments"))
	}
	size, err := humanize.ParseBytes(sizeSpecification)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to parse benchmark file size"))
	} else if size == 0 || size > math.MaxInt64 {
		cmd.Fatal(errors.New("invalid benchmark file size"))
	}

	// Wire up termination signals to benchmark file cleanup.
	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, cmd.TerminationSignals...)
	go func() {
		<-signalTermination
		os.Remove(benchmarkFile)
		os.Exit(1)
	}()

	// Generate the benchmark file.
	fmt.Println("Generating", humanize.Bytes(size), "benchmark file")
	file, err := os.Create(benchmarkFile)
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to create benchmark file"))
	}
	start := time.Now()
	written, err := stream.Copy(file, stream.LimitReader(stream.Repeat{Byte: fillByte}, int64(size)))
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to generate benchmark data"))
	} else if err = file.Close(); err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to close benchmark file"))
	}
	stop := time.Now()
	fmt.Println("Generation took", stop.Sub(start), "at", throughput(written, stop.Sub(start)))

	// Ensure that the benchmark file is removed when the process exits
	// normally.
	defer os.Remove(benchmarkFile)

	// Benchmark a direct copy through an erased handle. If requested, enable
	// CPU and memory profiling.
	var profiler *profile.Profile
	if enableProfile {
		if profiler, err = profile.New("copy_direct"); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to create profiler"))
		}
	}
	file = openBenchmarkFile()
	handle := capability.NewReader(file).Box()
	start = time.Now()
	copied, err := stream.Copy(stream.Discard{}, handle.Stream())
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to copy benchmark data"))
	}
	stop = time.Now()
	file.Close()
	if enableProfile {
		if err = profiler.Finalize(); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to finalize profiler"))
		}
		profiler = nil
	}
	fmt.Println("Direct copy took", stop.Sub(start), "at", throughput(copied, stop.Sub(start)))

	// Benchmark a copy through a readahead layer with the readahead
	// capability declared. If requested, enable CPU and memory profiling.
	if enableProfile {
		if profiler, err = profile.New("copy_readahead"); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to create profiler"))
		}
	}
	file = openBenchmarkFile()
	buffered := capability.NewReader(stream.NewReadahead(file))
	capability.DeclareBuffered(buffered)
	start = time.Now()
	copied, err = stream.Copy(stream.Discard{}, buffered.Box().Stream())
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to copy benchmark data"))
	}
	stop = time.Now()
	file.Close()
	if enableProfile {
		if err = profiler.Finalize(); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to finalize profiler"))
		}
		profiler = nil
	}
	fmt.Println("Readahead copy took", stop.Sub(start), "at", throughput(copied, stop.Sub(start)))

	// Benchmark a half-file skip through a handle with the positioning
	// capability declared, followed by a copy of the remainder. If requested,
	// enable CPU and memory profiling.
	if enableProfile {
		if profiler, err = profile.New("skip_seek"); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to create profiler"))
		}
	}
	file = openBenchmarkFile()
	seekable := capability.NewReader(file)
	capability.DeclareSeeker(seekable)
	seekableHandle := seekable.Box()
	start = time.Now()
	skipped, err := capability.Skip(seekableHandle, int64(size/2))
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to skip benchmark data"))
	}
	copied, err = stream.Copy(stream.Discard{}, seekableHandle.Stream())
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to copy benchmark data"))
	}
	stop = time.Now()
	file.Close()
	if enableProfile {
		if err = profiler.Finalize(); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to finalize profiler"))
		}
		profiler = nil
	}
	fmt.Println(
		"Positioning skip of", humanize.Bytes(uint64(skipped)),
		"plus remainder copy took", stop.Sub(start),
		"at", throughput(skipped+copied, stop.Sub(start)),
	)

	// Benchmark the same skip through a handle without any declared
	// capabilities, forcing the skip to read. If requested, enable CPU and
	// memory profiling.
	if enableProfile {
		if profiler, err = profile.New("skip_read"); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to create profiler"))
		}
	}
	file = openBenchmarkFile()
	reading := capability.NewReader(file).Box()
	start = time.Now()
	skipped, err = capability.Skip(reading, int64(size/2))
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to skip benchmark data"))
	}
	copied, err = stream.Copy(stream.Discard{}, reading.Stream())
	if err != nil {
		cmd.Fatal(errors.Wrap(err, "unable to copy benchmark data"))
	}
	stop = time.Now()
	file.Close()
	if enableProfile {
		if err = profiler.Finalize(); err != nil {
			cmd.Fatal(errors.Wrap(err, "unable to finalize profiler"))
		}
		profiler = nil
	}
	fmt.Println(
		"Reading skip of", humanize.Bytes(uint64(skipped)),
		"plus remainder copy took", stop.Sub(start),
		"at", throughput(skipped+copied, stop.Sub(start)),
	)
}
