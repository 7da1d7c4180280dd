package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkg/errors"

	"github.com/dustin/go-humanize"

	"github.com/fatih/color"

	"github.com/capstream-io/capstream/cmd"
	"github.com/capstream-io/capstream/pkg/capability"
	"github.com/capstream-io/capstream/pkg/encoding"
	"github.com/capstream-io/capstream/pkg/identifier"
	"github.com/capstream-io/capstream/pkg/logging"
)

// probeReport encodes the probe results for a single source.
type probeReport struct {
	// Source is the human-readable name of the probed source.
	Source string `yaml:"source"`
	// Size is the source size in bytes. It is only present for sources whose
	// size can be determined without reading them.
	Size *uint64 `yaml:"size,omitempty"`
	// Capabilities are the names of the capabilities declared for the source
	// handle.
	Capabilities []string `yaml:"capabilities"`
}

// probeReportSet encodes the results of a probe operation across all of its
// sources.
type probeReportSet struct {
	// Identifier is the unique identifier assigned to the probe operation.
	Identifier string `yaml:"identifier"`
	// Sources are the per-source reports, in probing order.
	Sources []*probeReport `yaml:"sources"`
}

// capabilityNames converts a capability list to a list of names.
func capabilityNames(capabilities []capability.Capability) []string {
	names := make([]string, len(capabilities))
	for c, value := range capabilities {
		names[c] = value.String()
	}
	return names
}

// probeSource probes a single source specification.
func probeSource(source string) (*probeReport, error) {
	// Open the source and defer its closure.
	file, closer, err := openSourceFile(source)
	if err != nil {
		return nil, err
	}
	defer closer()

	// Wrap the source in an erased handle with all supportable capabilities
	// declared.
	handle := sourceHandle(file)

	// Query the source size through the identity capability. Only regular
	// files have a meaningful size.
	var size *uint64
	if value, ok := handle.Identify(); ok {
		if concrete, ok := value.(*os.File); ok {
			if info, err := concrete.Stat(); err == nil && info.Mode().IsRegular() {
				s := uint64(info.Size())
				size = &s
			}
		}
	}

	// Compose the report.
	return &probeReport{
		Source:       sourceDisplayName(source),
		Size:         size,
		Capabilities: capabilityNames(handle.Declared()),
	}, nil
}

// printProbeReport prints a single source report in human-readable form.
func printProbeReport(report *probeReport) {
	// Print the source name and size.
	fmt.Println("Source:", report.Source)
	if report.Size != nil {
		fmt.Println("Size:", humanize.Bytes(*report.Size))
	}

	// Print capabilities, highlighting the absence of optional capabilities.
	capabilities := color.YellowString("none")
	if len(report.Capabilities) > 0 {
		capabilities = strings.Join(report.Capabilities, ", ")
	}
	fmt.Fprintln(color.Output, "Capabilities:", capabilities)
}

// probeMain is the entry point for the probe command.
func probeMain(command *cobra.Command, arguments []string) error {
	// Determine the sources to probe, defaulting to standard input.
	sources := arguments
	if len(sources) == 0 {
		sources = []string{""}
	}

	// Generate an identifier for the probe operation.
	operation, err := identifier.New(identifier.PrefixProbe)
	if err != nil {
		return errors.Wrap(err, "unable to generate probe identifier")
	}
	logger := logging.RootLogger.Sublogger("probe")

	// Probe each source.
	reports := make([]*probeReport, 0, len(sources))
	for _, source := range sources {
		logger.Debugf("%s: probing %s", operation, sourceDisplayName(source))
		report, err := probeSource(source)
		if err != nil {
			return errors.Wrapf(err, "unable to probe %s", sourceDisplayName(source))
		}
		reports = append(reports, report)
	}

	// If an output path was specified, then save the report set there and
	// we're done.
	if probeConfiguration.output != "" {
		set := &probeReportSet{Identifier: operation, Sources: reports}
		if err := encoding.MarshalAndSaveYAML(probeConfiguration.output, set); err != nil {
			return errors.Wrap(err, "unable to save probe report")
		}
		return nil
	}

	// Otherwise print the reports in human-readable form, framing each source
	// in its own delimited section.
	fmt.Println("Probe:", operation)
	for _, report := range reports {
		fmt.Println(cmd.DelimiterLine)
		printProbeReport(report)
	}
	fmt.Println(cmd.DelimiterLine)

	// Success.
	return nil
}

// probeCommand is the probe command.
var probeCommand = &cobra.Command{
	Use:          "probe [<source>...]",
	Short:        "Report the capabilities that sources support",
	RunE:         probeMain,
	SilenceUsage: true,
}

// probeConfiguration stores configuration for the probe command.
var probeConfiguration struct {
	// help indicates the presence of the -h/--help flag.
	help bool
	// output is the path to which the report should be saved in YAML format.
	output string
}

func init() {
	// Grab a handle for the command line flags.
	flags := probeCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&probeConfiguration.help, "help", "h", false, "Show help information")

	// Wire up probe command flags.
	flags.StringVarP(&probeConfiguration.output, "output", "o", "", "Save the report to the specified path in YAML format")
}
