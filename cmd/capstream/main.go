package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/spf13/cobra"

	"github.com/capstream-io/capstream/cmd"
	"github.com/capstream-io/capstream/pkg/configuration"
	"github.com/capstream-io/capstream/pkg/logging"
)

// globalConfiguration is the global configuration, loaded before any command
// entry point runs.
var globalConfiguration *configuration.Configuration

// loadGlobalConfiguration loads the global configuration file, applies any
// environment-based overrides, and adjusts the log level accordingly. It is
// used as a persistent pre-run hook so that every command observes the same
// configuration.
func loadGlobalConfiguration(command *cobra.Command, arguments []string) error {
	// Avoid configuration loading during shell completion, where failures
	// would interfere with completion output.
	if cmd.PerformingShellCompletion {
		globalConfiguration = &configuration.Configuration{}
		return nil
	}

	// Apply the environment file, if one was specified.
	if rootConfiguration.envFile != "" {
		if err := configuration.ApplyEnvironmentFile(rootConfiguration.envFile); err != nil {
			return errors.Wrap(err, "unable to apply environment file")
		}
	}

	// Load the global configuration file.
	c, err := configuration.Load()
	if err != nil {
		return errors.Wrap(err, "unable to load configuration")
	}

	// Apply environment-based overrides.
	if err := c.ApplyEnvironmentOverrides(); err != nil {
		return errors.Wrap(err, "unable to apply environment overrides")
	}

	// Adjust the log level, preferring a command line override to the
	// configured value.
	if rootConfiguration.logLevel != "" {
		level, ok := logging.NameToLevel(rootConfiguration.logLevel)
		if !ok {
			return errors.Errorf("unknown log level: %s", rootConfiguration.logLevel)
		}
		logging.SetLevel(level)
	} else {
		logging.SetLevel(c.Log.Level)
	}

	// Store the configuration for use by command entry points.
	globalConfiguration = c

	// Success.
	return nil
}

func rootMain(command *cobra.Command, arguments []string) error {
	// If no commands were given, then print help information and bail. We
	// don't have to worry about warning about arguments being present here
	// (which would be incorrect usage) because arguments can't even reach this
	// point (they will be mistaken for subcommands and an error will be
	// displayed).
	command.Help()

	// Success.
	return nil
}

var rootCommand = &cobra.Command{
	Use:               "capstream",
	Short:             "Inspect and move data between byte streams",
	RunE:              rootMain,
	PersistentPreRunE: loadGlobalConfiguration,
	SilenceUsage:      true,
}

var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// envFile is the path of an environment variable file to apply before
	// reading environment-based configuration overrides.
	envFile string
	// logLevel is a log level name overriding the configured level.
	logLevel string
}

func init() {
	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up persistent flags shared by all commands.
	persistent := rootCommand.PersistentFlags()
	persistent.StringVar(&rootConfiguration.envFile, "env-file", "", "Apply environment overrides from the specified file")
	persistent.StringVar(&rootConfiguration.logLevel, "log-level", "", "Override the configured log level")

	// Register commands.
	rootCommand.AddCommand(
		copyCommand,
		probeCommand,
		skipCommand,
		versionCommand,
	)
}

func main() {
	// Handle terminal compatibility issues.
	cmd.HandleTerminalCompatibility()

	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
