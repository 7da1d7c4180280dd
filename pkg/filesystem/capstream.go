package filesystem

const (
	// GlobalConfigurationName is the name of the global configuration file
	// within the user's home directory.
	GlobalConfigurationName = ".capstream.yaml"
)
