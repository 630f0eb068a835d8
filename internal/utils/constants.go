package utils

// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
const LoggerInitializationFailedMessageFormat = "initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal command failures.
const ApplicationExecutionFailedMessage = "dirtree failed"

// Configuration file locations.
const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".dirtree.yaml"
	// GlobalConfigFileName is the name of the configuration file in the global directory.
	GlobalConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".dirtree"
	// ExclusionFileName lists extra excluded names inside a selected directory.
	ExclusionFileName = ".dirtreeignore"
)
