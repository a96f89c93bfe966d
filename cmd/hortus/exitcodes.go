package main

// Exit codes shared across commands
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, missing API key)
	ExitDataError   = 3 // Data error (malformed input, validation failure)
)
