package main

// Exit codes used by all citnet commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure, provider error)
	ExitConfigError = 2 // Configuration or usage error
)
