package main

// Exit codes for the CLI
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitConfigError      = 3
	ExitTaskNotFound     = 4
	ExitValidationFailed = 5
	ExitInvalidImport    = 6
)
