package main

// The tool exits successfully even when status cannot be computed: printing
// nothing is preferable to breaking a shell prompt. Only CLI usage errors
// exit non-zero.
const (
	exitSuccess    = 0
	exitUsageError = 2
)
