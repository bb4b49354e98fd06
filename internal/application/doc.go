// Package application provides application initialization and dependency wiring.
// It resolves the client configuration, compiles the route table, mounts it
// into the shell document at the configured anchor and builds the HTTP server,
// keeping the main package focused on CLI parsing and orchestration.
package application
