// Package api handles incoming HTTP requests for the user endpoints. Each
// handler extracts its parameters into a fixed-shape context record, executes
// the configured remote operation, and writes the operation's payload back
// unchanged. No input validation happens here; the remote operation owns it.
package api
