// Package client implements the clockctl actions: dial the daemon, issue one
// control command and render the result for a terminal.
package client
