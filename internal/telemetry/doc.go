// Package telemetry publishes a summary of every completed frame.
//
// The log publisher is always available. The socket.io publisher emits one
// event per frame to a remote collector and is enabled from the command line.
package telemetry
