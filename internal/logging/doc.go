// Package logging builds the zerolog loggers used across cultivar and carries
// trace ids through context.Context.
//
// Interactive screens draw on the terminal, so the logger never writes there
// while a Bubble Tea program runs: callers either log to a file or disable
// logging for the duration of the program.
package logging
