// Package stopwatch implements the elapsed-time engine with lap capture.
//
// Elapsed time is never accumulated from ticks. While running, the engine
// keeps the wall-clock reading taken at Start and derives elapsed time by
// subtraction on every observation.
package stopwatch
