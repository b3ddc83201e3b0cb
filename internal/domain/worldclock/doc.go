// Package worldclock implements the multi-timezone clock board.
//
// The board is an ordered list of cities, each bound to an IANA zone, plus
// display settings. The "local" city always exists and follows the configured
// local zone. Readings are computed for a supplied instant, never from the
// system clock.
package worldclock
