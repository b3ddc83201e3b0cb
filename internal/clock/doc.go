// Package clock supplies wall-clock readings and the periodic tick source that
// drives the timing engines.
//
// Engines never read the clock themselves. The tick source reads Now once per
// wake-up and hands the same reading to every engine, so all engines observe a
// consistent instant within a tick.
package clock
