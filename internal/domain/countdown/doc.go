// Package countdown implements the single-shot countdown engine.
//
// The duration is configured through a keypad-style digit buffer of up to six
// digits, read right to left as seconds, minutes and hours. A running
// countdown stores only its deadline; remaining time is always derived from
// the deadline and the supplied wall-clock reading. Completion is detected by
// Tick and reported as a looping play effect on the timer channel.
package countdown
