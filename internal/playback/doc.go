// Package playback applies playback effects to an audio sink.
//
// A Player plays one sound per channel. LogPlayer only logs requests and suits
// headless hosts. CommandPlayer runs the platform audio tool, materialising
// data URIs to temporary files and re-running the tool while a looping sound
// is active. Dispatcher sits in front of a Player, drops redundant requests
// and turns failures into log lines and metrics instead of errors.
package playback
