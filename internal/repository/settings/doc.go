// Package settings persists user-facing collections (alarms, world clocks,
// display settings, the timer sound) on top of a key/value store.
//
// Each collection lives under its own key as a JSON document:
//
//	alarms              [{"id":1717,"time":"07:30","label":"Wake Up","enabled":true,"sound":"data:..."}]
//	worldClocks         [{"id":"tokyo","name":"Tokyo","timezone":"Asia/Tokyo","customName":"..."}]
//	worldClockSettings  {"is24Hour":false,"showOffset":true,"showDate":true}
//	timerSound          "data:..."
package settings
