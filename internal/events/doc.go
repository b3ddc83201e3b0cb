// Package events publishes notable moments (an alarm starts ringing, a
// countdown finishes, a lap is taken) to interested listeners.
//
// Events are JSON documents with a random id. MQTTPublisher sends them to a
// broker under <prefix>/<kind>, with the dots of the kind turned into topic
// levels. Queue decouples publishing from the caller so a slow broker never
// delays a tick.
package events
