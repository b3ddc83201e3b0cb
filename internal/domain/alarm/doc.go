// Package alarm contains the recurring wall-clock alarm scheduler.
//
// Entries match at minute granularity. Evaluate is called once per tick with
// the current reading and decides whether an entry starts ringing. A ringing
// entry is sticky until Dismiss, which records a dedup guard so the same entry
// does not re-ring for the rest of that minute.
package alarm
