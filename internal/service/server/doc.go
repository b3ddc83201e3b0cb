// Package server runs timedeck-server: it owns the stopwatch, countdown,
// alarm scheduler and world clock board behind one mutex, drives them from
// the clock tick source and exposes them over gRPC, HTTP and mDNS.
package server
