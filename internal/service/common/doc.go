// Package common holds helpers shared by timedeck-ctl and the integration tests.
//
// It provides a gRPC client wrapper with per-call timeouts that stamps every
// mutating request with the calling actor, and can locate a server over mDNS.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
