// Package timedeck implements the gRPC transport for the timedeck service.
//
// Messages are plain Go structs carried by a CBOR codec registered under the
// "cbor" content-subtype, so no generated code is involved: ServiceDesc and
// Client are written by hand. Server adapts domain snapshots to those messages
// and maps domain errors to status codes.
package timedeck
