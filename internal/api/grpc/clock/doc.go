// Package clock implements the gRPC transport for the clock controller.
//
// Messages are protobuf well-known types, so the service descriptor, the
// client stub and the conversions between domain values and wire values are
// written out here rather than generated. The server adapts requests to a
// provided business-service interface and maps domain errors to status codes.
package clock
