// Package alarms implements the in-memory alarm registry.
//
// The Registry keeps alarms in insertion order; the position of an alarm is
// its identity for edit and toggle commands. All operations are serialized by
// a single mutex and reads return copies, so callers never hold live
// references into the sequence.
package alarms
