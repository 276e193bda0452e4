// Package domain contains the core domain entities and value objects for linecast.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (sockets, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Record]: A single line of a source file, sent as one datagram
//   - [RecordSequence]: The ordered records of a file, loaded before sending
//   - [Destination]: A validated IPv4 address and port
//   - [TransmissionConfig]: Everything a session needs to run
//   - [SessionStatus]: A point-in-time snapshot of a session
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
