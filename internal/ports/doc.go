// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [LineSource]: Loads text files as record sequences and lists them
//   - [DatagramChannel]: Sends datagrams over a single outbound socket
//   - [Pacer]: Suspends the send loop between records
//   - [ReportRepository]: Persists the summary of the last session
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (file system, UDP, zerolog, etc.).
package ports
