// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Walker]: Enumerates file candidates beneath a root directory
//   - [Prober]: Classifies a candidate as text and captures its content
//   - [SectionWriter]: Appends sections to the output document
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters/fs) implement them on top of
// the local file system, which keeps the orchestration testable with fakes.
package ports
