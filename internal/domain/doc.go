// Package domain contains the core entities and value objects for projdump.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (file system, logging, terminals) and holds only
// the rules every other layer relies on.
//
// # Entities
//
//   - [IgnoreSet]: Immutable set of directory names pruned from traversal
//   - [Section]: One (relative path, content) entry of the output document
//   - [Stats]: Counters describing a finished dump run
package domain
