// Package filesystem provides the file access used to read, write, and swap
// parameter files.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, with error
//     injection for locked files
package filesystem
