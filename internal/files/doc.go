// Package files groups the file handling used by mqmods into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - selector: Resolves a parameter file path or wildcard mask to the files to process
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/mqmods/internal/files/filesystem"
//	    "github.com/vvka-141/mqmods/internal/files/selector"
//	)
//
//	fsys := filesystem.NewOSFileSystem()
//	paths, err := selector.Resolve(fsys, "MaxQuant*.xml")
//
// The processor in internal/services only touches files through
// filesystem.FileSystemProvider, so tests run against MemoryFileSystem.
package files
