// Package checksum provides parameter file hashing with normalization support.
//
// Two checksums are taken of the input and of the patched output:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after removing comments and whitespace between
//     elements (detects changes to parameters only)
//
// Equal raw checksums mean the update changed nothing. Equal normalized
// checksums with different raw checksums mean only layout changed.
//
// # Example Usage
//
//	calculator := checksum.New()
//	before := calculator.CalculateRaw(original)
//	after := calculator.CalculateRaw(patched)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
