// Package selector turns the input argument into the list of parameter files
// to process.
//
// The argument is either a literal file path or a directory followed by a
// file name mask using * and ?, e.g. "runs/*.xml". Masks match file names
// only, case-insensitively, and never recurse into subdirectories.
package selector
