// Package retry retries file operations that fail because another process
// briefly holds the file, e.g. MaxQuant, an indexer, or a virus scanner
// keeping a parameter file open while it is being swapped.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewFileLockClassifier(), retry.NewExponentialBackoff(3))
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fsys.Rename(oldPath, newPath)
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
