package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths resolve against the root.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.Mutex
	files map[string]*memoryFile
	root  string

	failures       map[string]error
	renameFailures map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:          make(map[string]*memoryFile),
		root:           root,
		failures:       make(map[string]error),
		renameFailures: make(map[string]error),
	}
	mfs.files[root] = newMemoryDir(root)

	return mfs
}

func newMemoryDir(dirPath string) *memoryFile {
	return &memoryFile{
		info: &memoryFileInfo{
			name:    path.Base(dirPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.store(mfs.resolve(filePath), []byte(content), modTime)
}

// Content returns the content of a file, or false when it does not exist.
func (mfs *MemoryFileSystem) Content(filePath string) (string, bool) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, ok := mfs.files[mfs.resolve(filePath)]
	if !ok || file.info.isDir {
		return "", false
	}
	return string(file.content), true
}

// Fail makes every later operation on filePath return err.
// Used to simulate locked or read-only files.
func (mfs *MemoryFileSystem) Fail(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.failures[mfs.resolve(filePath)] = err
}

// FailRename makes renaming filePath away return err while every other
// operation on it keeps working.
func (mfs *MemoryFileSystem) FailRename(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.renameFailures[mfs.resolve(filePath)] = err
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) store(absPath string, content []byte, modTime time.Time) {
	mfs.files[absPath] = &memoryFile{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newMemoryDir(dir)
	if dir != "/" && dir != "." {
		mfs.ensureDirectoriesExist(dir)
	}
}

// lookup returns the entry at absPath, honoring injected failures.
// Callers hold mu.
func (mfs *MemoryFileSystem) lookup(op, absPath string) (*memoryFile, error) {
	if err, ok := mfs.failures[absPath]; ok {
		return nil, &fs.PathError{Op: op, Path: absPath, Err: err}
	}
	file, ok := mfs.files[absPath]
	if !ok {
		return nil, &fs.PathError{Op: op, Path: absPath, Err: fs.ErrNotExist}
	}
	return file, nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, err := mfs.lookup("stat", mfs.resolve(statPath))
	if err != nil {
		return nil, err
	}
	return file.info, nil
}

func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	dir, err := mfs.lookup("readdir", absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !dir.info.isDir {
		return nil, fmt.Errorf("failed to read directory: %s is not a directory", dirPath)
	}

	var result []FileInfo
	for p, file := range mfs.files {
		if p != absPath && path.Dir(p) == absPath {
			result = append(result, file.info)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, err := mfs.lookup("read", mfs.resolve(filePath))
	if err != nil {
		return nil, err
	}
	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	return append([]byte(nil), file.content...), nil
}

func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	content, err := mfs.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Create returns a writer whose content becomes visible when it is closed.
func (mfs *MemoryFileSystem) Create(filePath string) (io.WriteCloser, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	if err, ok := mfs.failures[absPath]; ok {
		return nil, &fs.PathError{Op: "create", Path: absPath, Err: err}
	}
	if parent, ok := mfs.files[path.Dir(absPath)]; !ok || !parent.info.isDir {
		return nil, &fs.PathError{Op: "create", Path: absPath, Err: fs.ErrNotExist}
	}
	if file, ok := mfs.files[absPath]; ok && file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	mfs.store(absPath, nil, time.Now())
	return &memoryWriter{mfs: mfs, absPath: absPath}, nil
}

func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	from := mfs.resolve(oldPath)
	to := mfs.resolve(newPath)

	file, err := mfs.lookup("rename", from)
	if err != nil {
		return err
	}
	if err, ok := mfs.renameFailures[from]; ok {
		return &fs.PathError{Op: "rename", Path: from, Err: err}
	}
	if err, ok := mfs.failures[to]; ok {
		return &fs.PathError{Op: "rename", Path: to, Err: err}
	}
	if file.info.isDir {
		return fmt.Errorf("rename of directories is not supported: %s", oldPath)
	}
	if existing, ok := mfs.files[to]; ok && existing.info.isDir {
		return &fs.PathError{Op: "rename", Path: to, Err: fs.ErrExist}
	}

	delete(mfs.files, from)
	file.info.name = path.Base(to)
	mfs.files[to] = file
	mfs.ensureDirectoriesExist(to)
	return nil
}

func (mfs *MemoryFileSystem) Abs(p string) (string, error) {
	return mfs.resolve(p), nil
}

// memoryWriter buffers writes and publishes them on Close.
type memoryWriter struct {
	mfs     *MemoryFileSystem
	absPath string
	buf     bytes.Buffer
	closed  bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}
	w.closed = true

	w.mfs.mu.Lock()
	defer w.mfs.mu.Unlock()

	w.mfs.store(w.absPath, append([]byte(nil), w.buf.Bytes()...), time.Now())
	return nil
}
