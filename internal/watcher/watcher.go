// Package watcher reports changes to individual files, such as a scene
// and its style script, so the application can reload and re-render.
//
// Files are watched through their parent directory: editors commonly save
// by writing a temporary file and renaming it over the original, which
// would drop a watch placed on the file itself.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a file change.
type Event struct {
	// Path is the absolute path of the affected file.
	Path string

	// Op is the operation that occurred. Debounced events may combine
	// several.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher delivers change events for watched files.
type Watcher interface {
	// Watch starts watching a file.
	Watch(path string) error

	// Events returns the event channel. It is closed by Close.
	Events() <-chan Event

	// Errors returns the error channel. It is closed by Close.
	Errors() <-chan error

	// Close stops the watcher.
	Close() error
}
