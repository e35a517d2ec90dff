// Package log provides centralised audit logging for vers operations.
// Logs are stored in ~/.vers/log/vers-log.db and track CLI commands and
// MCP tool invocations across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("version:create", "write").
//		Author(cmd.Author()).
//		Item(id, contentType).
//		ResultVersion(v.Version).
//		Write(err)
//
// The source parameter follows the format "{area}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"sync"
	"time"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source      string // e.g. "version:create", "mcp:vers_compare"
	Author      string // who performed the action
	Action      string // verb: read, write, compare, restore, tag, ...
	ContentID   string // input: content item identifier
	ContentType string // input: content item type

	// Output fields - populated after the operation succeeds
	ResultVersion int // version created or accessed

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call
// [Builder.Write] to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Item sets the content item this operation affects.
func (b *Builder) Item(contentID, contentType string) *Builder {
	b.entry.ContentID = contentID
	b.entry.ContentType = contentType
	return b
}

// ResultVersion sets the version that resulted from the operation.
// For writes: the new version created. For reads: the version accessed.
func (b *Builder) ResultVersion(version int) *Builder {
	b.entry.ResultVersion = version
	return b
}

// Detail adds a key-value pair to the log entry's detail map. Can be called
// multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
func Open() error {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		return nil
	}

	l, err := open()
	if err != nil {
		return err
	}
	global = l
	return nil
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return
	}
	global.db.Close()
	global = nil
}

// Log writes an entry through the global logger. A nil logger is a no-op so
// operations never fail because audit logging is unavailable.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return
	}
	l.log(e)
}

// DB exposes the log database for query tooling. Nil when the logger is
// not open.
func DB() *sql.DB {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return nil
	}
	return global.db
}

// workingDir returns the current directory for project identification,
// falling back to "unknown" in degenerate environments.
func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return wd
}
