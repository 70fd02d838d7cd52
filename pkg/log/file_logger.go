package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileStats counts what a FileLogger has done since it was opened.
type FileStats struct {
	// Written is the number of events encoded to the file.
	Written int

	// Dropped is the number of events lost to encoding or write errors.
	Dropped int

	// Synced is the number of times the file was flushed to stable storage.
	Synced int
}

// FileLogger appends safety events to a file in CBOR format.
//
// Events that halt a movement or session (trips, inhibits, expired sessions)
// are flushed to stable storage before Log returns, so the reason a board
// stopped survives the supply collapsing right after. Start and end events
// are left to the page cache. FileLogger is safe for concurrent use.
type FileLogger struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
	stats   FileStats
}

// NewFileLogger opens path for appending, creating it with mode 0644 when
// it does not exist.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Log appends the event. Errors are counted in Stats rather than returned
// so a full disk never stops the guard. Events logged after Close are
// ignored.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.stats.Dropped++
		return
	}
	l.stats.Written++

	if event.Kind.Halts() && l.file.Sync() == nil {
		l.stats.Synced++
	}
}

// Stats returns the logger's counters.
func (l *FileLogger) Stats() FileStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Close flushes and closes the file. Calling Close more than once is a no-op.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.file.Sync(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
