package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.evlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.evlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{
		Timestamp:  time.Now(),
		MovementID: "m-1",
		Profile:    "actuator-movements",
		Kind:       KindTrip,
		Reason:     ReasonTimeout,
		Elapsed:    21 * time.Second,
	})
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.MovementID != "m-1" || decoded.Reason != ReasonTimeout {
		t.Errorf("unexpected event: %+v", decoded)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.evlog")

	for _, id := range []string{"first", "second"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), MovementID: id})
		logger.Close()
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	for _, want := range []string{"first", "second"} {
		e, err := r.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if e.MovementID != want {
			t.Errorf("MovementID: got %q, want %q", e.MovementID, want)
		}
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.evlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	// Ignored after close.
	logger.Log(Event{Kind: KindTrip})
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.evlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const goroutines, perG = 8, 25
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				logger.Log(Event{Timestamp: time.Now(), Kind: KindMovementStart, Shunt: i})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	n := 0
	for {
		if _, err := r.Next(); err != nil {
			break
		}
		n++
	}
	if n != goroutines*perG {
		t.Errorf("got %d events, want %d", n, goroutines*perG)
	}
}

func TestFileLoggerSyncsHaltingEvents(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.evlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	for _, k := range []Kind{KindMovementStart, KindTrip, KindMovementEnd, KindInhibit, KindSessionExpired} {
		logger.Log(Event{Timestamp: time.Now(), Profile: "actuator-movements", Kind: k})
	}

	got := logger.Stats()
	want := FileStats{Written: 5, Synced: 3}
	if got != want {
		t.Errorf("Stats: got %+v, want %+v", got, want)
	}
}

func TestFileLoggerStatsAfterClose(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.evlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{Kind: KindMovementStart})
	logger.Close()
	logger.Log(Event{Kind: KindTrip})

	if got := logger.Stats(); got.Written != 1 || got.Synced != 0 {
		t.Errorf("Stats: got %+v, want one unsynced write", got)
	}
}
