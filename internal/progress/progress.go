// Package progress reports byte-throughput for a long-running
// compress/decompress operation. It is adapted from the teacher
// project's tracker: the same atomic-counter-plus-ticker-goroutine
// shape, logging through logrus instead of raw fmt.Printf, and gating
// its periodic rate lines on whether stderr is actually a terminal.
package progress

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"

	"github.com/julianvb03/GESA/internal/logging"
)

var (
	totalBytesProcessed atomic.Uint64
	totalSize           uint64
	done                chan struct{}
	running             bool
	mu                  sync.Mutex
)

// Init starts the progress ticker for an operation expected to
// process size bytes total. Calling Init while already running is a
// no-op.
func Init(size uint64) {
	mu.Lock()
	defer mu.Unlock()

	if running {
		return
	}

	totalBytesProcessed.Store(0)
	totalSize = size
	if totalSize == 0 {
		totalSize = 1
	}

	done = make(chan struct{})
	running = true
	go logLoop(done)
}

// Stop ends the progress ticker started by Init.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if running {
		close(done)
		running = false
	}
}

// AddBytes records n additional bytes processed.
func AddBytes(n uint64) {
	if n > 0 {
		totalBytesProcessed.Add(n)
	}
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func logLoop(done <-chan struct{}) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	startTime := time.Now()
	interactive := isInteractive()
	var prevBytes uint64

	for {
		select {
		case <-ticker.C:
			if !interactive {
				continue
			}
			current := totalBytesProcessed.Load()
			rate := (current - prevBytes) * 4
			prevBytes = current
			logging.Logger.Debugf("processed %s of %s (rate %s/s)",
				formatSize(current), formatSize(totalSize), formatSize(rate))

		case <-done:
			elapsed := time.Since(startTime).Seconds()
			if elapsed < 0.001 {
				elapsed = 0.001
			}
			total := totalBytesProcessed.Load()
			logging.Logger.Infof("completed processing %s in %.1f seconds (avg rate %s/s)",
				formatSize(total), elapsed, formatSize(uint64(float64(total)/elapsed)))
			return
		}
	}
}

func formatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Writer wraps an io.Writer, reporting every successful write to the
// progress tracker.
type Writer struct {
	W interface {
		Write(p []byte) (int, error)
	}
}

// Write implements io.Writer.
func (pw *Writer) Write(p []byte) (int, error) {
	n, err := pw.W.Write(p)
	if err == nil && n > 0 {
		AddBytes(uint64(n))
	}
	return n, err
}
