package logger

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	writerQueueDepth = 1000
	flushInterval    = 2 * time.Second
)

// AsyncFileWriter decouples request handling from disk latency: Write never
// blocks, entries are drained to a buffered file by a background goroutine
// and flushed on a fixed interval. Entries are dropped when the queue is
// full rather than stalling the evaluation path.
type AsyncFileWriter struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	file   *os.File
	queue  chan []byte
	closed chan struct{}
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	w := &AsyncFileWriter{
		buf:    bufio.NewWriterSize(file, bufferSize),
		file:   file,
		queue:  make(chan []byte, writerQueueDepth),
		closed: make(chan struct{}),
	}
	go w.drain()
	return w, nil
}

func (w *AsyncFileWriter) Write(p []byte) (int, error) {
	entry := make([]byte, len(p))
	copy(entry, p)
	select {
	case w.queue <- entry:
		return len(p), nil
	default:
		// queue full, drop instead of blocking the caller
		return 0, nil
	}
}

func (w *AsyncFileWriter) drain() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry := <-w.queue:
			w.mu.Lock()
			_, _ = w.buf.Write(entry)
			w.mu.Unlock()
		case <-ticker.C:
			w.flush()
		case <-w.closed:
			w.flush()
			return
		}
	}
}

func (w *AsyncFileWriter) flush() {
	w.mu.Lock()
	_ = w.buf.Flush()
	w.mu.Unlock()
}

func (w *AsyncFileWriter) Close() {
	close(w.closed)
	_ = w.file.Close()
}
