package execution

import "sync"

// maxCapture bounds how much of each output stream is kept per process
const maxCapture = 1 << 20

// boundedBuffer keeps up to maxBytes in memory while always reporting success
// to callers so pipes keep draining.
type boundedBuffer struct {
	mu        sync.Mutex
	maxBytes  int
	buf       []byte
	truncated bool
}

func newBoundedBuffer(maxBytes int) *boundedBuffer {
	if maxBytes < 0 {
		maxBytes = 0
	}
	return &boundedBuffer{maxBytes: maxBytes}
}

func (bb *boundedBuffer) Write(p []byte) (int, error) {
	bb.mu.Lock()
	defer bb.mu.Unlock()

	remaining := bb.maxBytes - len(bb.buf)
	if remaining <= 0 {
		bb.truncated = len(p) > 0 || bb.truncated
		return len(p), nil
	}
	if len(p) > remaining {
		bb.buf = append(bb.buf, p[:remaining]...)
		bb.truncated = true
		return len(p), nil
	}
	bb.buf = append(bb.buf, p...)
	return len(p), nil
}

func (bb *boundedBuffer) String() string {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.truncated {
		return string(bb.buf) + "\n[output truncated]"
	}
	return string(bb.buf)
}
