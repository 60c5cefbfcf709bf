package testing

import "sync"

// ValueRecorder captures the values an animation pushes through its apply
// callback, in order. Safe for concurrent use so it can sit behind a
// driver-ticked scheduler.
type ValueRecorder struct {
	mu     sync.Mutex
	values []int32
}

// NewValueRecorder returns an empty recorder.
func NewValueRecorder() *ValueRecorder {
	return &ValueRecorder{}
}

// Apply is an animation apply callback that records the value and ignores
// the target.
func (r *ValueRecorder) Apply(_ any, value int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

// Values returns a copy of the recorded values.
func (r *ValueRecorder) Values() []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int32, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of recorded values.
func (r *ValueRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the most recent value, or 0 when nothing was recorded.
func (r *ValueRecorder) Last() int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	return r.values[len(r.values)-1]
}

// Reset discards everything recorded so far.
func (r *ValueRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = r.values[:0]
}
