package gridview

import (
	"sync"
	"time"
)

// trigger is a trailing-edge debouncer: fn is posted to exec once, d after
// the last call to fire.
type trigger struct {
	mu      sync.Mutex
	d       time.Duration
	exec    Executor
	fn      func()
	timer   *time.Timer
	stopped bool
}

func newTrigger(d time.Duration, exec Executor, fn func()) *trigger {
	return &trigger{d: d, exec: exec, fn: fn}
}

func (t *trigger) fire() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.d, t.post)
		return
	}
	t.timer.Reset(t.d)
}

func (t *trigger) post() {
	t.mu.Lock()
	stopped := t.stopped
	t.mu.Unlock()
	if !stopped {
		t.exec.Post(t.fn)
	}
}

func (t *trigger) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
