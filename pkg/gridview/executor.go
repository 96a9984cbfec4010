package gridview

import "sync"

// Executor runs functions on the UI context. Post must not block for long
// and must run functions in the order they were posted.
type Executor interface {
	Post(fn func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(fn func())

// Post calls f(fn).
func (f ExecutorFunc) Post(fn func()) { f(fn) }

// Inline runs posted functions immediately on the calling goroutine.
type Inline struct{}

// Post calls fn.
func (Inline) Post(fn func()) { fn() }

// DefaultQueueSize is the buffer of a [Loop] created with size 0.
const DefaultQueueSize = 256

// Loop is a serial executor backed by a single goroutine. Functions that
// do not fit the queue wait in an overflow list, so Post never blocks and
// functions running on the loop may post more work.
type Loop struct {
	queue chan func()
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once

	mu       sync.Mutex
	overflow []func()
}

// NewLoop starts a loop with the given queue size.
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	l := &Loop{
		queue: make(chan func(), size),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.queue:
			fn()
			l.refill()
		case <-l.stop:
			// Drain what was queued before Close.
			for {
				select {
				case fn := <-l.queue:
					fn()
					l.refill()
				default:
					return
				}
			}
		}
	}
}

// refill moves overflowed functions into the queue while it has room.
func (l *Loop) refill() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for len(l.overflow) > 0 {
		select {
		case l.queue <- l.overflow[0]:
			l.overflow[0] = nil
			l.overflow = l.overflow[1:]
		default:
			return
		}
	}
}

// Post enqueues fn. It drops fn once the loop is closed.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stop:
		return
	default:
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.overflow) == 0 {
		select {
		case l.queue <- fn:
			return
		default:
		}
	}
	l.overflow = append(l.overflow, fn)
}

// Close stops the loop after running every function posted before it and
// waits for the goroutine to exit. Close is idempotent.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.stop) })
	<-l.done
}
