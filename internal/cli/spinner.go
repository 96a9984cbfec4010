package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// cellFrames walk one lit cell around a 2x2 grid.
var cellFrames = []string{"▖", "▘", "▝", "▗"}

// stageSpinner animates on stderr while a pipeline runs and names the
// current stage, e.g. "resolve (2/2)". Stdout stays free for artifacts.
type stageSpinner struct {
	out    io.Writer
	parent context.Context
	stages []string

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	current int
	width   int
	started bool
}

// newStageSpinner returns a spinner over stages that stops drawing when ctx
// ends. Without stages it shows "working".
func newStageSpinner(ctx context.Context, stages ...string) *stageSpinner {
	if len(stages) == 0 {
		stages = []string{"working"}
	}
	return &stageSpinner{
		out:     os.Stderr,
		parent:  ctx,
		stages:  stages,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins drawing. It is a no-op after the first call.
func (s *stageSpinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(90 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.parent.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(cellFrames[i%len(cellFrames)])
			}
		}
	}()
}

// Advance moves to the next stage. The last stage sticks.
func (s *stageSpinner) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current < len(s.stages)-1 {
		s.current++
	}
}

// label must be called with s.mu held.
func (s *stageSpinner) label() string {
	if len(s.stages) == 1 {
		return s.stages[0]
	}
	return fmt.Sprintf("%s (%d/%d)", s.stages[s.current], s.current+1, len(s.stages))
}

func (s *stageSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.label()
	if w := lipgloss.Width(line); w < s.width {
		line += strings.Repeat(" ", s.width-w)
	} else {
		s.width = w
	}
	fmt.Fprintf(s.out, "\r%s %s", styleSpinnerCell.Render(frame), StyleDim.Render(line))
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and before Start.
func (s *stageSpinner) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}

// Done stops the spinner and reports success.
func (s *stageSpinner) Done(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// Fail stops the spinner and reports which stage failed.
func (s *stageSpinner) Fail(message string) {
	s.Stop()
	s.mu.Lock()
	stage := s.stages[s.current]
	s.mu.Unlock()
	printError("%s %s", message, StyleDim.Render("("+stage+")"))
}

// Cancelled reports whether the spinner's context ended.
func (s *stageSpinner) Cancelled() bool {
	return s.parent.Err() != nil
}
