package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// rippleFrames grow from a dot to a full ring and back.
var rippleFrames = []string{"·", "∘", "○", "◯", "○", "∘"}

const spinnerInterval = 90 * time.Millisecond

// Spinner draws a ripple on a single terminal line until stopped or until
// its context is cancelled. The message can be updated while it runs.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	message string
	width   int
	halted  bool
}

// newSpinnerWithContext creates a spinner on stderr bound to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins drawing in a background goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.draw(rippleFrames[i%len(rippleFrames)])
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
			}
		}
	}()
}

// SetMessage replaces the text drawn next to the ripple.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// frameProgress adapts the spinner to a per-frame progress callback.
func (s *Spinner) frameProgress(done, total int) {
	s.SetMessage(fmt.Sprintf("Rendering frame %d/%d...", done, total))
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	if n := len(s.message) + 2; n > s.width {
		s.width = n
	}
	fmt.Fprintf(s.w, "\r%s", line)
}

// Stop halts the spinner and clears its line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.halted = s.ctx.Err() == nil
		s.mu.Unlock()
		s.cancel()
		<-s.stopped
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
}

// StopWithSuccess stops the spinner and prints message as a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop was called.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Err() != nil && !s.halted
}
