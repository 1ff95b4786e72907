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

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated status line on a terminal while a render runs.
// It stops on its own when its context is cancelled.
type Spinner struct {
	message string
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	start   sync.Once
	stop    sync.Once
	mu      sync.Mutex
	width   int
}

// newSpinnerWithContext creates a spinner writing to stderr.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		out:     w,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Calling it more than once has no effect.
func (s *Spinner) Start() {
	s.start.Do(func() {
		go s.run(time.Now())
	})
}

func (s *Spinner) run(began time.Time) {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			elapsed := time.Since(began).Truncate(100 * time.Millisecond)
			line := fmt.Sprintf("%s %s %s",
				styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]),
				StyleDim.Render(s.message),
				StyleDim.Render(elapsed.String()))
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s", line)
			s.width = max(s.width, len(line))
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and before Start.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		stopped := s.ctx.Err() != nil
		s.cancel()
		s.start.Do(func() { close(s.stopped) })
		<-s.stopped
		if !stopped {
			s.clearLine()
		}
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess(s.out, "%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError(s.out, "%s", message)
}

// Cancelled reports whether the spinner's parent context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
