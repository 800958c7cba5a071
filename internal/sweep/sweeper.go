// Package sweep runs the periodic timer safety net: a fixed wall-clock
// interval check that force-stops any timer session past the 12-hour
// ceiling, regardless of whether the UI ever revisits the task.
package sweep

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/lfreitas/mktboard/internal/state"
)

// ResultMsg is a tea.Msg sent after each sweep pass that stopped at least
// one timer, so views refresh their elapsed-time display.
type ResultMsg struct {
	// StoppedTaskIDs lists the tasks whose timers were force-stopped.
	StoppedTaskIDs []string
}

// Sweeper owns the background goroutine driving Store.SweepTimers.
type Sweeper struct {
	store    *state.Store
	interval time.Duration
	resultCh chan ResultMsg
	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool
}

// New creates a Sweeper over the given store. A non-positive interval
// falls back to once a minute.
func New(s *state.Store, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		store:    s,
		interval: interval,
		resultCh: make(chan ResultMsg, 16),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the sweep goroutine and returns a subscription command
// that delivers ResultMsg messages to the Bubble Tea runtime.
func (s *Sweeper) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	go s.run()

	return s.waitForResult()
}

// Stop halts the sweep goroutine. Safe to call once.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopCh)
	s.running = false
}

func (s *Sweeper) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Sweeper) sweepOnce() {
	stopped := s.store.SweepTimers()
	if len(stopped) == 0 {
		return
	}

	log.Info().Strs("task_ids", stopped).Msg("sweep stopped overlong timers")

	select {
	case s.resultCh <- ResultMsg{StoppedTaskIDs: stopped}:
	default:
		// Drop if the channel is full to avoid blocking the sweeper.
	}
}

// waitForResult returns a tea.Cmd that waits for the next sweep result.
func (s *Sweeper) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-s.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult should be called after processing a ResultMsg to keep
// listening for future results.
func (s *Sweeper) WaitForNextResult() tea.Cmd {
	return s.waitForResult()
}
