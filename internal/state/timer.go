package state

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lfreitas/mktboard/internal/model"
)

// sessionCeiling is the longest a single timer session may stay open
// before the sweep force-stops it: 12 hours in milliseconds.
const sessionCeiling int64 = 12 * 60 * 60 * 1000

// SweepTimers enforces the session ceiling across every running timer.
// Sessions past the ceiling are folded into the task's accumulated time,
// the timer is cleared, the assignee is alerted, and the admin is
// additionally alerted when the total crosses the estimate. It returns
// the ids of the tasks that were force-stopped.
//
// The sweep is a safety net independent of explicit status changes; it
// fires even if no surface ever revisits the task.
func (s *Store) SweepTimers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var stopped []string

	for i := range s.tasks {
		t := s.tasks[i]
		if !t.TimerRunning || t.LastTimerStart == nil {
			continue
		}

		session := now.Sub(*t.LastTimerStart).Milliseconds()
		if session <= sessionCeiling {
			continue
		}

		t.TimeSpent += session
		t.TimerRunning = false
		t.LastTimerStart = nil

		if t.EstimatedHours > 0 && t.SpentHours() > t.EstimatedHours {
			s.alertAdminOverrunLocked(t)
		}
		s.notifyLocked(t.AssigneeID, fmt.Sprintf(
			"The timer on task %q stopped automatically (12h reached).", t.Title,
		), model.NotifyAlert)

		s.tasks[i] = t
		stopped = append(stopped, t.ID)

		log.Info().
			Str("task_id", t.ID).
			Int64("session_ms", session).
			Msg("timer force-stopped at session ceiling")
	}

	return stopped
}
