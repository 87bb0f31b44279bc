package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"redalert-backend/internal/email/usecase"
)

// PollScheduler drives poll cycles on a fixed interval. Cycles started by the
// ticker never overlap; a tick that fires during a running cycle is dropped.
type PollScheduler struct {
	poller   usecase.Poller
	interval time.Duration
	stopChan chan struct{}
	done     chan struct{}
	once     sync.Once

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPollScheduler creates a new scheduler
func NewPollScheduler(poller usecase.Poller, interval time.Duration) *PollScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &PollScheduler{
		poller:   poller,
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the scheduler loop
func (s *PollScheduler) Start() {
	log.Printf("[Scheduler] Starting email polling (interval: %s)", s.interval)

	go func() {
		defer close(s.done)

		// Run immediately on start
		s.runCycle()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runCycle()
			case <-s.stopChan:
				log.Println("[Scheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop cancels the running cycle and waits for the loop to exit
func (s *PollScheduler) Stop() {
	s.once.Do(func() {
		s.cancel()
		close(s.stopChan)
	})
	<-s.done
}

func (s *PollScheduler) runCycle() {
	result, err := s.poller.PollEmails(s.ctx)
	if err != nil {
		log.Printf("[Scheduler] Polling cycle failed: %v", err)
		return
	}
	if result != nil && result.Skipped {
		log.Println("[Scheduler] Polling cycle skipped")
	}
}
