package intake

import (
	"sync"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/kobusvdwalt/subscribeza/app/repository"
)

// DefaultSweepInterval is how often expired pending handoffs are removed.
const DefaultSweepInterval = 15 * time.Minute

// Sweeper garbage-collects expired pending submissions on its own schedule,
// independent of the notification hot path.
type Sweeper struct {
	pending  repository.PendingSubmissionRepository
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewSweeper creates a sweeper; interval <= 0 uses the default.
func NewSweeper(pending repository.PendingSubmissionRepository, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		pending:  pending,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fiberlog.Infof("[Sweeper] Expiry sweep running every %s", s.interval)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				fiberlog.Info("[Sweeper] Stopping")
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
	s.wg.Wait()
}

func (s *Sweeper) sweep() {
	count, err := s.pending.SweepExpired()
	if err != nil {
		fiberlog.Errorf("[Sweeper] Expiry sweep failed: %v", err)
		return
	}
	if count > 0 {
		fiberlog.Infof("[Sweeper] Removed %d expired pending submissions", count)
	}
}
